package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/service"
	"github.com/patrickmillerson/budget-app/internal/testutil"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockExpenseCategoryRepository) {
	categoryRepo := testutil.NewMockExpenseCategoryRepository()
	return NewCategoryHandler(service.NewCategoryService(categoryRepo)), categoryRepo
}

func TestCategoryList(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()

	accountID := uuid.New()
	categoryRepo.AddCategory(&domain.ExpenseCategory{AccountID: accountID, Name: "Rent"})
	categoryRepo.AddCategory(&domain.ExpenseCategory{AccountID: accountID, Name: "Food"})
	categoryRepo.AddCategory(&domain.ExpenseCategory{AccountID: uuid.New(), Name: "Foreign"})

	req := httptest.NewRequest(http.MethodGet, "/expense/category/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(response))
	}
	if response[0].Name != "Rent" || response[1].Name != "Food" {
		t.Errorf("Expected creation order Rent, Food; got %s, %s", response[0].Name, response[1].Name)
	}
}

func TestCategoryCreate_Success(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()

	form := url.Values{}
	form.Set("name", "Groceries")
	rec := httptest.NewRecorder()
	c := e.NewContext(newFormRequest("/expense/category/create/", form), rec)
	setupAuthContext(c, uuid.New())

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Errorf("Expected status 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/expense/category/" {
		t.Errorf("Expected redirect to /expense/category/, got %q", loc)
	}
	if len(categoryRepo.Categories) != 1 {
		t.Errorf("Expected 1 stored category, got %d", len(categoryRepo.Categories))
	}
}

func TestCategoryCreate_EmptyNameSilentlyRedisplays(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()

	form := url.Values{}
	form.Set("name", "   ")
	rec := httptest.NewRecorder()
	c := e.NewContext(newFormRequest("/expense/category/create/", form), rec)
	setupAuthContext(c, uuid.New())

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The form comes back as-is, nothing stored
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if len(categoryRepo.Categories) != 0 {
		t.Errorf("Expected no stored category, got %d", len(categoryRepo.Categories))
	}
}
