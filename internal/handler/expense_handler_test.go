package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/service"
	"github.com/patrickmillerson/budget-app/internal/testutil"
)

func newExpenseHandler() (*ExpenseHandler, *testutil.MockExpenseRepository, *testutil.MockExpenseCategoryRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockExpenseCategoryRepository()
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	return NewExpenseHandler(expenseService, categoryService), expenseRepo, categoryRepo
}

func seedExpense(repo *testutil.MockExpenseRepository, accountID uuid.UUID, amount string, year int, month time.Month, day int) {
	repo.AddExpense(&domain.Expense{
		AccountID: accountID,
		Name:      "expense",
		Amount:    decimal.RequireFromString(amount),
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	})
}

func TestExpenseList_MonthFilter(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()

	accountID := uuid.New()
	seedExpense(expenseRepo, accountID, "10.10", 2025, time.March, 3)
	seedExpense(expenseRepo, accountID, "20.20", 2025, time.March, 14)
	seedExpense(expenseRepo, accountID, "5.05", 2025, time.April, 1)

	req := httptest.NewRequest(http.MethodGet, "/expense/?year=2025&month=March", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ExpenseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Expenses) != 2 {
		t.Errorf("Expected 2 expenses, got %d", len(response.Expenses))
	}
	if response.Total != "30.30" {
		t.Errorf("Expected total '30.30', got %s", response.Total)
	}
	if response.SelectedMonth != "March" {
		t.Errorf("Expected selected month 'March', got %q", response.SelectedMonth)
	}
}

func TestExpenseList_UnparseableMonthKeepsYearScope(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()

	accountID := uuid.New()
	seedExpense(expenseRepo, accountID, "10.10", 2025, time.March, 3)
	seedExpense(expenseRepo, accountID, "5.05", 2025, time.April, 1)

	req := httptest.NewRequest(http.MethodGet, "/expense/?year=2025&month=Marchh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response ExpenseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Expenses) != 2 {
		t.Errorf("Expected 2 expenses, got %d", len(response.Expenses))
	}
	if response.SelectedMonth != "" {
		t.Errorf("Expected no selected month, got %q", response.SelectedMonth)
	}
}

func TestExpenseShowCreate_ReturnsCategories(t *testing.T) {
	e := echo.New()
	handler, _, categoryRepo := newExpenseHandler()

	accountID := uuid.New()
	categoryRepo.AddCategory(&domain.ExpenseCategory{AccountID: accountID, Name: "Groceries"})
	categoryRepo.AddCategory(&domain.ExpenseCategory{AccountID: uuid.New(), Name: "Foreign"})

	req := httptest.NewRequest(http.MethodGet, "/expense/create/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.ShowCreate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response ExpenseFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Categories) != 1 || response.Categories[0].Name != "Groceries" {
		t.Errorf("Expected only the caller's categories, got %+v", response.Categories)
	}
}

func expenseForm(categoryID int32) url.Values {
	form := url.Values{}
	form.Set("name", "Weekly shop")
	form.Set("category", strconv.Itoa(int(categoryID)))
	form.Set("amount", "54.30")
	form.Set("date", "2025-08-30")
	return form
}

func TestExpenseCreate_Success(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, categoryRepo := newExpenseHandler()

	accountID := uuid.New()
	category := &domain.ExpenseCategory{AccountID: accountID, Name: "Groceries"}
	categoryRepo.AddCategory(category)

	rec := httptest.NewRecorder()
	c := e.NewContext(newFormRequest("/expense/create/", expenseForm(category.ID)), rec)
	setupAuthContext(c, accountID)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Errorf("Expected status 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/expense/" {
		t.Errorf("Expected redirect to /expense/, got %q", loc)
	}
	if len(expenseRepo.Expenses) != 1 {
		t.Errorf("Expected 1 stored expense, got %d", len(expenseRepo.Expenses))
	}
}

func TestExpenseCreate_ForeignCategoryNotFound(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, categoryRepo := newExpenseHandler()

	category := &domain.ExpenseCategory{AccountID: uuid.New(), Name: "Groceries"}
	categoryRepo.AddCategory(category)

	rec := httptest.NewRecorder()
	c := e.NewContext(newFormRequest("/expense/create/", expenseForm(category.ID)), rec)
	setupAuthContext(c, uuid.New())

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if len(expenseRepo.Expenses) != 0 {
		t.Errorf("Expected no stored expense, got %d", len(expenseRepo.Expenses))
	}
}

func TestExpenseCreate_MissingFieldSilentlyRedisplays(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, categoryRepo := newExpenseHandler()

	accountID := uuid.New()
	category := &domain.ExpenseCategory{AccountID: accountID, Name: "Groceries"}
	categoryRepo.AddCategory(category)

	form := expenseForm(category.ID)
	form.Del("amount")
	rec := httptest.NewRecorder()
	c := e.NewContext(newFormRequest("/expense/create/", form), rec)
	setupAuthContext(c, accountID)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The form comes back with its category choices, nothing stored
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if len(expenseRepo.Expenses) != 0 {
		t.Errorf("Expected no stored expense, got %d", len(expenseRepo.Expenses))
	}

	var response ExpenseFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Categories) != 1 {
		t.Errorf("Expected the form's categories, got %+v", response.Categories)
	}
}

func TestGetMonths(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()

	accountID := uuid.New()
	seedExpense(expenseRepo, accountID, "1", 2025, time.March, 3)
	seedExpense(expenseRepo, accountID, "1", 2025, time.July, 1)
	seedExpense(expenseRepo, accountID, "1", 2024, time.January, 1)

	req := httptest.NewRequest(http.MethodGet, "/get_months/?year=2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.GetMonths(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var options []service.MonthOption
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	want := []service.MonthOption{
		{Value: "", Label: "All"},
		{Value: "July", Label: "July"},
		{Value: "March", Label: "March"},
	}
	if len(options) != len(want) {
		t.Fatalf("Expected %d options, got %d", len(want), len(options))
	}
	for i := range want {
		if options[i] != want[i] {
			t.Errorf("Option %d: expected %+v, got %+v", i, want[i], options[i])
		}
	}
}

func TestGetMonths_NoExpensesInYear(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()

	accountID := uuid.New()
	seedExpense(expenseRepo, accountID, "1", 2024, time.January, 1)

	req := httptest.NewRequest(http.MethodGet, "/get_months/?year=2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, accountID)

	if err := handler.GetMonths(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var options []service.MonthOption
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("Expected no options, got %+v", options)
	}
}

func TestGetMonths_InvalidYear(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	req := httptest.NewRequest(http.MethodGet, "/get_months/?year=banana", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.GetMonths(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	var options []service.MonthOption
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("Expected no options, got %+v", options)
	}
}
