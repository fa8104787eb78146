package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/middleware"
	"github.com/patrickmillerson/budget-app/internal/service"
)

// CategoryHandler handles expense category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryResponse represents an expense category in API responses
type CategoryResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CategoryFormResponse is the category creation form view model
type CategoryFormResponse struct {
	Name string `json:"name"`
}

// List handles GET /expense/category/
func (h *CategoryHandler) List(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	categories, err := h.categoryService.GetCategories(accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}

	return c.JSON(http.StatusOK, response)
}

// ShowCreate handles GET /expense/category/create/
func (h *CategoryHandler) ShowCreate(c echo.Context) error {
	return c.JSON(http.StatusOK, CategoryFormResponse{})
}

// Create handles POST /expense/category/create/
func (h *CategoryHandler) Create(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	category, err := h.categoryService.CreateCategory(accountID, c.FormValue("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			// Empty form: show it again without recording anything
			return c.JSON(http.StatusOK, CategoryFormResponse{})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("account_id", accountID.String()).Int32("category_id", category.ID).Str("name", category.Name).Msg("Expense category created")

	return c.Redirect(http.StatusSeeOther, "/expense/category/")
}

func toCategoryResponse(category *domain.ExpenseCategory) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}
