package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/middleware"
	"github.com/patrickmillerson/budget-app/internal/service"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService  *service.ExpenseService
	categoryService *service.CategoryService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, categoryService *service.CategoryService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, categoryService: categoryService}
}

// ExpenseResponse represents an expense row in API responses
type ExpenseResponse struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   int32   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Description  *string `json:"description,omitempty"`
	Amount       string  `json:"amount"`
	Date         string  `json:"date"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// YearMonthResponse identifies a calendar month that has expenses
type YearMonthResponse struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
}

// ExpenseListResponse is the expense list view model
type ExpenseListResponse struct {
	Expenses       []ExpenseResponse   `json:"expenses"`
	Total          string              `json:"total"`
	AvailableYears []int               `json:"availableYears"`
	Months         []YearMonthResponse `json:"months"`
	SelectedYear   int                 `json:"selectedYear"`
	SelectedMonth  string              `json:"selectedMonth,omitempty"`
}

// ExpenseFormResponse is the expense creation form view model
type ExpenseFormResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// List handles GET /expense/
func (h *ExpenseHandler) List(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	year := yearOrCurrent(c.QueryParam("year"))

	result, err := h.expenseService.List(accountID, year, c.QueryParam("month"))
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Int("year", year).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	return c.JSON(http.StatusOK, toExpenseListResponse(result))
}

// ShowCreate handles GET /expense/create/
func (h *ExpenseHandler) ShowCreate(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	form, err := h.createForm(accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to load expense form")
		return NewInternalError(c, "Failed to load expense form")
	}

	return c.JSON(http.StatusOK, form)
}

// Create handles POST /expense/create/
func (h *ExpenseHandler) Create(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	input, ok := parseExpenseForm(c)
	if !ok {
		// Incomplete form: show it again without recording anything
		form, err := h.createForm(accountID)
		if err != nil {
			log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to load expense form")
			return NewInternalError(c, "Failed to load expense form")
		}
		return c.JSON(http.StatusOK, form)
	}

	expense, err := h.expenseService.CreateExpense(accountID, input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Expense category not found")
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("account_id", accountID.String()).Int32("expense_id", expense.ID).Msg("Expense created")

	return c.Redirect(http.StatusSeeOther, "/expense/")
}

// GetMonths handles GET /get_months/
func (h *ExpenseHandler) GetMonths(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year <= 0 {
		return c.JSON(http.StatusOK, []service.MonthOption{})
	}

	options, err := h.expenseService.MonthOptions(accountID, year)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Int("year", year).Msg("Failed to get months")
		return NewInternalError(c, "Failed to get months")
	}

	return c.JSON(http.StatusOK, options)
}

func (h *ExpenseHandler) createForm(accountID uuid.UUID) (ExpenseFormResponse, error) {
	categories, err := h.categoryService.GetCategories(accountID)
	if err != nil {
		return ExpenseFormResponse{}, err
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return ExpenseFormResponse{Categories: response}, nil
}

// parseExpenseForm reads the expense form fields; ok is false when a
// required field is missing or unparseable.
func parseExpenseForm(c echo.Context) (service.CreateExpenseInput, bool) {
	name := strings.TrimSpace(c.FormValue("name"))
	categoryStr := strings.TrimSpace(c.FormValue("category"))
	amountStr := strings.TrimSpace(c.FormValue("amount"))
	dateStr := strings.TrimSpace(c.FormValue("date"))
	if name == "" || categoryStr == "" || amountStr == "" || dateStr == "" {
		return service.CreateExpenseInput{}, false
	}

	categoryID, err := strconv.Atoi(categoryStr)
	if err != nil {
		return service.CreateExpenseInput{}, false
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return service.CreateExpenseInput{}, false
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return service.CreateExpenseInput{}, false
	}

	return service.CreateExpenseInput{
		Name:        name,
		CategoryID:  int32(categoryID),
		Description: c.FormValue("description"),
		Amount:      amount,
		Date:        date,
	}, true
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           expense.ID,
		Name:         expense.Name,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Description:  expense.Description,
		Amount:       expense.Amount.StringFixed(2),
		Date:         expense.Date.Format(dateLayout),
		CreatedAt:    expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    expense.UpdatedAt.Format(time.RFC3339),
	}
}

func toExpenseListResponse(result *service.ExpenseListResult) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(result.Expenses))
	for i, expense := range result.Expenses {
		expenses[i] = toExpenseResponse(expense)
	}
	months := make([]YearMonthResponse, len(result.Months))
	for i, ym := range result.Months {
		months[i] = YearMonthResponse{Year: ym.Year, Month: ym.Month.String()}
	}
	return ExpenseListResponse{
		Expenses:       expenses,
		Total:          result.Total.StringFixed(2),
		AvailableYears: result.AvailableYears,
		Months:         months,
		SelectedYear:   result.SelectedYear,
		SelectedMonth:  result.SelectedMonth,
	}
}
