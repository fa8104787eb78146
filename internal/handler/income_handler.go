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
	"github.com/patrickmillerson/budget-app/internal/util"
)

// dateLayout is the HTML date input wire format
const dateLayout = "2006-01-02"

// IncomeHandler handles income HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// IncomeResponse represents an income row in API responses
type IncomeResponse struct {
	ID        int32   `json:"id"`
	Amount    string  `json:"amount"`
	Date      string  `json:"date"`
	Source    *string `json:"source,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// IncomeListResponse is the income list view model
type IncomeListResponse struct {
	Incomes        []IncomeResponse `json:"incomes"`
	Total          string           `json:"total"`
	AvailableYears []int            `json:"availableYears"`
	SelectedYear   int              `json:"selectedYear"`
}

// IncomeFormResponse is the income creation form view model
type IncomeFormResponse struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// List handles GET /income/
func (h *IncomeHandler) List(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	year := yearOrCurrent(c.QueryParam("year"))

	result, err := h.incomeService.ListByYear(accountID, year)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Int("year", year).Msg("Failed to list incomes")
		return NewInternalError(c, "Failed to list incomes")
	}

	return c.JSON(http.StatusOK, toIncomeListResponse(result))
}

// ShowCreate handles GET /income/create/
func (h *IncomeHandler) ShowCreate(c echo.Context) error {
	return c.JSON(http.StatusOK, IncomeFormResponse{})
}

// Create handles POST /income/create/
func (h *IncomeHandler) Create(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	input, ok := parseIncomeForm(c)
	if !ok {
		// Incomplete form: show it again without recording anything
		return c.JSON(http.StatusOK, IncomeFormResponse{
			Amount: c.FormValue("amount"),
			Date:   c.FormValue("date"),
			Source: c.FormValue("source"),
		})
	}

	income, err := h.incomeService.CreateIncome(accountID, input)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to create income")
		return NewInternalError(c, "Failed to create income")
	}

	log.Info().Str("account_id", accountID.String()).Int32("income_id", income.ID).Msg("Income created")

	return c.Redirect(http.StatusSeeOther, "/income/")
}

// ShowEdit handles GET /income/edit/:id/
func (h *IncomeHandler) ShowEdit(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid income ID", nil)
	}

	income, err := h.incomeService.GetIncome(accountID, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrIncomeNotFound) {
			return NewNotFoundError(c, "Income not found")
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Int("income_id", id).Msg("Failed to get income")
		return NewInternalError(c, "Failed to get income")
	}

	return c.JSON(http.StatusOK, toIncomeResponse(income))
}

// Edit handles POST /income/edit/:id/
func (h *IncomeHandler) Edit(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign-in required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid income ID", nil)
	}

	income, err := h.incomeService.GetIncome(accountID, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrIncomeNotFound) {
			return NewNotFoundError(c, "Income not found")
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Int("income_id", id).Msg("Failed to get income")
		return NewInternalError(c, "Failed to get income")
	}

	input, ok := parseIncomeForm(c)
	if !ok {
		// Incomplete form: show the stored row again, nothing written
		return c.JSON(http.StatusOK, toIncomeResponse(income))
	}

	updated, changed, err := h.incomeService.UpdateIncome(accountID, int32(id), input)
	if err != nil {
		if errors.Is(err, domain.ErrIncomeNotFound) {
			return NewNotFoundError(c, "Income not found")
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Int("income_id", id).Msg("Failed to update income")
		return NewInternalError(c, "Failed to update income")
	}

	if !changed {
		// Submitted values match the stored row, no write happened
		return c.JSON(http.StatusOK, toIncomeResponse(updated))
	}

	log.Info().Str("account_id", accountID.String()).Int32("income_id", updated.ID).Msg("Income updated")

	return c.Redirect(http.StatusSeeOther, "/income/")
}

// parseIncomeForm reads the income form fields; ok is false when the
// required amount or date is missing or unparseable.
func parseIncomeForm(c echo.Context) (service.CreateIncomeInput, bool) {
	amountStr := strings.TrimSpace(c.FormValue("amount"))
	dateStr := strings.TrimSpace(c.FormValue("date"))
	if amountStr == "" || dateStr == "" {
		return service.CreateIncomeInput{}, false
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return service.CreateIncomeInput{}, false
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return service.CreateIncomeInput{}, false
	}

	return service.CreateIncomeInput{
		Amount: amount,
		Date:   date,
		Source: c.FormValue("source"),
	}, true
}

// yearOrCurrent parses a year query value, falling back to the current year
func yearOrCurrent(raw string) int {
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return util.CurrentYear()
	}
	return year
}

func toIncomeResponse(income *domain.Income) IncomeResponse {
	return IncomeResponse{
		ID:        income.ID,
		Amount:    income.Amount.StringFixed(2),
		Date:      income.Date.Format(dateLayout),
		Source:    income.Source,
		CreatedAt: income.CreatedAt.Format(time.RFC3339),
		UpdatedAt: income.UpdatedAt.Format(time.RFC3339),
	}
}

func toIncomeListResponse(result *service.IncomeListResult) IncomeListResponse {
	incomes := make([]IncomeResponse, len(result.Incomes))
	for i, income := range result.Incomes {
		incomes[i] = toIncomeResponse(income)
	}
	return IncomeListResponse{
		Incomes:        incomes,
		Total:          result.Total.StringFixed(2),
		AvailableYears: result.AvailableYears,
		SelectedYear:   result.SelectedYear,
	}
}
