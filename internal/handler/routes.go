package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patrickmillerson/budget-app/internal/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, signInLimiter *middleware.RateLimiter, authHandler *AuthHandler, incomeHandler *IncomeHandler, expenseHandler *ExpenseHandler, categoryHandler *CategoryHandler) {
	// Public routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"name": "budget-app"})
	})

	e.GET("/signup/", authHandler.ShowSignUp)
	e.POST("/signup/", authHandler.SignUp)

	signin := e.Group("/signin")
	signin.Use(middleware.SignInRateLimitMiddleware(signInLimiter))
	signin.GET("/", authHandler.ShowSignIn)
	signin.POST("/", authHandler.SignIn)

	// Logout deliberately accepts any method, matching browser link usage
	e.Any("/logout/", authHandler.Logout)

	// Income routes (session required)
	income := e.Group("/income")
	income.Use(authMiddleware.RequireSession())
	income.GET("/", incomeHandler.List)
	income.GET("/create/", incomeHandler.ShowCreate)
	income.POST("/create/", incomeHandler.Create)
	income.GET("/edit/:id/", incomeHandler.ShowEdit)
	income.POST("/edit/:id/", incomeHandler.Edit)

	// Expense routes (session required)
	expense := e.Group("/expense")
	expense.Use(authMiddleware.RequireSession())
	expense.GET("/", expenseHandler.List)
	expense.GET("/create/", expenseHandler.ShowCreate)
	expense.POST("/create/", expenseHandler.Create)
	expense.GET("/category/", categoryHandler.List)
	expense.GET("/category/create/", categoryHandler.ShowCreate)
	expense.POST("/category/create/", categoryHandler.Create)

	// Month selector endpoint (session required)
	months := e.Group("/get_months")
	months.Use(authMiddleware.RequireSession())
	months.GET("/", expenseHandler.GetMonths)
}
