package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrIncomeNotFound     = errors.New("income not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrCategoryNotFound   = errors.New("expense category not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameLength   = errors.New("username length out of range")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordNumeric  = errors.New("password is entirely numeric")
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name exceeds maximum length")
	ErrAmountRequired   = errors.New("amount is required")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrDateRequired     = errors.New("date is required")
	ErrInvalidDate      = errors.New("invalid date")
	ErrCategoryRequired = errors.New("category is required")
)

// Validation constants
const (
	MaxNameLength     = 255
	MinUsernameLength = 3
	MaxUsernameLength = 150
	MinPasswordLength = 8
)
