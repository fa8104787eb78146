package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// CategoryService handles expense category business logic
type CategoryService struct {
	categoryRepo domain.ExpenseCategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.ExpenseCategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new expense category owned by the caller
func (s *CategoryService) CreateCategory(accountID uuid.UUID, name string) (*domain.ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.categoryRepo.Create(&domain.ExpenseCategory{
		AccountID: accountID,
		Name:      name,
	})
}

// GetCategories retrieves all categories owned by the caller
func (s *CategoryService) GetCategories(accountID uuid.UUID) ([]*domain.ExpenseCategory, error) {
	return s.categoryRepo.GetAllByAccount(accountID)
}
