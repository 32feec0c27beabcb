package service

import (
	"context"
	"fmt"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// CategoryService отдаёт справочник категорий
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories возвращает категории в порядке отображения.
// Пустая секция означает все категории.
func (s *CategoryService) ListCategories(ctx context.Context, section string) ([]entity.Category, error) {
	if section != "" && !entity.IsValidSection(section) {
		return nil, fmt.Errorf("%w: unknown section %q", apperrors.ErrValidation, section)
	}
	categories, err := s.categoryRepo.List(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
