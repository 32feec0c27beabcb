package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List возвращает категории, опционально отфильтрованные по секции
func (r *CategoryRepo) List(ctx context.Context, section string) ([]entity.Category, error) {
	var categories []entity.Category
	query := r.db.WithContext(ctx)
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Order("display_order ASC, id ASC").Find(&categories).Error
	return categories, err
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, mapLookupError(err)
	}
	return &category, nil
}
