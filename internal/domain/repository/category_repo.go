package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// CategoryRepository предоставляет доступ к справочнику категорий
type CategoryRepository interface {
	// List возвращает категории в порядке отображения; пустая секция означает все секции
	List(ctx context.Context, section string) ([]entity.Category, error)
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
}
