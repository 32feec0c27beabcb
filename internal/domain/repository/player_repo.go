package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// PlayerRepository определяет методы для работы с игроками
type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id uint) (*entity.Player, error)
	// ListOrderedByName возвращает всех игроков в алфавитном порядке имён
	ListOrderedByName(ctx context.Context) ([]entity.Player, error)
	Delete(ctx context.Context, id uint) error
}
