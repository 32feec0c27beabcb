package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// GameRepository определяет методы для работы с играми
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id uint) (*entity.Game, error)
	// ListFinalized возвращает финализированные игры, отсортированные по дате по убыванию
	ListFinalized(ctx context.Context) ([]entity.Game, error)
	// Finalize в одной транзакции помечает победителя (если winnerID != nil)
	// и выставляет finalized = true. Возвращает ErrConflict, если игра уже закрыта.
	Finalize(ctx context.Context, gameID uint, winnerID *uint) error
}
