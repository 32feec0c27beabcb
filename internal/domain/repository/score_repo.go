package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с очками
type ScoreRepository interface {
	// FindByKey ищет строку по тройке (игра, игрок, категория); ErrNotFound если её нет
	FindByKey(ctx context.Context, gameID, playerID, categoryID uint) (*entity.Score, error)
	Create(ctx context.Context, score *entity.Score) error
	UpdatePoints(ctx context.Context, scoreID uint, points int) error
	ListByGame(ctx context.Context, gameID uint) ([]entity.Score, error)
}
