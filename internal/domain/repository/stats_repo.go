package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// StatsRepository вызывает агрегирующую процедуру статистики игроков
type StatsRepository interface {
	GetPlayerStatistics(ctx context.Context, playerID uint) (*entity.PlayerStatistics, error)
}
