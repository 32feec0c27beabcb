package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// StatsRepo реализует repository.StatsRepository поверх функции get_player_statistics
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo создает новый репозиторий статистики
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetPlayerStatistics вызывает хранимую функцию (см. migrations/000002_player_statistics.up.sql)
func (r *StatsRepo) GetPlayerStatistics(ctx context.Context, playerID uint) (*entity.PlayerStatistics, error) {
	var stats entity.PlayerStatistics
	err := r.db.WithContext(ctx).
		Raw("SELECT total_games, total_wins, win_rate FROM get_player_statistics(?)", playerID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
