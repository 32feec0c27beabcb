package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий очков
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// FindByKey ищет строку очков по тройке (игра, игрок, категория)
func (r *ScoreRepo) FindByKey(ctx context.Context, gameID, playerID, categoryID uint) (*entity.Score, error) {
	var score entity.Score
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND player_id = ? AND category_id = ?", gameID, playerID, categoryID).
		First(&score).Error
	if err != nil {
		return nil, mapLookupError(err)
	}
	return &score, nil
}

// Create вставляет новую строку очков
func (r *ScoreRepo) Create(ctx context.Context, score *entity.Score) error {
	return mapWriteError(r.db.WithContext(ctx).Create(score).Error, "score")
}

// UpdatePoints заменяет значение очков существующей строки
func (r *ScoreRepo) UpdatePoints(ctx context.Context, scoreID uint, points int) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Score{}).
		Where("id = ?", scoreID).
		Updates(map[string]interface{}{"points": points, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByGame возвращает все очки игры
func (r *ScoreRepo) ListByGame(ctx context.Context, gameID uint) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("player_id ASC, category_id ASC").
		Find(&scores).Error
	return scores, err
}
