package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create создает новую игру
func (r *GameRepo) Create(ctx context.Context, game *entity.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// GetByID возвращает игру по ID
func (r *GameRepo) GetByID(ctx context.Context, id uint) (*entity.Game, error) {
	var game entity.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, mapLookupError(err)
	}
	return &game, nil
}

// ListFinalized возвращает финализированные игры, новые первыми
func (r *GameRepo) ListFinalized(ctx context.Context) ([]entity.Game, error) {
	var games []entity.Game
	err := r.db.WithContext(ctx).
		Where("finalized = ?", true).
		Order("date DESC, id DESC").
		Find(&games).Error
	return games, err
}

// Finalize закрывает игру и помечает победителя в одной транзакции.
// Перевод finalized выполняется условным UPDATE, поэтому повторная финализация
// не может пометить второго победителя.
func (r *GameRepo) Finalize(ctx context.Context, gameID uint, winnerID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Game{}).
			Where("id = ? AND finalized = ?", gameID, false).
			Update("finalized", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entity.Game{}).Where("id = ?", gameID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("%w: game #%d is already finalized", apperrors.ErrConflict, gameID)
		}

		if winnerID == nil {
			return nil
		}

		// Если у победителя нет строки участия, UPDATE ничего не затронет: игра всё равно закрывается
		return tx.Model(&entity.Participant{}).
			Where("game_id = ? AND player_id = ?", gameID, *winnerID).
			Update("winner", true).Error
	})
}
