package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// PlayerRepo реализует repository.PlayerRepository
type PlayerRepo struct {
	db *gorm.DB
}

// NewPlayerRepo создает новый репозиторий игроков
func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Create создает нового игрока
func (r *PlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	return mapWriteError(r.db.WithContext(ctx).Create(player).Error, "player")
}

// GetByID возвращает игрока по ID
func (r *PlayerRepo) GetByID(ctx context.Context, id uint) (*entity.Player, error) {
	var player entity.Player
	if err := r.db.WithContext(ctx).First(&player, id).Error; err != nil {
		return nil, mapLookupError(err)
	}
	return &player, nil
}

// ListOrderedByName возвращает всех игроков, отсортированных по имени
func (r *PlayerRepo) ListOrderedByName(ctx context.Context) ([]entity.Player, error) {
	var players []entity.Player
	err := r.db.WithContext(ctx).Order("name ASC").Find(&players).Error
	return players, err
}

// Delete удаляет игрока. Участия и очки удаляются каскадно (см. миграции)
func (r *PlayerRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
