package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// ParticipantRepo реализует repository.ParticipantRepository
type ParticipantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo создает новый репозиторий участников
func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// CreateBatch вставляет участников одним INSERT
func (r *ParticipantRepo) CreateBatch(ctx context.Context, participants []entity.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	return mapWriteError(r.db.WithContext(ctx).Create(&participants).Error, "participant")
}

// ListByGameWithNames возвращает участников игры с именами игроков, по имени
func (r *ParticipantRepo) ListByGameWithNames(ctx context.Context, gameID uint) ([]entity.ParticipantWithName, error) {
	var rows []entity.ParticipantWithName
	err := r.db.WithContext(ctx).
		Table("participants").
		Select("participants.game_id, participants.player_id, players.name AS player_name, participants.winner").
		Joins("JOIN players ON players.id = participants.player_id").
		Where("participants.game_id = ?", gameID).
		Order("players.name ASC").
		Scan(&rows).Error
	return rows, err
}

// Exists проверяет наличие строки участия (игра, игрок)
func (r *ParticipantRepo) Exists(ctx context.Context, gameID, playerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Count(&count).Error
	return count > 0, err
}
