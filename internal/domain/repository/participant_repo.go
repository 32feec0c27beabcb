package repository

import (
	"context"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// ParticipantRepository определяет методы для работы с участниками игр
type ParticipantRepository interface {
	// CreateBatch вставляет участников одним запросом
	CreateBatch(ctx context.Context, participants []entity.Participant) error
	// ListByGameWithNames возвращает участников игры вместе с именами игроков
	ListByGameWithNames(ctx context.Context, gameID uint) ([]entity.ParticipantWithName, error)
	// Exists сообщает, участвует ли игрок в игре
	Exists(ctx context.Context, gameID, playerID uint) (bool, error)
}
