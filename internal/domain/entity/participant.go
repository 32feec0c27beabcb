package entity

// Participant связывает игрока с игрой.
// Пара (GameID, PlayerID) уникальна; после финализации победитель не более одного.
type Participant struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	GameID   uint `gorm:"not null;uniqueIndex:idx_participants_game_player" json:"game_id"`
	PlayerID uint `gorm:"not null;index;uniqueIndex:idx_participants_game_player" json:"player_id"`
	Winner   bool `gorm:"not null;default:false" json:"winner"`
}

// TableName определяет имя таблицы для GORM
func (Participant) TableName() string {
	return "participants"
}

// ParticipantWithName: результат соединения participants и players
type ParticipantWithName struct {
	GameID     uint   `json:"game_id"`
	PlayerID   uint   `json:"player_id"`
	PlayerName string `json:"player_name"`
	Winner     bool   `json:"winner"`
}
