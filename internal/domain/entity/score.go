package entity

import "time"

// Score хранит очки игрока в одной категории одной игры.
// Тройка (GameID, PlayerID, CategoryID) уникальна: повторная запись обновляет строку.
type Score struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"not null;uniqueIndex:idx_scores_game_player_category" json:"game_id"`
	PlayerID   uint      `gorm:"not null;index;uniqueIndex:idx_scores_game_player_category" json:"player_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_scores_game_player_category" json:"category_id"`
	Points     int       `gorm:"not null;default:0" json:"points"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "scores"
}

// PlayerTotals: сумма очков каждого игрока в рамках одной игры (не хранится в БД)
type PlayerTotals map[uint]int

// SumScores складывает очки по игрокам. Игроки без строк в результат не попадают.
func SumScores(scores []Score) PlayerTotals {
	totals := make(PlayerTotals)
	for _, s := range scores {
		totals[s.PlayerID] += s.Points
	}
	return totals
}

// Of возвращает сумму игрока, 0 если у него нет очков
func (t PlayerTotals) Of(playerID uint) int {
	return t[playerID]
}

// SelectWinner определяет победителя по суммам очков.
// Победитель: единственный игрок со строго наибольшей положительной суммой.
// При ничьей на максимуме или если ни у кого нет положительной суммы победителя нет.
func SelectWinner(totals PlayerTotals) (uint, bool) {
	var winnerID uint
	best := 0
	tied := false
	for playerID, total := range totals {
		switch {
		case total > best:
			best = total
			winnerID = playerID
			tied = false
		case total == best && best > 0:
			tied = true
		}
	}
	if best <= 0 || tied {
		return 0, false
	}
	return winnerID, true
}
