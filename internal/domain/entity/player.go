package entity

import (
	"strings"
	"time"
)

// MaxPlayerNameLength ограничивает длину имени игрока (совпадает с размером колонки)
const MaxPlayerNameLength = 100

// Player представляет игрока
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Player) TableName() string {
	return "players"
}

// NormalizePlayerName обрезает пробелы по краям имени
func NormalizePlayerName(name string) string {
	return strings.TrimSpace(name)
}

// PlayerWithStats объединяет игрока и его карьерную статистику
type PlayerWithStats struct {
	Player
	Stats CareerStats `json:"stats"`
}
