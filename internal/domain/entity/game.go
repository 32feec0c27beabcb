package entity

import (
	"time"
)

// Game представляет одну партию.
// Жизненный цикл: создаётся открытой (Finalized = false), переводится в
// Finalized = true только при финализации. Обратного перехода нет.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Finalized bool      `gorm:"not null;default:false;index" json:"finalized"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// IsOpen проверяет, принимает ли игра ещё очки
func (g *Game) IsOpen() bool {
	return !g.Finalized
}
