package entity

// Секции карточки очков
const (
	SectionUpper = "upper"
	SectionLower = "lower"
)

// Category представляет категорию очков (справочные данные, не изменяются приложением)
type Category struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Code         string  `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Section      string  `gorm:"size:20;not null;index" json:"section"`
	DisplayOrder int     `gorm:"not null;default:0" json:"display_order"`
	Description  *string `gorm:"size:500" json:"description,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// IsValidSection проверяет, что секция является одним из допустимых значений
func IsValidSection(section string) bool {
	return section == SectionUpper || section == SectionLower
}
