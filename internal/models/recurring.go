package models

// RecurringBudgetLine applies to every month while active, unless a
// RecurringSkip suppresses it for a specific period.
type RecurringBudgetLine struct {
	Base
	UserID   string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Category string  `gorm:"not null" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Active   bool    `gorm:"default:true" json:"active"`
}

// RecurringSkip suppresses one recurring line for exactly one period.
// It overlays the line rather than deleting it, so past months stay
// accurate after a line is paused.
type RecurringSkip struct {
	Base
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Category string `gorm:"not null" json:"category"`
	Year     int    `gorm:"not null" json:"year"`
	Month    int    `gorm:"not null" json:"month"`
}
