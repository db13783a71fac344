package models

import "time"

// PlannedExpense is a future lump-sum obligation amortized monthly until
// its due date.
type PlannedExpense struct {
	Base
	UserID   string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	Total    float64   `gorm:"not null" json:"total"`
	DueDate  time.Time `gorm:"not null" json:"due_date"`
	Category string    `json:"category,omitempty"`
}

// PlannedExpenseSkip suppresses one planned expense's amortized
// contribution for exactly one period.
type PlannedExpenseSkip struct {
	Base
	UserID           string `gorm:"type:uuid;not null;index" json:"user_id"`
	PlannedExpenseID string `gorm:"type:uuid;not null;index" json:"planned_expense_id"`
	Year             int    `gorm:"not null" json:"year"`
	Month            int    `gorm:"not null" json:"month"`
}
