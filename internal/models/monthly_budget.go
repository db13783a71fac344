package models

import "pennywise/internal/budget"

// MonthlyBudget stores the ad-hoc category limits for one (owner, year,
// month). The limits array is document-style: every edit rewrites the whole
// array (last write wins, no version check). At most one row exists per
// owner and period.
type MonthlyBudget struct {
	Base
	UserID string       `gorm:"type:uuid;not null;uniqueIndex:uq_budgets_user_period" json:"user_id"`
	Year   int          `gorm:"not null;uniqueIndex:uq_budgets_user_period" json:"year"`
	Month  int          `gorm:"not null;uniqueIndex:uq_budgets_user_period" json:"month"`
	Limits BudgetLimits `gorm:"serializer:json" json:"limits"`
}

// BudgetLimits is the persisted limits array.
type BudgetLimits []budget.SavedLimit
