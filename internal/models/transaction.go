package models

import "time"

// Transaction is one income or expense row. Convention: the sign of Amount
// conveys direction: expenses are negative, income positive. Zero is
// rejected at creation.
type Transaction struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID string    `gorm:"type:uuid;not null;index" json:"account_id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Category  string    `gorm:"not null;index" json:"category"`
	Note      string    `json:"note,omitempty"`
	Tags      Tags      `gorm:"serializer:json" json:"tags"`

	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// Tags is a free-form label list stored as a JSON array.
type Tags []string
