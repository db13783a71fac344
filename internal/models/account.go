package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeCredit   AccountType = "credit"
	AccountTypeCash     AccountType = "cash"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeOther    AccountType = "other"
)

// Account represents a money source (checking, credit card, cash, ...).
// Type and currency are immutable after creation; the name is unique per
// owner.
type Account struct {
	Base
	UserID   string      `gorm:"type:uuid;not null;index;uniqueIndex:uq_accounts_user_name" json:"user_id"`
	Name     string      `gorm:"not null;uniqueIndex:uq_accounts_user_name" json:"name"`
	Type     AccountType `gorm:"not null" json:"type"`
	Currency string      `gorm:"size:3;not null;default:'USD'" json:"currency"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
