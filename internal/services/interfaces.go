package services

import (
	"context"
	"time"

	"pennywise/internal/budget"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, currency string) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	From      *time.Time
	To        *time.Time
	Category  string
	AccountID string
}

// TransactionUpdate holds the fields a PATCH may change. Nil means "leave
// unchanged".
type TransactionUpdate struct {
	AccountID *string
	Date      *time.Time
	Amount    *float64
	Category  *string
	Note      *string
	Tags      *[]string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, date time.Time, amount float64, category, note string, tags []string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// ResolvedBudget is the merged, skip-filtered, amortized view of all budget
// sources for one period.
type ResolvedBudget struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Limits []budget.Line `json:"limits"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	SaveMonthlyBudget(userID string, p budget.Period, limits []budget.SavedLimit) (*models.MonthlyBudget, error)
	GetMonthlyBudget(userID string, p budget.Period) (*models.MonthlyBudget, error)
	ResolveBudget(userID string, p budget.Period, mode budget.SortMode) (*ResolvedBudget, error)
	ListCategories(userID string, p budget.Period) ([]string, error)
	UpdateLine(userID string, p budget.Period, category, newCategory string, limit float64) (*models.MonthlyBudget, error)
	DeleteLine(userID string, p budget.Period, category string) (*models.MonthlyBudget, error)

	CreateRecurringLine(userID, category string, amount float64) (*models.RecurringBudgetLine, error)
	GetRecurringLines(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringBudgetLine], error)
	DeleteRecurringLine(userID, lineID string) error
	SkipRecurring(userID, category string, p budget.Period) error
	UnskipRecurring(userID, category string, p budget.Period) error

	CreatePlannedExpense(userID, name string, total float64, dueDate time.Time, category string) (*models.PlannedExpense, error)
	GetPlannedExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlannedExpense], error)
	DeletePlannedExpense(userID, plannedExpenseID string) error
	SkipPlanned(userID, plannedExpenseID string, p budget.Period) error
	UnskipPlanned(userID, plannedExpenseID string, p budget.Period) error
}

// SummaryServicer defines the contract for the monthly summary view.
type SummaryServicer interface {
	Summarize(ctx context.Context, userID string, p budget.Period) (*budget.Summary, error)
}
