package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pennywise/internal/budget"
	"pennywise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     models.AccountTypeChecking,
		Currency: "USD",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction with the given date, amount,
// and category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, date time.Time, amount float64, category string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Category:  category,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestMonthlyBudget creates a saved budget document for the period.
func CreateTestMonthlyBudget(t *testing.T, db *gorm.DB, userID string, p budget.Period, limits []budget.SavedLimit) *models.MonthlyBudget {
	t.Helper()

	mb := &models.MonthlyBudget{
		UserID: userID,
		Year:   p.Year,
		Month:  p.Month,
		Limits: models.BudgetLimits(limits),
	}
	if err := db.Create(mb).Error; err != nil {
		t.Fatalf("failed to create test monthly budget: %v", err)
	}
	return mb
}

// CreateTestRecurringLine creates an active recurring budget line.
func CreateTestRecurringLine(t *testing.T, db *gorm.DB, userID, category string, amount float64) *models.RecurringBudgetLine {
	t.Helper()

	line := &models.RecurringBudgetLine{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Active:   true,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test recurring line: %v", err)
	}
	return line
}

// CreateTestPlannedExpense creates a planned expense due at the given date.
func CreateTestPlannedExpense(t *testing.T, db *gorm.DB, userID, name string, total float64, dueDate time.Time) *models.PlannedExpense {
	t.Helper()

	expense := &models.PlannedExpense{
		UserID:  userID,
		Name:    name,
		Total:   total,
		DueDate: dueDate,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test planned expense: %v", err)
	}
	return expense
}
