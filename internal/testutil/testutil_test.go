package testutil_test

import (
	"testing"
	"time"

	"pennywise/internal/budget"
	"pennywise/internal/errors"
	"pennywise/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "accounts", "transactions", "monthly_budgets", "recurring_budget_lines", "recurring_skips", "planned_expenses", "planned_expense_skips"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	account := testutil.CreateTestAccount(t, db, user.ID)
	if account.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", account.Currency)
	}

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tx := testutil.CreateTestTransaction(t, db, user.ID, account.ID, date, -42.5, "Groceries")
	if tx.Amount != -42.5 {
		t.Errorf("expected amount -42.5, got %f", tx.Amount)
	}

	p := budget.Period{Year: 2025, Month: 6}
	mb := testutil.CreateTestMonthlyBudget(t, db, user.ID, p, []budget.SavedLimit{{Category: "Groceries", Limit: 400}})
	if len(mb.Limits) != 1 {
		t.Errorf("expected 1 saved limit, got %d", len(mb.Limits))
	}

	line := testutil.CreateTestRecurringLine(t, db, user.ID, "Rent", 1500)
	if !line.Active {
		t.Error("expected recurring line to be active")
	}

	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pe := testutil.CreateTestPlannedExpense(t, db, user.ID, "Vacation", 1200, due)
	if pe.Total != 1200 {
		t.Errorf("expected total 1200, got %f", pe.Total)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAccountNotFound, "custom message")
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
