package services

import (
	"testing"
	"time"

	"pennywise/internal/budget"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
	"pennywise/internal/testutil"
)

var testPeriod = budget.Period{Year: 2025, Month: 6}

func TestSaveMonthlyBudget(t *testing.T) {
	t.Run("creates_document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		mb, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Groceries", Limit: 400},
			{Category: "Rent", Limit: 1500},
		})
		testutil.AssertNoError(t, err)

		if mb.Year != 2025 || mb.Month != 6 {
			t.Errorf("expected period 2025-06, got %d-%d", mb.Year, mb.Month)
		}
		if len(mb.Limits) != 2 {
			t.Fatalf("expected 2 limits, got %+v", mb.Limits)
		}
	})

	t.Run("second_save_replaces_whole_array", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Groceries", Limit: 400},
			{Category: "Rent", Limit: 1500},
		})
		testutil.AssertNoError(t, err)

		mb, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Coffee", Limit: 60},
		})
		testutil.AssertNoError(t, err)

		if len(mb.Limits) != 1 || mb.Limits[0].Category != "Coffee" {
			t.Fatalf("expected full replace, got %+v", mb.Limits)
		}

		var count int64
		db.Model(&models.MonthlyBudget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one document per period, got %d", count)
		}
	})

	t.Run("case_insensitive_duplicate_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Groceries", Limit: 400},
			{Category: "groceries", Limit: 100},
		})
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")

		_, err = svc.GetMonthlyBudget(user.ID, testPeriod)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("empty_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "   ", Limit: 400},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_limit_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveMonthlyBudget(user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Groceries", Limit: -1},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_period_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveMonthlyBudget(user.ID, budget.Period{Year: 2025, Month: 13}, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.SaveMonthlyBudget(user.ID, budget.Period{Year: 1800, Month: 6}, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetMonthlyBudget(t *testing.T) {
	t.Run("absent_budget_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetMonthlyBudget(user.ID, testPeriod)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, owner.ID, testPeriod, []budget.SavedLimit{{Category: "Rent", Limit: 1500}})

		_, err := svc.GetMonthlyBudget(other.ID, testPeriod)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestResolveBudget(t *testing.T) {
	t.Run("merges_all_sources", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, []budget.SavedLimit{{Category: "Groceries", Limit: 400}})
		testutil.CreateTestRecurringLine(t, db, user.ID, "Rent", 1500)
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Insurance", 1200,
			time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)

		if len(resolved.Limits) != 3 {
			t.Fatalf("expected 3 lines, got %+v", resolved.Limits)
		}
		if resolved.Limits[0].Kind != budget.KindNormal ||
			resolved.Limits[1].Kind != budget.KindRecurring ||
			resolved.Limits[2].Kind != budget.KindPlanned {
			t.Errorf("expected saved/recurring/planned order, got %+v", resolved.Limits)
		}
		if resolved.Limits[2].Limit != 100 {
			t.Errorf("expected amortized 100/month, got %v", resolved.Limits[2].Limit)
		}
	})

	t.Run("no_saved_budget_still_resolves", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Rent", 1500)

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 1 || resolved.Limits[0].Category != "Rent" {
			t.Fatalf("expected just the recurring line, got %+v", resolved.Limits)
		}
	})

	t.Run("skips_suppress_for_one_month_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Gym", 50)

		testutil.AssertNoError(t, svc.SkipRecurring(user.ID, "Gym", testPeriod))

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 0 {
			t.Fatalf("expected skipped line gone, got %+v", resolved.Limits)
		}

		next := budget.Period{Year: 2025, Month: 7}
		resolved, err = svc.ResolveBudget(user.ID, next, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 1 {
			t.Fatalf("expected line back next month, got %+v", resolved.Limits)
		}
	})

	t.Run("empty_mode_defaults_to_recent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ResolveBudget(user.ID, testPeriod, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_mode_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ResolveBudget(user.ID, testPeriod, "biggest")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("alpha_sort_applies", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, []budget.SavedLimit{
			{Category: "Zoo", Limit: 10},
			{Category: "Apples", Limit: 20},
		})

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortAlpha)
		testutil.AssertNoError(t, err)
		if resolved.Limits[0].Category != "Apples" {
			t.Errorf("expected alpha order, got %+v", resolved.Limits)
		}
	})
}

func TestListCategories(t *testing.T) {
	t.Run("distinct_in_resolved_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, []budget.SavedLimit{{Category: "Food", Limit: 300}})
		testutil.CreateTestRecurringLine(t, db, user.ID, "Food", 100)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Rent", 1500)

		categories, err := svc.ListCategories(user.ID, testPeriod)
		testutil.AssertNoError(t, err)

		if len(categories) != 2 || categories[0] != "Food" || categories[1] != "Rent" {
			t.Errorf("expected [Food Rent], got %v", categories)
		}
	})
}

func TestUpdateLine(t *testing.T) {
	seed := []budget.SavedLimit{
		{Category: "Groceries", Limit: 400},
		{Category: "Coffee", Limit: 60},
	}

	t.Run("renames_and_relimits_in_place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, seed)

		mb, err := svc.UpdateLine(user.ID, testPeriod, "groceries", "Food", 350)
		testutil.AssertNoError(t, err)

		if len(mb.Limits) != 2 {
			t.Fatalf("expected 2 limits, got %+v", mb.Limits)
		}
		if mb.Limits[0].Category != "Food" || mb.Limits[0].Limit != 350 {
			t.Errorf("expected edited line to keep position, got %+v", mb.Limits)
		}

		reloaded, err := svc.GetMonthlyBudget(user.ID, testPeriod)
		testutil.AssertNoError(t, err)
		if reloaded.Limits[0].Category != "Food" {
			t.Errorf("edit not persisted: %+v", reloaded.Limits)
		}
	})

	t.Run("rename_onto_existing_category_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, seed)

		_, err := svc.UpdateLine(user.ID, testPeriod, "Groceries", "coffee", 100)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("recurring_line_not_editable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, seed)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Rent", 1500)

		_, err := svc.UpdateLine(user.ID, testPeriod, "Rent", "Housing", 1400)
		testutil.AssertAppError(t, err, "LINE_NOT_EDITABLE")
	})

	t.Run("unknown_category_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, seed)

		_, err := svc.UpdateLine(user.ID, testPeriod, "Vacation", "Travel", 100)
		testutil.AssertAppError(t, err, "BUDGET_LINE_NOT_FOUND")
	})

	t.Run("no_saved_budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateLine(user.ID, testPeriod, "Groceries", "Food", 100)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteLine(t *testing.T) {
	t.Run("splices_out_one_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, []budget.SavedLimit{
			{Category: "A", Limit: 1},
			{Category: "B", Limit: 2},
			{Category: "C", Limit: 3},
		})

		mb, err := svc.DeleteLine(user.ID, testPeriod, "B")
		testutil.AssertNoError(t, err)

		if len(mb.Limits) != 2 || mb.Limits[0].Category != "A" || mb.Limits[1].Category != "C" {
			t.Errorf("expected [A C], got %+v", mb.Limits)
		}
	})

	t.Run("planned_line_not_deletable_as_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestMonthlyBudget(t, db, user.ID, testPeriod, []budget.SavedLimit{{Category: "A", Limit: 1}})
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Insurance", 1200,
			time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))

		_, err := svc.DeleteLine(user.ID, testPeriod, "Insurance")
		testutil.AssertAppError(t, err, "LINE_NOT_EDITABLE")
	})
}

func TestRecurringLines(t *testing.T) {
	t.Run("create_and_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		line, err := svc.CreateRecurringLine(user.ID, "Rent", 1500)
		testutil.AssertNoError(t, err)
		if !line.Active {
			t.Error("expected new line to be active")
		}

		page, err := svc.GetRecurringLines(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 line, got %d", page.TotalItems)
		}
	})

	t.Run("empty_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateRecurringLine(user.ID, "  ", 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("delete_requires_ownership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		line := testutil.CreateTestRecurringLine(t, db, owner.ID, "Rent", 1500)

		err := svc.DeleteRecurringLine(other.ID, line.ID)
		testutil.AssertAppError(t, err, "RECURRING_LINE_NOT_FOUND")

		testutil.AssertNoError(t, svc.DeleteRecurringLine(owner.ID, line.ID))
	})

	t.Run("skip_unknown_category_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.SkipRecurring(user.ID, "Nothing", testPeriod)
		testutil.AssertAppError(t, err, "RECURRING_LINE_NOT_FOUND")
	})

	t.Run("skip_twice_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Gym", 50)

		testutil.AssertNoError(t, svc.SkipRecurring(user.ID, "Gym", testPeriod))
		testutil.AssertNoError(t, svc.SkipRecurring(user.ID, "Gym", testPeriod))

		var count int64
		db.Model(&models.RecurringSkip{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 skip row, got %d", count)
		}
	})

	t.Run("unskip_restores_line", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRecurringLine(t, db, user.ID, "Gym", 50)

		testutil.AssertNoError(t, svc.SkipRecurring(user.ID, "Gym", testPeriod))
		testutil.AssertNoError(t, svc.UnskipRecurring(user.ID, "Gym", testPeriod))

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 1 {
			t.Errorf("expected line restored, got %+v", resolved.Limits)
		}
	})

	t.Run("unskip_absent_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.UnskipRecurring(user.ID, "Gym", testPeriod))
	})
}

func TestPlannedExpenses(t *testing.T) {
	due := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create_validates_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePlannedExpense(user.ID, "", 1200, due, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreatePlannedExpense(user.ID, "Insurance", 0, due, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreatePlannedExpense(user.ID, "Insurance", 1200, time.Time{}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		expense, err := svc.CreatePlannedExpense(user.ID, "Insurance", 1200, due, "Insurance")
		testutil.AssertNoError(t, err)
		if expense.Total != 1200 {
			t.Errorf("expected total 1200, got %v", expense.Total)
		}
	})

	t.Run("list_orders_by_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Later", 100, due.AddDate(1, 0, 0))
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Sooner", 100, due)

		page, err := svc.GetPlannedExpenses(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 || page.Data[0].Name != "Sooner" {
			t.Errorf("expected Sooner first, got %+v", page.Data)
		}
	})

	t.Run("skip_and_unskip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestPlannedExpense(t, db, user.ID, "Insurance", 1200, due)

		testutil.AssertNoError(t, svc.SkipPlanned(user.ID, expense.ID, testPeriod))

		resolved, err := svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 0 {
			t.Fatalf("expected planned line skipped, got %+v", resolved.Limits)
		}

		testutil.AssertNoError(t, svc.UnskipPlanned(user.ID, expense.ID, testPeriod))

		resolved, err = svc.ResolveBudget(user.ID, testPeriod, budget.SortRecent)
		testutil.AssertNoError(t, err)
		if len(resolved.Limits) != 1 {
			t.Fatalf("expected planned line back, got %+v", resolved.Limits)
		}
	})

	t.Run("skip_requires_ownership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestPlannedExpense(t, db, owner.ID, "Insurance", 1200, due)

		err := svc.SkipPlanned(other.ID, expense.ID, testPeriod)
		testutil.AssertAppError(t, err, "PLANNED_EXPENSE_NOT_FOUND")
	})

	t.Run("delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestPlannedExpense(t, db, user.ID, "Insurance", 1200, due)

		testutil.AssertNoError(t, svc.DeletePlannedExpense(user.ID, expense.ID))

		err := svc.DeletePlannedExpense(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "PLANNED_EXPENSE_NOT_FOUND")
	})
}
