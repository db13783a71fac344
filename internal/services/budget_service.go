package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pennywise/internal/budget"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// budgetService handles budget-related business logic: the saved monthly
// limits document, recurring lines, planned expenses, their skip overlays,
// and the resolved merged view.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// validatePeriod rejects malformed year/month input before any read or write.
func validatePeriod(p budget.Period) error {
	if p.Year < 1900 || p.Year > 3000 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Year must be a valid integer (1900-3000).")
	}
	if p.Month < 1 || p.Month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be an integer between 1 and 12.")
	}
	return nil
}

// normalizeLimits trims categories, validates each row, and rejects
// case-insensitive duplicate categories among the normal lines.
func normalizeLimits(limits []budget.SavedLimit) ([]budget.SavedLimit, error) {
	out := make([]budget.SavedLimit, 0, len(limits))
	seen := make(map[string]bool, len(limits))
	for _, l := range limits {
		category := strings.TrimSpace(l.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Each limit row needs a non-empty category.")
		}
		if l.Limit < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Each limit row needs a non-negative limit.")
		}
		key := strings.ToLower(category)
		if seen[key] {
			return nil, apperrors.ErrDuplicateCategory
		}
		seen[key] = true
		out = append(out, budget.SavedLimit{Category: category, Limit: l.Limit})
	}
	return out, nil
}

// SaveMonthlyBudget replaces the whole limits array for (owner, year, month),
// creating the document if absent. The write is a full-array replace with no
// version check: concurrent edits are last-write-wins.
func (s *budgetService) SaveMonthlyBudget(userID string, p budget.Period, limits []budget.SavedLimit) (*models.MonthlyBudget, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	normalized, err := normalizeLimits(limits)
	if err != nil {
		return nil, err
	}

	mb := &models.MonthlyBudget{
		UserID: userID,
		Year:   p.Year,
		Month:  p.Month,
		Limits: models.BudgetLimits(normalized),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"limits", "updated_at"}),
	}).Create(mb).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// On conflict the insert's generated ID is discarded; reload the
	// canonical row.
	var saved models.MonthlyBudget
	if err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, p.Month).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// GetMonthlyBudget returns the saved budget document for the period.
// Absence is a NotFound error here; only the summary treats "no budget yet"
// as an empty-limits case.
func (s *budgetService) GetMonthlyBudget(userID string, p budget.Period) (*models.MonthlyBudget, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}

	var mb models.MonthlyBudget
	if err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, p.Month).First(&mb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &mb, nil
}

// loadSources reads the three budget sources and this period's skip
// overlays. A missing monthly budget document resolves to an empty saved
// list rather than an error.
func (s *budgetService) loadSources(userID string, p budget.Period) (
	saved []budget.SavedLimit,
	recurring []budget.RecurringLine,
	recurringSkips []budget.RecurringSkip,
	planned []budget.PlannedItem,
	plannedSkips []budget.PlannedSkip,
	err error,
) {
	var mb models.MonthlyBudget
	findErr := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, p.Month).First(&mb).Error
	switch {
	case findErr == nil:
		saved = []budget.SavedLimit(mb.Limits)
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		// no saved budget for this month
	default:
		err = apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		return
	}

	var recurringRows []models.RecurringBudgetLine
	if findErr := s.db.Where("user_id = ? AND active = ?", userID, true).
		Order("created_at").Find(&recurringRows).Error; findErr != nil {
		err = apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		return
	}
	for _, r := range recurringRows {
		recurring = append(recurring, budget.RecurringLine{Category: r.Category, Amount: r.Amount})
	}

	var recurringSkipRows []models.RecurringSkip
	if findErr := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, p.Month).
		Find(&recurringSkipRows).Error; findErr != nil {
		err = apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		return
	}
	for _, sk := range recurringSkipRows {
		recurringSkips = append(recurringSkips, budget.RecurringSkip{Category: sk.Category, Year: sk.Year, Month: sk.Month})
	}

	var plannedRows []models.PlannedExpense
	if findErr := s.db.Where("user_id = ?", userID).
		Order("created_at").Find(&plannedRows).Error; findErr != nil {
		err = apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		return
	}
	for _, pe := range plannedRows {
		planned = append(planned, budget.PlannedItem{
			ID:       pe.ID,
			Name:     pe.Name,
			Category: pe.Category,
			Total:    pe.Total,
			DueDate:  pe.DueDate,
		})
	}

	var plannedSkipRows []models.PlannedExpenseSkip
	if findErr := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, p.Month).
		Find(&plannedSkipRows).Error; findErr != nil {
		err = apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		return
	}
	for _, sk := range plannedSkipRows {
		plannedSkips = append(plannedSkips, budget.PlannedSkip{PlannedExpenseID: sk.PlannedExpenseID, Year: sk.Year, Month: sk.Month})
	}

	return
}

// ResolveBudget computes the merged budget view for the period. The merge
// never writes anything back.
func (s *budgetService) ResolveBudget(userID string, p budget.Period, mode budget.SortMode) (*ResolvedBudget, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = budget.SortRecent
	}
	if !mode.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sort must be one of: recent, alpha, largest, smallest")
	}

	saved, recurring, recurringSkips, planned, plannedSkips, err := s.loadSources(userID, p)
	if err != nil {
		return nil, err
	}

	lines := budget.Resolve(p, saved, recurring, recurringSkips, planned, plannedSkips)
	lines = budget.SortLines(lines, mode)

	return &ResolvedBudget{Year: p.Year, Month: p.Month, Limits: lines}, nil
}

// ListCategories returns the distinct category names of the resolved budget,
// in resolved order. Used to populate the transaction category picker.
func (s *budgetService) ListCategories(userID string, p budget.Period) ([]string, error) {
	resolved, err := s.ResolveBudget(userID, p, budget.SortRecent)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(resolved.Limits))
	categories := make([]string, 0, len(resolved.Limits))
	for _, l := range resolved.Limits {
		if !seen[l.Category] {
			seen[l.Category] = true
			categories = append(categories, l.Category)
		}
	}
	return categories, nil
}

// UpdateLine edits one normal line: the saved limits array is spliced and
// written back whole. Recurring and planned lines are rejected; they must
// be changed at their source.
func (s *budgetService) UpdateLine(userID string, p budget.Period, category, newCategory string, limit float64) (*models.MonthlyBudget, error) {
	newCategory = strings.TrimSpace(newCategory)
	if newCategory == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category cannot be empty.")
	}
	if limit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Limit must be zero or greater.")
	}

	mb, idx, err := s.findNormalLine(userID, p, category)
	if err != nil {
		return nil, err
	}

	for i, l := range mb.Limits {
		if i != idx && strings.EqualFold(l.Category, newCategory) {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	newLimits := make(models.BudgetLimits, len(mb.Limits))
	copy(newLimits, mb.Limits)
	newLimits[idx] = budget.SavedLimit{Category: newCategory, Limit: limit}

	return s.replaceLimits(mb, newLimits)
}

// DeleteLine removes one normal line and writes the remaining array back
// whole.
func (s *budgetService) DeleteLine(userID string, p budget.Period, category string) (*models.MonthlyBudget, error) {
	mb, idx, err := s.findNormalLine(userID, p, category)
	if err != nil {
		return nil, err
	}

	newLimits := make(models.BudgetLimits, 0, len(mb.Limits)-1)
	newLimits = append(newLimits, mb.Limits[:idx]...)
	newLimits = append(newLimits, mb.Limits[idx+1:]...)

	return s.replaceLimits(mb, newLimits)
}

// findNormalLine locates a category among the saved (normal) lines. A
// category that only exists as a recurring or planned line is not editable
// as a row.
func (s *budgetService) findNormalLine(userID string, p budget.Period, category string) (*models.MonthlyBudget, int, error) {
	mb, err := s.GetMonthlyBudget(userID, p)
	if err != nil {
		return nil, 0, err
	}

	for i, l := range mb.Limits {
		if strings.EqualFold(l.Category, category) {
			return mb, i, nil
		}
	}

	fromSource, err := s.categoryFromSource(userID, category)
	if err != nil {
		return nil, 0, err
	}
	if fromSource {
		return nil, 0, apperrors.ErrLineNotEditable
	}
	return nil, 0, apperrors.ErrBudgetLineNotFound
}

// categoryFromSource reports whether the category belongs to a recurring
// line or planned expense.
func (s *budgetService) categoryFromSource(userID, category string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.RecurringBudgetLine{}).
		Where("user_id = ? AND active = ? AND LOWER(category) = LOWER(?)", userID, true, category).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return true, nil
	}

	if err := s.db.Model(&models.PlannedExpense{}).
		Where("user_id = ? AND (LOWER(category) = LOWER(?) OR LOWER(name) = LOWER(?))", userID, category, category).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

func (s *budgetService) replaceLimits(mb *models.MonthlyBudget, limits models.BudgetLimits) (*models.MonthlyBudget, error) {
	if err := s.db.Model(mb).Update("limits", limits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	mb.Limits = limits
	return mb, nil
}

// CreateRecurringLine adds a budget line that applies to every month until
// skipped or deleted.
func (s *budgetService) CreateRecurringLine(userID, category string, amount float64) (*models.RecurringBudgetLine, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required.")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be zero or greater.")
	}

	line := &models.RecurringBudgetLine{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Active:   true,
	}
	if err := s.db.Create(line).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return line, nil
}

// GetRecurringLines lists the user's active recurring lines.
func (s *budgetService) GetRecurringLines(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringBudgetLine], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringBudgetLine{}).Where("user_id = ? AND active = ?", userID, true)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var lines []models.RecurringBudgetLine
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at").Find(&lines).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(lines, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteRecurringLine removes a recurring line definition. Its skips stay
// behind as inert overlays so past months keep resolving the same way.
func (s *budgetService) DeleteRecurringLine(userID, lineID string) error {
	var line models.RecurringBudgetLine
	if err := s.db.Where("id = ? AND user_id = ?", lineID, userID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecurringLineNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&line).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SkipRecurring suppresses a recurring line for exactly one period.
// Skipping twice is a no-op.
func (s *budgetService) SkipRecurring(userID, category string, p budget.Period) error {
	if err := validatePeriod(p); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.RecurringBudgetLine{}).
		Where("user_id = ? AND active = ? AND category = ?", userID, true, category).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrRecurringLineNotFound
	}

	skip := models.RecurringSkip{UserID: userID, Category: category, Year: p.Year, Month: p.Month}
	if err := s.db.Where(&models.RecurringSkip{
		UserID: userID, Category: category, Year: p.Year, Month: p.Month,
	}).FirstOrCreate(&skip).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UnskipRecurring removes the skip overlay for one period. Removing an
// absent skip is a no-op.
func (s *budgetService) UnskipRecurring(userID, category string, p budget.Period) error {
	if err := validatePeriod(p); err != nil {
		return err
	}

	if err := s.db.Where("user_id = ? AND category = ? AND year = ? AND month = ?",
		userID, category, p.Year, p.Month).
		Delete(&models.RecurringSkip{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreatePlannedExpense records a lump-sum obligation to be amortized
// monthly until its due date.
func (s *budgetService) CreatePlannedExpense(userID, name string, total float64, dueDate time.Time, category string) (*models.PlannedExpense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required.")
	}
	if total <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Total must be greater than zero.")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Due date is required.")
	}

	expense := &models.PlannedExpense{
		UserID:   userID,
		Name:     name,
		Total:    total,
		DueDate:  dueDate,
		Category: strings.TrimSpace(category),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetPlannedExpenses lists the user's planned expenses, soonest due first.
func (s *budgetService) GetPlannedExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PlannedExpense], error) {
	page.Defaults()

	base := s.db.Model(&models.PlannedExpense{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.PlannedExpense
	if err := base.Scopes(pagination.Paginate(page)).Order("due_date").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePlannedExpense removes a planned expense definition.
func (s *budgetService) DeletePlannedExpense(userID, plannedExpenseID string) error {
	expense, err := s.getPlannedExpense(userID, plannedExpenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SkipPlanned suppresses a planned expense's contribution for one period.
func (s *budgetService) SkipPlanned(userID, plannedExpenseID string, p budget.Period) error {
	if err := validatePeriod(p); err != nil {
		return err
	}
	if _, err := s.getPlannedExpense(userID, plannedExpenseID); err != nil {
		return err
	}

	skip := models.PlannedExpenseSkip{UserID: userID, PlannedExpenseID: plannedExpenseID, Year: p.Year, Month: p.Month}
	if err := s.db.Where(&models.PlannedExpenseSkip{
		UserID: userID, PlannedExpenseID: plannedExpenseID, Year: p.Year, Month: p.Month,
	}).FirstOrCreate(&skip).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UnskipPlanned removes the skip overlay for one period.
func (s *budgetService) UnskipPlanned(userID, plannedExpenseID string, p budget.Period) error {
	if err := validatePeriod(p); err != nil {
		return err
	}

	if err := s.db.Where("user_id = ? AND planned_expense_id = ? AND year = ? AND month = ?",
		userID, plannedExpenseID, p.Year, p.Month).
		Delete(&models.PlannedExpenseSkip{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) getPlannedExpense(userID, plannedExpenseID string) (*models.PlannedExpense, error) {
	var expense models.PlannedExpense
	if err := s.db.Where("id = ? AND user_id = ?", plannedExpenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlannedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}
