package services

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"pennywise/internal/budget"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// summaryService computes the monthly summary view. It reads the month's
// transactions, the previous month's transactions, and the resolved budget
// concurrently, then hands everything to the pure aggregation code.
type summaryService struct {
	db            *gorm.DB
	budgetService BudgetServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, budgetService BudgetServicer) SummaryServicer {
	return &summaryService{
		db:            db,
		budgetService: budgetService,
	}
}

// Summarize builds the summary for one period.
func (s *summaryService) Summarize(ctx context.Context, userID string, p budget.Period) (*budget.Summary, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}

	var (
		current  []budget.Transaction
		previous []budget.Transaction
		resolved *ResolvedBudget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.transactionsInPeriod(gctx, userID, p)
		if err != nil {
			return err
		}
		current = txs
		return nil
	})
	g.Go(func() error {
		txs, err := s.transactionsInPeriod(gctx, userID, p.Previous())
		if err != nil {
			return err
		}
		previous = txs
		return nil
	})
	g.Go(func() error {
		r, err := s.budgetService.ResolveBudget(userID, p, budget.SortRecent)
		if err != nil {
			return err
		}
		resolved = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := budget.Summarize(current, previous, resolved.Limits)
	return &summary, nil
}

func (s *summaryService) transactionsInPeriod(ctx context.Context, userID string, p budget.Period) ([]budget.Transaction, error) {
	start, end := p.Bounds()

	var rows []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	txs := make([]budget.Transaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, budget.Transaction{Category: r.Category, Amount: r.Amount})
	}
	return txs, nil
}
