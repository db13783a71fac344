package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/budget"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/pagination"
	"pennywise/internal/services"
)

// BudgetHandler handles budget-related requests: the saved monthly limits
// document, its resolved view, recurring lines, planned expenses, and skips.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SaveBudgetRequest represents the request payload for saving a monthly
// budget. The limits array replaces whatever is stored.
type SaveBudgetRequest struct {
	Limits []budget.SavedLimit `json:"limits" binding:"required"`
}

// UpdateLineRequest represents the request payload for editing one normal
// budget line.
type UpdateLineRequest struct {
	Category string  `json:"category" binding:"required,min=1,max=100"`
	Limit    float64 `json:"limit" binding:"gte=0"`
}

// CreateRecurringLineRequest represents the request payload for creating a
// recurring budget line.
type CreateRecurringLineRequest struct {
	Category string  `json:"category" binding:"required,min=1,max=100"`
	Amount   float64 `json:"amount" binding:"gte=0"`
}

// RecurringSkipRequest represents the request payload for skipping or
// unskipping a recurring line for one month.
type RecurringSkipRequest struct {
	Category string `json:"category" binding:"required,min=1,max=100"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required"`
}

// CreatePlannedExpenseRequest represents the request payload for creating a
// planned expense.
type CreatePlannedExpenseRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=100"`
	Total    float64   `json:"total" binding:"required,gt=0"`
	DueDate  time.Time `json:"due_date" binding:"required"`
	Category string    `json:"category" binding:"max=100"`
}

// PlannedSkipRequest represents the request payload for skipping or
// unskipping a planned expense for one month.
type PlannedSkipRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// SaveBudget handles replacing the monthly budget document.
// @Summary     Save monthly budget
// @Description Replace the saved limits array for a month, creating the document if absent
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year    path int               true "Year"
// @Param       month   path int               true "Month (1-12)"
// @Param       request body SaveBudgetRequest true "Limit rows"
// @Success     200 {object} models.MonthlyBudget "Saved budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month} [put]
func (h *BudgetHandler) SaveBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mb, err := h.budgetService.SaveMonthlyBudget(userID, p, req.Limits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": mb})
}

// GetBudget handles retrieving the saved monthly budget document.
// @Summary     Get monthly budget
// @Description Get the saved limits document for a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} models.MonthlyBudget "Saved budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No budget for this month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mb, err := h.budgetService.GetMonthlyBudget(userID, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": mb})
}

// GetResolvedBudget handles computing the merged budget view for a month.
// @Summary     Get resolved budget
// @Description Get the merged view of saved limits, recurring lines, and amortized planned expenses for a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  path  int    true  "Year"
// @Param       month path  int    true  "Month (1-12)"
// @Param       sort  query string false "Sort mode (recent/alpha/largest/smallest, default recent)"
// @Success     200 {object} services.ResolvedBudget "Resolved budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month}/resolved [get]
func (h *BudgetHandler) GetResolvedBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resolved, err := h.budgetService.ResolveBudget(userID, p, budget.SortMode(c.Query("sort")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// GetCategories handles listing the distinct categories of the resolved
// budget.
// @Summary     Get budget categories
// @Description Get the distinct category names of the resolved budget for a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} map[string][]string "Category names"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month}/categories [get]
func (h *BudgetHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.budgetService.ListCategories(userID, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateLine handles editing one normal budget line.
// @Summary     Update a budget line
// @Description Rename or re-limit one normal line of the saved monthly budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year     path int               true "Year"
// @Param       month    path int               true "Month (1-12)"
// @Param       category path string            true "Current category name"
// @Param       request  body UpdateLineRequest true "New category and limit"
// @Success     200 {object} models.MonthlyBudget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or non-editable line"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget or line not found"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month}/lines/{category} [patch]
func (h *BudgetHandler) UpdateLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mb, err := h.budgetService.UpdateLine(userID, p, c.Param("category"), req.Category, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": mb})
}

// DeleteLine handles removing one normal budget line.
// @Summary     Delete a budget line
// @Description Remove one normal line from the saved monthly budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year     path int    true "Year"
// @Param       month    path int    true "Month (1-12)"
// @Param       category path string true "Category name"
// @Success     200 {object} models.MonthlyBudget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or non-editable line"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget or line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{year}/{month}/lines/{category} [delete]
func (h *BudgetHandler) DeleteLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mb, err := h.budgetService.DeleteLine(userID, p, c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": mb})
}

// CreateRecurringLine handles creating a recurring budget line.
// @Summary     Create a recurring line
// @Description Create a budget line that applies to every month until skipped or deleted
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecurringLineRequest true "Recurring line details"
// @Success     201 {object} models.RecurringBudgetLine "Recurring line created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recurring [post]
func (h *BudgetHandler) CreateRecurringLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.budgetService.CreateRecurringLine(userID, req.Category, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring_line": line})
}

// GetRecurringLines handles listing the user's recurring lines.
// @Summary     Get recurring lines
// @Description Get a paginated list of the user's active recurring budget lines
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 1000)"
// @Success     200 {object} pagination.PageResponse[models.RecurringBudgetLine] "Paginated recurring lines"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recurring [get]
func (h *BudgetHandler) GetRecurringLines(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	lines, err := h.budgetService.GetRecurringLines(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

// DeleteRecurringLine handles deleting a recurring line.
// @Summary     Delete a recurring line
// @Description Delete a recurring budget line definition
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring line ID"
// @Success     204 "Recurring line deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recurring/{id} [delete]
func (h *BudgetHandler) DeleteRecurringLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteRecurringLine(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SkipRecurring handles suppressing a recurring line for one month.
// @Summary     Skip a recurring line
// @Description Suppress a recurring line for exactly one month; skipping twice is a no-op
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringSkipRequest true "Category and period"
// @Success     204 "Skip recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recurring/skips [post]
func (h *BudgetHandler) SkipRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.SkipRecurring(userID, req.Category, budget.Period{Year: req.Year, Month: req.Month}); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnskipRecurring handles removing a recurring skip.
// @Summary     Unskip a recurring line
// @Description Remove the skip overlay for one month; removing an absent skip is a no-op
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringSkipRequest true "Category and period"
// @Success     204 "Skip removed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recurring/skips [delete]
func (h *BudgetHandler) UnskipRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.UnskipRecurring(userID, req.Category, budget.Period{Year: req.Year, Month: req.Month}); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePlannedExpense handles creating a planned expense.
// @Summary     Create a planned expense
// @Description Record a lump-sum obligation to be amortized monthly until its due date
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlannedExpenseRequest true "Planned expense details"
// @Success     201 {object} models.PlannedExpense "Planned expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/planned [post]
func (h *BudgetHandler) CreatePlannedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.budgetService.CreatePlannedExpense(userID, req.Name, req.Total, req.DueDate, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"planned_expense": expense})
}

// GetPlannedExpenses handles listing the user's planned expenses.
// @Summary     Get planned expenses
// @Description Get a paginated list of the user's planned expenses, soonest due first
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 1000)"
// @Success     200 {object} pagination.PageResponse[models.PlannedExpense] "Paginated planned expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/planned [get]
func (h *BudgetHandler) GetPlannedExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, err := h.budgetService.GetPlannedExpenses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// DeletePlannedExpense handles deleting a planned expense.
// @Summary     Delete a planned expense
// @Description Delete a planned expense definition
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Planned expense ID"
// @Success     204 "Planned expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/planned/{id} [delete]
func (h *BudgetHandler) DeletePlannedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeletePlannedExpense(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SkipPlanned handles suppressing a planned expense for one month.
// @Summary     Skip a planned expense
// @Description Suppress a planned expense's monthly contribution for one month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Planned expense ID"
// @Param       request body PlannedSkipRequest true "Period"
// @Success     204 "Skip recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/planned/{id}/skips [post]
func (h *BudgetHandler) SkipPlanned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlannedSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.SkipPlanned(userID, c.Param("id"), budget.Period{Year: req.Year, Month: req.Month}); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnskipPlanned handles removing a planned-expense skip.
// @Summary     Unskip a planned expense
// @Description Remove the skip overlay for one month; removing an absent skip is a no-op
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Planned expense ID"
// @Param       request body PlannedSkipRequest true "Period"
// @Success     204 "Skip removed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/planned/{id}/skips [delete]
func (h *BudgetHandler) UnskipPlanned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlannedSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.UnskipPlanned(userID, c.Param("id"), budget.Period{Year: req.Year, Month: req.Month}); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
