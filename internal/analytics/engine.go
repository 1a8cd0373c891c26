package analytics

import (
	"fmt"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/store"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultTrendMonths is the trailing window used when a caller does not
// ask for a specific one.
const DefaultTrendMonths = 6

// Engine derives summaries, trends and dashboard comparisons from stored
// expenses. All operations are pure reads; they only fail on store errors.
type Engine struct {
	store       *store.ExpenseStore
	recentLimit int
	now         func() time.Time
}

func NewEngine(s *store.ExpenseStore, recentLimit int) *Engine {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Engine{store: s, recentLimit: recentLimit, now: time.Now}
}

// MonthRange resolves a (year, month) pair to its inclusive bounds:
// first day 00:00:00 through last day 23:59:59.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month: %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// MonthlySummary groups one calendar month's expenses by category.
// A month with no expenses yields an empty list, not an error.
func (e *Engine) MonthlySummary(userID uint, year, month int) ([]CategorySummary, error) {
	start, end, err := MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	expenses, err := e.store.InDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	return SummarizeByCategory(expenses), nil
}

// SpendingTrends aggregates per-month totals over the trailing window of
// the given number of months, oldest first.
func (e *Engine) SpendingTrends(userID uint, months int) ([]TrendPoint, error) {
	if months < 1 {
		months = DefaultTrendMonths
	}
	start := e.now().AddDate(0, -months, 0)
	expenses, err := e.store.Since(userID, start)
	if err != nil {
		return nil, err
	}
	return GroupByMonth(expenses), nil
}

// TrailingCategorySummary groups the last N months of expenses by
// category, ranked by total. Feeds the budgeting-tips prompt.
func (e *Engine) TrailingCategorySummary(userID uint, months int) ([]CategorySummary, error) {
	if months < 1 {
		months = 3
	}
	start := e.now().AddDate(0, -months, 0)
	expenses, err := e.store.Since(userID, start)
	if err != nil {
		return nil, err
	}
	return SummarizeByCategory(expenses), nil
}

// MonthSnapshot is one month's side of the dashboard comparison.
type MonthSnapshot struct {
	Total            decimal.Decimal   `json:"total"`
	Breakdown        []CategorySummary `json:"breakdown"`
	TransactionCount int               `json:"transactionCount"`
}

// Comparison is the delta between current and previous month.
type Comparison struct {
	PercentageChange decimal.Decimal `json:"percentageChange"`
	Difference       decimal.Decimal `json:"difference"`
}

// Dashboard is the composite analytics payload for the landing view.
type Dashboard struct {
	CurrentMonth   MonthSnapshot    `json:"currentMonth"`
	LastMonth      MonthSnapshot    `json:"lastMonth"`
	Comparison     Comparison       `json:"comparison"`
	RecentExpenses []models.Expense `json:"recentExpenses"`
}

// BuildDashboard compares the current calendar month against the previous
// one (handling year rollover) and attaches the most recently created
// expenses as an activity feed. The three reads run concurrently.
func (e *Engine) BuildDashboard(userID uint) (*Dashboard, error) {
	now := e.now()
	curYear, curMonth := now.Year(), int(now.Month())
	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == 1 {
		prevYear, prevMonth = curYear-1, 12
	}

	var (
		current, previous []CategorySummary
		recent            []models.Expense
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		current, err = e.MonthlySummary(userID, curYear, curMonth)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = e.MonthlySummary(userID, prevYear, prevMonth)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = e.store.Recent(userID, e.recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentTotal, currentCount := SummaryTotals(current)
	previousTotal, previousCount := SummaryTotals(previous)

	return &Dashboard{
		CurrentMonth: MonthSnapshot{
			Total:            currentTotal,
			Breakdown:        current,
			TransactionCount: currentCount,
		},
		LastMonth: MonthSnapshot{
			Total:            previousTotal,
			Breakdown:        previous,
			TransactionCount: previousCount,
		},
		Comparison: Comparison{
			PercentageChange: PercentageChange(currentTotal, previousTotal),
			Difference:       currentTotal.Sub(previousTotal),
		},
		RecentExpenses: recent,
	}, nil
}
