package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Expense{}))
	return NewEngine(store.New(db), 10), db
}

func seed(t *testing.T, db *gorm.DB, userID uint, category string, amount float64, date time.Time) {
	t.Helper()
	e := models.Expense{
		UserID:   userID,
		Title:    "seed",
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		Date:     date,
	}
	require.NoError(t, db.Create(&e).Error)
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange(2025, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.Local), end)

	_, _, err = MonthRange(2025, 13)
	assert.Error(t, err)
	_, _, err = MonthRange(2025, 0)
	assert.Error(t, err)
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	engine, _ := testEngine(t)
	summary, err := engine.MonthlySummary(1, 2025, 6)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestMonthlySummaryBoundaries(t *testing.T) {
	engine, db := testEngine(t)

	seed(t, db, 1, "Groceries", 10, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Groceries", 20, time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local))
	// outside the month on both sides
	seed(t, db, 1, "Groceries", 99, time.Date(2025, 2, 28, 23, 59, 59, 0, time.Local))
	seed(t, db, 1, "Groceries", 99, time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local))
	// another user's expense never leaks in
	seed(t, db, 2, "Groceries", 99, time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local))

	summary, err := engine.MonthlySummary(1, 2025, 3)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.True(t, summary[0].TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, summary[0].Count)
}

func TestSpendingTrendsWindow(t *testing.T) {
	engine, db := testEngine(t)
	now := time.Date(2025, 4, 15, 12, 0, 0, 0, time.Local)
	engine.now = func() time.Time { return now }

	seed(t, db, 1, "Other", 100, time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Other", 200, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Other", 300, time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local))
	// before the 3-month window
	seed(t, db, 1, "Other", 999, time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local))

	trend, err := engine.SpendingTrends(1, 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)
	assert.Equal(t, 2, trend[0].Month)
	assert.Equal(t, 3, trend[1].Month)
	assert.Equal(t, 4, trend[2].Month)
}

func TestBuildDashboard(t *testing.T) {
	engine, db := testEngine(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	engine.now = func() time.Time { return now }

	// previous month: 1000, current month: 1200
	seed(t, db, 1, "Bills & Utilities", 1000, time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Food & Dining", 700, time.Date(2025, 5, 2, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Shopping", 500, time.Date(2025, 5, 12, 0, 0, 0, 0, time.Local))

	dash, err := engine.BuildDashboard(1)
	require.NoError(t, err)

	assert.True(t, dash.CurrentMonth.Total.Equal(decimal.NewFromInt(1200)))
	assert.True(t, dash.LastMonth.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, dash.Comparison.PercentageChange.Equal(decimal.NewFromInt(20)))
	assert.True(t, dash.Comparison.Difference.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, dash.CurrentMonth.TransactionCount)
	assert.Len(t, dash.RecentExpenses, 3)
	// activity feed is newest-created first, regardless of expense date
	assert.Equal(t, "Shopping", dash.RecentExpenses[0].Category)
}

func TestBuildDashboardZeroPrevious(t *testing.T) {
	engine, db := testEngine(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	engine.now = func() time.Time { return now }

	seed(t, db, 1, "Travel", 4200, time.Date(2025, 5, 5, 0, 0, 0, 0, time.Local))

	dash, err := engine.BuildDashboard(1)
	require.NoError(t, err)
	assert.True(t, dash.Comparison.PercentageChange.IsZero())
	assert.True(t, dash.Comparison.Difference.Equal(decimal.NewFromInt(4200)))
}

func TestBuildDashboardYearRollover(t *testing.T) {
	engine, db := testEngine(t)
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	engine.now = func() time.Time { return now }

	seed(t, db, 1, "Other", 800, time.Date(2024, 12, 20, 0, 0, 0, 0, time.Local))
	seed(t, db, 1, "Other", 400, time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local))

	dash, err := engine.BuildDashboard(1)
	require.NoError(t, err)
	assert.True(t, dash.LastMonth.Total.Equal(decimal.NewFromInt(800)))
	assert.True(t, dash.CurrentMonth.Total.Equal(decimal.NewFromInt(400)))
	assert.True(t, dash.Comparison.PercentageChange.Equal(decimal.NewFromInt(-50)))
}
