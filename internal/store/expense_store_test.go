package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *ExpenseStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Expense{}))
	return New(db)
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := testStore(t)

	confidence := 0.85
	in := models.Expense{
		UserID:        1,
		Title:         "Flight to Goa",
		Amount:        decimal.RequireFromString("8499.50"),
		Category:      "Travel",
		Description:   "annual holiday",
		Date:          time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		PaymentMethod: "Credit Card",
		IsRecurring:   false,
		Tags:          []string{"holiday", "flights"},
		AICategory:    "Travel",
		AIConfidence:  &confidence,
		AISuggestions: "book earlier next time",
	}
	require.NoError(t, s.Create(&in))
	require.NotZero(t, in.ID)

	got, err := s.Get(1, in.ID)
	require.NoError(t, err)

	assert.Equal(t, in.Title, got.Title)
	assert.True(t, got.Amount.Equal(in.Amount))
	assert.Equal(t, in.Category, got.Category)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.PaymentMethod, got.PaymentMethod)
	assert.Equal(t, in.IsRecurring, got.IsRecurring)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, in.AICategory, got.AICategory)
	require.NotNil(t, got.AIConfidence)
	assert.InDelta(t, confidence, *got.AIConfidence, 1e-9)
	assert.Equal(t, in.AISuggestions, got.AISuggestions)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetWrongUser(t *testing.T) {
	s := testStore(t)
	e := models.Expense{UserID: 1, Title: "t", Amount: decimal.NewFromInt(10), Category: "Other", Date: time.Now()}
	require.NoError(t, s.Create(&e))

	_, err := s.Get(2, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	s := testStore(t)
	assert.ErrorIs(t, s.Delete(1, 12345), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	e := models.Expense{UserID: 1, Title: "t", Amount: decimal.NewFromInt(10), Category: "Other", Date: time.Now()}
	require.NoError(t, s.Create(&e))

	require.NoError(t, s.Delete(1, e.ID))
	_, err := s.Get(1, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedN(t *testing.T, s *ExpenseStore, userID uint, n int, category string, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		e := models.Expense{
			UserID:   userID,
			Title:    "seed",
			Amount:   decimal.NewFromInt(int64(10 * (i + 1))),
			Category: category,
			Date:     base.AddDate(0, 0, i),
		}
		require.NoError(t, s.Create(&e))
	}
}

func TestListPagination(t *testing.T) {
	s := testStore(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedN(t, s, 1, 7, "Groceries", base)

	page1, total, err := s.List(ListFilter{UserID: 1, Page: 1, Limit: 3, SortBy: "date", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, page1, 3)
	assert.Equal(t, base, page1[0].Date.UTC())

	page3, _, err := s.List(ListFilter{UserID: 1, Page: 3, Limit: 3, SortBy: "date", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestListFilters(t *testing.T) {
	s := testStore(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedN(t, s, 1, 3, "Groceries", base)
	seedN(t, s, 1, 2, "Travel", base)
	seedN(t, s, 2, 4, "Groceries", base)

	_, total, err := s.List(ListFilter{UserID: 1, Category: "Groceries", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// "all" disables the category filter
	_, total, err = s.List(ListFilter{UserID: 1, Category: "all", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 2)
	_, total, err = s.List(ListFilter{UserID: 1, Category: "Groceries", StartDate: &start, EndDate: &end, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListSortWhitelist(t *testing.T) {
	s := testStore(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedN(t, s, 1, 3, "Groceries", base)

	// unknown sort column falls back to date rather than erroring
	items, _, err := s.List(ListFilter{UserID: 1, SortBy: "amount; DROP TABLE expenses", SortOrder: "desc", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, base.AddDate(0, 0, 2), items[0].Date.UTC())

	items, _, err = s.List(ListFilter{UserID: 1, SortBy: "amount", SortOrder: "asc", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.True(t, items[0].Amount.LessThan(items[2].Amount))
}

func TestRecentOrdering(t *testing.T) {
	s := testStore(t)
	old := models.Expense{UserID: 1, Title: "old date, created last", Amount: decimal.NewFromInt(5), Category: "Other", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	fresh := models.Expense{UserID: 1, Title: "fresh", Amount: decimal.NewFromInt(5), Category: "Other", Date: time.Now()}
	require.NoError(t, s.Create(&fresh))
	require.NoError(t, s.Create(&old))

	recent, err := s.Recent(1, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// creation order wins over the expense date
	assert.Equal(t, "old date, created last", recent[0].Title)
}
