package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects an authenticated user, standing in for the JWT middleware.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, &models.User{ID: id})
		c.Next()
	}
}

func expenseRouter(t *testing.T) (*gin.Engine, *store.ExpenseStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Expense{}))

	s := store.New(db)
	h := NewExpenseHandler(s, 10, 100)

	r := gin.New()
	g := r.Group("/api/expenses", asUser(1))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateExpense(t *testing.T) {
	r, _ := expenseRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"title":  "Morning coffee",
		"amount": "120.50",
		"date":   "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Expense created successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "Morning coffee", data["title"])
	assert.Equal(t, "120.5", data["amount"])
	// defaults applied when omitted
	assert.Equal(t, "Other", data["category"])
	assert.Equal(t, "Cash", data["paymentMethod"])
}

func TestCreateExpenseValidation(t *testing.T) {
	r, _ := expenseRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"title":    "",
		"amount":   "-5",
		"category": "Cryptocurrency",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])

	errs := body["errors"].([]any)
	assert.Contains(t, errs, "Expense title is required")
	assert.Contains(t, errs, "Amount must be greater than 0")
	assert.Contains(t, errs, "Category must be one of the supported categories")
}

func TestCreateExpenseBadDate(t *testing.T) {
	r, _ := expenseRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"title":  "Coffee",
		"amount": "10",
		"date":   "01/06/2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetExpenseNotFound(t *testing.T) {
	r, _ := expenseRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/expenses/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Expense not found", decode(t, w)["message"])
}

func TestGetExpenseOtherUser(t *testing.T) {
	r, s := expenseRouter(t)

	other := models.Expense{UserID: 2, Title: "not yours", Amount: decimal.NewFromInt(10), Category: "Other", Date: time.Now()}
	require.NoError(t, s.Create(&other))

	w := doJSON(t, r, http.MethodGet, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateExpense(t *testing.T) {
	r, s := expenseRouter(t)

	e := models.Expense{UserID: 1, Title: "Taxi", Amount: decimal.NewFromInt(300), Category: "Transportation", Date: time.Now()}
	require.NoError(t, s.Create(&e))

	w := doJSON(t, r, http.MethodPut, "/api/expenses/1", gin.H{
		"title":    "Taxi to office",
		"amount":   "350",
		"category": "Transportation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := s.Get(1, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taxi to office", updated.Title)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(350)))
}

func TestDeleteExpense(t *testing.T) {
	r, s := expenseRouter(t)

	e := models.Expense{UserID: 1, Title: "Taxi", Amount: decimal.NewFromInt(300), Category: "Transportation", Date: time.Now()}
	require.NoError(t, s.Create(&e))

	w := doJSON(t, r, http.MethodDelete, "/api/expenses/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListExpensesPaginationEnvelope(t *testing.T) {
	r, s := expenseRouter(t)

	for i := 0; i < 12; i++ {
		e := models.Expense{
			UserID:   1,
			Title:    "seed",
			Amount:   decimal.NewFromInt(int64(i + 1)),
			Category: "Other",
			Date:     time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.Create(&e))
	}

	w := doJSON(t, r, http.MethodGet, "/api/expenses?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Len(t, body["data"].([]any), 5)

	p := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, p["currentPage"])
	assert.EqualValues(t, 3, p["totalPages"])
	assert.EqualValues(t, 12, p["totalItems"])
	assert.EqualValues(t, 5, p["itemsPerPage"])
	assert.Equal(t, true, p["hasNextPage"])
	assert.Equal(t, true, p["hasPrevPage"])
}

func TestListExpensesEndDateInclusive(t *testing.T) {
	r, s := expenseRouter(t)

	e := models.Expense{
		UserID:   1,
		Title:    "late evening",
		Amount:   decimal.NewFromInt(50),
		Category: "Other",
		Date:     time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Create(&e))

	w := doJSON(t, r, http.MethodGet, "/api/expenses?startDate=2025-06-10&endDate=2025-06-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 1)
}

func TestExpenseRequiresAuth(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Expense{}))
	h := NewExpenseHandler(store.New(db), 10, 100)

	r := gin.New()
	r.GET("/api/expenses", h.List) // no auth middleware

	w := doJSON(t, r, http.MethodGet, "/api/expenses", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
