package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/store"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves expense CRUD and listing.
type ExpenseHandler struct {
	Store       *store.ExpenseStore
	PageSize    int
	MaxPageSize int
}

func NewExpenseHandler(s *store.ExpenseStore, pageSize, maxPageSize int) *ExpenseHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &ExpenseHandler{Store: s, PageSize: pageSize, MaxPageSize: maxPageSize}
}

type expenseReq struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	IsRecurring   bool            `json:"isRecurring"`
	Tags          []string        `json:"tags"`
	AICategory    string          `json:"aiCategory"`
	AIConfidence  *float64        `json:"aiConfidence"`
	AISuggestions string          `json:"aiSuggestions"`
}

// apply copies validated request fields onto the expense record.
func (r *expenseReq) apply(e *models.Expense) error {
	e.Title = strings.TrimSpace(r.Title)
	e.Amount = r.Amount
	e.Description = strings.TrimSpace(r.Description)
	e.IsRecurring = r.IsRecurring
	e.Tags = r.Tags

	e.Category = r.Category
	if e.Category == "" {
		e.Category = models.CategoryOther
	}
	e.PaymentMethod = r.PaymentMethod
	if e.PaymentMethod == "" {
		e.PaymentMethod = models.PaymentMethodCash
	}

	if r.Date != "" {
		t, err := util.ParseDate(r.Date)
		if err != nil {
			return err
		}
		e.Date = t
	} else if e.Date.IsZero() {
		e.Date = time.Now()
	}

	e.AICategory = r.AICategory
	e.AIConfidence = r.AIConfidence
	e.AISuggestions = r.AISuggestions
	return nil
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := util.ValidateExpenseInput(strings.TrimSpace(req.Title), req.Amount, req.Category, req.Description, req.PaymentMethod); len(errs) > 0 {
		util.FailFields(c, "Validation failed", errs)
		return
	}

	expense := models.Expense{UserID: user.ID}
	if err := req.apply(&expense); err != nil {
		util.FailFields(c, "Validation failed", []string{"Date must be in YYYY-MM-DD or RFC3339 format"})
		return
	}

	if err := h.Store.Create(&expense); err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to create expense", err)
		return
	}

	util.Created(c, "Expense created successfully", expense)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid expense id")
		return
	}

	expense, err := h.Store.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Fail(c, http.StatusNotFound, "Expense not found")
		} else {
			util.FailErr(c, http.StatusInternalServerError, "Failed to fetch expense", err)
		}
		return
	}

	util.Success(c, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := util.ValidateExpenseInput(strings.TrimSpace(req.Title), req.Amount, req.Category, req.Description, req.PaymentMethod); len(errs) > 0 {
		util.FailFields(c, "Validation failed", errs)
		return
	}

	expense, err := h.Store.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Fail(c, http.StatusNotFound, "Expense not found")
		} else {
			util.FailErr(c, http.StatusInternalServerError, "Failed to fetch expense", err)
		}
		return
	}

	if err := req.apply(expense); err != nil {
		util.FailFields(c, "Validation failed", []string{"Date must be in YYYY-MM-DD or RFC3339 format"})
		return
	}

	if err := h.Store.Update(expense); err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to update expense", err)
		return
	}

	util.SuccessMsg(c, "Expense updated successfully", expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.Store.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Fail(c, http.StatusNotFound, "Expense not found")
		} else {
			util.FailErr(c, http.StatusInternalServerError, "Failed to delete expense", err)
		}
		return
	}

	util.SuccessMsg(c, "Expense deleted successfully", nil)
}

// List returns a filtered, sorted page of expenses with pagination info.
func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if limit <= 0 || limit > h.MaxPageSize {
		limit = h.PageSize
	}

	filter := store.ListFilter{
		UserID:    user.ID,
		Category:  c.Query("category"),
		SortBy:    c.DefaultQuery("sortBy", "date"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Limit:     limit,
	}

	if s := c.Query("startDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			util.Fail(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			util.Fail(c, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
			return
		}
		// treat the end date as inclusive through end of day
		t = t.Add(24*time.Hour - time.Second)
		filter.EndDate = &t
	}

	expenses, total, err := h.Store.List(filter)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to fetch expenses", err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expenses,
		"pagination": gin.H{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": limit,
			"hasNextPage":  page < totalPages,
			"hasPrevPage":  page > 1,
		},
	})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
