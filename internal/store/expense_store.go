package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist or belongs to
// another user. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// ExpenseStore wraps all expense persistence. Consistency is delegated to
// the database; concurrent edits to the same record are last-write-wins.
type ExpenseStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// ListFilter describes a filtered, sorted, paginated expense query.
type ListFilter struct {
	UserID    uint
	Category  string // empty or "all" means no category filter
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // date, amount, title, category, created_at
	SortOrder string // asc or desc
	Page      int
	Limit     int
}

// sortColumns whitelists what callers may sort on; everything else falls
// back to the date column.
var sortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"title":      "title",
	"category":   "category",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

// List returns one page of expenses plus the total row count for the
// same filter.
func (s *ExpenseStore) List(f ListFilter) ([]models.Expense, int64, error) {
	base := s.db.Model(&models.Expense{}).Where("user_id = ?", f.UserID)
	if f.Category != "" && f.Category != "all" {
		base = base.Where("category = ?", f.Category)
	}
	if f.StartDate != nil {
		base = base.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		base = base.Where("date <= ?", *f.EndDate)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "date"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}
	orderBy := fmt.Sprintf("%s %s, id %s", column, direction, direction)

	offset := (f.Page - 1) * f.Limit
	var expenses []models.Expense
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(f.Limit).
		Offset(offset).
		Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	return expenses, total, nil
}

// Get fetches a single expense owned by the user.
func (s *ExpenseStore) Get(userID, id uint) (*models.Expense, error) {
	var e models.Expense
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

func (s *ExpenseStore) Create(e *models.Expense) error {
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) Update(e *models.Expense) error {
	if err := s.db.Save(e).Error; err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes an expense; ErrNotFound when no matching row existed.
func (s *ExpenseStore) Delete(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// InDateRange returns all of a user's expenses with date in [start, end].
func (s *ExpenseStore) InDateRange(userID uint, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("expenses in range: %w", err)
	}
	return expenses, nil
}

// Since returns all of a user's expenses with date >= start.
func (s *ExpenseStore) Since(userID uint, start time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, start).
		Order("date ASC, id ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("expenses since: %w", err)
	}
	return expenses, nil
}

// Recent returns the user's n most recently created expenses, newest first,
// regardless of the expense date.
func (s *ExpenseStore) Recent(userID uint, n int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return expenses, nil
}

// All returns every expense for a user, newest date first. Used by exports.
func (s *ExpenseStore) All(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("all expenses: %w", err)
	}
	return expenses, nil
}
