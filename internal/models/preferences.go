package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPreferences holds a user's spending limits and notification switch.
// Threshold alerting compares against the same monthly totals the dashboard
// reports, so limits here use the same decimal representation as expenses.
type BudgetPreferences struct {
	ID                   uint            `gorm:"primaryKey" json:"-"`
	UserID               uint            `gorm:"uniqueIndex;not null" json:"-"`
	DailyLimit           decimal.Decimal `gorm:"type:decimal(12,2)" json:"dailyLimit"`
	MonthlyLimit         decimal.Decimal `gorm:"type:decimal(12,2)" json:"monthlyLimit"`
	NotificationsEnabled bool            `gorm:"default:true" json:"notificationsEnabled"`
	CreatedAt            time.Time       `json:"-"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}
