package handler

import (
	"errors"
	"net/http"

	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget preferences are server-owned per-user state so threshold alerting
// works the same from any client.

type budgetPreferencesReq struct {
	DailyLimit           decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit         decimal.Decimal `json:"monthlyLimit"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
}

// GetBudgetPreferences returns the user's preferences, or defaults when
// none have been saved yet.
func GetBudgetPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		var prefs models.BudgetPreferences
		err := db.Where("user_id = ?", user.ID).First(&prefs).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Success(c, models.BudgetPreferences{
					UserID:               user.ID,
					NotificationsEnabled: true,
				})
				return
			}
			util.FailErr(c, http.StatusInternalServerError, "Failed to fetch preferences", err)
			return
		}

		util.Success(c, prefs)
	}
}

// UpdateBudgetPreferences creates or replaces the user's preferences.
func UpdateBudgetPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req budgetPreferencesReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		var errs []string
		if req.DailyLimit.Sign() < 0 {
			errs = append(errs, "Daily limit cannot be negative")
		}
		if req.MonthlyLimit.Sign() < 0 {
			errs = append(errs, "Monthly limit cannot be negative")
		}
		if len(errs) > 0 {
			util.FailFields(c, "Validation failed", errs)
			return
		}

		var prefs models.BudgetPreferences
		err := db.Where("user_id = ?", user.ID).First(&prefs).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			util.FailErr(c, http.StatusInternalServerError, "Failed to fetch preferences", err)
			return
		}

		prefs.UserID = user.ID
		prefs.DailyLimit = req.DailyLimit
		prefs.MonthlyLimit = req.MonthlyLimit
		prefs.NotificationsEnabled = req.NotificationsEnabled

		if err := db.Save(&prefs).Error; err != nil {
			util.FailErr(c, http.StatusInternalServerError, "Failed to save preferences", err)
			return
		}

		util.SuccessMsg(c, "Preferences updated successfully", prefs)
	}
}
