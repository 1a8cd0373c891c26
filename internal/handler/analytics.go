package handler

import (
	"net/http"
	"strconv"

	"github.com/kumarimahto/Smart-Tracer/internal/analytics"
	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the aggregation endpoints: monthly summaries,
// spending trends and the dashboard comparison.
type AnalyticsHandler struct {
	Engine *analytics.Engine
}

func NewAnalyticsHandler(engine *analytics.Engine) *AnalyticsHandler {
	return &AnalyticsHandler{Engine: engine}
}

// MonthlySummary handles GET /expenses/summary/monthly/:year/:month.
func (h *AnalyticsHandler) MonthlySummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	summary, err := h.Engine.MonthlySummary(user.ID, year, month)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate monthly summary", err)
		return
	}

	totalAmount, totalTransactions := analytics.SummaryTotals(summary)
	util.Success(c, gin.H{
		"summary": summary,
		"totals": gin.H{
			"amount":       totalAmount,
			"transactions": totalTransactions,
		},
		"period": gin.H{
			"year":  year,
			"month": month,
		},
	})
}

// SpendingTrends handles GET /expenses/trends/spending?months=N.
func (h *AnalyticsHandler) SpendingTrends(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", strconv.Itoa(analytics.DefaultTrendMonths)))

	trends, err := h.Engine.SpendingTrends(user.ID, months)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate spending trends", err)
		return
	}

	util.Success(c, trends)
}

// Dashboard handles GET /expenses/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	dashboard, err := h.Engine.BuildDashboard(user.ID)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate dashboard analytics", err)
		return
	}

	util.Success(c, dashboard)
}

// parseYearMonth reads :year/:month path params, writing the 400 itself
// when they are out of range.
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		util.Fail(c, http.StatusBadRequest, "Invalid year")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		util.Fail(c, http.StatusBadRequest, "Invalid month, expected 1-12")
		return 0, 0, false
	}
	return year, month, true
}
