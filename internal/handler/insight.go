package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/ai"
	"github.com/kumarimahto/Smart-Tracer/internal/analytics"
	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InsightHandler serves the AI-backed endpoints. Upstream AI failures are
// never surfaced here: the service always hands back a usable result.
type InsightHandler struct {
	Engine  *analytics.Engine
	Service *ai.Service
}

func NewInsightHandler(engine *analytics.Engine, service *ai.Service) *InsightHandler {
	return &InsightHandler{Engine: engine, Service: service}
}

type categorizeReq struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// Categorize handles POST /ai/categorize.
func (h *InsightHandler) Categorize(c *gin.Context) {
	var req categorizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		util.Fail(c, http.StatusBadRequest, "Title is required for categorization")
		return
	}

	result := h.Service.Categorize(c.Request.Context(), req.Title, req.Description, req.Amount)
	util.Success(c, result)
}

// MonthlySummary handles GET /ai/summary/:year/:month: the aggregation
// summary plus an AI narrative, with a fixed placeholder payload when the
// month holds no expenses.
func (h *InsightHandler) MonthlySummary(c *gin.Context) {
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
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate AI summary", err)
		return
	}

	if len(summary) == 0 {
		util.SuccessMsg(c, "No expenses found for this month", gin.H{
			"summary":       "No expenses recorded for this month",
			"insights":      []string{"Start tracking your expenses to get insights"},
			"budgetingTips": []string{"Begin by recording your daily expenses"},
			"overallRating": "No Data",
		})
		return
	}

	monthLabel := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	insights := h.Service.MonthlySummary(c.Request.Context(), summary, monthLabel)

	util.Success(c, gin.H{
		"period": gin.H{
			"year":      year,
			"month":     month,
			"monthYear": monthLabel,
		},
		"expenses":   summary,
		"aiInsights": insights,
	})
}

// BudgetingTips handles GET /ai/budgeting-tips?months=N.
func (h *InsightHandler) BudgetingTips(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "3"))
	summary, err := h.Engine.TrailingCategorySummary(user.ID, months)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate budgeting tips", err)
		return
	}

	if len(summary) == 0 {
		util.Success(c, gin.H{
			"tips": []string{
				"Start tracking your daily expenses",
				"Set monthly spending limits for different categories",
				"Review your expenses weekly",
			},
			"savingsOpportunities": []string{
				"Begin with small savings goals",
				"Track your income and expenses",
			},
			"budgetAllocation": ai.BudgetAllocation{
				Needs:   "50-60%",
				Wants:   "20-30%",
				Savings: "20%",
			},
		})
		return
	}

	var profile ai.UserProfile
	if s := c.Query("income"); s != "" {
		if v, err := decimal.NewFromString(s); err == nil {
			profile.Income = &v
		}
	}
	if s := c.Query("savingsGoal"); s != "" {
		if v, err := decimal.NewFromString(s); err == nil {
			profile.SavingsGoal = &v
		}
	}

	tips := h.Service.GetBudgetingTips(c.Request.Context(), summary, profile)
	util.Success(c, tips)
}

type bulkCategorizeReq struct {
	Expenses []ai.BulkExpense `json:"expenses"`
}

// BulkCategorize handles POST /ai/bulk-categorize.
func (h *InsightHandler) BulkCategorize(c *gin.Context) {
	var req bulkCategorizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Expenses) == 0 {
		util.Fail(c, http.StatusBadRequest, "Expenses array is required")
		return
	}

	results := h.Service.BulkCategorize(c.Request.Context(), req.Expenses)
	util.Success(c, gin.H{
		"processed": len(results),
		"results":   results,
	})
}

// SpendingInsights handles GET /ai/spending-insights?period=N.
func (h *InsightHandler) SpendingInsights(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	period, _ := strconv.Atoi(c.DefaultQuery("period", strconv.Itoa(analytics.DefaultTrendMonths)))

	trends, err := h.Engine.SpendingTrends(user.ID, period)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to generate spending insights", err)
		return
	}

	if len(trends) == 0 {
		util.Success(c, gin.H{
			"insights":        []string{"Start tracking expenses to see spending trends"},
			"recommendations": []string{"Begin recording your daily expenses"},
		})
		return
	}

	util.Success(c, ai.BuildSpendingInsights(trends, period))
}
