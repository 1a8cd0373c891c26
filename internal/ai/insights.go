package ai

import (
	"fmt"

	"github.com/kumarimahto/Smart-Tracer/internal/analytics"

	"github.com/shopspring/decimal"
)

// TrendAnalytics are the aggregate figures behind spending insights.
type TrendAnalytics struct {
	TotalSpending      decimal.Decimal `json:"totalSpending"`
	AvgMonthlySpending decimal.Decimal `json:"avgMonthlySpending"`
	LastMonthSpending  decimal.Decimal `json:"lastMonthSpending"`
}

// SpendingInsights is the deterministic trend commentary; no AI involved.
type SpendingInsights struct {
	Period          string                 `json:"period"`
	Trends          []analytics.TrendPoint `json:"trends"`
	Analytics       TrendAnalytics         `json:"analytics"`
	Insights        []string               `json:"insights"`
	Recommendations []string               `json:"recommendations"`
}

// BuildSpendingInsights derives commentary from a chronological trend
// series: last month's spending is compared against the window average,
// with a 20% band separating "increased" from "decreased".
func BuildSpendingInsights(trends []analytics.TrendPoint, periodMonths int) *SpendingInsights {
	total := decimal.Zero
	for _, p := range trends {
		total = total.Add(p.TotalAmount)
	}
	avg := decimal.Zero
	if len(trends) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(trends)))).Round(2)
	}
	lastMonth := decimal.Zero
	if len(trends) > 0 {
		lastMonth = trends[len(trends)-1].TotalAmount
	}

	var insights, recommendations []string
	high := avg.Mul(decimal.NewFromFloat(1.2))
	low := avg.Mul(decimal.NewFromFloat(0.8))
	switch {
	case lastMonth.GreaterThan(high):
		insights = append(insights, "Your spending increased significantly last month")
		recommendations = append(recommendations, "Review your recent expenses for any unusual purchases")
	case lastMonth.LessThan(low):
		insights = append(insights, "Your spending decreased compared to your average")
		recommendations = append(recommendations, "Great job on controlling expenses this month!")
	}
	insights = append(insights, fmt.Sprintf("Your average monthly spending is %s", avg.StringFixed(2)))
	recommendations = append(recommendations, "Set monthly budgets based on your spending patterns")

	return &SpendingInsights{
		Period: fmt.Sprintf("%d months", periodMonths),
		Trends: trends,
		Analytics: TrendAnalytics{
			TotalSpending:      total,
			AvgMonthlySpending: avg,
			LastMonthSpending:  lastMonth,
		},
		Insights:        insights,
		Recommendations: recommendations,
	}
}
