package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/analytics"
	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"github.com/shopspring/decimal"
)

// keywordRule maps a category to the substrings that imply it. Rules are
// an ordered slice, not a map: the first matching category wins, which is
// the documented tie-break.
type keywordRule struct {
	category string
	keywords []string
}

var keywordRules = []keywordRule{
	{"Food & Dining", []string{"restaurant", "food", "dining", "meal", "lunch", "dinner", "breakfast", "cafe", "pizza", "burger"}},
	{"Transportation", []string{"fuel", "gas", "petrol", "diesel", "taxi", "uber", "ola", "bus", "train", "metro", "auto"}},
	{"Groceries", []string{"grocery", "vegetables", "fruits", "supermarket", "market", "provisions", "milk", "bread"}},
	{"Shopping", []string{"shopping", "clothes", "clothing", "shoes", "accessories", "electronics", "gadget"}},
	{"Bills & Utilities", []string{"electricity", "water", "internet", "mobile", "phone", "wifi", "bill", "utility"}},
	{"Healthcare", []string{"medicine", "doctor", "hospital", "medical", "pharmacy", "health", "clinic"}},
	{"Entertainment", []string{"movie", "game", "entertainment", "subscription", "netflix", "spotify", "music"}},
	{"Education", []string{"education", "course", "book", "school", "college", "tuition", "fees"}},
	{"Travel", []string{"travel", "trip", "hotel", "flight", "vacation", "tourism", "booking"}},
}

// FallbackCategory deterministically categorizes an expense by keyword
// matching over the lower-cased title and description.
func FallbackCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryOther
}

// fallbackMonthlyInsights synthesizes a summary arithmetically when the AI
// call fails or returns unusable output. The result mimics the shape of a
// successful AI response so clients need not distinguish the two.
func (s *Service) fallbackMonthlyInsights(summary []analytics.CategorySummary) *MonthlyInsights {
	total, transactions := analytics.SummaryTotals(summary)

	topCategory := "None"
	if len(summary) > 0 {
		topCategory = summary[0].Category
	}
	topCategories := make([]string, 0, 3)
	for i := 0; i < len(summary) && i < 3; i++ {
		topCategories = append(topCategories, summary[i].Category)
	}

	insights := []string{
		fmt.Sprintf("Your highest spending category was %s", topCategory),
		fmt.Sprintf("You made %d transactions this month", transactions),
	}
	if len(summary) > 1 {
		insights = append(insights, fmt.Sprintf("You spent across %d different categories", len(summary)))
	} else {
		insights = append(insights, "Consider diversifying your expense tracking")
	}

	var alerts []string
	if total.GreaterThan(decimal.NewFromFloat(s.thresholds.HighSpendingAlert)) {
		alerts = append(alerts, fmt.Sprintf("High spending detected: %s", total.StringFixed(2)))
	}

	return &MonthlyInsights{
		Summary:       fmt.Sprintf("You spent %s across %d transactions this month.", total.StringFixed(2), transactions),
		TopCategories: topCategories,
		Insights:      insights,
		BudgetingTips: []string{
			"Review your spending patterns regularly",
			"Set monthly budgets for each category",
			"Look for areas where you can reduce expenses",
		},
		Alerts:        alerts,
		OverallRating: s.ratingFor(total),
		GeneratedAt:   time.Now(),
		Success:       false,
		Source:        "fallback",
	}
}

// ratingFor buckets a monthly total into the qualitative rating labels.
// The thresholds are currency-unit specific and come from configuration.
func (s *Service) ratingFor(total decimal.Decimal) string {
	switch {
	case total.LessThan(decimal.NewFromFloat(s.thresholds.GoodThreshold)):
		return "Good"
	case total.LessThan(decimal.NewFromFloat(s.thresholds.AverageThreshold)):
		return "Average"
	default:
		return "High"
	}
}

// fallbackBudgetingTips is the static tip set with a standard
// 50/30/20-style allocation.
func fallbackBudgetingTips() *BudgetingTips {
	return &BudgetingTips{
		Tips: []string{
			"Track your expenses daily for better awareness",
			"Set spending limits for discretionary categories",
			"Review and optimize recurring expenses monthly",
		},
		SavingsOpportunities: []string{
			"Reduce dining out expenses by cooking more at home",
			"Compare prices before making purchases",
		},
		BudgetAllocation: BudgetAllocation{
			Needs:   "50-60%",
			Wants:   "20-30%",
			Savings: "20%",
		},
		Success: false,
	}
}
