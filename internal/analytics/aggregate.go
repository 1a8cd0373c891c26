package analytics

import (
	"sort"

	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"github.com/shopspring/decimal"
)

// CategorySummary is one row of a monthly breakdown: all of a month's
// expenses for one category.
type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
	AvgAmount   decimal.Decimal `json:"avgAmount"`
}

// TrendPoint is one calendar month's spending inside a trailing window.
type TrendPoint struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// SummarizeByCategory groups expenses by category, computing total, count
// and mean per group. Groups are ordered by descending total; equal totals
// fall back to category name ascending so output is deterministic.
func SummarizeByCategory(expenses []models.Expense) []CategorySummary {
	groups := make(map[string]*CategorySummary)
	for i := range expenses {
		e := &expenses[i]
		g, ok := groups[e.Category]
		if !ok {
			g = &CategorySummary{Category: e.Category}
			groups[e.Category] = g
		}
		g.TotalAmount = g.TotalAmount.Add(e.Amount)
		g.Count++
	}

	summary := make([]CategorySummary, 0, len(groups))
	for _, g := range groups {
		g.AvgAmount = g.TotalAmount.Div(decimal.NewFromInt(int64(g.Count))).Round(2)
		summary = append(summary, *g)
	}

	sort.Slice(summary, func(i, j int) bool {
		cmp := summary[i].TotalAmount.Cmp(summary[j].TotalAmount)
		if cmp != 0 {
			return cmp > 0
		}
		return summary[i].Category < summary[j].Category
	})

	return summary
}

// GroupByMonth buckets expenses into (year, month) pairs and returns them
// in ascending chronological order, so the last element is always the most
// recent month and doubles as "last month's" figure for comparisons.
func GroupByMonth(expenses []models.Expense) []TrendPoint {
	groups := make(map[[2]int]*TrendPoint)
	for i := range expenses {
		e := &expenses[i]
		key := [2]int{e.Date.Year(), int(e.Date.Month())}
		g, ok := groups[key]
		if !ok {
			g = &TrendPoint{Year: key[0], Month: key[1]}
			groups[key] = g
		}
		g.TotalAmount = g.TotalAmount.Add(e.Amount)
		g.Count++
	}

	trend := make([]TrendPoint, 0, len(groups))
	for _, g := range groups {
		trend = append(trend, *g)
	}

	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		return trend[i].Month < trend[j].Month
	})

	return trend
}

// SummaryTotals sums a breakdown into overall amount and transaction count.
func SummaryTotals(summary []CategorySummary) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, row := range summary {
		total = total.Add(row.TotalAmount)
		count += row.Count
	}
	return total, count
}

// PercentageChange returns ((current-previous)/previous)*100 rounded to two
// decimal places, or zero when there is no previous baseline.
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
