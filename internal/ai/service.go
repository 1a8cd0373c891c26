package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/analytics"
	"github.com/kumarimahto/Smart-Tracer/internal/config"
	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"github.com/shopspring/decimal"
)

// ErrUnavailable means no AI client is configured; every call degrades to
// its deterministic fallback.
var ErrUnavailable = errors.New("ai service not configured")

// Confidence constants signal how much to trust a categorization. AI
// results carry the model's own confidence; fallbacks use fixed, lower
// values so auto-filled categories can be flagged for confirmation.
const (
	defaultAIConfidence     = 0.8
	parseFallbackConfidence = 0.6
	errorFallbackConfidence = 0.5
)

// Service composes aggregation output into prompts for the external model
// and parses its structured replies, falling back to deterministic logic
// whenever the model fails or returns something unusable. AI-layer errors
// never surface as request failures.
type Service struct {
	gen        TextGenerator
	thresholds config.InsightsConfig
	bulkDelay  time.Duration
}

// NewService builds an insight service. gen may be nil, in which case every
// operation runs its fallback path.
func NewService(gen TextGenerator, thresholds config.InsightsConfig, bulkDelay time.Duration) *Service {
	return &Service{gen: gen, thresholds: thresholds, bulkDelay: bulkDelay}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.gen == nil {
		return "", ErrUnavailable
	}
	return s.gen.GenerateText(ctx, prompt)
}

// ---------- categorization ----------

// Categorization is one categorization outcome. Success distinguishes
// AI-derived results from fallback-derived ones.
type Categorization struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
}

type categorizationReply struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Categorize assigns one of the fixed categories to an expense. It never
// returns an error: AI failures degrade to keyword matching.
func (s *Service) Categorize(ctx context.Context, title, description string, amount *decimal.Decimal) Categorization {
	prompt := buildCategorizePrompt(title, description, amount)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return Categorization{
			Category:   FallbackCategory(title, description),
			Confidence: errorFallbackConfidence,
			Reasoning:  "Fallback categorization due to AI service error",
			Success:    false,
			Error:      err.Error(),
		}
	}

	reply, err := ParseStructured[categorizationReply](text)
	if err != nil || !models.ValidCategory(reply.Category) {
		return Categorization{
			Category:   FallbackCategory(title, description),
			Confidence: parseFallbackConfidence,
			Reasoning:  "Fallback categorization due to AI parsing error",
			Success:    false,
		}
	}

	confidence := reply.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = defaultAIConfidence
	}
	reasoning := reply.Reasoning
	if reasoning == "" {
		reasoning = "AI categorization"
	}
	return Categorization{
		Category:   reply.Category,
		Confidence: confidence,
		Reasoning:  reasoning,
		Success:    true,
	}
}

func buildCategorizePrompt(title, description string, amount *decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Analyze this expense and categorize it into one of these categories:\n")
	b.WriteString("Categories: ")
	b.WriteString(strings.Join(models.Categories, ", "))
	b.WriteString("\n\nExpense Details:\n")
	fmt.Fprintf(&b, "- Title: %q\n", title)
	fmt.Fprintf(&b, "- Description: %q\n", description)
	if amount != nil {
		fmt.Fprintf(&b, "- Amount: %s\n", amount.StringFixed(2))
	}
	b.WriteString(`
Please respond in this exact JSON format:
{
  "category": "exact category name from the list above",
  "confidence": 0.95,
  "reasoning": "brief explanation for the categorization"
}

Be very specific with the category name. Only use categories from the provided list.
`)
	return b.String()
}

// ---------- monthly narrative ----------

// MonthlyInsights is the AI narrative over one month's category summary.
type MonthlyInsights struct {
	Summary       string    `json:"summary"`
	TopCategories []string  `json:"topCategories"`
	Insights      []string  `json:"insights"`
	BudgetingTips []string  `json:"budgetingTips"`
	Alerts        []string  `json:"alerts,omitempty"`
	OverallRating string    `json:"overallRating"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Success       bool      `json:"success"`
	Source        string    `json:"source,omitempty"`
}

type monthlyInsightsReply struct {
	Summary       string   `json:"summary"`
	TopCategories []string `json:"topCategories"`
	Insights      []string `json:"insights"`
	BudgetingTips []string `json:"budgetingTips"`
	Alerts        []string `json:"alerts"`
	OverallRating string   `json:"overallRating"`
}

// MonthlySummary narrates one month of category summaries. Never errors;
// failures synthesize a summary from the totals arithmetically.
func (s *Service) MonthlySummary(ctx context.Context, summary []analytics.CategorySummary, monthLabel string) *MonthlyInsights {
	prompt := buildMonthlySummaryPrompt(summary, monthLabel)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return s.fallbackMonthlyInsights(summary)
	}

	reply, err := ParseStructured[monthlyInsightsReply](text)
	if err != nil {
		return s.fallbackMonthlyInsights(summary)
	}

	return &MonthlyInsights{
		Summary:       reply.Summary,
		TopCategories: reply.TopCategories,
		Insights:      reply.Insights,
		BudgetingTips: reply.BudgetingTips,
		Alerts:        reply.Alerts,
		OverallRating: reply.OverallRating,
		GeneratedAt:   time.Now(),
		Success:       true,
	}
}

func buildMonthlySummaryPrompt(summary []analytics.CategorySummary, monthLabel string) string {
	total, transactions := analytics.SummaryTotals(summary)

	var b strings.Builder
	b.WriteString("Analyze this monthly expense data and provide insights:\n\n")
	fmt.Fprintf(&b, "Month: %s\n", monthLabel)
	fmt.Fprintf(&b, "Total Amount: %s\n", total.StringFixed(2))
	fmt.Fprintf(&b, "Total Transactions: %d\n\n", transactions)
	b.WriteString("Category-wise breakdown:\n")
	for _, row := range summary {
		fmt.Fprintf(&b, "- %s: %s (%d transactions, avg %s)\n",
			row.Category, row.TotalAmount.StringFixed(2), row.Count, row.AvgAmount.StringFixed(2))
	}
	b.WriteString(`
Please provide a JSON response with these insights:
{
  "summary": "Brief overview of spending patterns",
  "topCategories": ["category1", "category2", "category3"],
  "insights": ["insight 1 about spending patterns", "insight 2 about potential savings", "insight 3 about financial habits"],
  "budgetingTips": ["tip 1 for better budgeting", "tip 2 for savings", "tip 3 for financial management"],
  "alerts": ["alert about high spending in specific categories if any"],
  "overallRating": "Excellent/Good/Average/Poor"
}

Focus on actionable insights and be specific about amounts and categories.
`)
	return b.String()
}

// ---------- budgeting tips ----------

type BudgetAllocation struct {
	Needs   string `json:"needs"`
	Wants   string `json:"wants"`
	Savings string `json:"savings"`
}

type BudgetingTips struct {
	Tips                 []string         `json:"tips"`
	SavingsOpportunities []string         `json:"savingsOpportunities"`
	BudgetAllocation     BudgetAllocation `json:"budgetAllocation"`
	Success              bool             `json:"success"`
}

// UserProfile is optional context for personalized budgeting tips.
type UserProfile struct {
	Income      *decimal.Decimal `json:"income,omitempty"`
	SavingsGoal *decimal.Decimal `json:"savingsGoal,omitempty"`
}

type budgetingTipsReply struct {
	Tips                 []string         `json:"tips"`
	SavingsOpportunities []string         `json:"savingsOpportunities"`
	BudgetAllocation     BudgetAllocation `json:"budgetAllocation"`
}

// GetBudgetingTips asks for tips over the ranked category summaries.
// Failures return the static tip set with a 50/30/20-style allocation.
func (s *Service) GetBudgetingTips(ctx context.Context, summary []analytics.CategorySummary, profile UserProfile) *BudgetingTips {
	prompt := buildBudgetingTipsPrompt(summary, profile)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return fallbackBudgetingTips()
	}

	reply, err := ParseStructured[budgetingTipsReply](text)
	if err != nil {
		return fallbackBudgetingTips()
	}

	return &BudgetingTips{
		Tips:                 reply.Tips,
		SavingsOpportunities: reply.SavingsOpportunities,
		BudgetAllocation:     reply.BudgetAllocation,
		Success:              true,
	}
}

func buildBudgetingTipsPrompt(summary []analytics.CategorySummary, profile UserProfile) string {
	var b strings.Builder
	b.WriteString("Provide personalized budgeting tips based on this spending pattern:\n\n")
	b.WriteString("Top spending categories:\n")
	for i, row := range summary {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", row.Category, row.TotalAmount.StringFixed(2))
	}
	b.WriteString("\nUser profile:\n")
	if profile.Income != nil {
		fmt.Fprintf(&b, "Monthly Income: %s\n", profile.Income.StringFixed(2))
	} else {
		b.WriteString("Income not specified\n")
	}
	if profile.SavingsGoal != nil {
		fmt.Fprintf(&b, "Savings Goal: %s\n", profile.SavingsGoal.StringFixed(2))
	} else {
		b.WriteString("No savings goal\n")
	}
	b.WriteString(`
Please provide practical budgeting tips in JSON format:
{
  "tips": ["tip 1", "tip 2", "tip 3"],
  "savingsOpportunities": ["opportunity 1", "opportunity 2"],
  "budgetAllocation": {
    "needs": "percentage for needs",
    "wants": "percentage for wants",
    "savings": "percentage for savings"
  }
}
`)
	return b.String()
}

// ---------- bulk categorization ----------

// BulkExpense is one expense-like record submitted for bulk categorization.
type BulkExpense struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// BulkResult is one categorization outcome, index-aligned with the input.
type BulkResult struct {
	Index           int            `json:"index"`
	OriginalExpense BulkExpense    `json:"originalExpense"`
	Categorization  Categorization `json:"categorization"`
}

// BulkCategorize processes items strictly sequentially with a short delay
// between calls to stay under the upstream rate limit. One failing item
// never aborts the batch: its slot holds a low-confidence fallback with the
// error recorded.
func (s *Service) BulkCategorize(ctx context.Context, items []BulkExpense) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for i, item := range items {
		results = append(results, BulkResult{
			Index:           i,
			OriginalExpense: item,
			Categorization:  s.Categorize(ctx, item.Title, item.Description, item.Amount),
		})
		if i < len(items)-1 && s.bulkDelay > 0 {
			time.Sleep(s.bulkDelay)
		}
	}
	return results
}
