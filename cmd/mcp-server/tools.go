package main

import (
	"context"
	"fmt"
	"time"

	"github.com/expense-manager/expense-manager-go/pkg/expensemgr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// expenseTools holds the Expense Manager client and implements all tool handlers
type expenseTools struct {
	client *expensemgr.Client
}

// ListExpenses tool - lists expenses with optional filters
type ListExpensesInput struct {
	From     string `json:"from,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional)"`
	To       string `json:"to,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional)"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category name (optional)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of expenses to return (default: 50)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Number of expenses to skip (optional)"`
}

type ExpenseEntry struct {
	ID          string `json:"id" jsonschema:"Expense ID"`
	Date        string `json:"date" jsonschema:"Expense date (YYYY-MM-DD)"`
	Amount      string `json:"amount" jsonschema:"Expense amount as a decimal string"`
	Category    string `json:"category" jsonschema:"Expense category"`
	Description string `json:"description,omitempty" jsonschema:"Expense description"`
}

type ListExpensesOutput struct {
	Expenses []ExpenseEntry `json:"expenses" jsonschema:"List of expenses"`
	Count    int            `json:"count" jsonschema:"Number of expenses returned"`
}

func (t *expenseTools) ListExpenses(ctx context.Context, req *mcp.CallToolRequest, input ListExpensesInput) (*mcp.CallToolResult, ListExpensesOutput, error) {
	params := &expensemgr.ListExpensesParams{Category: input.Category}

	var err error
	if params.From, err = parseDay("from", input.From); err != nil {
		return nil, ListExpensesOutput{}, err
	}
	if params.To, err = parseDay("to", input.To); err != nil {
		return nil, ListExpensesOutput{}, err
	}

	// Apply limit (default to 50)
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	params.Limit = expensemgr.Int(limit)
	if input.Offset > 0 {
		params.Offset = expensemgr.Int(input.Offset)
	}

	result, err := t.client.Expenses.List(ctx, params)
	if err != nil {
		return nil, ListExpensesOutput{}, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	entries := make([]ExpenseEntry, 0, len(result.Expenses))
	for _, e := range result.Expenses {
		entry := ExpenseEntry{
			ID:       e.ID,
			Date:     e.Date.String(),
			Amount:   e.Amount.StringFixed(2),
			Category: e.Category,
		}
		if e.Description != nil {
			entry.Description = *e.Description
		}
		entries = append(entries, entry)
	}

	return nil, ListExpensesOutput{
		Expenses: entries,
		Count:    len(entries),
	}, nil
}

// GetCategories tool - retrieves all expense categories
type GetCategoriesInput struct {
	// No input parameters needed
}

type GetCategoriesOutput struct {
	Categories []string `json:"categories" jsonschema:"List of category names"`
	Count      int      `json:"count" jsonschema:"Number of categories"`
}

func (t *expenseTools) GetCategories(ctx context.Context, req *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesOutput, error) {
	categories, err := t.client.Expenses.Categories(ctx)
	if err != nil {
		return nil, GetCategoriesOutput{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return nil, GetCategoriesOutput{
		Categories: categories,
		Count:      len(categories),
	}, nil
}

// GetBudget tool - retrieves budget information for a specific month
type GetBudgetInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (e.g. 2025-10). Defaults to the current month"`
}

type GetBudgetOutput struct {
	Month          string  `json:"month" jsonschema:"Month of the budget data (YYYY-MM)"`
	Budget         float64 `json:"budget" jsonschema:"Budgeted amount"`
	Spent          float64 `json:"spent" jsonschema:"Amount spent"`
	Remaining      float64 `json:"remaining" jsonschema:"Remaining budget amount"`
	PercentageUsed float64 `json:"percentageUsed" jsonschema:"Percentage of budget spent"`
	HasBudget      bool    `json:"hasBudget" jsonschema:"Whether a budget has been set for this month"`
}

func (t *expenseTools) GetBudget(ctx context.Context, req *mcp.CallToolRequest, input GetBudgetInput) (*mcp.CallToolResult, GetBudgetOutput, error) {
	period := &expensemgr.BudgetPeriod{}
	if input.Month != "" {
		month, err := time.Parse("2006-01", input.Month)
		if err != nil {
			return nil, GetBudgetOutput{}, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
		}
		period.Month = expensemgr.Int(int(month.Month()))
		period.Year = expensemgr.Int(month.Year())
	}

	summary, err := t.client.Budgets.Get(ctx, period)
	if err != nil {
		return nil, GetBudgetOutput{}, fmt.Errorf("failed to fetch budget: %w", err)
	}

	return nil, GetBudgetOutput{
		Month:          fmt.Sprintf("%04d-%02d", summary.Year, summary.Month),
		Budget:         summary.Budget,
		Spent:          summary.Spent,
		Remaining:      summary.Remaining,
		PercentageUsed: summary.PercentageUsed,
		HasBudget:      summary.BudgetID != "",
	}, nil
}

// GetDashboard tool - retrieves the analytics dashboard
type GetDashboardInput struct {
	From string `json:"from,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional)"`
	To   string `json:"to,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional)"`
}

type CategorySpend struct {
	Category string  `json:"category" jsonschema:"Category name"`
	Total    float64 `json:"total" jsonschema:"Amount spent in the category"`
}

type MonthSpend struct {
	Label string  `json:"label" jsonschema:"Month label"`
	Total float64 `json:"total" jsonschema:"Amount spent in the month"`
}

type GetDashboardOutput struct {
	From                  string          `json:"from" jsonschema:"Start of the range (YYYY-MM-DD)"`
	To                    string          `json:"to" jsonschema:"End of the range (YYYY-MM-DD)"`
	TotalSpent            float64         `json:"totalSpent" jsonschema:"Total spent in the range"`
	AverageDailySpend     float64         `json:"averageDailySpend" jsonschema:"Average spend per day"`
	HighestCategory       string          `json:"highestCategory" jsonschema:"Category with the highest spend"`
	HighestCategoryAmount float64         `json:"highestCategoryAmount" jsonschema:"Spend in the highest category"`
	ByCategory            []CategorySpend `json:"byCategory" jsonschema:"Spending per category"`
	MonthlyComparison     []MonthSpend    `json:"monthlyComparison" jsonschema:"Spending per month"`
}

func (t *expenseTools) GetDashboard(ctx context.Context, req *mcp.CallToolRequest, input GetDashboardInput) (*mcp.CallToolResult, GetDashboardOutput, error) {
	dateRange := &expensemgr.DateRange{}

	var err error
	if dateRange.From, err = parseDay("from", input.From); err != nil {
		return nil, GetDashboardOutput{}, err
	}
	if dateRange.To, err = parseDay("to", input.To); err != nil {
		return nil, GetDashboardOutput{}, err
	}

	dash, err := t.client.Analytics.Dashboard(ctx, dateRange)
	if err != nil {
		return nil, GetDashboardOutput{}, fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	out := GetDashboardOutput{
		From:                  dash.From.String(),
		To:                    dash.To.String(),
		TotalSpent:            dash.TotalSpent,
		AverageDailySpend:     dash.AverageDailySpend,
		HighestCategory:       dash.HighestCategory,
		HighestCategoryAmount: dash.HighestCategoryAmount,
		ByCategory:            make([]CategorySpend, 0, len(dash.ByCategory)),
		MonthlyComparison:     make([]MonthSpend, 0, len(dash.MonthlyComparison)),
	}
	for _, c := range dash.ByCategory {
		out.ByCategory = append(out.ByCategory, CategorySpend{Category: c.Category, Total: c.Total})
	}
	for _, m := range dash.MonthlyComparison {
		out.MonthlyComparison = append(out.MonthlyComparison, MonthSpend{Label: m.Label, Total: m.Total})
	}

	return nil, out, nil
}

// parseDay parses an optional YYYY-MM-DD input
func parseDay(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (expected YYYY-MM-DD): %w", field, err)
	}
	return t, nil
}
