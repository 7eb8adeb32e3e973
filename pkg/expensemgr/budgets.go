package expensemgr

import (
	"context"
	"net/http"

	"github.com/expense-manager/expense-manager-go/internal/query"
)

const budgetsPath = "/api/budgets"

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// Get retrieves the budget summary for a period, defaulting to the current month
func (s *budgetService) Get(ctx context.Context, period *BudgetPeriod) (*BudgetSummary, error) {
	if period == nil {
		period = &BudgetPeriod{}
	}

	path := query.New().
		Int("month", period.Month).
		Int("year", period.Year).
		AppendTo(budgetsPath)

	var result BudgetSummary
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Set stores the budget amount for a period.
// Amount sign and period bounds are checked by the server.
func (s *budgetService) Set(ctx context.Context, params *SetBudgetParams) (*Budget, error) {
	if params == nil {
		params = &SetBudgetParams{}
	}

	var result Budget
	if err := s.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   budgetsPath,
		Body:   params,
	}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
