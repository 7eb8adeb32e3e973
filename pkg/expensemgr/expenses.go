package expensemgr

import (
	"context"
	"net/http"
	"net/url"

	"github.com/expense-manager/expense-manager-go/internal/query"
)

const (
	expensesPath   = "/api/expenses"
	categoriesPath = "/api/expenses/categories"
)

// expenseService implements the ExpenseService interface
type expenseService struct {
	client *Client
}

func expensePath(expenseID string) string {
	return expensesPath + "/" + url.PathEscape(expenseID)
}

// List retrieves expenses matching the optional filters
func (s *expenseService) List(ctx context.Context, params *ListExpensesParams) (*ExpenseList, error) {
	if params == nil {
		params = &ListExpensesParams{}
	}

	path := query.New().
		Date("from", params.From).
		Date("to", params.To).
		String("category", params.Category).
		Int("limit", params.Limit).
		Int("offset", params.Offset).
		AppendTo(expensesPath)

	var result ExpenseList
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Get retrieves a single expense by ID
func (s *expenseService) Get(ctx context.Context, expenseID string) (*Expense, error) {
	var result Expense
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: expensePath(expenseID)}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Create creates a new expense
func (s *expenseService) Create(ctx context.Context, params *CreateExpenseParams) (*Expense, error) {
	if params == nil {
		params = &CreateExpenseParams{}
	}

	var result Expense
	if err := s.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   expensesPath,
		Body:   params,
	}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Update changes only the fields set in params
func (s *expenseService) Update(ctx context.Context, expenseID string, params *UpdateExpenseParams) (*Expense, error) {
	if params == nil {
		params = &UpdateExpenseParams{}
	}

	var result Expense
	if err := s.client.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   expensePath(expenseID),
		Body:   params,
	}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete deletes an expense
func (s *expenseService) Delete(ctx context.Context, expenseID string) error {
	return s.client.Do(ctx, &Request{Method: http.MethodDelete, Path: expensePath(expenseID)}, nil)
}

// Categories returns the categories in use
func (s *expenseService) Categories(ctx context.Context) ([]string, error) {
	var result categoryList
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: categoriesPath}, &result); err != nil {
		return nil, err
	}

	return result.Categories, nil
}
