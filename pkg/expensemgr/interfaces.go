package expensemgr

import (
	"context"
)

// AuthService handles registration, login and the current user
type AuthService interface {
	// Register creates an account and returns a session
	Register(ctx context.Context, params *RegisterParams) (*AuthResponse, error)

	// Login exchanges credentials for a session
	Login(ctx context.Context, email, password string) (*AuthResponse, error)

	// Me returns the user the current token belongs to
	Me(ctx context.Context) (*User, error)
}

// ExpenseService handles expense operations
type ExpenseService interface {
	// List retrieves expenses matching the optional filters
	List(ctx context.Context, params *ListExpensesParams) (*ExpenseList, error)

	// Get retrieves a single expense by ID
	Get(ctx context.Context, expenseID string) (*Expense, error)

	// Create creates a new expense
	Create(ctx context.Context, params *CreateExpenseParams) (*Expense, error)

	// Update changes only the fields set in params
	Update(ctx context.Context, expenseID string, params *UpdateExpenseParams) (*Expense, error)

	// Delete deletes an expense
	Delete(ctx context.Context, expenseID string) error

	// Categories returns the categories in use
	Categories(ctx context.Context) ([]string, error)
}

// BudgetService handles monthly budgets
type BudgetService interface {
	// Get retrieves the budget summary for a period, defaulting to the current month
	Get(ctx context.Context, period *BudgetPeriod) (*BudgetSummary, error)

	// Set stores the budget amount for a period
	Set(ctx context.Context, params *SetBudgetParams) (*Budget, error)
}

// AnalyticsService handles spending analytics
type AnalyticsService interface {
	// Dashboard retrieves the analytics snapshot for a date range
	Dashboard(ctx context.Context, dateRange *DateRange) (*AnalyticsDashboard, error)
}
