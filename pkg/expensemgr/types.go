package expensemgr

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder
type User struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

// AuthResponse is returned by register and login.
// The caller is responsible for persisting Token.
type AuthResponse struct {
	User      *User  `json:"user" validate:"required"`
	Token     string `json:"token" validate:"required"`
	ExpiresIn string `json:"expiresIn"`
}

// RegisterParams for creating an account
type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginParams for logging in
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Amount is a decimal quantity sent to the API as a bare JSON number
type Amount struct {
	decimal.Decimal
}

// NewAmount creates an Amount from a float
func NewAmount(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// ParseAmount parses a decimal string such as "12.50"
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// MarshalJSON writes the amount without quotes
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Expense represents a single spending record
type Expense struct {
	ID          string          `json:"id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description"`
	Date        Date            `json:"date"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

// ExpenseList is the result of listing expenses
type ExpenseList struct {
	Expenses []*Expense `json:"expenses" validate:"required,dive,required"`
}

// ListExpensesParams filters expense listings. Zero values are not sent.
type ListExpensesParams struct {
	From     time.Time
	To       time.Time
	Category string
	Limit    *int
	Offset   *int
}

// CreateExpenseParams for creating an expense
type CreateExpenseParams struct {
	Amount      Amount `json:"amount"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Date        *Date  `json:"date,omitempty"`
}

// UpdateExpenseParams for updating an expense. Nil fields are left unchanged.
type UpdateExpenseParams struct {
	Amount      *Amount `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *Date   `json:"date,omitempty"`
}

// categoryList is the wire shape of the categories endpoint
type categoryList struct {
	Categories []string `json:"categories" validate:"required"`
}

// BudgetPeriod selects a month. Nil fields let the server pick the current period.
type BudgetPeriod struct {
	Month *int
	Year  *int
}

// BudgetSummary reports spending against the budget for a month
type BudgetSummary struct {
	Month          int     `json:"month" validate:"min=1,max=12"`
	Year           int     `json:"year" validate:"required"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
	BudgetID       string  `json:"budgetId,omitempty"`
}

// SetBudgetParams for storing a monthly budget
type SetBudgetParams struct {
	Amount Amount `json:"amount"`
	Month  *int   `json:"month,omitempty"`
	Year   *int   `json:"year,omitempty"`
}

// Budget is the persisted budget record
type Budget struct {
	ID     string          `json:"id" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
}

// DateRange bounds an analytics query. Zero values are not sent.
type DateRange struct {
	From time.Time
	To   time.Time
}

// CategoryTotal is spending for one category
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DailyTotal is spending on one day
type DailyTotal struct {
	Date  Date    `json:"date"`
	Total float64 `json:"total"`
}

// MonthlyTotal is spending in one month
type MonthlyTotal struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Label string  `json:"label"`
}

// AnalyticsDashboard is the server-computed analytics snapshot
type AnalyticsDashboard struct {
	TotalSpent            float64         `json:"totalSpent"`
	AverageDailySpend     float64         `json:"averageDailySpend"`
	HighestCategory       string          `json:"highestCategory"`
	HighestCategoryAmount float64         `json:"highestCategoryAmount"`
	ByCategory            []CategoryTotal `json:"byCategory" validate:"required"`
	SpendingOverTime      []DailyTotal    `json:"spendingOverTime" validate:"required"`
	MonthlyComparison     []MonthlyTotal  `json:"monthlyComparison" validate:"required"`
	From                  Date            `json:"from"`
	To                    Date            `json:"to"`
}

// Int returns a pointer to i, for optional parameters
func Int(i int) *int {
	return &i
}

// String returns a pointer to s, for optional parameters
func String(s string) *string {
	return &s
}
