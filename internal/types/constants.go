package types

import "time"

const (
	// DefaultBaseURL is the default Expense Manager API base URL
	DefaultBaseURL = "https://expense-manager-qxue.onrender.com"

	// BaseURLEnv overrides DefaultBaseURL when set
	BaseURLEnv = "EXPENSE_MANAGER_API_URL"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "expense-manager-go/1.0.0"
)
