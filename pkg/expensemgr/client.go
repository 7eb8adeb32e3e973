package expensemgr

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/expense-manager/expense-manager-go/internal/transport"
	internalTypes "github.com/expense-manager/expense-manager-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultBaseURL is the default Expense Manager API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// BaseURLEnv names the environment variable that overrides DefaultBaseURL
	BaseURLEnv = internalTypes.BaseURLEnv

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the main Expense Manager API client
type Client struct {
	// Service interfaces
	Auth      AuthService
	Expenses  ExpenseService
	Budgets   BudgetService
	Analytics AnalyticsService

	// Internal fields
	baseURL   string
	transport Transport
	options   *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the API base URL.
	// When empty, BaseURLEnv is consulted, then DefaultBaseURL.
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// TokenSource supplies the bearer token for each request
	TokenSource TokenSource

	// Token is shorthand for TokenSource: StaticToken(Token)
	Token string

	// Headers are added to every request
	Headers map[string]string

	// DisableValidation turns off schema checks on decoded responses
	DisableValidation bool

	// Logger for debug logging
	Logger Logger

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Hooks provides lifecycle hooks for requests
type Hooks = internalTypes.Hooks

// Request describes a raw API call for Client.Do
type Request = transport.Request

// Transport executes API requests
type Transport interface {
	Do(ctx context.Context, req *Request, result interface{}) error
}

// NewClient creates a new Expense Manager client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// Log error but don't fail client creation
		if err := sentry.Init(sentryOpts); err != nil && opts.Logger != nil {
			opts.Logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = resolveBaseURL()
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
		opts.HTTPClient.Timeout = DefaultTimeout
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	if opts.TokenSource == nil && opts.Token != "" {
		opts.TokenSource = StaticToken(opts.Token)
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:           opts.BaseURL,
		HTTPClient:        opts.HTTPClient,
		Headers:           opts.Headers,
		TokenSource:       opts.TokenSource,
		DisableValidation: opts.DisableValidation,
		Logger:            opts.Logger,
		Hooks:             opts.Hooks,
	})

	c := &Client{
		baseURL:   trans.BaseURL(),
		transport: trans,
		options:   opts,
	}

	c.initServices()

	return c, nil
}

// NewClientWithToken creates a client with a fixed auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// resolveBaseURL returns the environment override or the default endpoint
func resolveBaseURL() string {
	if v, ok := os.LookupEnv(BaseURLEnv); ok && v != "" {
		return v
	}
	return DefaultBaseURL
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Auth = &authService{client: c}
	c.Expenses = &expenseService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Analytics = &analyticsService{client: c}
}

// BaseURL returns the API base address the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a raw API call and decodes a successful response into result.
// A 204 response leaves result untouched.
func (c *Client) Do(ctx context.Context, req *Request, result interface{}) error {
	return c.transport.Do(ctx, req, result)
}

// Close flushes any pending Sentry events
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
