package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/expense-manager/expense-manager-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey      = "Authorization"
	requestIDHeaderKey = "X-Request-ID"
	contentType        = "application/json"
)

// Request describes one API call
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// RESTTransport performs JSON requests against the API
type RESTTransport struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	tokens     types.TokenSource
	validator  *Validator
	logger     types.Logger
	hooks      *types.Hooks
}

// Options for REST transport
type Options struct {
	BaseURL           string
	HTTPClient        *http.Client
	Headers           map[string]string
	TokenSource       types.TokenSource
	DisableValidation bool
	Logger            types.Logger
	Hooks             *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
		opts.HTTPClient.Timeout = types.DefaultTimeout
	}

	// Set default headers
	headers := map[string]string{
		"Accept":       contentType,
		"Content-Type": contentType,
		"User-Agent":   types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	var v *Validator
	if !opts.DisableValidation {
		v = NewValidator()
	}

	return &RESTTransport{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		headers:    headers,
		tokens:     opts.TokenSource,
		validator:  v,
		logger:     opts.Logger,
		hooks:      opts.Hooks,
	}
}

// BaseURL returns the resolved base address
func (t *RESTTransport) BaseURL() string {
	return t.baseURL
}

// Do executes req and decodes a successful response into result.
// A 204 response leaves result untouched.
func (t *RESTTransport) Do(ctx context.Context, req *Request, result interface{}) error {
	err := t.do(ctx, req, result)
	if err != nil {
		captureError(ctx, req, err)
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
	}
	return err
}

func (t *RESTTransport) do(ctx context.Context, req *Request, result interface{}) error {
	token, err := t.token()
	if err != nil {
		return err
	}

	httpReq, err := t.newRequest(ctx, req)
	if err != nil {
		return err
	}

	// Set auth header
	if token != "" {
		httpReq.Header.Set(authHeaderKey, "Bearer "+token)
	}

	// Call request hook
	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	requestID := httpReq.Header.Get(requestIDHeaderKey)
	if t.logger != nil {
		t.logger.Debug("API request", "method", httpReq.Method, "path", req.Path, "requestId", requestID)
	}

	// Execute request
	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", httpReq.Method, req.Path)
	}
	defer resp.Body.Close()

	// Call response hook
	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	if resp.StatusCode == http.StatusNoContent {
		if t.logger != nil {
			t.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "requestId", requestID)
		}
		return nil
	}

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	// Log response
	if t.logger != nil {
		t.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "size", len(respBody), "requestId", requestID)
	}

	// A body that is not JSON is treated as an empty object
	if !json.Valid(respBody) {
		respBody = []byte("{}")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := handleHTTPError(resp.StatusCode, respBody)
		apiErr.Method = httpReq.Method
		apiErr.Path = req.Path
		apiErr.RequestID = requestID
		return apiErr
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return errors.Wrap(err, "failed to unmarshal result")
	}

	if t.validator != nil {
		return t.validator.Validate(result)
	}

	return nil
}

// token reads the current bearer token, if any
func (t *RESTTransport) token() (string, error) {
	if t.tokens == nil {
		return "", nil
	}
	token, err := t.tokens.Token()
	if err != nil {
		return "", errors.Wrap(err, "failed to read auth token")
	}
	return token, nil
}

// newRequest builds the HTTP request with merged headers
func (t *RESTTransport) newRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := t.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	// Set headers
	httpReq.Header.Set(requestIDHeaderKey, uuid.New().String())
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// handleHTTPError builds the error for a non-2xx response
func handleHTTPError(statusCode int, body []byte) *types.Error {
	// Try to parse error response
	var errResp struct {
		Error   *string `json:"error"`
		Message *string `json:"message"`
	}

	_ = json.Unmarshal(body, &errResp)

	msg := fmt.Sprintf("HTTP %d", statusCode)
	switch {
	case errResp.Error != nil:
		msg = *errResp.Error
	case errResp.Message != nil:
		msg = *errResp.Message
	}

	return &types.Error{
		StatusCode: statusCode,
		Message:    msg,
	}
}

// captureError reports err to Sentry with request context.
// It is a no-op when Sentry has not been initialised.
func captureError(ctx context.Context, req *Request, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("http.method", req.Method)
		scope.SetTag("http.path", req.Path)
		var apiErr *types.Error
		if errors.As(err, &apiErr) {
			scope.SetTag("http.status_code", fmt.Sprintf("%d", apiErr.StatusCode))
			scope.SetTag("request_id", apiErr.RequestID)
		}
		hub.CaptureException(err)
	})
}
