package expensemgr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestNewClient_Defaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")

	client, err := NewClient(nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.NotNil(t, client.Auth)
	assert.NotNil(t, client.Expenses)
	assert.NotNil(t, client.Budgets)
	assert.NotNil(t, client.Analytics)
}

func TestNewClient_BaseURLFromEnvironment(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://localhost:4000")

	client, err := NewClient(&ClientOptions{})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", client.BaseURL())
}

func TestNewClient_ExplicitBaseURLWins(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://localhost:4000")

	client, err := NewClient(&ClientOptions{BaseURL: "http://api.internal"})

	require.NoError(t, err)
	assert.Equal(t, "http://api.internal", client.BaseURL())
}

func TestNewClient_Timeout(t *testing.T) {
	opts := &ClientOptions{Timeout: 5 * time.Second}

	_, err := NewClient(opts)

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, opts.HTTPClient.Timeout)
}

func TestClient_ListScenario(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/expenses", r.URL.Path)
		assert.Equal(t, "category=food&limit=10", r.URL.RawQuery)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"expenses":[{"id":"e1","amount":"4.20","category":"food","description":null,"date":"2025-03-04"}]}`))
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL, Token: "jwt-abc"})
	require.NoError(t, err)

	list, err := client.Expenses.List(context.Background(), &ListExpensesParams{Category: "food", Limit: Int(10)})

	require.NoError(t, err)
	require.Len(t, list.Expenses, 1)
	assert.Equal(t, "e1", list.Expenses[0].ID)
	assert.Equal(t, "4.2", list.Expenses[0].Amount.String())
}

func TestClient_LoginScenario_InvalidCredentials(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@b.com","password":"bad"}`, string(body))

		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Auth.Login(context.Background(), "a@b.com", "bad")

	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestClient_DeleteReturnsNoContent(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/expenses/e1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, client.Expenses.Delete(context.Background(), "e1"))
}

func TestClient_TokenReadPerRequest(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"user":{"id":"u1","email":"a@b.com","name":"Ada"}}`))
	})

	t.Setenv("EXPENSE_TEST_TOKEN", "first")
	client, err := NewClient(&ClientOptions{BaseURL: server.URL, TokenSource: EnvToken("EXPENSE_TEST_TOKEN")})
	require.NoError(t, err)

	_, err = client.Auth.Me(context.Background())
	require.NoError(t, err)

	t.Setenv("EXPENSE_TEST_TOKEN", "second")
	_, err = client.Auth.Me(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"expenses":null}`))
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Expenses.List(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "expenses")
}

func TestClient_MalformedSuccessBody_ValidationDisabled(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`garbage`))
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL, DisableValidation: true})
	require.NoError(t, err)

	list, err := client.Expenses.List(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, list.Expenses)
}

func TestClient_Do_RawRequest(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	client, err := NewClient(&ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)

	var result map[string]string
	err = client.Do(context.Background(), &Request{Path: "/api/health"}, &result)

	require.NoError(t, err)
	assert.Equal(t, "ok", result["status"])
}
