package expensemgr

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_List(t *testing.T) {
	client, mockTransport := newMockClient()

	mockResponse := `{
		"expenses": [
			{
				"id": "exp-1",
				"amount": "12.50",
				"category": "food",
				"description": "lunch",
				"date": "2025-03-04",
				"created_at": "2025-03-04T12:00:00Z"
			},
			{
				"id": "exp-2",
				"amount": "7.25",
				"category": "food",
				"description": null,
				"date": "2025-03-05"
			}
		]
	}`

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodGet &&
				req.Path == "/api/expenses?category=food&limit=10" &&
				req.Body == nil
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	result, err := client.Expenses.List(context.Background(), &ListExpensesParams{
		Category: "food",
		Limit:    Int(10),
	})

	require.NoError(t, err)
	require.Len(t, result.Expenses, 2)

	first := result.Expenses[0]
	assert.Equal(t, "exp-1", first.ID)
	assert.True(t, decimal.RequireFromString("12.50").Equal(first.Amount))
	assert.Equal(t, "12.5", first.Amount.String())
	require.NotNil(t, first.Description)
	assert.Equal(t, "lunch", *first.Description)
	assert.Equal(t, "2025-03-04", first.Date.String())
	assert.Equal(t, "2025-03-04T12:00:00Z", first.CreatedAt)

	assert.Nil(t, result.Expenses[1].Description)
	assert.Empty(t, result.Expenses[1].CreatedAt)

	mockTransport.AssertExpectations(t)
}

func TestExpenseService_List_QueryString(t *testing.T) {
	tests := []struct {
		name     string
		params   *ListExpensesParams
		expected string
	}{
		{"nil params", nil, "/api/expenses"},
		{"empty params", &ListExpensesParams{}, "/api/expenses"},
		{
			"all params",
			&ListExpensesParams{
				From:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				To:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				Category: "rent",
				Limit:    Int(20),
				Offset:   Int(40),
			},
			"/api/expenses?from=2025-01-01&to=2025-01-31&category=rent&limit=20&offset=40",
		},
		{"zero offset is sent", &ListExpensesParams{Offset: Int(0)}, "/api/expenses?offset=0"},
		{"to only", &ListExpensesParams{To: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}, "/api/expenses?to=2025-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mockTransport := newMockClient()
			mockTransport.On("Do",
				mock.Anything,
				mock.MatchedBy(func(req *Request) bool { return req.Path == tt.expected }),
				mock.Anything,
			).Return(`{"expenses":[]}`, nil)

			result, err := client.Expenses.List(context.Background(), tt.params)

			require.NoError(t, err)
			assert.Empty(t, result.Expenses)
			mockTransport.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Get(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodGet && req.Path == "/api/expenses/exp-1"
		}),
		mock.Anything,
	).Return(`{"id":"exp-1","amount":"3.00","category":"coffee","description":null,"date":"2025-03-04"}`, nil)

	expense, err := client.Expenses.Get(context.Background(), "exp-1")

	require.NoError(t, err)
	assert.Equal(t, "exp-1", expense.ID)
	assert.Equal(t, "coffee", expense.Category)
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Get_EscapesID(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool { return req.Path == "/api/expenses/a%2Fb" }),
		mock.Anything,
	).Return(`{"id":"a/b","amount":"1","category":"x","date":"2025-03-04"}`, nil)

	_, err := client.Expenses.Get(context.Background(), "a/b")

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Get_NotFound(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &Error{StatusCode: http.StatusNotFound, Message: "Expense not found"})

	expense, err := client.Expenses.Get(context.Background(), "missing")

	assert.Nil(t, expense)
	require.Error(t, err)
	assert.Equal(t, "Expense not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestExpenseService_Create(t *testing.T) {
	client, mockTransport := newMockClient()
	date := NewDate(2025, time.March, 4)

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodPost &&
				req.Path == "/api/expenses" &&
				bodyJSON(req) == `{"amount":12.5,"category":"food","date":"2025-03-04"}`
		}),
		mock.Anything,
	).Return(`{"id":"exp-9","amount":"12.50","category":"food","description":null,"date":"2025-03-04"}`, nil)

	expense, err := client.Expenses.Create(context.Background(), &CreateExpenseParams{
		Amount:   NewAmount(12.5),
		Category: "food",
		Date:     &date,
	})

	require.NoError(t, err)
	assert.Equal(t, "exp-9", expense.ID)
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Update_SendsOnlySetFields(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodPatch &&
				req.Path == "/api/expenses/exp-1" &&
				bodyJSON(req) == `{"amount":5}`
		}),
		mock.Anything,
	).Return(`{"id":"exp-1","amount":"5.00","category":"food","description":"lunch","date":"2025-03-04"}`, nil)

	amount := NewAmount(5)
	expense, err := client.Expenses.Update(context.Background(), "exp-1", &UpdateExpenseParams{Amount: &amount})

	require.NoError(t, err)
	assert.Equal(t, "5", expense.Amount.String())
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Update_Description(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return bodyJSON(req) == `{"category":"travel","description":""}`
		}),
		mock.Anything,
	).Return(`{"id":"exp-1","amount":"5.00","category":"travel","description":"","date":"2025-03-04"}`, nil)

	_, err := client.Expenses.Update(context.Background(), "exp-1", &UpdateExpenseParams{
		Category:    String("travel"),
		Description: String(""),
	})

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Delete(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodDelete && req.Path == "/api/expenses/exp-1"
		}),
		nil,
	).Return(nil, nil)

	err := client.Expenses.Delete(context.Background(), "exp-1")

	assert.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestExpenseService_Categories(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("Do",
		mock.Anything,
		mock.MatchedBy(func(req *Request) bool {
			return req.Method == http.MethodGet && req.Path == "/api/expenses/categories"
		}),
		mock.Anything,
	).Return(`{"categories":["food","rent","travel"]}`, nil)

	categories, err := client.Expenses.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"food", "rent", "travel"}, categories)
	mockTransport.AssertExpectations(t)
}
