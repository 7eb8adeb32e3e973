package expensemgr

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, req *Request, result interface{}) error {
	args := m.Called(ctx, req, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil && result != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func newMockClient() (*Client, *MockTransport) {
	mockTransport := new(MockTransport)
	client := &Client{
		transport: mockTransport,
		options:   &ClientOptions{},
		baseURL:   "https://api.test.com",
	}
	client.initServices()
	return client, mockTransport
}

// bodyJSON marshals a request body for comparison
func bodyJSON(req *Request) string {
	data, err := json.Marshal(req.Body)
	if err != nil {
		return ""
	}
	return string(data)
}
