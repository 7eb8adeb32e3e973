package expensemgr

import (
	"context"
	"net/http"

	"github.com/expense-manager/expense-manager-go/internal/query"
)

const analyticsPath = "/api/analytics"

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	client *Client
}

// Dashboard retrieves the analytics snapshot for a date range
func (s *analyticsService) Dashboard(ctx context.Context, dateRange *DateRange) (*AnalyticsDashboard, error) {
	if dateRange == nil {
		dateRange = &DateRange{}
	}

	path := query.New().
		Date("from", dateRange.From).
		Date("to", dateRange.To).
		AppendTo(analyticsPath)

	var result AnalyticsDashboard
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
