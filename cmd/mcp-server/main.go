package main

import (
	"context"
	"log"
	"os"

	"github.com/expense-manager/expense-manager-go/pkg/expensemgr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Get Expense Manager token from environment
	token := os.Getenv("EXPENSE_MANAGER_TOKEN")
	if token == "" {
		log.Fatal("EXPENSE_MANAGER_TOKEN environment variable is required")
	}

	client, err := expensemgr.NewClient(&expensemgr.ClientOptions{
		TokenSource: expensemgr.EnvToken("EXPENSE_MANAGER_TOKEN"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to initialize Expense Manager client: %v", err)
	}
	defer client.Close()

	impl := &mcp.Implementation{
		Name:    "expense-manager",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	registerTools(server, client)

	// Run server over stdio transport
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *expensemgr.Client) {
	tools := &expenseTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_expenses",
		Description: "List expenses with optional filters for date range, category, limit and offset. Returns id, date, amount, category and description for each expense.",
	}, tools.ListExpenses)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "Get all expense categories in use.",
	}, tools.GetCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budget",
		Description: "Get the budget summary for a month: budgeted amount, amount spent, amount remaining and percentage used. Defaults to the current month.",
	}, tools.GetBudget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the spending analytics dashboard for a date range: totals, average daily spend, spending by category, spending over time and month-over-month comparison.",
	}, tools.GetDashboard)
}
