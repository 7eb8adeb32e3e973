package main

import (
	"context"
	"fmt"

	"github.com/expense-manager/expense-manager-go/pkg/expensemgr"
	"github.com/pkg/errors"
)

func (c *cli) register(ctx context.Context, args []string) error {
	fs := c.newFlagSet("register")
	email := fs.String("email", "", "Email address")
	name := fs.String("name", "", "Display name (optional)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flags: email")
	}

	password, err := c.promptPassword(*passwordFlag)
	if err != nil {
		return err
	}

	resp, err := c.client.Auth.Register(ctx, &expensemgr.RegisterParams{
		Email:    *email,
		Password: password,
		Name:     *name,
	})
	if err != nil {
		return err
	}

	return c.saveSession(resp)
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.newFlagSet("login")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flags: email")
	}

	password, err := c.promptPassword(*passwordFlag)
	if err != nil {
		return err
	}

	resp, err := c.client.Auth.Login(ctx, *email, password)
	if err != nil {
		return err
	}

	return c.saveSession(resp)
}

// saveSession persists the token and prints the user
func (c *cli) saveSession(resp *expensemgr.AuthResponse) error {
	if err := c.tokens.Save(resp.Token); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Logged in as %s (session expires in %s)\n", resp.User.Email, resp.ExpiresIn)
	return nil
}

func (c *cli) logout() error {
	if err := c.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return nil
}

func (c *cli) me(ctx context.Context) error {
	user, err := c.client.Auth.Me(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(user)
}

func (c *cli) expenses(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing expenses subcommand (list, get, create, update, delete, categories)")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return c.listExpenses(ctx, rest)
	case "get":
		id, err := requireID("get", rest)
		if err != nil {
			return err
		}
		expense, err := c.client.Expenses.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.printJSON(expense)
	case "create":
		return c.createExpense(ctx, rest)
	case "update":
		return c.updateExpense(ctx, rest)
	case "delete":
		id, err := requireID("delete", rest)
		if err != nil {
			return err
		}
		if err := c.client.Expenses.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Deleted expense %s\n", id)
		return nil
	case "categories":
		categories, err := c.client.Expenses.Categories(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(categories)
	default:
		return fmt.Errorf("unknown expenses subcommand %q", sub)
	}
}

func requireID(sub string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("usage: expenses %s <id>", sub)
	}
	return args[0], nil
}

func (c *cli) listExpenses(ctx context.Context, args []string) error {
	fs := c.newFlagSet("expenses list")
	from := fs.String("from", "", "Start date (YYYY-MM-DD)")
	to := fs.String("to", "", "End date (YYYY-MM-DD)")
	category := fs.String("category", "", "Category filter")
	limit := fs.Int("limit", 0, "Maximum number of expenses")
	offset := fs.Int("offset", 0, "Number of expenses to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := &expensemgr.ListExpensesParams{Category: *category}
	var err error
	if params.From, err = parseDate("from", *from); err != nil {
		return err
	}
	if params.To, err = parseDate("to", *to); err != nil {
		return err
	}

	set := visited(fs)
	if set["limit"] {
		params.Limit = limit
	}
	if set["offset"] {
		params.Offset = offset
	}

	list, err := c.client.Expenses.List(ctx, params)
	if err != nil {
		return err
	}
	return c.printJSON(list)
}

func (c *cli) createExpense(ctx context.Context, args []string) error {
	fs := c.newFlagSet("expenses create")
	amount := fs.String("amount", "", "Amount, e.g. 12.50")
	category := fs.String("category", "", "Category")
	description := fs.String("description", "", "Description")
	date := fs.String("date", "", "Date (YYYY-MM-DD, default today on the server)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return fmt.Errorf("missing required flags: amount")
	}

	a, err := expensemgr.ParseAmount(*amount)
	if err != nil {
		return errors.Wrap(err, "invalid -amount")
	}

	params := &expensemgr.CreateExpenseParams{
		Amount:      a,
		Category:    *category,
		Description: *description,
	}
	if *date != "" {
		d, err := expensemgr.ParseDate(*date)
		if err != nil {
			return errors.Wrap(err, "invalid -date")
		}
		params.Date = &d
	}

	expense, err := c.client.Expenses.Create(ctx, params)
	if err != nil {
		return err
	}
	return c.printJSON(expense)
}

func (c *cli) updateExpense(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: expenses update <id> [flags]")
	}
	id := args[0]

	fs := c.newFlagSet("expenses update")
	amount := fs.String("amount", "", "Amount, e.g. 12.50")
	category := fs.String("category", "", "Category")
	description := fs.String("description", "", "Description")
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	params := &expensemgr.UpdateExpenseParams{}
	set := visited(fs)
	if set["amount"] {
		a, err := expensemgr.ParseAmount(*amount)
		if err != nil {
			return errors.Wrap(err, "invalid -amount")
		}
		params.Amount = &a
	}
	if set["category"] {
		params.Category = category
	}
	if set["description"] {
		params.Description = description
	}
	if set["date"] {
		d, err := expensemgr.ParseDate(*date)
		if err != nil {
			return errors.Wrap(err, "invalid -date")
		}
		params.Date = &d
	}
	if len(set) == 0 {
		return fmt.Errorf("nothing to update")
	}

	expense, err := c.client.Expenses.Update(ctx, id, params)
	if err != nil {
		return err
	}
	return c.printJSON(expense)
}

func (c *cli) budget(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing budget subcommand (get, set)")
	}

	sub, rest := args[0], args[1:]
	fs := c.newFlagSet("budget " + sub)
	month := fs.Int("month", 0, "Month (1-12, default current)")
	year := fs.Int("year", 0, "Year (default current)")
	amount := fs.String("amount", "", "Budget amount (set only)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	set := visited(fs)
	var m, y *int
	if set["month"] {
		m = month
	}
	if set["year"] {
		y = year
	}

	switch sub {
	case "get":
		summary, err := c.client.Budgets.Get(ctx, &expensemgr.BudgetPeriod{Month: m, Year: y})
		if err != nil {
			return err
		}
		return c.printJSON(summary)
	case "set":
		if *amount == "" {
			return fmt.Errorf("missing required flags: amount")
		}
		a, err := expensemgr.ParseAmount(*amount)
		if err != nil {
			return errors.Wrap(err, "invalid -amount")
		}
		budget, err := c.client.Budgets.Set(ctx, &expensemgr.SetBudgetParams{Amount: a, Month: m, Year: y})
		if err != nil {
			return err
		}
		return c.printJSON(budget)
	default:
		return fmt.Errorf("unknown budget subcommand %q", sub)
	}
}

func (c *cli) dashboard(ctx context.Context, args []string) error {
	fs := c.newFlagSet("dashboard")
	from := fs.String("from", "", "Start date (YYYY-MM-DD)")
	to := fs.String("to", "", "End date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dateRange := &expensemgr.DateRange{}
	var err error
	if dateRange.From, err = parseDate("from", *from); err != nil {
		return err
	}
	if dateRange.To, err = parseDate("to", *to); err != nil {
		return err
	}

	dash, err := c.client.Analytics.Dashboard(ctx, dateRange)
	if err != nil {
		return err
	}
	return c.printJSON(dash)
}
