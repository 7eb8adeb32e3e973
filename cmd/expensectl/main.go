package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/expense-manager/expense-manager-go/pkg/expensemgr"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// TokenEnv overrides the token file when set
const TokenEnv = "EXPENSE_MANAGER_TOKEN"

const usage = `Usage: expensectl [flags] <command> [args]

Commands:
  register -email <email> [-name <name>] [-password <password>]
  login -email <email> [-password <password>]
  logout
  me
  expenses list [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-category <c>] [-limit N] [-offset N]
  expenses get <id>
  expenses create -amount <n> [-category <c>] [-description <d>] [-date YYYY-MM-DD]
  expenses update <id> [-amount <n>] [-category <c>] [-description <d>] [-date YYYY-MM-DD]
  expenses delete <id>
  expenses categories
  budget get [-month N] [-year N]
  budget set -amount <n> [-month N] [-year N]
  dashboard [-from YYYY-MM-DD] [-to YYYY-MM-DD]

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the state shared by all commands
type cli struct {
	client *expensemgr.Client
	tokens *expensemgr.TokenFile
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("expensectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	apiURL := fs.String("api", "", "API base URL (default $"+expensemgr.BaseURLEnv+" or "+expensemgr.DefaultBaseURL+")")
	tokenPath := fs.String("token-file", defaultTokenPath(), "Path to the saved session token")
	timeout := fs.Duration("timeout", expensemgr.DefaultTimeout, "HTTP request timeout")
	sentryDSN := fs.String("sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for error reporting")
	verbose := fs.Bool("v", false, "Verbose (debug) logging to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	logger := newLogger(stderr, *verbose)
	tokens := expensemgr.NewTokenFile(*tokenPath, logger)

	client, err := expensemgr.NewClient(&expensemgr.ClientOptions{
		BaseURL:     *apiURL,
		Timeout:     *timeout,
		TokenSource: tokenChain{expensemgr.EnvToken(TokenEnv), tokens},
		Logger:      logger,
		SentryDSN:   *sentryDSN,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create client")
	}
	defer client.Close()

	c := &cli{
		client: client,
		tokens: tokens,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "register":
		return c.register(ctx, rest)
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout()
	case "me":
		return c.me(ctx)
	case "expenses":
		return c.expenses(ctx, rest)
	case "budget":
		return c.budget(ctx, rest)
	case "dashboard":
		return c.dashboard(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// tokenChain returns the first non-empty token
type tokenChain []expensemgr.TokenSource

func (tc tokenChain) Token() (string, error) {
	for _, src := range tc {
		token, err := src.Token()
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "expense-manager", "token.json")
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// printJSON writes v as indented JSON
func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// promptPassword uses the flag value or prompts for one
func (c *cli) promptPassword(flagValue string) (string, error) {
	password := flagValue
	if password == "" {
		fmt.Fprint(c.stderr, "Password: ")
		var err error
		password, err = readPassword(c.stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read password")
		}
		fmt.Fprintln(c.stderr)
	}

	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// visited returns the names of flags set on the command line
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// parseDate parses an optional YYYY-MM-DD flag value
func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := expensemgr.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -%s (expected YYYY-MM-DD): %w", name, err)
	}
	return d.Time, nil
}
