package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/kelseyhightower/envconfig"
	"github.com/martinohansen/zaim"
	"github.com/martinohansen/zaim/internal/callback"
	"github.com/martinohansen/zaim/internal/log"
)

const usage = `usage: zaim <command> [flags]

commands:
  auth        run the OAuth handshake and print the access token
  verify      show the authenticated user
  accounts    list accounts (-default for the master list)
  categories  list categories (-default for the master list)
  genres      list genres (-default for the master list)
  currencies  list currencies
  money       list money entries
  version     print the version
`

// cliConfig holds settings only the command line uses.
type cliConfig struct {
	// LogLevel sets the minimum level: trace, debug, info, warn, error
	LogLevel string `envconfig:"ZAIM_LOG_LEVEL" default:"info"`

	// LogFormat is either text or json
	LogFormat string `envconfig:"ZAIM_LOG_FORMAT" default:"text"`
}

func setupLogging(w io.Writer, logLevel, logFormat string) error {
	programLevel, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logger, err := log.NewLogger(w, programLevel, logFormat)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		stop()
		log.Fatal(slog.Default(), err.Error())
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}
	command, args := args[0], args[1:]
	if command == "version" {
		fmt.Fprintln(stdout, versioninfo.Short())
		return nil
	}

	var cli cliConfig
	if err := envconfig.Process("", &cli); err != nil {
		return err
	}
	if err := setupLogging(os.Stderr, cli.LogLevel, cli.LogFormat); err != nil {
		return err
	}

	cfg, err := zaim.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "zaim-cli/" + versioninfo.Short()
	}
	client, err := zaim.NewClient(cfg)
	if err != nil {
		return err
	}
	slog.Debug("client ready", "version", versioninfo.Short(), "base_url", cfg.BaseURL)

	switch command {
	case "auth":
		return runAuth(ctx, client, args, stdin, stdout)
	case "verify":
		return printJSON(stdout, func() (any, error) { return client.User.Verify(ctx) })
	case "accounts":
		return runMaster(stdout, args,
			func() (any, error) { return client.Accounts.List(ctx) },
			func(lang string) (any, error) { return client.Accounts.Default(ctx, lang) })
	case "categories":
		return runMaster(stdout, args,
			func() (any, error) { return client.Categories.List(ctx) },
			func(lang string) (any, error) { return client.Categories.Default(ctx, lang) })
	case "genres":
		return runMaster(stdout, args,
			func() (any, error) { return client.Genres.List(ctx) },
			func(lang string) (any, error) { return client.Genres.Default(ctx, lang) })
	case "currencies":
		return printJSON(stdout, func() (any, error) { return client.Currencies.List(ctx) })
	case "money":
		return runMoney(ctx, client, args, stdout)
	}
	fmt.Fprint(stdout, usage)
	return fmt.Errorf("unknown command: %s", command)
}

// printJSON writes the result of fn as indented JSON.
func printJSON(w io.Writer, fn func() (any, error)) error {
	v, err := fn()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runMaster(w io.Writer, args []string, list func() (any, error), defaults func(string) (any, error)) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	useDefault := fs.Bool("default", false, "list the service wide master data")
	lang := fs.String("lang", "", "language of the master data (default ja)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *useDefault {
		return printJSON(w, func() (any, error) { return defaults(*lang) })
	}
	return printJSON(w, list)
}

func runMoney(ctx context.Context, client *zaim.Client, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("money", flag.ContinueOnError)
	grouped := fs.Bool("grouped", false, "group entries by receipt")
	limit := fs.Int("limit", 0, "entries per page, 1-100")
	page := fs.Int("page", 0, "page number, starting at 1")
	mode := fs.String("mode", "", "income, payment or transfer")
	var start, end zaim.Date
	fs.Var(&start, "start", "first date, YYYY-MM-DD")
	fs.Var(&end, "end", "last date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var q zaim.MoneyQuery
	if *limit != 0 {
		q.Limit = limit
	}
	if *page != 0 {
		q.Page = page
	}
	if *mode != "" {
		m, err := zaim.ParseMode(*mode)
		if err != nil {
			return err
		}
		q.Mode = &m
	}
	if !start.IsZero() {
		q.StartDate = &start
	}
	if !end.IsZero() {
		q.EndDate = &end
	}

	if *grouped {
		return printJSON(w, func() (any, error) { return client.Money.ListGrouped(ctx, q) })
	}
	return printJSON(w, func() (any, error) { return client.Money.List(ctx, q) })
}

func runAuth(ctx context.Context, client *zaim.Client, args []string, stdin io.Reader, w io.Writer) error {
	fs := flag.NewFlagSet("auth", flag.ContinueOnError)
	useCallback := fs.Bool("callback", false, "capture the redirect with a local server instead of typing the PIN")
	port := fs.Int("port", 0, "port for the callback server, 0 picks a free one")
	timeout := fs.Duration("timeout", 5*time.Minute, "how long to wait for the redirect")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		srv         *callback.Server
		callbackURL string
	)
	if *useCallback {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		srv = callback.NewServer(*port, "", slog.Default().With("component", "callback"))
		if err := srv.Start(srvCtx); err != nil {
			return err
		}
		callbackURL = srv.URL()
	}

	requestToken, err := client.RequestToken(ctx, callbackURL)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Open this URL and approve access:\n\n  %s\n\n", client.AuthorizeURL(requestToken.Token))

	var verifier string
	if srv != nil {
		waitCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		res, err := srv.Wait(waitCtx)
		if err != nil {
			return fmt.Errorf("waiting for authorization: %w", err)
		}
		if res.RequestToken != requestToken.Token {
			return errors.New("authorization redirect is for a different request token")
		}
		verifier = res.Verifier
	} else {
		fmt.Fprint(w, "Verifier: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading verifier: %w", err)
		}
		verifier = strings.TrimSpace(line)
	}

	access, err := client.AccessToken(ctx, requestToken, verifier)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nZAIM_ACCESS_TOKEN=%s\nZAIM_ACCESS_TOKEN_SECRET=%s\n", access.Token, access.Secret)
	return nil
}
