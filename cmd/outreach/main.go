// Command outreach sends personalized emails from a recipients spreadsheet
// and prepares company lists for it.
//
// Usage:
//
//	outreach                              Send pending emails (same as "send")
//	outreach send                         Send pending emails
//	outreach scrape <profile> [in] [out]  Extract companies from a saved HTML page
//	outreach combine [a] [b] [out]        Join two company workbooks on "Company Name"
//	outreach rate [in] [out]              Ask a language model to rate companies
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/outreach/internal/campaign"
	"github.com/dmitrymomot/outreach/pkg/config"
	"github.com/dmitrymomot/outreach/pkg/logger"
)

const flushTimeout = 2 * time.Second

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		fmt.Fprintf(stderr, "outreach: %v\n", err)
		return 1
	}
	log := logger.New(logCfg,
		logger.WithOutput(stderr),
		logger.WithContextExtractors(campaign.RunIDExtractor),
	)
	defer logger.Flush(flushTimeout)

	cmd, rest := "send", args
	if len(args) > 0 {
		cmd, rest = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "send":
		err = cmdSend(ctx, log, stdout)
	case "scrape":
		err = cmdScrape(ctx, log, rest)
	case "combine":
		err = cmdCombine(ctx, log, rest)
	case "rate":
		err = cmdRate(ctx, log, rest)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "outreach: unknown command %q\n\n", cmd)
		printUsage(stderr)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "outreach: %v\n\n", err)
			printUsage(stderr)
			return 2
		}
		log.ErrorContext(ctx, "command failed", slog.String("command", cmd), slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// argOr returns args[i] when present and non-empty, otherwise def.
func argOr(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `outreach - personalized email campaigns from a spreadsheet

Usage:
  outreach [command] [arguments]

Commands:
  send                          Send pending emails (default)
  scrape <profile> [in] [out]   Extract companies from a saved HTML page
                                (profiles: exhibitors, ranking; in: index.html)
  combine [a] [b] [out]         Join two workbooks on "Company Name"
                                (defaults: data1.xlsx data2.xlsx data_combined.xlsx)
  rate [in] [out]               Rate companies with a language model
                                (defaults: extracted_companies.xlsx company_ratings.xlsx)
  help                          Show this help

Environment:
  RECIPIENTS_FILE   Recipients workbook (.xlsx or .csv, default recipients.xlsx)
  TEMPLATE_DIR      Email template folder (default templates)
  MAIL_TRANSPORT    smtp (default), resend or dev
  SENDER_EMAIL      Sender address (required by send)
  RATING_API_KEY    Completion API key (required by rate)
  LOG_FORMAT        text (default) or json
  LOG_LEVEL         DEBUG, INFO (default), WARN or ERROR
`)
}
