package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/outreach/pkg/config"
	"github.com/dmitrymomot/outreach/pkg/merge"
	"github.com/dmitrymomot/outreach/pkg/rating"
	"github.com/dmitrymomot/outreach/pkg/scrape"
	"github.com/dmitrymomot/outreach/pkg/sheet"
)

// Default file names of the company list tools.
const (
	defaultScrapeInput   = "index.html"
	defaultCombineLeft   = "data1.xlsx"
	defaultCombineRight  = "data2.xlsx"
	defaultCombineOutput = "data_combined.xlsx"
	defaultRatingInput   = "extracted_companies.xlsx"
	defaultRatingOutput  = "company_ratings.xlsx"
)

func cmdScrape(ctx context.Context, log *slog.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: scrape needs a profile (%s)", errUsage, strings.Join(scrape.ProfileNames(), ", "))
	}
	profile, err := scrape.LoadProfile(args[0])
	if err != nil {
		return err
	}
	in := argOr(args, 1, defaultScrapeInput)
	out := argOr(args, 2, profile.Output)

	table, err := scrape.ExtractFile(in, profile)
	if err != nil {
		return err
	}
	if err := sheet.Create(out, table); err != nil {
		return err
	}

	log.InfoContext(ctx, "companies extracted",
		slog.String("profile", profile.Name),
		slog.String("input", in),
		slog.String("output", out),
		slog.Int("rows", len(table.Rows)),
	)
	return nil
}

func cmdCombine(ctx context.Context, log *slog.Logger, args []string) error {
	leftPath := argOr(args, 0, defaultCombineLeft)
	rightPath := argOr(args, 1, defaultCombineRight)
	out := argOr(args, 2, defaultCombineOutput)

	left, err := sheet.Load(leftPath)
	if err != nil {
		return err
	}
	right, err := sheet.Load(rightPath)
	if err != nil {
		return err
	}

	res, err := merge.Combine(left, right, merge.DefaultKey)
	if err != nil {
		return err
	}
	if err := sheet.Create(out, res.Tables()...); err != nil {
		return err
	}

	log.InfoContext(ctx, "workbooks combined",
		slog.String("output", out),
		slog.Int("combined", len(res.Combined.Rows)),
		slog.Int("additional", len(res.Additional.Rows)),
	)
	return nil
}

func cmdRate(ctx context.Context, log *slog.Logger, args []string) error {
	var cfg rating.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	completer, err := rating.NewOpenAICompleter(cfg)
	if err != nil {
		return err
	}
	return rateCompanies(ctx, log, completer, cfg, args)
}

// rateCompanies rates every company of the input sheet. Results gathered
// before a cancellation are still written.
func rateCompanies(ctx context.Context, log *slog.Logger, completer rating.Completer, cfg rating.Config, args []string) error {
	in := argOr(args, 0, defaultRatingInput)
	out := argOr(args, 1, defaultRatingOutput)

	table, err := sheet.Load(in)
	if err != nil {
		return err
	}
	companies, err := rating.Companies(table, rating.DefaultColumn)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "companies to rate", slog.Int("count", len(companies)))

	rater := rating.New(completer, rating.WithInterval(cfg.Interval), rating.WithLogger(log))
	results, rateErr := rater.RateAll(ctx, companies)
	if len(results) > 0 {
		if err := sheet.Create(out, rating.Table(results)); err != nil {
			return err
		}
		log.InfoContext(ctx, "ratings saved", slog.String("output", out), slog.Int("rated", len(results)))
	}
	return rateErr
}
