package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/portfolio"
)

// PageFetcher returns the cleaned text of a careers page.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// JobExtractor turns page text into job postings.
type JobExtractor interface {
	Extract(ctx context.Context, pageText string) ([]model.JobPosting, error)
}

// EmailComposer drafts an outreach email for one job.
type EmailComposer interface {
	Compose(ctx context.Context, job model.JobPosting, links []string) (string, error)
}

// Runner owns the full outreach pipeline for one careers page:
// fetch → extract → match portfolio links → compose, one job at a time.
type Runner struct {
	fetcher   PageFetcher
	extractor JobExtractor
	composer  EmailComposer
	catalog   portfolio.Catalog
	logger    *slog.Logger
}

// NewRunner creates a runner wired with all its dependencies.
// fetcher may be nil when only RunText is used. A nil logger discards output.
func NewRunner(
	fetcher PageFetcher,
	extractor JobExtractor,
	composer EmailComposer,
	catalog portfolio.Catalog,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		fetcher:   fetcher,
		extractor: extractor,
		composer:  composer,
		catalog:   catalog,
		logger:    logger,
	}
}

// Run scrapes pageURL and drafts one email per extracted job.
func (r *Runner) Run(ctx context.Context, pageURL string) ([]model.Outreach, error) {
	if r.fetcher == nil {
		return nil, fmt.Errorf("running %s: no page fetcher configured", pageURL)
	}
	text, err := r.fetcher.FetchText(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("running %s: fetching page: %w", pageURL, err)
	}
	r.logger.Debug("fetched page", "url", pageURL, "chars", len(text))

	out, err := r.RunText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", pageURL, err)
	}
	return out, nil
}

// RunText drafts one email per job found in already-scraped page text.
// The first failure stops the run and is returned.
func (r *Runner) RunText(ctx context.Context, pageText string) ([]model.Outreach, error) {
	jobs, err := r.extractor.Extract(ctx, pageText)
	if err != nil {
		return nil, fmt.Errorf("extracting jobs: %w", err)
	}

	results := make([]model.Outreach, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := r.catalog.Links(ctx, job.Skills)
		if err != nil {
			return nil, fmt.Errorf("matching portfolio for job %d (%s): %w", i+1, job.Role, err)
		}

		email, err := r.composer.Compose(ctx, job, links)
		if err != nil {
			return nil, fmt.Errorf("composing email for job %d (%s): %w", i+1, job.Role, err)
		}

		r.logger.Debug("composed email", "role", job.Role, "links", len(links))
		results = append(results, model.Outreach{Job: job, Links: links, Email: email})
	}

	linked := 0
	for _, o := range results {
		if len(o.Links) > 0 {
			linked++
		}
	}
	r.logger.Info("drafted outreach",
		"jobs", len(jobs),
		"with_links", linked,
		"chars", len(pageText),
	)

	return results, nil
}
