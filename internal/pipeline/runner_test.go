package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/portfolio"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock/Fake Implementations ---

type fakeFetcher struct {
	text string
	err  error
	url  string
}

func (f *fakeFetcher) FetchText(_ context.Context, url string) (string, error) {
	f.url = url
	return f.text, f.err
}

type fakeExtractor struct {
	jobs []model.JobPosting
	err  error
	text string
}

func (f *fakeExtractor) Extract(_ context.Context, pageText string) ([]model.JobPosting, error) {
	f.text = pageText
	return f.jobs, f.err
}

// recordingComposer echoes the role and records the links it received.
type recordingComposer struct {
	links [][]string
	err   error
}

func (c *recordingComposer) Compose(_ context.Context, job model.JobPosting, links []string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.links = append(c.links, links)
	return "Email for " + job.Role, nil
}

type failingCatalog struct{}

func (failingCatalog) Links(context.Context, []string) ([]string, error) {
	return nil, errors.New("db locked")
}

type scriptedProvider struct {
	replies []string
	calls   int
}

func (p *scriptedProvider) Complete(_ context.Context, _ string) (string, error) {
	reply := p.replies[p.calls]
	p.calls++
	return reply, nil
}

func TestRun_ComposesOnePerJobInOrder(t *testing.T) {
	fetcher := &fakeFetcher{text: "careers text"}
	extractor := &fakeExtractor{jobs: []model.JobPosting{
		{Role: "Backend", Skills: []string{"Go"}},
		{Role: "Frontend", Skills: []string{"React"}},
	}}
	composer := &recordingComposer{}
	catalog := portfolio.NewStatic([]string{"https://example.com/a"})

	out, err := NewRunner(fetcher, extractor, composer, catalog, discardLogger()).Run(context.Background(), "https://acme.example/careers")
	require.NoError(t, err)

	assert.Equal(t, "https://acme.example/careers", fetcher.url)
	assert.Equal(t, "careers text", extractor.text)
	require.Len(t, out, 2)
	assert.Equal(t, "Backend", out[0].Job.Role)
	assert.Equal(t, "Email for Backend", out[0].Email)
	assert.Equal(t, "Email for Frontend", out[1].Email)
	assert.Equal(t, []string{"https://example.com/a"}, out[1].Links)
	assert.Len(t, composer.links, 2)
}

func TestRun_FetchErrorStopsRun(t *testing.T) {
	extractor := &fakeExtractor{}
	_, err := NewRunner(&fakeFetcher{err: errors.New("dns")}, extractor, &recordingComposer{}, portfolio.NewStatic(nil), discardLogger()).
		Run(context.Background(), "https://acme.example")
	require.Error(t, err)
	assert.Empty(t, extractor.text, "extractor must not run after a fetch failure")
}

func TestRunText_ExtractionErrorSurfaces(t *testing.T) {
	exErr := &model.ExtractionError{Reply: "Sure!"}
	_, err := NewRunner(nil, &fakeExtractor{err: exErr}, &recordingComposer{}, portfolio.NewStatic(nil), discardLogger()).
		RunText(context.Background(), "text")

	var got *model.ExtractionError
	require.True(t, errors.As(err, &got), "expected *model.ExtractionError, got %v", err)
	assert.Same(t, exErr, got)
}

func TestRunText_ComposeErrorSurfaces(t *testing.T) {
	tErr := &model.TransportError{StatusCode: 429, Err: errors.New("quota")}
	extractor := &fakeExtractor{jobs: []model.JobPosting{{Role: "SRE"}}}

	_, err := NewRunner(nil, extractor, &recordingComposer{err: tErr}, portfolio.NewStatic(nil), discardLogger()).
		RunText(context.Background(), "text")
	assert.ErrorIs(t, err, tErr)
}

func TestRunText_CatalogErrorSurfaces(t *testing.T) {
	extractor := &fakeExtractor{jobs: []model.JobPosting{{Role: "SRE"}}}
	_, err := NewRunner(nil, extractor, &recordingComposer{}, failingCatalog{}, discardLogger()).
		RunText(context.Background(), "text")
	assert.ErrorContains(t, err, "db locked")
}

func TestRun_NoFetcher(t *testing.T) {
	_, err := NewRunner(nil, &fakeExtractor{}, &recordingComposer{}, portfolio.NewStatic(nil), discardLogger()).
		Run(context.Background(), "https://acme.example")
	assert.Error(t, err)
}

func TestRunText_EndToEndWithLLMComponents(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		`{"role":"Software Engineer","skills":"Python"}`,
		"Dear Hiring Manager, ...",
	}}
	extractor := llm.NewExtractor(provider, nil, discardLogger())
	composer := llm.NewComposer(provider, nil, config.Default().Persona)
	catalog := portfolio.NewStatic([]string{"https://example.com/portfolio/a"})

	out, err := NewRunner(nil, extractor, composer, catalog, discardLogger()).RunText(context.Background(), "Software Engineer, Python")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"Python"}, out[0].Job.Skills)
	assert.Equal(t, "Dear Hiring Manager, ...", out[0].Email)
	assert.Equal(t, 2, provider.calls)
}

func TestRunText_NilLogger(t *testing.T) {
	extractor := &fakeExtractor{jobs: []model.JobPosting{{Role: "SRE"}}}
	runner := NewRunner(nil, extractor, &recordingComposer{}, portfolio.NewStatic(nil), nil)

	var out []model.Outreach
	require.NotPanics(t, func() {
		var err error
		out, err = runner.RunText(context.Background(), "x")
		require.NoError(t, err)
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Email for SRE", out[0].Email)
}
