package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"text/template"

	"github.com/amishk599/coldreach/internal/model"
)

// Extractor turns scraped careers page text into job postings using an LLM.
type Extractor struct {
	provider Provider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewExtractor creates an extractor. A nil tmpl selects ExtractJobsTemplate.
func NewExtractor(provider Provider, tmpl *template.Template, logger *slog.Logger) *Extractor {
	if tmpl == nil {
		tmpl = ExtractJobsTemplate
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// Extract asks the model for the job postings in pageText. A JSON array reply
// is returned in order; a single object is wrapped in a one-element slice.
// Provider errors are returned as-is. Any reply that is not an object or an
// array of objects yields a *model.ExtractionError.
func (e *Extractor) Extract(ctx context.Context, pageText string) ([]model.JobPosting, error) {
	var promptBuf bytes.Buffer
	if err := e.tmpl.Execute(&promptBuf, struct{ PageText string }{
		PageText: pageText,
	}); err != nil {
		return nil, fmt.Errorf("render extraction prompt: %w", err)
	}

	raw, err := e.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return nil, err
	}

	jobs, err := decodePostings(raw)
	if err != nil {
		e.logger.Debug("unparseable extraction reply", "bytes", len(raw), "error", err)
		return nil, &model.ExtractionError{Reply: raw, Err: err}
	}

	e.logger.Debug("extracted jobs", "count", len(jobs))
	return jobs, nil
}

var codeFenceRegex = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)\\s*```$")

// stripCodeFence removes a single markdown fence enclosing the whole reply.
func stripCodeFence(s string) string {
	if m := codeFenceRegex.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// escapeControlChars escapes raw control bytes that appear inside JSON string
// literals, such as a multi-line description with a bare newline. Bytes
// outside strings are left alone, so structural errors still fail to decode.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !inString:
			if c == '"' {
				inString = true
			}
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = false
		case c < 0x20:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// decodePostings tries an array of objects first, then a single object.
func decodePostings(raw string) ([]model.JobPosting, error) {
	text := escapeControlChars(stripCodeFence(strings.TrimSpace(raw)))
	if text == "" {
		return nil, errors.New("empty reply")
	}

	switch text[0] {
	case '[':
		var jobs []model.JobPosting
		if err := json.Unmarshal([]byte(text), &jobs); err != nil {
			return nil, fmt.Errorf("decode job array: %w", err)
		}
		return jobs, nil
	case '{':
		var job model.JobPosting
		if err := json.Unmarshal([]byte(text), &job); err != nil {
			return nil, fmt.Errorf("decode job object: %w", err)
		}
		return []model.JobPosting{job}, nil
	default:
		return nil, fmt.Errorf("reply is not a JSON object or array (starts with %q)", truncate(text, 20))
	}
}
