package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches nodes that never carry job content.
const noiseSelector = "script, style, noscript, svg, iframe, template, head"

// Fetcher downloads careers pages and reduces them to plain text.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher that identifies itself with userAgent.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// FetchText GETs pageURL and returns its visible body text, cleaned.
func (f *Fetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("scrape %s: not an http(s) URL", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", pageURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scrape %s: parse html: %w", pageURL, err)
	}

	text := DocumentText(doc)
	if text == "" {
		return "", fmt.Errorf("scrape %s: %w", pageURL, ErrEmptyPage)
	}
	return text, nil
}

// ErrEmptyPage is returned when a page has no visible text.
var ErrEmptyPage = errors.New("page has no visible text")

// StatusError reports a careers page that answered with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scrape %s: HTTP %d", e.URL, e.StatusCode)
}

// DocumentText strips non-content nodes from doc and returns its cleaned body text.
// Block-level boundaries become spaces so adjacent cells do not run together.
func DocumentText(doc *goquery.Document) string {
	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	appendText(&sb, root)
	return Clean(sb.String())
}

// appendText writes the text nodes under s in document order, one space apart.
func appendText(sb *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			sb.WriteString(c.Text())
			sb.WriteByte(' ')
		case "#comment":
		default:
			appendText(sb, c)
		}
	})
}
