package portfolio

import "context"

// Item is one portfolio entry: a project link and the tech stack it showcases.
type Item struct {
	ID        string
	Techstack string
	Link      string
}

// Catalog supplies the portfolio links worth citing for a set of job skills.
type Catalog interface {
	Links(ctx context.Context, skills []string) ([]string, error)
}

// Static is a fixed list of links, returned whole for every job.
type Static struct {
	links []string
}

// Ensure Static and Store implement Catalog.
var (
	_ Catalog = (*Static)(nil)
	_ Catalog = (*Store)(nil)
)

// NewStatic returns a catalog that always offers links.
func NewStatic(links []string) *Static {
	return &Static{links: links}
}

// Links returns a copy of the configured links.
func (s *Static) Links(_ context.Context, _ []string) ([]string, error) {
	out := make([]string, len(s.links))
	copy(out, s.links)
	return out, nil
}
