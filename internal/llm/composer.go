package llm

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/model"
)

// Composer drafts cold outreach emails for job postings.
type Composer struct {
	provider Provider
	tmpl     *template.Template
	persona  config.PersonaConfig
}

// NewComposer creates a composer writing as persona. A nil tmpl selects ColdEmailTemplate.
func NewComposer(provider Provider, tmpl *template.Template, persona config.PersonaConfig) *Composer {
	if tmpl == nil {
		tmpl = ColdEmailTemplate
	}
	return &Composer{
		provider: provider,
		tmpl:     tmpl,
		persona:  persona,
	}
}

// Compose returns the model's email for job, citing whichever of links it
// picks. The reply is returned verbatim.
func (c *Composer) Compose(ctx context.Context, job model.JobPosting, links []string) (string, error) {
	var promptBuf bytes.Buffer
	if err := c.tmpl.Execute(&promptBuf, struct {
		Job     string
		Links   []string
		Persona config.PersonaConfig
	}{
		Job:     job.String(),
		Links:   links,
		Persona: c.persona,
	}); err != nil {
		return "", fmt.Errorf("render email prompt: %w", err)
	}

	return c.provider.Complete(ctx, promptBuf.String())
}
