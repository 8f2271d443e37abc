package llm

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/extract_jobs.md
var extractJobsPromptRaw string

//go:embed prompts/cold_email.md
var coldEmailPromptRaw string

// ExtractJobsTemplate renders the job extraction prompt. It expects a PageText field.
var ExtractJobsTemplate = template.Must(template.New("extract_jobs").Parse(extractJobsPromptRaw))

// ColdEmailTemplate renders the outreach email prompt. It expects Job, Links and Persona fields.
var ColdEmailTemplate = template.Must(template.New("cold_email").Parse(coldEmailPromptRaw))
