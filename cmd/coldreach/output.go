package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/coldreach/internal/model"
)

var (
	jobTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	emailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// renderOutreach writes one job and its drafted email for a human reader.
func renderOutreach(w io.Writer, idx, total int, o model.Outreach) {
	fmt.Fprintln(w, jobTitleStyle.Render(fmt.Sprintf("[%d/%d] %s", idx, total, nonEmpty(o.Job.Role, "(untitled role)"))))
	if o.Job.Experience != "" {
		fmt.Fprintf(w, "%s %s\n", detailLabelStyle.Render("Experience:"), o.Job.Experience)
	}
	if len(o.Job.Skills) > 0 {
		fmt.Fprintf(w, "%s %s\n", detailLabelStyle.Render("Skills:"), strings.Join(o.Job.Skills, ", "))
	}
	if len(o.Links) > 0 {
		fmt.Fprintf(w, "%s %s\n", detailLabelStyle.Render("Links:"), strings.Join(o.Links, ", "))
	}
	fmt.Fprintln(w, emailBorderStyle.Render(strings.TrimSpace(o.Email)))
	fmt.Fprintln(w)
}

// outreachJSON is the machine-readable form of a pipeline result.
type outreachJSON struct {
	Job   model.JobPosting `json:"job"`
	Links []string         `json:"links"`
	Email string           `json:"email"`
}

func writeOutreachJSON(w io.Writer, results []model.Outreach) error {
	out := make([]outreachJSON, 0, len(results))
	for _, o := range results {
		links := o.Links
		if links == nil {
			links = []string{}
		}
		out = append(out, outreachJSON{Job: o.Job, Links: links, Email: o.Email})
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
