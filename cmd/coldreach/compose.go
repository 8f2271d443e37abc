package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/model"
)

var composeLinks []string

var composeCmd = &cobra.Command{
	Use:   "compose [job.json|-]",
	Short: "Draft a cold email for a job posting",
	Long:  "Reads a job posting as JSON (an object, or an array as printed by `extract`) and prints a drafted email for each job, citing the given --link values. Without --link the portfolio database is matched against each job's skills.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompose,
}

func init() {
	composeCmd.Flags().StringArrayVarP(&composeLinks, "link", "l", nil, "portfolio link the email may cite (repeatable)")
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	jobs, err := parseJobInput(raw)
	if err != nil {
		return err
	}

	client, err := setupClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	catalog, closeCatalog, err := openCatalog(ctx, cfg, composeLinks, logger)
	if err != nil {
		return fmt.Errorf("open portfolio: %w", err)
	}
	defer closeCatalog()

	composer := llm.NewComposer(client, nil, cfg.Persona)
	out := cmd.OutOrStdout()
	for i, job := range jobs {
		links, err := catalog.Links(ctx, job.Skills)
		if err != nil {
			return fmt.Errorf("match portfolio for %s: %w", job.Role, err)
		}
		email, err := composer.Compose(ctx, job, links)
		if err != nil {
			return err
		}
		if len(jobs) == 1 {
			fmt.Fprintln(out, email)
			continue
		}
		renderOutreach(out, i+1, len(jobs), model.Outreach{Job: job, Links: links, Email: email})
	}
	return nil
}

// parseJobInput accepts a single job object or an array of them.
func parseJobInput(raw string) ([]model.JobPosting, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var jobs []model.JobPosting
		if err := json.Unmarshal([]byte(trimmed), &jobs); err != nil {
			return nil, fmt.Errorf("parse job array: %w", err)
		}
		if len(jobs) == 0 {
			return nil, fmt.Errorf("job array is empty")
		}
		return jobs, nil
	}
	var job model.JobPosting
	if err := json.Unmarshal([]byte(trimmed), &job); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	return []model.JobPosting{job}, nil
}
