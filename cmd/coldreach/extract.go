package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/scrape"
)

var extractURL string

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract job postings as JSON",
	Long:  "Extracts job postings from careers page text read from a file, stdin (\"-\" or no argument), or a URL given with --url, and prints them as a JSON array.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "scrape this careers page instead of reading text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := setupClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	var pageText string
	switch {
	case extractURL != "" && len(args) > 0:
		return fmt.Errorf("give either --url or a file, not both")
	case extractURL != "":
		pageText, err = setupFetcher(cfg).FetchText(ctx, extractURL)
	default:
		pageText, err = readInput(cmd, args)
		pageText = scrape.Clean(pageText)
	}
	if err != nil {
		return err
	}

	jobs, err := llm.NewExtractor(client, nil, logger).Extract(ctx, pageText)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []model.JobPosting{}
	}
	logger.Info("extracted jobs", "count", len(jobs))
	return writeJSON(cmd.OutOrStdout(), jobs)
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
