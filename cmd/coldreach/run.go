package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/pipeline"
)

var (
	runLinks []string
	runJSON  bool
)

var runCmd = &cobra.Command{
	Use:   "run <careers-url>",
	Short: "Scrape a careers page and draft an email per job",
	Long:  "Fetches the careers page, extracts job postings with the LLM, matches portfolio links to each job's skills, and drafts one cold email per job.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runLinks, "link", "l", nil, "portfolio link to offer for every job (repeatable; overrides the portfolio database)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(runCmd)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runRun(cmd *cobra.Command, args []string) error {
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

	catalog, closeCatalog, err := openCatalog(ctx, cfg, runLinks, logger)
	if err != nil {
		return fmt.Errorf("open portfolio: %w", err)
	}
	defer closeCatalog()

	runner := pipeline.NewRunner(
		setupFetcher(cfg),
		llm.NewExtractor(client, nil, logger),
		llm.NewComposer(client, nil, cfg.Persona),
		catalog,
		logger,
	)

	logger.Info("scraping careers page", "url", args[0], "model", client.Model())
	results, err := runner.Run(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if runJSON {
		return writeOutreachJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No job postings found on the page.")
		return nil
	}
	for i, o := range results {
		renderOutreach(out, i+1, len(results), o)
	}
	return nil
}
