package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/portfolio"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage the portfolio link catalog",
}

var portfolioImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import portfolio links from a CSV",
	Long:  "Imports a CSV with Techstack and Links columns into the portfolio database. Links already present are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolioImport,
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolio links",
	RunE:  runPortfolioList,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.AddCommand(portfolioImportCmd)
	portfolioCmd.AddCommand(portfolioListCmd)
}

func runPortfolioImport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	items, err := portfolio.ReadCSV(f)
	if err != nil {
		return err
	}

	store, err := portfolio.Open(cfg.Portfolio.DBPath, cfg.Portfolio.MaxLinks)
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Add(context.Background(), items...)
	if err != nil {
		return err
	}
	logger.Info("portfolio imported",
		"file", args[0],
		"rows", len(items),
		"added", added,
		"skipped", len(items)-added,
		"db_path", cfg.Portfolio.DBPath,
	)
	return nil
}

func runPortfolioList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := portfolio.Open(cfg.Portfolio.DBPath, cfg.Portfolio.MaxLinks)
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := store.All(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-50s %s\n", "Link", "Techstack")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, it := range items {
		fmt.Fprintf(out, "%-50s %s\n", it.Link, it.Techstack)
	}
	fmt.Fprintf(out, "\nTotal: %d links\n", len(items))
	return nil
}
