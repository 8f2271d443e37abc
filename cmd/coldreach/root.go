package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/portfolio"
	"github.com/amishk599/coldreach/internal/scrape"
	"github.com/amishk599/coldreach/internal/secrets"
)

const defaultConfigPath = "coldreach.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "coldreach",
	Short:         "Turn a careers page into cold outreach emails",
	Long:          "coldreach scrapes a company careers page, extracts the open roles with an LLM, and drafts a cold email per role citing your most relevant portfolio work.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: COLDREACH_CONFIG env var or ./coldreach.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads .env, resolves the config path and parses it.
// Priority: explicit path arg > COLDREACH_CONFIG env var > "./coldreach.yaml".
// Only the implicit default path may be missing; built-in defaults are used then.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv("COLDREACH_CONFIG")
	}
	if path == "" {
		cfg, err := config.Load(defaultConfigPath)
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return cfg, err
	}
	return config.Load(path)
}

// setupLogger writes to stderr so command output on stdout stays clean.
// Terminals get coloured output.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		opts := slogcolor.DefaultOptions
		opts.Level = logLevel
		opts.MsgColor = color.New(color.FgMagenta)
		opts.SrcFileMode = slogcolor.Nop
		return slog.New(slogcolor.NewHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// setupClient resolves the API key and builds the LLM client.
func setupClient(cfg *config.Config, logger *slog.Logger) (*llm.Client, error) {
	source := cfg.LLM.ResolveAPIKey(secrets.NewKeychain())
	client, err := llm.NewClient(cfg.LLM, nil)
	if err != nil {
		return nil, fmt.Errorf("%w (set %s, llm.api_key, or run `coldreach key set`)", err, cfg.LLM.APIKeyEnv)
	}
	logger.Debug("llm client configured",
		"model", client.Model(),
		"base_url", client.BaseURL(),
		"key_source", source,
	)
	return client, nil
}

func setupFetcher(cfg *config.Config) *scrape.Fetcher {
	httpClient := &http.Client{Timeout: cfg.Scrape.Timeout}
	return scrape.NewFetcher(httpClient, cfg.Scrape.UserAgent)
}

// openCatalog picks the portfolio source: explicit links win, then the
// portfolio database if it exists, else an empty catalog. The returned
// close func is never nil.
func openCatalog(ctx context.Context, cfg *config.Config, links []string, logger *slog.Logger) (portfolio.Catalog, func(), error) {
	nop := func() {}
	if len(links) > 0 {
		logger.Debug("using links from flags", "links", len(links))
		return portfolio.NewStatic(links), nop, nil
	}

	if _, err := os.Stat(cfg.Portfolio.DBPath); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("no portfolio database, emails will cite no links", "db_path", cfg.Portfolio.DBPath)
		return portfolio.NewStatic(nil), nop, nil
	}

	store, err := portfolio.Open(cfg.Portfolio.DBPath, cfg.Portfolio.MaxLinks)
	if err != nil {
		return nil, nop, err
	}
	count, err := store.Count(ctx)
	if err != nil {
		store.Close()
		return nil, nop, err
	}
	logger.Debug("using portfolio database", "db_path", cfg.Portfolio.DBPath, "items", count)
	return store, func() { store.Close() }, nil
}
