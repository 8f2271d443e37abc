package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration without calling the LLM",
	Long:  "Loads the config, resolves the API key, and constructs the LLM client. No network request is made.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := setupClient(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s %s\n", "Model:", client.Model())
	fmt.Fprintf(out, "%-12s %s\n", "Endpoint:", client.BaseURL())
	fmt.Fprintf(out, "%-12s %s\n", "API key:", cfg.LLM.MaskedKey())
	fmt.Fprintf(out, "%-12s %s, %s at %s\n", "Persona:", cfg.Persona.Name, cfg.Persona.Title, cfg.Persona.Company)
	fmt.Fprintf(out, "%-12s %s (max %d links per job)\n", "Portfolio:", cfg.Portfolio.DBPath, cfg.Portfolio.MaxLinks)
	logger.Info("client constructed successfully")
	return nil
}
