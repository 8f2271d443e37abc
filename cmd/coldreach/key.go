package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/secrets"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the LLM API key in the OS keychain",
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the OS keychain",
	Long:  "Reads the API key from stdin and stores it in the OS keychain. It is used when neither llm.api_key nor the API key env var is set.",
	Args:  cobra.NoArgs,
	RunE:  runKeySet,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the API key from the OS keychain",
	Args:  cobra.NoArgs,
	RunE:  runKeyDelete,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return fmt.Errorf("read api key: %w", err)
	}

	if err := secrets.NewKeychain().Set(config.KeyringAccount, line); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}
	logger.Info("api key stored in keychain", "service", secrets.KeyringService, "account", config.KeyringAccount)
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	if err := secrets.NewKeychain().Delete(config.KeyringAccount); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	logger.Info("api key removed from keychain", "service", secrets.KeyringService, "account", config.KeyringAccount)
	return nil
}
