package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.yaml"

var rootCmd = &cobra.Command{
	Use:           "vocational-profile",
	Short:         "Vocational test service",
	Long:          "Records test answers over HTTP and Telegram and computes a vocational profile once a test is complete.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides CONFIG_PATH env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// resolveConfigPath returns the config path using --config flag (highest priority),
// then CONFIG_PATH env var, then the default path.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p, nil
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		return "", errors.New("config not found: pass --config or set CONFIG_PATH")
	}
	return defaultConfigPath, nil
}
