package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "incorporate",
	Short: "Incorporate runs the company setup questionnaire",
	Long: `Incorporate guides visitors through a short branching questionnaire about
their company and recommends setup services. It runs as an HTTP API, an MCP
server or an interactive terminal chat.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file (INCORPORATE_* env vars override it)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML/JSON question catalog (defaults to the built-in one)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
