package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxgen",
	Short: "fxgen generates facial expression controllers",
	Long: `fxgen turns a hierarchical expression menu into an FX controller: gesture
tables, emote state machines, the expression menu and its parameter list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a configuration key, e.g. --set generator.emote_budget=64")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
