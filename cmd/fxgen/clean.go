package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/pkg/output"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete generated outputs that are no longer installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushMetrics()

		collector := output.NewCollector(a.store, a.installation,
			output.WithPrefix(a.cfg.Generator.OutputPrefix),
			output.WithLogger(a.logger),
			output.WithHooks(a.metrics.Hooks()),
		)
		cleaned, err := collector.Clean(cmd.Context())
		for _, name := range cleaned {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
