package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [output]",
	Short: "Check menus or a generated controller for consistency",
	Long: `Without --menus, checks the controller of an output (the installed one by default)
for dangling transitions, undeclared parameters and unreachable states.
With --menus, loads every menu document and reports the ones that do not decode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if menus, _ := cmd.Flags().GetBool("menus"); menus {
			ids, err := a.menus.ListMenus(cmd.Context())
			if err != nil {
				return err
			}
			failed := 0
			for _, id := range ids {
				if _, err := a.menus.LoadMenu(cmd.Context(), id); err != nil {
					fmt.Fprintf(out, "- %s: %v\n", id, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d menus are invalid", failed, len(ids))
			}
			fmt.Fprintf(out, "%d menus are valid! ✅\n", len(ids))
			return nil
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		ctrl, output, err := a.controller(cmd.Context(), name)
		if err != nil {
			return err
		}
		if err := validator.ValidateController(ctrl); err != nil {
			return fmt.Errorf("validation of %s failed: %w", output, err)
		}
		fmt.Fprintf(out, "Controller %s is valid! ✅\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("menus", false, "Validate menu documents instead of a controller")
}
