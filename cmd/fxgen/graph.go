package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/internal/presentation/graph"
	"github.com/suzuryg/facial-expression-switcher/internal/validator"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [output]",
	Short: "Export a generated layer as a Mermaid diagram",
	Long: `Reads the controller of an output (the installed one by default) and prints one
of its layers as a Mermaid flowchart (graph TD). States with validation issues can be highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		ctrl, _, err := a.controller(cmd.Context(), name)
		if err != nil {
			return err
		}

		layerName, _ := cmd.Flags().GetString("layer")
		layer := ctrl.Layer(layerName)
		if layer == nil {
			return fmt.Errorf("layer %q not found", layerName)
		}

		var overlay *graph.GraphOverlay
		if highlight, _ := cmd.Flags().GetBool("highlight-issues"); highlight {
			overlay = &graph.GraphOverlay{}
			for _, issue := range validator.Validate(ctrl) {
				if issue.Layer == layerName && len(issue.Path) > 0 {
					overlay.Highlighted = append(overlay.Highlighted, issue.Path)
				}
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(layer, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("layer", "l", domain.LayerEmotePlayer, "Layer to render")
	graphCmd.Flags().Bool("highlight-issues", false, "Highlight states reported by validate")
}
