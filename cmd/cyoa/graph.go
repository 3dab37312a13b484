package main

import (
	"os"

	"github.com/aretw0/cyoa/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the document as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the document tree.
With --run, the nodes that wrote results in that archived run are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, _ := cmd.Flags().GetString("run")
		return cli.Graph(cmd.Context(), cfg, args[0], runID, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("run", "", "Archived run to overlay")
}
