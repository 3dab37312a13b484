package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cyoa/internal/cli"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage archived runs",
}

var resultsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List archived runs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListRuns(cmd.Context(), cfg, os.Stdout)
	},
}

var resultsInspectCmd = &cobra.Command{
	Use:   "inspect <run-id>",
	Short: "Show the results of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return cli.InspectRun(cmd.Context(), cfg, args[0], format, os.Stdout)
	},
}

var resultsRmCmd = &cobra.Command{
	Use:     "rm <run-id>...",
	Aliases: []string{"delete"},
	Short:   "Delete archived runs",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := cli.DeleteRun(cmd.Context(), cfg, id); err != nil {
				return err
			}
			fmt.Printf("Deleted run '%s'\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsListCmd, resultsInspectCmd, resultsRmCmd)
	resultsInspectCmd.Flags().StringP("format", "f", "", "Report format: text, json or markdown")
}
