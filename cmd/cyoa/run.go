package main

import (
	"context"
	"os"

	"github.com/aretw0/cyoa/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <document>",
	Short: "Evaluate a document interactively",
	Long: `Evaluates an XML or YAML document, asking its questions on the terminal,
and prints the collected results.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Path: args[0]}
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Save, _ = cmd.Flags().GetBool("save")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		_, err := cli.RunDocument(sigCtx, cfg, opts, os.Stdin, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("format", "f", "", "Report format: text, json or markdown (env CYOA_FORMAT)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON prompts and answers)")
	runCmd.Flags().Bool("save", false, "Archive the run in the configured store")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress banner and system messages")
}
