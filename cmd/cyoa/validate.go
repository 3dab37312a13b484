package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cyoa/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a document for consistency",
	Long: `Walks the document in evaluation order and reports macros loaded before they are
saved, invalid weights and ranges, non-numeric attributes and nodes that would be skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(cmd.Context(), args[0], os.Stdout); err != nil {
			return err
		}
		fmt.Println("Document is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
