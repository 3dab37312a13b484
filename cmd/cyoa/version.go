package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cyoa"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cyoa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cyoa version %s\n", strings.TrimSpace(cyoa.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
