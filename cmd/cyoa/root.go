package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cyoa/internal/cli"
	"github.com/spf13/cobra"
)

// cfg is loaded from the environment before any command runs; flags override it.
var cfg cli.Config

var rootCmd = &cobra.Command{
	Use:   "cyoa",
	Short: "CYOA evaluates choose-your-own-adventure documents",
	Long: `CYOA walks an XML or YAML document of questions, weighted random draws,
comparisons and reusable macros, and reports the results it collected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := cli.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return applyFlags(cmd)
	},
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
	flags := rootCmd.PersistentFlags()
	flags.Uint64("seed", 0, "Seed for reproducible random draws (env CYOA_SEED)")
	flags.Bool("debug", false, "Log evaluation steps to stderr (env CYOA_DEBUG)")
	flags.String("log-file", "", "Also write JSON logs to this file (env CYOA_LOG_FILE)")
	flags.String("store", "", "Run archive: memory, file or redis (env CYOA_STORE)")
	flags.String("runs-dir", "", "Directory of the file archive (env CYOA_RUNS_DIR)")
	flags.String("redis-addr", "", "Redis address for the redis archive (env CYOA_REDIS_ADDR)")
	flags.String("separator", "", "Separator for list values in reports (env CYOA_LIST_SEPARATOR)")
}

// applyFlags overrides environment values with explicitly set flags.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Seed = &seed
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("runs-dir") {
		cfg.RunsDir, _ = flags.GetString("runs-dir")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("separator") {
		cfg.ListSeparator, _ = flags.GetString("separator")
	}
	return cfg.Validate()
}
