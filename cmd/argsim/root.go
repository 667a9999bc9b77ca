package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "argsim",
	Short: "Cross-validated threshold evaluation for argument-similarity scores",
	Long: "Argsim merges per-pair similarity scores into one table, derives\n" +
		"F1-optimal decision thresholds by topic-grouped cross-validation,\n" +
		"and re-scores the result stratified by sentence length.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(binsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
