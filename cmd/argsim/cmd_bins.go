package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	argsimilarity "github.com/baditaflorin/go_argument_similarity"
)

var (
	binsTable      string
	binsResults    string
	binsOutDir     string
	binsGoldColumn string
	binsSchemes    []string
)

var binsCmd = &cobra.Command{
	Use:   "bins",
	Short: "Re-score schemes stratified by combined sentence length",
	Long: "Bins reads the merged table and the thresholds of a previous\n" +
		"evaluate run, partitions rows into fixed combined-word-count bins,\n" +
		"and reports mean score, F1 and row count per bin per scheme.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eval, err := argsimilarity.New(
			argsimilarity.WithGoldColumn(binsGoldColumn),
		)
		if err != nil {
			return err
		}
		defer eval.Close()

		table, err := eval.LoadTable(binsTable)
		if err != nil {
			return err
		}
		thresholds, err := eval.LoadThresholds(binsResults)
		if err != nil {
			return err
		}

		schemes := binsSchemes
		if len(schemes) == 0 {
			// Default to every scheme the results table knows about,
			// in deterministic order.
			for scheme := range thresholds {
				schemes = append(schemes, scheme)
			}
			sort.Strings(schemes)
		}

		bins, err := eval.AnalyzeLengthBins(context.Background(), table, schemes, thresholds)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(binsOutDir, 0o755); err != nil {
			return err
		}
		return eval.WriteBins(filepath.Join(binsOutDir, "length_bins.csv"), bins)
	},
}

func init() {
	binsCmd.Flags().StringVar(&binsTable, "table", "", "merged score table")
	binsCmd.Flags().StringVar(&binsResults, "results", "", "results table from a previous evaluate run")
	binsCmd.Flags().StringVar(&binsOutDir, "out-dir", "results", "output directory")
	binsCmd.Flags().StringVar(&binsGoldColumn, "gold-column", "regression_label_binary", "binary gold column")
	binsCmd.Flags().StringArrayVar(&binsSchemes, "scheme", nil, "scheme to analyze (repeatable; default: all schemes in the results table)")
	binsCmd.MarkFlagRequired("table")
	binsCmd.MarkFlagRequired("results")
}
