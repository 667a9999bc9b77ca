package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	argsimilarity "github.com/baditaflorin/go_argument_similarity"
	"github.com/baditaflorin/go_argument_similarity/internal/core/merge"
)

var (
	mergeBase        string
	mergeOut         string
	mergeScoreFiles  []string
	mergeTextColumns []string
	mergeWithLengths string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a base corpus table with row-aligned score files",
	Long: "Merge attaches one or more single-column score files to the base\n" +
		"table by row order and derives sentence/combined word counts.\n" +
		"Score files are given as scheme=path pairs, e.g.\n" +
		"  --score standard=scores_standard.txt --score conclusion_concept=cc.txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		withLengths, err := merge.ParseBoolToken(mergeWithLengths)
		if err != nil {
			return err
		}
		if len(mergeTextColumns) != 2 {
			return fmt.Errorf("--text-columns wants exactly two names, got %d", len(mergeTextColumns))
		}

		eval, err := argsimilarity.New(
			argsimilarity.WithTextColumns(mergeTextColumns[0], mergeTextColumns[1]),
			argsimilarity.WithLengthComputation(withLengths),
		)
		if err != nil {
			return err
		}
		defer eval.Close()

		base, err := eval.LoadTable(mergeBase)
		if err != nil {
			return err
		}

		scores := make([]argsimilarity.ScoreColumn, 0, len(mergeScoreFiles))
		for _, pair := range mergeScoreFiles {
			name, path, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid --score %q (want scheme=path)", pair)
			}
			values, err := eval.LoadScoreColumn(path)
			if err != nil {
				return err
			}
			scores = append(scores, argsimilarity.ScoreColumn{Name: name, Values: values})
		}

		table, err := eval.BuildScoreTable(context.Background(), base, scores)
		if err != nil {
			return err
		}
		return eval.WriteTable(mergeOut, table)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeBase, "base", "", "base corpus table (CSV with header)")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "merged.csv", "merged table output path")
	mergeCmd.Flags().StringArrayVar(&mergeScoreFiles, "score", nil, "scheme=path score file (repeatable)")
	mergeCmd.Flags().StringSliceVar(&mergeTextColumns, "text-columns",
		[]string{merge.DefaultTextColumnA, merge.DefaultTextColumnB}, "names of the two sentence columns")
	mergeCmd.Flags().StringVar(&mergeWithLengths, "with-lengths", "true", "compute word-count columns (true/false/0/1)")
	mergeCmd.MarkFlagRequired("base")
}
