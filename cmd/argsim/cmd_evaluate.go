package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	argsimilarity "github.com/baditaflorin/go_argument_similarity"
)

var (
	evalConfigPath     string
	evalInput          string
	evalOutDir         string
	evalFolds          int
	evalTopicColumn    string
	evalGoldColumn     string
	evalContinuousGold string
	evalSchemes        []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Derive per-scheme thresholds by topic-grouped cross-validation",
	Long: "Evaluate partitions topics into folds, selects an F1-optimal\n" +
		"threshold per fold from the remaining folds only, and writes the\n" +
		"row-count-weighted aggregate per scheme plus a verbose per-fold log.\n" +
		"Mixed proposition/conclusion schemes are configured via --config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &runConfig{}
		if evalConfigPath != "" {
			loaded, err := loadRunConfig(evalConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		// Flags override the run file.
		if cmd.Flags().Changed("input") || cfg.Input == "" {
			cfg.Input = evalInput
		}
		if cmd.Flags().Changed("out-dir") || cfg.OutputDir == "" {
			cfg.OutputDir = evalOutDir
		}
		if cmd.Flags().Changed("folds") || cfg.FoldCount == 0 {
			cfg.FoldCount = evalFolds
		}
		if cmd.Flags().Changed("topic-column") || cfg.TopicColumn == "" {
			cfg.TopicColumn = evalTopicColumn
		}
		if cmd.Flags().Changed("gold-column") || cfg.GoldColumn == "" {
			cfg.GoldColumn = evalGoldColumn
		}
		if cmd.Flags().Changed("continuous-gold-column") {
			cfg.ContinuousGoldColumn = evalContinuousGold
		}
		for _, column := range evalSchemes {
			cfg.Schemes = append(cfg.Schemes, schemeConfig{Column: column})
		}
		if cfg.Input == "" {
			return fmt.Errorf("no input table (use --input or the config file)")
		}
		if len(cfg.Schemes) == 0 {
			return fmt.Errorf("no schemes to evaluate (use --scheme or the config file)")
		}

		eval, err := argsimilarity.New(
			argsimilarity.WithFoldCount(cfg.FoldCount),
			argsimilarity.WithTopicColumn(cfg.TopicColumn),
			argsimilarity.WithGoldColumn(cfg.GoldColumn),
			argsimilarity.WithContinuousGoldColumn(cfg.ContinuousGoldColumn),
		)
		if err != nil {
			return err
		}
		defer eval.Close()

		table, err := eval.LoadTable(cfg.Input)
		if err != nil {
			return err
		}
		results, err := eval.EvaluateThresholds(context.Background(), table, cfg.toSchemes())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		return eval.WriteResults(cfg.OutputDir, results)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "YAML run configuration file")
	evaluateCmd.Flags().StringVar(&evalInput, "input", "", "merged score table")
	evaluateCmd.Flags().StringVar(&evalOutDir, "out-dir", "results", "output directory")
	evaluateCmd.Flags().IntVar(&evalFolds, "folds", 4, "fold count (must evenly divide the topic count)")
	evaluateCmd.Flags().StringVar(&evalTopicColumn, "topic-column", "topic", "grouping column")
	evaluateCmd.Flags().StringVar(&evalGoldColumn, "gold-column", "regression_label_binary", "binary gold column")
	evaluateCmd.Flags().StringVar(&evalContinuousGold, "continuous-gold-column", "", "continuous gold column enabling correlation output")
	evaluateCmd.Flags().StringArrayVar(&evalSchemes, "scheme", nil, "score column to evaluate (repeatable)")
}
