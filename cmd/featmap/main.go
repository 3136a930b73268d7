// Command featmap runs diffusion-map feature selection: either a full
// experiment sweep from a YAML configuration, or a one-shot selection
// on a CSV dataset.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/featmap/featmap"
	"github.com/featmap/featmap/distance"
	"github.com/featmap/featmap/embed"
	"github.com/featmap/featmap/experiment"
	"github.com/featmap/featmap/selector"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "featmap",
		Short:         "Feature selection via diffusion-map embedding of class-separability distances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(RunCommand(log), SelectCommand(log))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// RunCommand executes a full experiment sweep from a YAML configuration.
func RunCommand(log zerolog.Logger) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "run -c config.yaml",
		Short: "Runs an experiment sweep comparing selection strategies by kNN accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := experiment.LoadConfig(configFile)
			if err != nil {
				return err
			}

			ds, rowErrs, err := experiment.LoadCSV(cfg.Dataset, cfg.LabelColumn)
			if err != nil {
				return err
			}
			for _, re := range rowErrs {
				log.Warn().Int("line", re.Line).Str("error", re.Err).Msg("skipped row")
			}
			log.Info().Str("dataset", ds.Name).
				Int("features", len(ds.Features)).Int("rows", len(ds.Labels)).
				Msg("dataset loaded")

			runner := &experiment.Runner{Config: cfg, Log: log}
			if cfg.ResultsDB != "" {
				store, err := experiment.OpenStore(cfg.ResultsDB)
				if err != nil {
					return err
				}
				defer store.Close()
				runner.Store = store
			}

			res, err := runner.Run(ds)
			if err != nil {
				return err
			}
			if res.Failed > 0 {
				log.Warn().Int("failed", res.Failed).Msg("some combinations degraded")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "experiment configuration file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// SelectCommand runs one selection and prints the chosen feature names.
func SelectCommand(log zerolog.Logger) *cobra.Command {
	var (
		inputFile    string
		labelColumn  string
		k            int
		metricName   string
		strategyName string
		dim          int
		alpha        float64
		epsType      string
		epsFactor    float64
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "select -i data.csv -k 10",
		Short: "Selects k features from a CSV dataset and prints their names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := featmap.DefaultConfig()
			var err error
			if cfg.Metric, err = distance.ParseMetric(metricName); err != nil {
				return err
			}
			if cfg.Strategy, err = selector.ParseStrategy(strategyName); err != nil {
				return err
			}
			if cfg.Eps, err = embed.ParseEpsStrategy(epsType); err != nil {
				return err
			}
			cfg.Dim = dim
			cfg.Alpha = alpha
			cfg.EpsFactor = epsFactor
			cfg.Seed = seed

			ds, rowErrs, err := experiment.LoadCSV(inputFile, labelColumn)
			if err != nil {
				return err
			}
			for _, re := range rowErrs {
				log.Warn().Int("line", re.Line).Str("error", re.Err).Msg("skipped row")
			}

			res, err := featmap.New(cfg).SelectFeatures(ds.Features, ds.Labels, k)
			if err != nil {
				return err
			}
			if len(res.Indices) < k {
				log.Warn().Int("requested", k).Int("selected", len(res.Indices)).
					Msg("clustering found fewer representatives than requested")
			}

			for _, name := range res.Names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input CSV file")
	cmd.Flags().StringVarP(&labelColumn, "label", "l", "label", "label column name")
	cmd.Flags().IntVarP(&k, "count", "k", 0, "number of features to select")
	cmd.Flags().StringVarP(&metricName, "metric", "m", "wasserstein", "distance metric")
	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "kmedoids", "selection strategy")
	cmd.Flags().IntVarP(&dim, "dim", "d", 2, "embedding dimension")
	cmd.Flags().Float64Var(&alpha, "alpha", 1, "kernel normalization exponent")
	cmd.Flags().StringVar(&epsType, "eps-type", "maxmin", "bandwidth strategy (maxmin or fixed)")
	cmd.Flags().Float64Var(&epsFactor, "eps-factor", 100, "bandwidth factor")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for clustering strategies")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}
