package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/gpfield/search"
	"github.com/arloliu/gpfield/table"
)

func newOptimizeCmd(a *app) *cobra.Command {
	var (
		configPath string
		outPath    string
		csvPath    string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run a cross-validated hyperparameter grid search",
		Long: `Run a k-fold cross-validated grid search described by a YAML config and
log the best hyperparameters. The full result table can be written as a
binary table (--out) and as CSV (--csv, "-" for stdout).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOptimize(cmd, configPath, outPath, csvPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "search config file (YAML)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result table to this file")
	cmd.Flags().StringVar(&csvPath, "csv", "", `write the result table as CSV ("-" for stdout)`)
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (a *app) runOptimize(cmd *cobra.Command, configPath, outPath, csvPath string) error {
	cfg, err := loadSearchConfig(configPath)
	if err != nil {
		return err
	}

	k, err := kernelByName(cfg.Kernel)
	if err != nil {
		return err
	}
	data, err := cfg.series()
	if err != nil {
		return err
	}
	ranges, err := cfg.ranges()
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	compression, err := cfg.compression()
	if err != nil {
		return err
	}

	logger := a.logger.With().Str("config", configPath).Logger()
	opts = append(opts,
		search.WithLogger(logger),
		search.WithProgress(progressLogger(logger, time.Now())),
	)

	res, err := search.Optimize(cmd.Context(), data, ranges, k, opts...)
	if err != nil {
		return err
	}

	best := zerolog.Dict()
	for _, r := range ranges {
		best.Float64(r.Name, res.Best[r.Name])
	}
	logger.Info().
		Dict("best", best).
		Float64("score", res.BestScore).
		Int("row", res.BestIndex).
		Str("objective", res.Objective.String()).
		Int("failures", len(res.Failures)).
		Msg("best hyperparameters")
	for _, f := range res.Failures {
		logger.Debug().Int("combination", f.Combination).Int("fold", f.Fold).Err(f.Err).Msg("penalised combination")
	}

	if outPath != "" {
		blob, err := res.Table.Encode(table.WithCompression(compression))
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, blob, 0o644); err != nil {
			return err
		}
		logger.Info().Str("path", outPath).Int("bytes", len(blob)).Str("compression", compression.String()).Msg("table written")
	}

	if csvPath != "" {
		if err := writeCSV(cmd.OutOrStdout(), csvPath, res.Table); err != nil {
			return err
		}
	}

	return nil
}

// progressLogger logs search progress at most once per second and always on
// completion.
func progressLogger(logger zerolog.Logger, start time.Time) func(done, total int) {
	last := start

	return func(done, total int) {
		now := time.Now()
		if done != total && now.Sub(last) < time.Second {
			return
		}
		last = now
		logger.Debug().Int("done", done).Int("total", total).Dur("elapsed", now.Sub(start)).Msg("progress")
	}
}

func writeCSV(stdout io.Writer, path string, t *table.Table) error {
	if path == "-" {
		return t.WriteCSV(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
