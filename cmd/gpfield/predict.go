package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/kernel"
)

func newPredictCmd(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print the posterior mean and variance at query coordinates",
		Long: `Condition a kernel with fixed hyperparameters on reference observations
and print one "coord mean variance" line per query coordinate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPredict(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "predict config file (YAML)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (a *app) runPredict(cmd *cobra.Command, configPath string) error {
	cfg, err := loadPredictConfig(configPath)
	if err != nil {
		return err
	}

	k, err := kernelByName(cfg.Kernel)
	if err != nil {
		return err
	}
	p, err := kernel.ParamsFromMap(k, cfg.Params)
	if err != nil {
		return err
	}
	coords, obs, err := cfg.reference()
	if err != nil {
		return err
	}

	post, err := gp.Conditional(cfg.Query, coords, obs, k, p, cfg.options()...)
	if err != nil {
		return err
	}
	a.logger.Info().
		Str("kernel", k.Name()).
		Int("reference", len(coords)).
		Int("query", len(cfg.Query)).
		Float64("log_det", post.LogDetNoisyRef()).
		Msg("posterior computed")

	w := bufio.NewWriter(cmd.OutOrStdout())
	mean, variance := post.MeanByInput(), post.VarianceByInput()
	for i, q := range cfg.Query {
		fmt.Fprintf(w, "%s %s %s\n",
			strconv.FormatFloat(q, 'g', -1, 64),
			strconv.FormatFloat(mean[i], 'g', -1, 64),
			strconv.FormatFloat(variance[i], 'g', -1, 64))
	}

	return w.Flush()
}
