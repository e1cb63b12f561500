package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/gpfield/table"
)

func newInspectCmd(a *app) *cobra.Command {
	var objective string

	cmd := &cobra.Command{
		Use:   "inspect <table file>",
		Short: "Print a stored result table as CSV together with its optimum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd, args[0], objective)
		},
	}

	cmd.Flags().StringVar(&objective, "objective", "maximize", "objective used to pick the optimum (maximize, minimize)")

	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, path, objective string) error {
	obj, err := table.ObjectiveFromString(objective)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	info, err := table.ReadInfo(data)
	if err != nil {
		return err
	}
	a.logger.Info().
		Str("path", path).
		Int("rows", info.Rows).
		Int("columns", info.Columns).
		Str("compression", info.Compression.String()).
		Bool("big_endian", info.BigEndian).
		Int("payload_bytes", info.PayloadBytes).
		Str("checksum", fmt.Sprintf("%016x", info.Checksum)).
		Msg("table header")

	t, err := table.Decode(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := t.WriteCSV(out); err != nil {
		return err
	}

	best, err := t.Optimum(obj)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# optimum (%s): row %d", obj, best.Index)
	for _, name := range t.ParamNames() {
		fmt.Fprintf(out, " %s=%g", name, best.Params[name])
	}
	fmt.Fprintf(out, " %s=%g\n", table.ScoreColumn, best.Score)

	return nil
}
