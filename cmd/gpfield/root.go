package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries state shared by every subcommand.
type app struct {
	logLevel  string
	logFormat string
	logOut    io.Writer
	logger    zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logOut: os.Stderr, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "gpfield",
		Short:         "Gaussian Process hyperparameter search and prediction",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.logLevel, a.logFormat, a.logOut)
			if err != nil {
				return err
			}
			a.logger = logger.With().Str("run_id", uuid.NewString()).Str("command", cmd.Name()).Logger()

			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "auto", "log format (auto, console, json)")

	root.AddCommand(
		newOptimizeCmd(a),
		newPredictCmd(a),
		newInspectCmd(a),
	)

	return root
}

// newLogger builds a logger writing to w. The "auto" format picks the
// console writer when w is a terminal and JSON otherwise.
func newLogger(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch strings.ToLower(format) {
	case "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "auto", "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		}
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid --log-format %q: want auto, console or json", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
