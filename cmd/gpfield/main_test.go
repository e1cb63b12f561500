package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
	"github.com/arloliu/gpfield/table"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-format", "json", "--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestOptimizeAndInspect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "series.txt", "# current speed\n0.1 0.4 0.9\n1.2 1.0 0.6\n0.2 -0.3 -0.6\n-0.5 -0.1 0.3\n")
	cfgPath := writeFile(t, dir, "search.yaml", `
kernel: rbf
ranges:
  - name: l
    start: 1
    stop: 3
    step: 1
  - name: sigma
    values: [0.5, 1]
folds: 3
workers: 2
compression: s2
data_file: series.txt
`)
	outPath := filepath.Join(dir, "table.gpt")
	csvPath := filepath.Join(dir, "table.csv")

	_, err := execute(t, "optimize", "--config", cfgPath, "--out", outPath, "--csv", csvPath)
	require.NoError(t, err)

	blob, err := os.ReadFile(outPath)
	require.NoError(t, err)
	info, err := table.ReadInfo(blob)
	require.NoError(t, err)
	require.Equal(t, 4, info.Rows)
	require.Equal(t, format.CompressionS2, info.Compression)

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "l,sigma,log_likelihood", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "1,0.5,"))

	out, err := execute(t, "inspect", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "l,sigma,log_likelihood\n")
	require.Contains(t, out, "# optimum (maximize): row ")

	t.Run("csv to stdout", func(t *testing.T) {
		out, err := execute(t, "optimize", "-c", cfgPath, "--csv", "-")
		require.NoError(t, err)
		require.Equal(t, string(csvData), out)
	})
}

func TestOptimizeConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  string
		wantErr error
	}{
		{name: "unknown key", config: "kernel: rbf\nbogus: 1\n", wantErr: errs.ErrInvalidConfig},
		{name: "unknown kernel", config: "kernel: matern\nranges: [{name: l, values: [1]}]\ndata: [1, 2, 3]\n", wantErr: errs.ErrUnknownKernel},
		{name: "data and data_file", config: "data: [1, 2]\ndata_file: x.txt\n", wantErr: errs.ErrInvalidConfig},
		{name: "incomplete triple", config: "ranges: [{name: l, start: 1, stop: 2}]\ndata: [1, 2, 3]\n", wantErr: errs.ErrInvalidConfig},
		{name: "values and triple", config: "ranges: [{name: l, values: [1], start: 1, stop: 2, step: 1}]\ndata: [1, 2, 3]\n", wantErr: errs.ErrInvalidConfig},
		{name: "too many folds", config: "ranges: [{name: l, values: [1]}, {name: sigma, values: [1]}]\ndata: [1, 2, 3]\nfolds: 4\n", wantErr: errs.ErrInvalidConfig},
		{name: "bad objective", config: "ranges: [{name: l, values: [1]}, {name: sigma, values: [1]}]\ndata: [1, 2, 3]\nobjective: best\n", wantErr: errs.ErrInvalidConfig},
		{name: "bad policy", config: "ranges: [{name: l, values: [1]}, {name: sigma, values: [1]}]\ndata: [1, 2, 3]\non_singular: retry\n", wantErr: errs.ErrInvalidConfig},
		{name: "bad compression", config: "ranges: [{name: l, values: [1]}, {name: sigma, values: [1]}]\ndata: [1, 2, 3]\ncompression: brotli\n", wantErr: errs.ErrInvalidConfig},
		{name: "empty file", config: "", wantErr: errs.ErrInvalidConfig},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "cfg"+string(rune('a'+i))+".yaml", tt.config)
			_, err := execute(t, "optimize", "--config", path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing flag", func(t *testing.T) {
		_, err := execute(t, "optimize")
		require.Error(t, err)
	})
}

func TestPredict(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "predict.yaml", `
kernel: rbf
params: {l: 1.5, sigma: 1}
tau: 0.001
reference:
  obs: [0.2, 0.8, 1.1, 0.7, 0.1, -0.4]
query: [2.5, 0.5]
`)

	out, err := execute(t, "predict", "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "2.5 "))
	require.True(t, strings.HasPrefix(lines[1], "0.5 "))
	for _, line := range lines {
		require.Len(t, strings.Fields(line), 3)
	}

	t.Run("missing hyperparameter", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "params: {l: 1}\nreference: {obs: [1, 2]}\nquery: [0.5]\n")
		_, err := execute(t, "predict", "-c", path)
		require.ErrorIs(t, err, errs.ErrInvalidHyperparameter)
	})
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "garbage.gpt", "not a table")

	_, err := execute(t, "inspect", path)
	require.Error(t, err)

	_, err = execute(t, "inspect", path, "--objective", "best")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats(strings.NewReader("# header\n1 2.5\n\n  -3e-2\t4\n"), "inline")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2.5, -0.03, 4}, got)

	_, err = parseFloats(strings.NewReader("1 two 3\n"), "inline")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.Contains(t, err.Error(), "inline:1")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger("debug", "json", &buf)
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	logger.Debug().Msg("hello")
	require.Contains(t, buf.String(), `"message":"hello"`)

	buf.Reset()
	logger, err = newLogger("warn", "auto", &buf)
	require.NoError(t, err)
	logger.Warn().Msg("plain")
	require.Contains(t, buf.String(), `"level":"warn"`, "non-terminal writers get JSON")

	_, err = newLogger("loud", "json", &buf)
	require.Error(t, err)
	_, err = newLogger("info", "xml", &buf)
	require.Error(t, err)
}
