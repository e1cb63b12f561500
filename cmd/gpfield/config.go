package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/kernel"
	"github.com/arloliu/gpfield/search"
	"github.com/arloliu/gpfield/table"
)

// rangeConfig is one hyperparameter axis, either explicit values or an
// arange-style start/stop/step triple.
type rangeConfig struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values,omitempty"`
	Start  *float64  `yaml:"start,omitempty"`
	Stop   *float64  `yaml:"stop,omitempty"`
	Step   *float64  `yaml:"step,omitempty"`
}

type searchConfig struct {
	Kernel      string        `yaml:"kernel"`
	Ranges      []rangeConfig `yaml:"ranges"`
	Tau         *float64      `yaml:"tau,omitempty"`
	Folds       int           `yaml:"folds,omitempty"`
	Window      int           `yaml:"window,omitempty"`
	Workers     int           `yaml:"workers,omitempty"`
	Objective   string        `yaml:"objective,omitempty"`
	OnSingular  string        `yaml:"on_singular,omitempty"`
	Compression string        `yaml:"compression,omitempty"`
	CondLimit   *float64      `yaml:"condition_limit,omitempty"`
	Data        []float64     `yaml:"data,omitempty"`
	DataFile    string        `yaml:"data_file,omitempty"`
}

type referenceConfig struct {
	Coords  []float64 `yaml:"coords,omitempty"`
	Obs     []float64 `yaml:"obs,omitempty"`
	ObsFile string    `yaml:"obs_file,omitempty"`
}

type predictConfig struct {
	Kernel    string             `yaml:"kernel"`
	Params    map[string]float64 `yaml:"params"`
	Tau       *float64           `yaml:"tau,omitempty"`
	Window    int                `yaml:"window,omitempty"`
	Reference referenceConfig    `yaml:"reference"`
	Query     []float64          `yaml:"query"`
}

// readYAML decodes path into out, rejecting unknown keys.
func readYAML(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s is empty", errs.ErrInvalidConfig, path)
		}
		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidConfig, path, err)
	}

	return nil
}

func loadSearchConfig(path string) (*searchConfig, error) {
	var cfg searchConfig
	if err := readYAML(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.DataFile != "" {
		if len(cfg.Data) > 0 {
			return nil, fmt.Errorf("%w: set either data or data_file, not both", errs.ErrInvalidConfig)
		}
		cfg.DataFile = resolvePath(path, cfg.DataFile)
	}

	return &cfg, nil
}

func loadPredictConfig(path string) (*predictConfig, error) {
	var cfg predictConfig
	if err := readYAML(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Reference.ObsFile != "" {
		if len(cfg.Reference.Obs) > 0 {
			return nil, fmt.Errorf("%w: set either reference.obs or reference.obs_file, not both", errs.ErrInvalidConfig)
		}
		cfg.Reference.ObsFile = resolvePath(path, cfg.Reference.ObsFile)
	}

	return &cfg, nil
}

// resolvePath interprets rel relative to the directory of the config file.
func resolvePath(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(filepath.Dir(configPath), rel)
}

// kernelByName returns the named kernel, RBF when name is empty.
func kernelByName(name string) (kernel.Kernel, error) {
	if name == "" {
		return kernel.RBF{}, nil
	}

	return kernel.ByName(name)
}

// series returns the inline data or reads the data file.
func (c *searchConfig) series() ([]float64, error) {
	if c.DataFile != "" {
		return readFloats(c.DataFile)
	}

	return c.Data, nil
}

func (c *searchConfig) ranges() ([]search.Range, error) {
	out := make([]search.Range, 0, len(c.Ranges))
	for _, r := range c.Ranges {
		values, err := r.values()
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", r.Name, err)
		}
		out = append(out, search.Range{Name: r.Name, Values: values})
	}

	return out, nil
}

func (r rangeConfig) values() ([]float64, error) {
	triple := r.Start != nil || r.Stop != nil || r.Step != nil
	switch {
	case triple && len(r.Values) > 0:
		return nil, fmt.Errorf("%w: give values or start/stop/step, not both", errs.ErrInvalidConfig)
	case triple:
		if r.Start == nil || r.Stop == nil || r.Step == nil {
			return nil, fmt.Errorf("%w: start, stop and step are all required", errs.ErrInvalidConfig)
		}
		return search.Arange(*r.Start, *r.Stop, *r.Step)
	default:
		return r.Values, nil
	}
}

func (c *searchConfig) options() ([]search.Option, error) {
	var opts []search.Option
	if c.Tau != nil {
		opts = append(opts, search.WithTau(*c.Tau))
	}
	if c.Folds != 0 {
		opts = append(opts, search.WithFolds(c.Folds))
	}
	if c.Window != 0 {
		opts = append(opts, search.WithWindow(c.Window))
	}
	if c.Workers != 0 {
		opts = append(opts, search.WithWorkers(c.Workers))
	}
	if c.Objective != "" {
		obj, err := table.ObjectiveFromString(c.Objective)
		if err != nil {
			return nil, err
		}
		opts = append(opts, search.WithObjective(obj))
	}
	if c.CondLimit != nil {
		opts = append(opts, search.WithConditionLimit(*c.CondLimit))
	}
	policy, err := search.SingularPolicyFromString(c.OnSingular)
	if err != nil {
		return nil, err
	}
	opts = append(opts, search.WithSingularPolicy(policy))

	return opts, nil
}

func (c *searchConfig) compression() (format.CompressionType, error) {
	if c.Compression == "" {
		return format.CompressionZstd, nil
	}

	return format.ParseCompression(c.Compression)
}

// reference returns coordinates and observations. Missing coordinates
// default to the indices 0..len(obs)-1.
func (c *predictConfig) reference() (coords, obs []float64, err error) {
	obs = c.Reference.Obs
	if c.Reference.ObsFile != "" {
		if obs, err = readFloats(c.Reference.ObsFile); err != nil {
			return nil, nil, err
		}
	}

	coords = c.Reference.Coords
	if len(coords) == 0 {
		coords = make([]float64, len(obs))
		for i := range coords {
			coords[i] = float64(i)
		}
	}

	return coords, obs, nil
}

func (c *predictConfig) options() []gp.Option {
	var opts []gp.Option
	if c.Tau != nil {
		opts = append(opts, gp.WithTau(*c.Tau))
	}
	if c.Window != 0 {
		opts = append(opts, gp.WithWindow(c.Window))
	}

	return opts
}

// readFloats reads whitespace-separated numbers. Lines starting with '#'
// are comments.
func readFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseFloats(f, path)
}

func parseFloats(r io.Reader, name string) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %q is not a number", errs.ErrInvalidConfig, name, line, field)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return out, nil
}
