package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/internal/collision"
	"github.com/arloliu/gpfield/internal/hash"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/arloliu/gpfield/kernel"
	"github.com/arloliu/gpfield/table"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Result is the outcome of a grid search.
type Result struct {
	// Best maps hyperparameter names to the winning values.
	Best map[string]float64
	// BestIndex is the winning row in Table.
	BestIndex int
	// BestScore is the summed cross-validation log-likelihood of the winner.
	BestScore float64
	// Table holds every combination in grid order with its score.
	Table *table.Table
	// Failures lists penalised combinations in grid order. It is empty
	// under FailFast.
	Failures []Failure
	// Objective is the selection rule used to pick Best.
	Objective table.Objective
	// Evaluations is the number of fold evaluations, combinations × folds.
	Evaluations int
}

// foldData is the precomputed, read-only input of one fold.
type foldData struct {
	query []float64
	ref   []float64
	obs   []float64
	yTest []float64
}

// Optimize runs a k-fold cross-validated grid search over the Cartesian
// product of ranges and returns every combination's score together with the
// best one.
//
// Each fold holds out a contiguous block of data, conditions the process on
// the remaining values with coordinates equal to their indices, and scores
// the held-out block with gp.Posterior.CVLogLikelihood. A combination's score
// is the sum of its fold scores.
//
// Parameters:
//   - ctx: Cancels the search; checked before every fold
//   - data: Observed series, indexed 0..n-1; it is never modified
//   - ranges: Ordered hyperparameter axes; names must match k.ParamNames()
//   - k: Covariance kernel
//   - opts: Search options
//
// Returns:
//   - *Result: Table in grid order plus the optimum
//   - error: errs.ErrInvalidConfig before any work starts, a *FoldError
//     under FailFast, errs.ErrNoFeasibleCombination when every combination
//     was penalised, or ctx.Err()
func Optimize(ctx context.Context, data []float64, ranges []Range, k kernel.Kernel, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	order, err := validate(data, ranges, k, cfg)
	if err != nil {
		return nil, err
	}

	combos := Grid(ranges)
	params := make([]kernel.Params, len(combos))
	for i, combo := range combos {
		p := make(kernel.Params, len(combo))
		for d, v := range combo {
			p[order[d]] = v
		}
		if err := k.Validate(p); err != nil {
			return nil, fmt.Errorf("%w: combination %d (%s): %w",
				errs.ErrInvalidConfig, i, formatParams(paramMap(ranges, combo)), err)
		}
		params[i] = p
	}

	folds, err := KFold(len(data), cfg.Folds)
	if err != nil {
		return nil, err
	}
	inputs := makeFoldData(data, folds)

	names := make([]string, len(ranges))
	for i, r := range ranges {
		names[i] = r.Name
	}
	tbl, err := table.NewSized(names, len(combos))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	cache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.With().Str("kernel", k.Name()).Logger()
	logger.Info().
		Int("combinations", len(combos)).
		Int("folds", cfg.Folds).
		Int("workers", cfg.Workers).
		Int("evaluations", Cost(ranges, cfg.Folds)).
		Msg("grid search started")
	start := time.Now()

	gpOpts := []gp.Option{
		gp.WithTau(cfg.Tau),
		gp.WithWindow(cfg.Window),
		gp.WithConditionLimit(cfg.ConditionLimit),
		gp.WithCache(cache),
	}

	var (
		mu       sync.Mutex
		done     int
		failures []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range combos {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			score, fold, err := evaluate(gctx, inputs, k, params[i], gpOpts)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return err
				}
				if cfg.OnSingular != Penalize || !errors.Is(err, errs.ErrSingularMatrix) {
					return &FoldError{Combination: i, Params: paramMap(ranges, combos[i]), Fold: fold, Err: err}
				}

				score = cfg.Objective.Worst()
				logger.Warn().Err(err).Int("combination", i).Int("fold", fold).Msg("combination penalised")

				mu.Lock()
				failures = append(failures, Failure{Combination: i, Params: paramMap(ranges, combos[i]), Fold: fold, Err: err})
				mu.Unlock()
			}

			if err := tbl.Set(i, combos[i], score); err != nil {
				return err
			}
			logger.Debug().Int("combination", i).Floats64("params", combos[i]).Float64("score", score).Msg("combination scored")

			mu.Lock()
			done++
			if cfg.Progress != nil {
				cfg.Progress(done, len(combos))
			}
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("grid search aborted")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(failures, func(a, b Failure) int { return a.Combination - b.Combination })

	best, err := tbl.Optimum(cfg.Objective)
	if err != nil {
		return nil, fmt.Errorf("%d of %d combinations penalised: %w", len(failures), len(combos), err)
	}

	if cache != nil {
		hits, misses := cache.Stats()
		logger.Debug().Uint64("cache_hits", hits).Uint64("cache_misses", misses).Msg("gram cache")
	}

	bestDict := zerolog.Dict()
	for _, name := range names {
		bestDict.Float64(name, best.Params[name])
	}
	logger.Info().
		Dict("best", bestDict).
		Float64("score", best.Score).
		Int("failures", len(failures)).
		Dur("elapsed", time.Since(start)).
		Msg("grid search finished")

	return &Result{
		Best:        best.Params,
		BestIndex:   best.Index,
		BestScore:   best.Score,
		Table:       tbl,
		Failures:    failures,
		Objective:   cfg.Objective,
		Evaluations: len(combos) * cfg.Folds,
	}, nil
}

// evaluate scores one combination over every fold. On failure it returns the
// failing fold index.
func evaluate(ctx context.Context, inputs []foldData, k kernel.Kernel, p kernel.Params, gpOpts []gp.Option) (float64, int, error) {
	scores := make([]float64, len(inputs))
	for f, in := range inputs {
		if err := ctx.Err(); err != nil {
			return 0, f, err
		}

		post, err := gp.Conditional(in.query, in.ref, in.obs, k, p, gpOpts...)
		if err != nil {
			return 0, f, err
		}
		score, err := post.CVLogLikelihood(in.yTest)
		if err != nil {
			return 0, f, err
		}
		scores[f] = score
	}

	return floats.Sum(scores), 0, nil
}

// validate checks everything that can be checked before work starts and
// returns, for every range, the position of its name in k.ParamNames().
func validate(data []float64, ranges []Range, k kernel.Kernel, cfg Config) ([]int, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w: no data", errs.ErrInvalidConfig, errs.ErrEmptyInput)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %w: data[%d] = %v", errs.ErrInvalidConfig, errs.ErrNonFinite, i, v)
		}
	}
	if k == nil {
		return nil, fmt.Errorf("%w: nil kernel", errs.ErrInvalidConfig)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no hyperparameter ranges", errs.ErrInvalidConfig)
	}

	tracker := collision.NewTracker()
	for _, r := range ranges {
		if err := tracker.Track(r.Name, hash.ID(r.Name)); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
		}
		if len(r.Values) == 0 {
			return nil, fmt.Errorf("%w: range %q has no values", errs.ErrInvalidConfig, r.Name)
		}
		for _, v := range r.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: range %q holds non-finite value %v", errs.ErrInvalidConfig, r.Name, v)
			}
		}
	}

	kernelNames := k.ParamNames()
	if len(kernelNames) != len(ranges) {
		return nil, fmt.Errorf("%w: kernel %s takes %v, ranges give %d axes",
			errs.ErrInvalidConfig, k.Name(), kernelNames, len(ranges))
	}
	order := make([]int, len(ranges))
	for i, r := range ranges {
		pos := slices.Index(kernelNames, r.Name)
		if pos < 0 {
			return nil, fmt.Errorf("%w: kernel %s has no hyperparameter %q (want %v)",
				errs.ErrInvalidConfig, k.Name(), r.Name, kernelNames)
		}
		order[i] = pos
	}

	if cfg.Folds < 2 || cfg.Folds > len(data) {
		return nil, fmt.Errorf("%w: need 2 <= folds <= %d data points, got %d folds",
			errs.ErrInvalidConfig, len(data), cfg.Folds)
	}

	return order, nil
}

func makeFoldData(data []float64, folds []Fold) []foldData {
	out := make([]foldData, len(folds))
	for f, fold := range folds {
		in := foldData{
			query: make([]float64, len(fold.Test)),
			ref:   make([]float64, len(fold.Train)),
			obs:   make([]float64, len(fold.Train)),
			yTest: make([]float64, len(fold.Test)),
		}
		for j, idx := range fold.Test {
			in.query[j] = float64(idx)
			in.yTest[j] = data[idx]
		}
		for j, idx := range fold.Train {
			in.ref[j] = float64(idx)
			in.obs[j] = data[idx]
		}
		out[f] = in
	}

	return out
}

func newCache(cfg Config) (*kernel.Cache, error) {
	size := cfg.CacheSize
	if size == autoCacheSize {
		size = 2 * cfg.Workers
	}
	if size == 0 {
		return nil, nil
	}

	return kernel.NewCache(size)
}

func paramMap(ranges []Range, combo []float64) map[string]float64 {
	m := make(map[string]float64, len(ranges))
	for i, r := range ranges {
		m[r.Name] = combo[i]
	}

	return m
}
