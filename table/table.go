package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/collision"
	"github.com/arloliu/gpfield/internal/hash"
)

// ScoreColumn is the name of the score column that follows the
// hyperparameter columns.
const ScoreColumn = "log_likelihood"

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Table holds one row per hyperparameter combination: a value per
// hyperparameter column followed by the score.
//
// A Table is filled either with Append, or by index with Set after NewSized.
// Set on distinct rows may run concurrently; every other method must not run
// concurrently with a writer. Accessors return copies.
type Table struct {
	names  []string
	params [][]float64 // params[c][r]
	scores []float64
}

// Row is one table row.
type Row struct {
	// Index is the row position in the table.
	Index int
	// Params maps hyperparameter names to values.
	Params map[string]float64
	// Score is the row score.
	Score float64
}

// New creates an empty table with the given hyperparameter columns.
//
// Returns errs.ErrInvalidColumn when a name is empty, repeated or equal to
// ScoreColumn.
func New(paramNames []string) (*Table, error) {
	return NewSized(paramNames, 0)
}

// NewSized creates a table with rows pre-allocated rows, all zero, ready to
// be filled with Set.
func NewSized(paramNames []string, rows int) (*Table, error) {
	if rows < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", errs.ErrInvalidConfig, rows)
	}
	if err := checkNames(paramNames); err != nil {
		return nil, err
	}

	t := &Table{
		names:  slices.Clone(paramNames),
		params: make([][]float64, len(paramNames)),
		scores: make([]float64, rows),
	}
	for c := range t.params {
		t.params[c] = make([]float64, rows)
	}

	return t, nil
}

func checkNames(paramNames []string) error {
	tracker := collision.NewTracker()
	for _, name := range paramNames {
		if name == ScoreColumn {
			return fmt.Errorf("%w: %q is reserved for the score column", errs.ErrInvalidColumn, name)
		}
		if err := tracker.Track(name, hash.ID(name)); err != nil {
			return err
		}
	}

	return nil
}

// Append adds a row. params must have one value per hyperparameter column.
func (t *Table) Append(params []float64, score float64) error {
	if len(params) != len(t.names) {
		return fmt.Errorf("%w: row has %d parameters, table has %d columns", errs.ErrDimensionMismatch, len(params), len(t.names))
	}

	for c, v := range params {
		t.params[c] = append(t.params[c], v)
	}
	t.scores = append(t.scores, score)

	return nil
}

// Set overwrites row i.
func (t *Table) Set(i int, params []float64, score float64) error {
	if i < 0 || i >= t.Len() {
		return fmt.Errorf("%w: row %d of %d", errs.ErrOutOfBounds, i, t.Len())
	}
	if len(params) != len(t.names) {
		return fmt.Errorf("%w: row has %d parameters, table has %d columns", errs.ErrDimensionMismatch, len(params), len(t.names))
	}

	for c, v := range params {
		t.params[c][i] = v
	}
	t.scores[i] = score

	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.scores)
}

// ParamNames returns the hyperparameter column names in order.
func (t *Table) ParamNames() []string {
	return slices.Clone(t.names)
}

// Columns returns every column name: the hyperparameters then ScoreColumn.
func (t *Table) Columns() []string {
	return append(slices.Clone(t.names), ScoreColumn)
}

// Row returns row i.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.Len() {
		return Row{}, fmt.Errorf("%w: row %d of %d", errs.ErrOutOfBounds, i, t.Len())
	}

	return t.row(i), nil
}

func (t *Table) row(i int) Row {
	params := make(map[string]float64, len(t.names))
	for c, name := range t.names {
		params[name] = t.params[c][i]
	}

	return Row{Index: i, Params: params, Score: t.scores[i]}
}

// Values returns the hyperparameters of row i in column order.
func (t *Table) Values(i int) ([]float64, error) {
	if i < 0 || i >= t.Len() {
		return nil, fmt.Errorf("%w: row %d of %d", errs.ErrOutOfBounds, i, t.Len())
	}

	out := make([]float64, len(t.names))
	for c := range t.names {
		out[c] = t.params[c][i]
	}

	return out, nil
}

// Column returns a copy of the named column. ScoreColumn is accepted.
func (t *Table) Column(name string) ([]float64, error) {
	if name == ScoreColumn {
		return t.Scores(), nil
	}
	if c := slices.Index(t.names, name); c >= 0 {
		return slices.Clone(t.params[c]), nil
	}

	return nil, fmt.Errorf("%w: no column %q", errs.ErrInvalidColumn, name)
}

// Scores returns a copy of the score column.
func (t *Table) Scores() []float64 {
	return slices.Clone(t.scores)
}

// Optimum returns the best row under obj.
//
// Ties resolve to the lowest row index. NaN scores are skipped, and so are
// rows holding obj.Worst(), the score given to penalised combinations.
//
// Returns errs.ErrNoFeasibleCombination when no row qualifies.
func (t *Table) Optimum(obj Objective) (Row, error) {
	best := -1
	for i, s := range t.scores {
		if math.IsNaN(s) || s == obj.Worst() {
			continue
		}
		if best < 0 || obj.Better(s, t.scores[best]) {
			best = i
		}
	}

	if best < 0 {
		return Row{}, fmt.Errorf("%w: %d rows, none with a usable score", errs.ErrNoFeasibleCombination, t.Len())
	}

	return t.row(best), nil
}
