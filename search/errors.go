package search

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FoldError reports the combination and fold that aborted a search.
type FoldError struct {
	// Combination is the row index of the failing combination.
	Combination int
	// Params maps hyperparameter names to the failing values.
	Params map[string]float64
	// Fold is the zero-based fold index.
	Fold int
	// Err is the underlying error, usually wrapping errs.ErrSingularMatrix.
	Err error
}

func (e *FoldError) Error() string {
	return fmt.Sprintf("combination %d (%s) fold %d: %v", e.Combination, formatParams(e.Params), e.Fold, e.Err)
}

func (e *FoldError) Unwrap() error {
	return e.Err
}

// Failure records a combination that was penalised instead of aborting the
// search.
type Failure struct {
	Combination int
	Params      map[string]float64
	Fold        int
	Err         error
}

// formatParams renders params sorted by name: "l=0.5, sigma=1".
func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(params[name], 'g', -1, 64))
	}

	return sb.String()
}
