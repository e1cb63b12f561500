package table

import (
	"fmt"
	"strings"

	"github.com/arloliu/gpfield/errs"
)

// Objective selects whether the optimum is the highest or the lowest score.
type Objective uint8

const (
	// Maximize picks the highest score. Cross-validated log-likelihoods use it.
	Maximize Objective = iota
	// Minimize picks the lowest score.
	Minimize
)

func (o Objective) String() string {
	switch o {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return "unknown"
	}
}

// Better reports whether score a beats score b under o. NaN never wins.
func (o Objective) Better(a, b float64) bool {
	if o == Minimize {
		return a < b
	}

	return a > b
}

// Worst returns the score a penalised combination receives under o.
func (o Objective) Worst() float64 {
	if o == Minimize {
		return posInf
	}

	return negInf
}

// ObjectiveFromString parses "maximize"/"max" or "minimize"/"min",
// case-insensitively. The empty string selects Maximize.
func ObjectiveFromString(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "maximize", "max":
		return Maximize, nil
	case "minimize", "min":
		return Minimize, nil
	default:
		return 0, fmt.Errorf("%w: unknown objective %q", errs.ErrInvalidConfig, s)
	}
}
