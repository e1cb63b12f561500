package kernel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/gpfield/errs"
)

var registry = map[string]Kernel{
	"rbf":                 RBF{},
	"squared_exponential": SquaredExponential{},
	"se":                  SquaredExponential{},
	"rational_quadratic":  RationalQuadratic{},
	"rq":                  RationalQuadratic{},
}

// ByName returns a built-in kernel by name or alias, case-insensitively.
//
// Known names are "rbf", "squared_exponential" ("se") and
// "rational_quadratic" ("rq"). Unknown names return errs.ErrUnknownKernel.
func ByName(name string) (Kernel, error) {
	if k, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}

	return nil, fmt.Errorf("%w: %q (known: %s)", errs.ErrUnknownKernel, name, strings.Join(Names(), ", "))
}

func isBuiltin(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the canonical names of the built-in kernels, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for alias, k := range registry {
		if alias == k.Name() {
			names = append(names, alias)
		}
	}
	slices.Sort(names)

	return names
}

// ParamsFromMap orders named hyperparameter values into the parameter vector
// k expects, then validates it. Every name in k.ParamNames() must be present
// and no other name may appear.
func ParamsFromMap(k Kernel, values map[string]float64) (Params, error) {
	names := k.ParamNames()
	if len(values) != len(names) {
		return nil, fmt.Errorf("%w: %s takes %v, got %d values", errs.ErrInvalidHyperparameter, k.Name(), names, len(values))
	}

	p := make(Params, len(names))
	for i, name := range names {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s needs %q", errs.ErrInvalidHyperparameter, k.Name(), name)
		}
		p[i] = v
	}

	if err := k.Validate(p); err != nil {
		return nil, err
	}

	return p, nil
}
