package sar

import (
	"fmt"
	"math"
	"strings"

	"github.com/casbin/govaluate"
	"github.com/sarchart/sarchart/internal/errors"
)

// Derivation computes an extra series from existing ones, e.g.
// "total=[rxkB/s]+[txkB/s]". Names that are not plain identifiers must be
// wrapped in brackets.
type Derivation struct {
	Name string
	Expr string
}

// ParseDerivation parses a "name=expression" flag value.
func ParseDerivation(value string) (Derivation, error) {
	name, expr, found := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if !found || name == "" || expr == "" {
		return Derivation{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid derived series %q", value),
			"Use name=expression, for example total=[rxkB/s]+[txkB/s]")
	}
	return Derivation{Name: name, Expr: expr}, nil
}

// evaluatorFunctions are callable from derived series expressions.
func evaluatorFunctions() map[string]govaluate.ExpressionFunction {
	functions := make(map[string]govaluate.ExpressionFunction)
	functions["max"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("max takes two arguments")
		}
		return math.Max(toFloat(args[0]), toFloat(args[1])), nil
	}
	functions["min"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("min takes two arguments")
		}
		return math.Min(toFloat(args[0]), toFloat(args[1])), nil
	}
	return functions
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// Derive appends one series per derivation, evaluated sample by sample.
// Later derivations may refer to earlier ones. Non-finite results are
// stored as zero so they cannot break the y-axis.
func Derive(series []Series, derivations []Derivation) ([]Series, error) {
	if len(derivations) == 0 || len(series) == 0 {
		return series, nil
	}

	functions := evaluatorFunctions()
	out := append([]Series(nil), series...)
	samples := len(series[0].Values)

	for _, d := range derivations {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(d.Expr, functions)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Can't parse derived series %q", d.Name),
				"Wrap column names with special characters in brackets: [%user]")
		}

		byName := make(map[string]int, len(out))
		for i, s := range out {
			byName[s.Name] = i
		}
		for _, v := range expr.Vars() {
			if _, ok := byName[v]; !ok {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Derived series %q refers to unknown column %q", d.Name, v),
					"Only numeric columns left after --include/--exclude can be used.")
			}
		}

		values := make([]float64, samples)
		params := make(map[string]interface{}, len(out))
		for i := 0; i < samples; i++ {
			for name, idx := range byName {
				params[name] = out[idx].Values[i]
			}
			result, err := expr.Evaluate(params)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Can't evaluate derived series %q", d.Name),
					"Check the expression only uses arithmetic on column names.")
			}
			v := toFloat(result)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			values[i] = v
		}
		out = append(out, Series{Name: d.Name, Values: values})
	}

	return out, nil
}
