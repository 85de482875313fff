// Package search performs exhaustive hyperparameter grid search with
// cross-validated scoring.
package search

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/evaluate"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/workerpool"
)

// ConfigurationError reports a grid key the pipeline does not recognize.
// It is raised before any fitting work starts.
type ConfigurationError struct {
	Param string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("search: pipeline has no parameter %q", e.Param)
}

// Grid maps a parameter name to its candidate values. The number of
// combinations is the product of the per-parameter candidate counts.
type Grid map[string][]interface{}

// Combinations enumerates every parameter assignment in a stable order:
// keys are sorted, and the last key's candidates vary fastest. This order
// is what breaks score ties.
func (g Grid) Combinations() []map[string]interface{} {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 1
	for _, k := range keys {
		total *= len(g[k])
	}
	if len(keys) == 0 || total == 0 {
		return nil
	}

	combos := make([]map[string]interface{}, 0, total)
	odometer := make([]int, len(keys))
	for {
		combo := make(map[string]interface{}, len(keys))
		for i, k := range keys {
			combo[k] = g[k][odometer[i]]
		}
		combos = append(combos, combo)

		i := len(keys) - 1
		for ; i >= 0; i-- {
			odometer[i]++
			if odometer[i] < len(g[keys[i]]) {
				break
			}
			odometer[i] = 0
		}
		if i < 0 {
			return combos
		}
	}
}

// Result is one evaluated parameter combination.
type Result struct {
	Params map[string]interface{}
	Scores []float64
	Mean   float64
}

// GridSearch exhaustively cross-validates every combination in the grid
// and returns the best one. Candidates are evaluated on clones of p, each
// scored by k-fold cross-validation; the best mean score wins, ties broken
// by enumeration order. The selection is identical for any pool size.
func GridSearch(p *pipeline.Pipeline, grid Grid, folds int, pool *workerpool.Pool, docs [][]string, y []string) (Result, []Result, error) {
	known := p.Params()
	for name := range grid {
		if _, ok := known[name]; !ok {
			return Result{}, nil, &ConfigurationError{Param: name}
		}
	}

	combos := grid.Combinations()
	if len(combos) == 0 {
		return Result{}, nil, errors.New("search: empty parameter grid")
	}
	results := make([]Result, len(combos))
	if pool == nil {
		pool = workerpool.New(1)
	}

	err := pool.Run(len(combos), func(i int) error {
		candidate, err := p.Clone()
		if err != nil {
			return err
		}
		if err := candidate.SetParams(combos[i]); err != nil {
			return err
		}
		scores, summary, err := evaluate.CrossValidate(candidate, docs, y, folds)
		if err != nil {
			return err
		}
		results[i] = Result{Params: combos[i], Scores: scores, Mean: summary.Mean}
		return nil
	})
	if err != nil {
		return Result{}, nil, err
	}

	best := 0
	for i := range results {
		if results[i].Mean > results[best].Mean {
			best = i
		}
	}
	return results[best], results, nil
}
