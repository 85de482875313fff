package search

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/models"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/workerpool"
)

func TestCombinationsOrder(t *testing.T) {
	g := Grid{
		"b": {"x", "y"},
		"a": {1, 2},
	}
	got := g.Combinations()
	want := []map[string]interface{}{
		{"a": 1, "b": "x"},
		{"a": 1, "b": "y"},
		{"a": 2, "b": "x"},
		{"a": 2, "b": "y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Combinations = %v, want %v", got, want)
	}
}

func TestCombinationsEmpty(t *testing.T) {
	if got := (Grid{}).Combinations(); got != nil {
		t.Fatalf("empty grid combinations = %v, want nil", got)
	}
	if got := (Grid{"a": nil}).Combinations(); got != nil {
		t.Fatalf("grid with no candidates = %v, want nil", got)
	}
}

func searchFixture() ([][]string, []string) {
	var docs [][]string
	var y []string
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			docs = append(docs, []string{"quiet", "books", "theory"})
			y = append(y, "INTJ")
		} else {
			docs = append(docs, []string{"party", "loud", "crowd"})
			y = append(y, "ESFP")
		}
	}
	return docs, y
}

func TestGridSearchRejectsUnknownParam(t *testing.T) {
	docs, y := searchFixture()
	p := pipeline.New(models.NewMultinomialNB())
	g := Grid{"clf__gamma": {0.1}}

	_, _, err := GridSearch(p, g, 3, nil, docs, y)
	var bad *ConfigurationError
	if !errors.As(err, &bad) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if bad.Param != "clf__gamma" {
		t.Fatalf("Param = %q", bad.Param)
	}
}

func TestGridSearchRejectsEmptyGrid(t *testing.T) {
	docs, y := searchFixture()
	p := pipeline.New(models.NewMultinomialNB())
	if _, _, err := GridSearch(p, Grid{}, 3, nil, docs, y); err == nil {
		t.Fatal("expected error for empty grid")
	}
}

func TestGridSearchEvaluatesEveryCombination(t *testing.T) {
	docs, y := searchFixture()
	p := pipeline.New(models.NewMultinomialNB())
	g := Grid{
		"clf__alpha":     {1e-1, 1e-2},
		"tfidf__use_idf": {true, false},
	}

	best, all, err := GridSearch(p, g, 3, nil, docs, y)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("evaluated %d combinations, want 4", len(all))
	}
	for i, res := range all {
		if len(res.Scores) != 3 {
			t.Fatalf("combination %d has %d fold scores, want 3", i, len(res.Scores))
		}
	}
	// every combination separates this corpus; the tie goes to the first
	// enumerated one
	if !reflect.DeepEqual(best.Params, all[0].Params) {
		t.Fatalf("tie not broken by enumeration order: best %v, first %v", best.Params, all[0].Params)
	}
}

// The winner and all scores must not depend on the pool size.
func TestGridSearchDeterministicAcrossPools(t *testing.T) {
	docs, y := searchFixture()
	p := pipeline.New(models.NewMultinomialNB())
	g := Grid{
		"clf__alpha":     {1e-1, 1e-2, 1e-3},
		"clf__fit_prior": {true, false},
	}

	best1, all1, err := GridSearch(p, g, 3, workerpool.New(1), docs, y)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 4} {
		best, all, err := GridSearch(p, g, 3, workerpool.New(workers), docs, y)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(best, best1) {
			t.Fatalf("workers=%d: best differs from sequential run", workers)
		}
		if !reflect.DeepEqual(all, all1) {
			t.Fatalf("workers=%d: results differ from sequential run", workers)
		}
	}
}

func TestGridSearchLeavesOriginalUnfitted(t *testing.T) {
	docs, y := searchFixture()
	p := pipeline.New(models.NewMultinomialNB())
	g := Grid{"clf__alpha": {1e-1, 1e-2}}
	if _, _, err := GridSearch(p, g, 3, nil, docs, y); err != nil {
		t.Fatal(err)
	}
	if p.Fitted() {
		t.Fatal("grid search fitted the original pipeline")
	}
}
