package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// MajorityBaseline always predicts the most frequent training label. It is
// the sanity floor any real model has to beat.
type MajorityBaseline struct {
	Majority string
}

// Fit records the most frequent label, ties broken alphabetically.
func (c *MajorityBaseline) Fit(X *mat.Dense, y []string) error {
	if _, _, err := checkDims(X, y); err != nil {
		return err
	}
	c.Majority = ""
	counts := make(map[string]int)
	for _, label := range y {
		counts[label]++
	}
	for _, label := range classesOf(y) {
		if c.Majority == "" || counts[label] > counts[c.Majority] {
			c.Majority = label
		}
	}
	return nil
}

// Predict returns the majority label for every row.
func (c *MajorityBaseline) Predict(X *mat.Dense) ([]string, error) {
	if c.Majority == "" {
		return nil, &pipeline.UnfittedStateError{Op: "MajorityBaseline.Predict"}
	}
	rows, _ := X.Dims()
	predicted := make([]string, rows)
	for i := range predicted {
		predicted[i] = c.Majority
	}
	return predicted, nil
}

// Score reports prediction accuracy on X against y.
func (c *MajorityBaseline) Score(X *mat.Dense, y []string) (float64, error) {
	return score(c.Predict, X, y)
}

// Clone returns an unfitted copy.
func (c *MajorityBaseline) Clone() pipeline.Classifier {
	return &MajorityBaseline{}
}
