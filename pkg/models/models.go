// Package models provides the concrete classifier families behind the
// pipeline's Classifier capability: probabilistic (multinomial naive
// Bayes), linear-margin (hinge-loss SGD) and feed-forward neural.
package models

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const tiny = 0.0000001

// classesOf returns the sorted unique labels of y.
func classesOf(y []string) []string {
	seen := make(map[string]struct{})
	var classes []string
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}
	sort.Strings(classes)
	return classes
}

func classIndex(classes []string) map[string]int {
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return idx
}

func argmax(a []float64) (retVal int) {
	max := math.Inf(-1)
	for i := range a {
		if a[i] > max {
			retVal = i
			max = a[i]
		}
	}
	return retVal
}

// score computes prediction accuracy, shared by every model's Score.
func score(predict func(X *mat.Dense) ([]string, error), X *mat.Dense, y []string) (float64, error) {
	predicted, err := predict(X)
	if err != nil {
		return 0, err
	}
	if len(predicted) != len(y) {
		return 0, errors.Errorf("models: %d predictions but %d labels", len(predicted), len(y))
	}
	var correct float64
	for i := range predicted {
		if predicted[i] == y[i] {
			correct++
		}
	}
	return correct / float64(len(y)), nil
}

func checkDims(X *mat.Dense, y []string) (rows, cols int, err error) {
	rows, cols = X.Dims()
	if rows != len(y) {
		return 0, 0, errors.Errorf("models: %d rows but %d labels", rows, len(y))
	}
	return rows, cols, nil
}
