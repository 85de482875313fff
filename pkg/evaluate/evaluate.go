// Package evaluate measures classifier quality: accuracy, confusion
// counts, k-fold cross-validation and per-label success rates. Every
// operation is read-only over its inputs.
package evaluate

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// Accuracy is the fraction of elementwise-equal predictions. Mismatched
// lengths are an error; an empty pair of slices has no defined accuracy
// and yields NaN.
func Accuracy(predicted, actual []string) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, errors.Errorf("evaluate: %d predictions but %d labels", len(predicted), len(actual))
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}
	var correct float64
	for i := range predicted {
		if predicted[i] == actual[i] {
			correct++
		}
	}
	return correct / float64(len(actual)), nil
}

// ErrorRate is 1 - Accuracy.
func ErrorRate(predicted, actual []string) (float64, error) {
	acc, err := Accuracy(predicted, actual)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// ConfusionKey addresses one cell of the confusion counts.
type ConfusionKey struct {
	Actual    string
	Predicted string
}

// Confusion counts (actual, predicted) label pairs.
func Confusion(predicted, actual []string) (map[ConfusionKey]int, error) {
	if len(predicted) != len(actual) {
		return nil, errors.Errorf("evaluate: %d predictions but %d labels", len(predicted), len(actual))
	}
	counts := make(map[ConfusionKey]int)
	for i := range predicted {
		counts[ConfusionKey{Actual: actual[i], Predicted: predicted[i]}]++
	}
	return counts, nil
}

// Summary aggregates cross-validation scores.
type Summary struct {
	Mean float64
	Std  float64
}

// String renders the conventional mean ± 2 standard deviations.
func (s Summary) String() string {
	return fmt.Sprintf("Accuracy: %0.2f (+/- %0.2f)", s.Mean, s.Std*2)
}

// CrossValidate scores the pipeline's configuration over k contiguous
// folds: each fold is held out in turn, an unfitted clone of p refit on
// the rest and scored on the held-out fold. p itself is never fitted or
// mutated; any trained state it carries survives the call.
func CrossValidate(p *pipeline.Pipeline, docs [][]string, y []string, folds int) ([]float64, Summary, error) {
	if folds < 2 {
		return nil, Summary{}, errors.Errorf("evaluate: need at least 2 folds, got %d", folds)
	}
	if len(docs) != len(y) {
		return nil, Summary{}, errors.Errorf("evaluate: %d documents but %d labels", len(docs), len(y))
	}
	if len(docs) < folds {
		return nil, Summary{}, errors.Errorf("evaluate: %d records cannot fill %d folds", len(docs), folds)
	}

	candidate, err := p.Clone()
	if err != nil {
		return nil, Summary{}, errors.Wrap(err, "evaluate")
	}

	scores := make([]float64, 0, folds)
	size := len(docs) / folds
	rem := len(docs) % folds
	start := 0
	for f := 0; f < folds; f++ {
		end := start + size
		if f < rem {
			end++
		}

		trainDocs := make([][]string, 0, len(docs)-(end-start))
		trainY := make([]string, 0, len(y)-(end-start))
		trainDocs = append(trainDocs, docs[:start]...)
		trainDocs = append(trainDocs, docs[end:]...)
		trainY = append(trainY, y[:start]...)
		trainY = append(trainY, y[end:]...)

		if err := candidate.Fit(trainDocs, trainY); err != nil {
			return nil, Summary{}, errors.Wrapf(err, "fold %d", f)
		}
		score, err := candidate.Score(docs[start:end], y[start:end])
		if err != nil {
			return nil, Summary{}, errors.Wrapf(err, "fold %d", f)
		}
		scores = append(scores, score)
		start = end
	}

	summary := Summary{
		Mean: stat.Mean(scores, nil),
		Std:  stat.StdDev(scores, nil),
	}
	return scores, summary, nil
}

// SuccessRates reports, for every label in labels, the fraction of records
// with that actual label that were predicted correctly. A label absent from
// actual has an undefined rate, reported as NaN rather than zero.
func SuccessRates(actual, predicted []string, labels []string) (map[string]float64, error) {
	if len(predicted) != len(actual) {
		return nil, errors.Errorf("evaluate: %d predictions but %d labels", len(predicted), len(actual))
	}
	totals := make(map[string]int)
	correct := make(map[string]int)
	for i := range actual {
		totals[actual[i]]++
		if predicted[i] == actual[i] {
			correct[actual[i]]++
		}
	}

	rates := make(map[string]float64, len(labels))
	for _, label := range labels {
		if totals[label] == 0 {
			rates[label] = math.NaN()
			continue
		}
		rates[label] = float64(correct[label]) / float64(totals[label])
	}
	return rates, nil
}
