package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// MultinomialNB is a multinomial naive Bayes classifier over nonnegative
// feature counts, with Lidstone smoothing.
type MultinomialNB struct {
	// Alpha is the additive smoothing amount.
	Alpha float64
	// FitPrior learns class priors from the data; off means uniform priors.
	FitPrior bool

	// Learned state.
	Classes        []string
	LogPrior       []float64
	FeatureLogProb [][]float64

	fitted bool
}

// NewMultinomialNB returns a classifier with alpha=1 and learned priors.
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1.0, FitPrior: true}
}

// Fit estimates per-class priors and feature log probabilities.
func (c *MultinomialNB) Fit(X *mat.Dense, y []string) error {
	rows, cols, err := checkDims(X, y)
	if err != nil {
		return err
	}
	if c.Alpha < 0 {
		return errors.Errorf("naive bayes: negative alpha %v", c.Alpha)
	}

	c.Classes = classesOf(y)
	idx := classIndex(c.Classes)
	nclasses := len(c.Classes)

	counts := make([][]float64, nclasses)
	for i := range counts {
		counts[i] = make([]float64, cols)
	}
	docs := make([]float64, nclasses)
	for i := 0; i < rows; i++ {
		ci := idx[y[i]]
		docs[ci]++
		row := X.RawRowView(i)
		for j, v := range row {
			counts[ci][j] += v
		}
	}

	c.LogPrior = make([]float64, nclasses)
	for ci := range c.LogPrior {
		if c.FitPrior {
			prior := docs[ci] / float64(rows)
			if prior == 0 {
				prior = tiny
			}
			c.LogPrior[ci] = math.Log(prior)
		} else {
			c.LogPrior[ci] = -math.Log(float64(nclasses))
		}
	}

	c.FeatureLogProb = make([][]float64, nclasses)
	for ci := range c.FeatureLogProb {
		var total float64
		for _, v := range counts[ci] {
			total += v
		}
		denom := total + c.Alpha*float64(cols)
		if denom == 0 {
			denom = tiny
		}
		probs := make([]float64, cols)
		for j, v := range counts[ci] {
			num := v + c.Alpha
			if num == 0 {
				num = tiny
			}
			probs[j] = math.Log(num / denom)
		}
		c.FeatureLogProb[ci] = probs
	}
	c.fitted = true
	return nil
}

// Predict picks the class with the highest joint log likelihood per row.
func (c *MultinomialNB) Predict(X *mat.Dense) ([]string, error) {
	if !c.fitted && c.FeatureLogProb == nil {
		return nil, &pipeline.UnfittedStateError{Op: "MultinomialNB.Predict"}
	}
	rows, cols := X.Dims()
	if len(c.FeatureLogProb) > 0 && cols != len(c.FeatureLogProb[0]) {
		return nil, errors.Errorf("naive bayes: fitted on %d features, got %d", len(c.FeatureLogProb[0]), cols)
	}

	predicted := make([]string, rows)
	scores := make([]float64, len(c.Classes))
	for i := 0; i < rows; i++ {
		row := X.RawRowView(i)
		for ci := range c.Classes {
			s := c.LogPrior[ci]
			probs := c.FeatureLogProb[ci]
			for j, v := range row {
				if v != 0 {
					s += v * probs[j]
				}
			}
			scores[ci] = s
		}
		predicted[i] = c.Classes[argmax(scores)]
	}
	return predicted, nil
}

// Score reports prediction accuracy on X against y.
func (c *MultinomialNB) Score(X *mat.Dense, y []string) (float64, error) {
	return score(c.Predict, X, y)
}

// Clone returns an unfitted copy with the same hyperparameters.
func (c *MultinomialNB) Clone() pipeline.Classifier {
	return &MultinomialNB{Alpha: c.Alpha, FitPrior: c.FitPrior}
}

// Params implements pipeline.Parameterized.
func (c *MultinomialNB) Params() map[string]interface{} {
	return map[string]interface{}{
		"alpha":     c.Alpha,
		"fit_prior": c.FitPrior,
	}
}

// SetParam implements pipeline.Parameterized.
func (c *MultinomialNB) SetParam(name string, value interface{}) error {
	switch name {
	case "alpha":
		alpha, ok := value.(float64)
		if !ok {
			return errors.Errorf("naive bayes: alpha wants float64, got %T", value)
		}
		c.Alpha = alpha
	case "fit_prior":
		fp, ok := value.(bool)
		if !ok {
			return errors.Errorf("naive bayes: fit_prior wants bool, got %T", value)
		}
		c.FitPrior = fp
	default:
		return errors.Errorf("naive bayes: unknown parameter %q", name)
	}
	c.fitted = false
	return nil
}
