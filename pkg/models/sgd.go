package models

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// SGDClassifier is a linear classifier trained with stochastic gradient
// descent on the hinge loss with L2 regularization, i.e. a linear SVM.
// Multi-class problems are handled one-vs-rest.
type SGDClassifier struct {
	// Alpha is the L2 regularization strength.
	Alpha float64
	// Eta0 is the constant learning rate.
	Eta0 float64
	// Epochs is the number of passes over the training set.
	Epochs int
	// Seed drives the per-epoch example ordering.
	Seed uint64

	// Learned state: one weight vector and bias per class.
	Classes []string
	W       [][]float64
	B       []float64

	fitted bool
}

// NewSGDClassifier mirrors the reference configuration: alpha=1e-3,
// eta0=0.1, 5 epochs.
func NewSGDClassifier() *SGDClassifier {
	return &SGDClassifier{Alpha: 1e-3, Eta0: 0.1, Epochs: 5, Seed: 42}
}

// Fit trains one binary hinge-loss separator per class.
func (c *SGDClassifier) Fit(X *mat.Dense, y []string) error {
	rows, cols, err := checkDims(X, y)
	if err != nil {
		return err
	}
	if c.Epochs < 1 {
		return errors.Errorf("sgd: epochs must be positive, got %d", c.Epochs)
	}

	c.Classes = classesOf(y)
	idx := classIndex(c.Classes)
	targets := make([]int, rows)
	for i, label := range y {
		targets[i] = idx[label]
	}

	c.W = make([][]float64, len(c.Classes))
	c.B = make([]float64, len(c.Classes))
	for ci := range c.W {
		c.W[ci] = make([]float64, cols)
	}

	r := rand.New(rand.NewSource(c.Seed))
	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}

	decay := 1 - c.Eta0*c.Alpha
	for epoch := 0; epoch < c.Epochs; epoch++ {
		// reshuffle the visit order each pass
		for i := len(order) - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		for _, i := range order {
			row := X.RawRowView(i)
			for ci := range c.Classes {
				yb := -1.0
				if targets[i] == ci {
					yb = 1.0
				}
				w := c.W[ci]
				margin := yb * (floats.Dot(w, row) + c.B[ci])
				vecf64.Scale(w, decay)
				if margin < 1 {
					step := c.Eta0 * yb
					for j, v := range row {
						w[j] += step * v
					}
					c.B[ci] += step
				}
			}
		}
	}
	c.fitted = true
	return nil
}

// Predict picks the class whose separator scores the row highest.
func (c *SGDClassifier) Predict(X *mat.Dense) ([]string, error) {
	if !c.fitted && c.W == nil {
		return nil, &pipeline.UnfittedStateError{Op: "SGDClassifier.Predict"}
	}
	rows, cols := X.Dims()
	if len(c.W) > 0 && cols != len(c.W[0]) {
		return nil, errors.Errorf("sgd: fitted on %d features, got %d", len(c.W[0]), cols)
	}

	predicted := make([]string, rows)
	scores := make([]float64, len(c.Classes))
	for i := 0; i < rows; i++ {
		row := X.RawRowView(i)
		for ci := range c.Classes {
			scores[ci] = floats.Dot(c.W[ci], row) + c.B[ci]
		}
		predicted[i] = c.Classes[argmax(scores)]
	}
	return predicted, nil
}

// Score reports prediction accuracy on X against y.
func (c *SGDClassifier) Score(X *mat.Dense, y []string) (float64, error) {
	return score(c.Predict, X, y)
}

// Clone returns an unfitted copy with the same hyperparameters.
func (c *SGDClassifier) Clone() pipeline.Classifier {
	return &SGDClassifier{Alpha: c.Alpha, Eta0: c.Eta0, Epochs: c.Epochs, Seed: c.Seed}
}

// Params implements pipeline.Parameterized.
func (c *SGDClassifier) Params() map[string]interface{} {
	return map[string]interface{}{
		"alpha":  c.Alpha,
		"eta0":   c.Eta0,
		"epochs": c.Epochs,
	}
}

// SetParam implements pipeline.Parameterized.
func (c *SGDClassifier) SetParam(name string, value interface{}) error {
	switch name {
	case "alpha":
		v, ok := value.(float64)
		if !ok {
			return errors.Errorf("sgd: alpha wants float64, got %T", value)
		}
		c.Alpha = v
	case "eta0":
		v, ok := value.(float64)
		if !ok {
			return errors.Errorf("sgd: eta0 wants float64, got %T", value)
		}
		c.Eta0 = v
	case "epochs":
		v, ok := value.(int)
		if !ok {
			return errors.Errorf("sgd: epochs wants int, got %T", value)
		}
		c.Epochs = v
	default:
		return errors.Errorf("sgd: unknown parameter %q", name)
	}
	c.fitted = false
	return nil
}
