package models

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// MLPClassifier is a feed-forward network with one sigmoid hidden layer,
// trained by per-example backpropagation on tensors.
type MLPClassifier struct {
	// Hidden is the hidden layer width.
	Hidden int
	// LearnRate scales each gradient step.
	LearnRate float64
	// Epochs is the number of passes over the training set.
	Epochs int
	// Seed drives weight initialization and example ordering.
	Seed uint64

	// Classes in output-unit order.
	Classes []string

	hidden, final *tensor.Dense
	fitted        bool
}

// NewMLPClassifier mirrors the reference configuration: 50 hidden units,
// learning rate 0.1, 50 epochs.
func NewMLPClassifier() *MLPClassifier {
	return &MLPClassifier{Hidden: 50, LearnRate: 0.1, Epochs: 50, Seed: 1}
}

// Fit initializes the weight tensors and backpropagates through every
// training example Epochs times.
func (c *MLPClassifier) Fit(X *mat.Dense, y []string) error {
	rows, cols, err := checkDims(X, y)
	if err != nil {
		return err
	}
	if c.Hidden < 1 {
		return errors.Errorf("mlp: hidden layer size must be positive, got %d", c.Hidden)
	}
	if c.Epochs < 1 {
		return errors.Errorf("mlp: epochs must be positive, got %d", c.Epochs)
	}

	c.Classes = classesOf(y)
	idx := classIndex(c.Classes)
	output := len(c.Classes)

	src := rand.NewSource(c.Seed)
	r := rand.New(src)
	w0 := make([]float64, c.Hidden*cols)
	w1 := make([]float64, output*c.Hidden)
	fillRandom(w0, float64(len(w0)), src)
	fillRandom(w1, float64(len(w1)), src)
	c.hidden = tensor.New(tensor.WithShape(c.Hidden, cols), tensor.WithBacking(w0))
	c.final = tensor.New(tensor.WithShape(output, c.Hidden), tensor.WithBacking(w1))

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	for epoch := 0; epoch < c.Epochs; epoch++ {
		for i := len(order) - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		for _, i := range order {
			row := X.RawRowView(i)
			xb := make([]float64, cols)
			copy(xb, row)
			x := tensor.New(tensor.WithShape(cols, 1), tensor.WithBacking(xb))

			yb := make([]float64, output)
			yb[idx[y[i]]] = 1
			yv := tensor.New(tensor.WithShape(output, 1), tensor.WithBacking(yb))

			if _, err := c.trainOne(x, yv); err != nil {
				return errors.Wrapf(err, "mlp: training example %d", i)
			}
		}
	}
	c.fitted = true
	return nil
}

// trainOne runs one forward and backward pass, updating the weights in
// place, and returns the summed output error.
func (c *MLPClassifier) trainOne(x, y tensor.Tensor) (cost float64, err error) {
	var m maybe
	hidden := m.do(func() (tensor.Tensor, error) { return tensor.MatMul(c.hidden, x) })
	act0 := m.do(func() (tensor.Tensor, error) { return hidden.Apply(sigmoid, tensor.UseUnsafe()) })

	final := m.do(func() (tensor.Tensor, error) { return tensor.MatMul(c.final, act0) })
	pred := m.do(func() (tensor.Tensor, error) { return final.Apply(sigmoid, tensor.UseUnsafe()) })

	outputErrors := m.do(func() (tensor.Tensor, error) { return tensor.Sub(y, pred) })
	if m.err != nil {
		return 0, m.err
	}
	cost = sum(outputErrors.Data().([]float64))

	hidErrs := m.do(func() (tensor.Tensor, error) {
		if err := c.final.T(); err != nil {
			return nil, err
		}
		defer c.final.UT()
		return tensor.MatMul(c.final, outputErrors)
	})

	dpred := m.do(func() (tensor.Tensor, error) { return pred.Apply(dsigmoid, tensor.UseUnsafe()) })
	m.do(func() (tensor.Tensor, error) { return tensor.Mul(dpred, outputErrors, tensor.UseUnsafe()) })
	dpredDfinal := m.do(func() (tensor.Tensor, error) {
		if err := act0.T(); err != nil {
			return nil, err
		}
		defer act0.UT()
		return tensor.MatMul(outputErrors, act0)
	})

	dact0 := m.do(func() (tensor.Tensor, error) { return act0.Apply(dsigmoid) })
	m.do(func() (tensor.Tensor, error) { return tensor.Mul(hidErrs, dact0, tensor.UseUnsafe()) })
	m.do(func() (tensor.Tensor, error) {
		err := hidErrs.Reshape(hidErrs.Shape()[0], 1)
		return hidErrs, err
	})
	dcostDhidden := m.do(func() (tensor.Tensor, error) {
		if err := x.T(); err != nil {
			return nil, err
		}
		defer x.UT()
		return tensor.MatMul(hidErrs, x)
	})

	// gradient ascent on (y - pred), so the updates are added
	m.do(func() (tensor.Tensor, error) { return tensor.Mul(dpredDfinal, c.LearnRate, tensor.UseUnsafe()) })
	m.do(func() (tensor.Tensor, error) { return tensor.Mul(dcostDhidden, c.LearnRate, tensor.UseUnsafe()) })
	m.do(func() (tensor.Tensor, error) { return tensor.Add(c.final, dpredDfinal, tensor.UseUnsafe()) })
	m.do(func() (tensor.Tensor, error) { return tensor.Add(c.hidden, dcostDhidden, tensor.UseUnsafe()) })
	return cost, m.err
}

// Predict runs the forward pass and picks the strongest output unit.
func (c *MLPClassifier) Predict(X *mat.Dense) ([]string, error) {
	if c.hidden == nil || c.final == nil {
		return nil, &pipeline.UnfittedStateError{Op: "MLPClassifier.Predict"}
	}
	rows, cols := X.Dims()
	if c.hidden.Shape()[1] != cols {
		return nil, errors.Errorf("mlp: fitted on %d features, got %d", c.hidden.Shape()[1], cols)
	}

	predicted := make([]string, rows)
	for i := 0; i < rows; i++ {
		xb := make([]float64, cols)
		copy(xb, X.RawRowView(i))
		x := tensor.New(tensor.WithShape(cols), tensor.WithBacking(xb))

		var m maybe
		hidden := m.do(func() (tensor.Tensor, error) { return c.hidden.MatVecMul(x) })
		act0 := m.do(func() (tensor.Tensor, error) { return hidden.Apply(sigmoid, tensor.UseUnsafe()) })
		final := m.do(func() (tensor.Tensor, error) { return tensor.MatVecMul(c.final, act0) })
		pred := m.do(func() (tensor.Tensor, error) { return final.Apply(sigmoid, tensor.UseUnsafe()) })
		if m.err != nil {
			return nil, errors.Wrapf(m.err, "mlp: predicting row %d", i)
		}
		predicted[i] = c.Classes[argmax(pred.Data().([]float64))]
	}
	return predicted, nil
}

// Score reports prediction accuracy on X against y.
func (c *MLPClassifier) Score(X *mat.Dense, y []string) (float64, error) {
	return score(c.Predict, X, y)
}

// Clone returns an unfitted copy with the same hyperparameters.
func (c *MLPClassifier) Clone() pipeline.Classifier {
	return &MLPClassifier{Hidden: c.Hidden, LearnRate: c.LearnRate, Epochs: c.Epochs, Seed: c.Seed}
}

// Params implements pipeline.Parameterized.
func (c *MLPClassifier) Params() map[string]interface{} {
	return map[string]interface{}{
		"hidden_layer_sizes": c.Hidden,
		"learning_rate_init": c.LearnRate,
		"epochs":             c.Epochs,
	}
}

// SetParam implements pipeline.Parameterized.
func (c *MLPClassifier) SetParam(name string, value interface{}) error {
	switch name {
	case "hidden_layer_sizes":
		v, ok := value.(int)
		if !ok {
			return errors.Errorf("mlp: hidden_layer_sizes wants int, got %T", value)
		}
		c.Hidden = v
	case "learning_rate_init":
		v, ok := value.(float64)
		if !ok {
			return errors.Errorf("mlp: learning_rate_init wants float64, got %T", value)
		}
		c.LearnRate = v
	case "epochs":
		v, ok := value.(int)
		if !ok {
			return errors.Errorf("mlp: epochs wants int, got %T", value)
		}
		c.Epochs = v
	default:
		return errors.Errorf("mlp: unknown parameter %q", name)
	}
	c.fitted = false
	return nil
}

// MLPState is the serializable learned state of an MLPClassifier.
type MLPState struct {
	Hidden    int
	LearnRate float64
	Epochs    int
	Seed      uint64
	Classes   []string

	HiddenW     []float64
	HiddenShape [2]int
	FinalW      []float64
	FinalShape  [2]int
}

// State snapshots the fitted weights.
func (c *MLPClassifier) State() (*MLPState, error) {
	if c.hidden == nil || c.final == nil {
		return nil, &pipeline.UnfittedStateError{Op: "MLPClassifier.State"}
	}
	return &MLPState{
		Hidden:      c.Hidden,
		LearnRate:   c.LearnRate,
		Epochs:      c.Epochs,
		Seed:        c.Seed,
		Classes:     c.Classes,
		HiddenW:     append([]float64(nil), c.hidden.Data().([]float64)...),
		HiddenShape: [2]int{c.hidden.Shape()[0], c.hidden.Shape()[1]},
		FinalW:      append([]float64(nil), c.final.Data().([]float64)...),
		FinalShape:  [2]int{c.final.Shape()[0], c.final.Shape()[1]},
	}, nil
}

// RestoreMLP rebuilds a predict-ready classifier from a snapshot.
func RestoreMLP(s *MLPState) *MLPClassifier {
	c := &MLPClassifier{
		Hidden:    s.Hidden,
		LearnRate: s.LearnRate,
		Epochs:    s.Epochs,
		Seed:      s.Seed,
		Classes:   s.Classes,
		fitted:    true,
	}
	c.hidden = tensor.New(tensor.WithShape(s.HiddenShape[0], s.HiddenShape[1]), tensor.WithBacking(append([]float64(nil), s.HiddenW...)))
	c.final = tensor.New(tensor.WithShape(s.FinalShape[0], s.FinalShape[1]), tensor.WithBacking(append([]float64(nil), s.FinalW...)))
	return c
}

func sigmoid(a float64) float64 { return 1 / (1 + math.Exp(-1*a)) }

func dsigmoid(a float64) float64 { return (1 - a) * a }

func sum(a []float64) (retVal float64) {
	for i := range a {
		retVal += a[i]
	}
	return retVal
}

func fillRandom(a []float64, v float64, src rand.Source) {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(v),
		Max: 1 / math.Sqrt(v),
		Src: src,
	}
	for i := range a {
		a[i] = dist.Rand()
	}
}

type maybe struct {
	err error
}

func (m *maybe) do(fn func() (tensor.Tensor, error)) tensor.Tensor {
	if m.err != nil {
		return nil
	}

	var retVal tensor.Tensor
	if retVal, m.err = fn(); m.err == nil {
		return retVal
	}
	m.err = errors.WithStack(m.err)
	return nil
}
