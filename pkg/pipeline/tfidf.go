package pipeline

import (
	"math"

	"github.com/go-nlp/tfidf"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"
)

// doc adapts a set of column indices to the tfidf document contract.
type doc []int

func (d doc) IDs() []int { return []int(d) }

// TfidfTransformer reweights a count matrix by inverse document frequency
// and L2-normalizes each row. With UseIDF false only the normalization is
// applied, which keeps the parameter comparable in a grid search.
type TfidfTransformer struct {
	UseIDF bool

	// IDF holds the per-column weights learned at fit time.
	IDF []float64

	fitted bool
}

// NewTfidfTransformer returns a transformer with IDF weighting enabled.
func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{UseIDF: true}
}

// Fit computes document frequencies per column and derives IDF weights.
func (t *TfidfTransformer) Fit(X *mat.Dense) error {
	rows, cols := X.Dims()

	tf := tfidf.New()
	for i := 0; i < rows; i++ {
		row := X.RawRowView(i)
		var d doc
		for j, v := range row {
			if v > 0 {
				d = append(d, j)
			}
		}
		tf.Add(d)
	}

	t.IDF = make([]float64, cols)
	for j := range t.IDF {
		df := tf.TF[j]
		if df == 0 {
			df = 1
		}
		t.IDF[j] = math.Log1p(float64(tf.Docs) / df)
	}
	t.fitted = true
	return nil
}

// Transform returns a reweighted copy of X. The input is left untouched.
func (t *TfidfTransformer) Transform(X *mat.Dense) (*mat.Dense, error) {
	if !t.fitted {
		if t.IDF == nil {
			return nil, &UnfittedStateError{Op: "TfidfTransformer.Transform"}
		}
		t.fitted = true
	}

	out := mat.DenseCopyOf(X)
	rows, _ := out.Dims()
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		if t.UseIDF {
			vecf64.Mul(row, t.IDF)
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			vecf64.ScaleInv(row, norm)
		}
	}
	return out, nil
}
