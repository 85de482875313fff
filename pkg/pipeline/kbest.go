package pipeline

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SelectKBest keeps the K columns whose chi-squared association with the
// label is strongest. K <= 0 keeps every column, the "all" setting.
type SelectKBest struct {
	K int

	// Scores holds the per-column chi2 statistic from the last fit.
	Scores []float64
	// Mask holds the kept column indices in ascending order.
	Mask []int

	fitted bool
}

// Fit scores every column against y and selects the top-K mask.
func (s *SelectKBest) Fit(X *mat.Dense, y []string) error {
	rows, cols := X.Dims()
	if rows != len(y) {
		return errors.Errorf("kbest: %d rows but %d labels", rows, len(y))
	}

	classIdx := make(map[string]int)
	classOf := make([]int, rows)
	for i, label := range y {
		idx, ok := classIdx[label]
		if !ok {
			idx = len(classIdx)
			classIdx[label] = idx
		}
		classOf[i] = idx
	}
	nclasses := len(classIdx)

	// observed per-class feature mass
	observed := make([][]float64, nclasses)
	for c := range observed {
		observed[c] = make([]float64, cols)
	}
	classTotal := make([]float64, nclasses)
	featTotal := make([]float64, cols)
	var total float64
	for i := 0; i < rows; i++ {
		row := X.RawRowView(i)
		c := classOf[i]
		for j, v := range row {
			observed[c][j] += v
			classTotal[c] += v
			featTotal[j] += v
			total += v
		}
	}
	if total == 0 {
		return errors.New("kbest: all-zero feature matrix")
	}

	s.Scores = make([]float64, cols)
	for j := 0; j < cols; j++ {
		var chi2 float64
		for c := 0; c < nclasses; c++ {
			expected := classTotal[c] * featTotal[j] / total
			if expected == 0 {
				continue
			}
			d := observed[c][j] - expected
			chi2 += d * d / expected
		}
		s.Scores[j] = chi2
	}

	k := s.K
	if k <= 0 || k >= cols {
		k = cols
	}
	order := make([]int, cols)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.Scores[order[a]] > s.Scores[order[b]]
	})
	mask := append([]int(nil), order[:k]...)
	sort.Ints(mask)
	s.Mask = mask
	s.fitted = true
	return nil
}

// Transform keeps only the selected columns.
func (s *SelectKBest) Transform(X *mat.Dense) (*mat.Dense, error) {
	if !s.fitted {
		if s.Mask == nil {
			return nil, &UnfittedStateError{Op: "SelectKBest.Transform"}
		}
		s.fitted = true
	}

	rows, _ := X.Dims()
	out := mat.NewDense(rows, len(s.Mask), nil)
	for i := 0; i < rows; i++ {
		src := X.RawRowView(i)
		dst := out.RawRowView(i)
		for jj, j := range s.Mask {
			dst[jj] = src[j]
		}
	}
	return out, nil
}
