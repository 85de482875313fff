package pipeline

import (
	"strings"

	"github.com/chewxy/lingo/corpus"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CountVectorizer turns token documents into a term-count matrix over the
// vocabulary seen at fit time. NGramRange widens single tokens into joined
// n-grams; the zero value means unigrams only.
type CountVectorizer struct {
	NGramRange [2]int

	// Vocab is the learned vocabulary in column order.
	Vocab []string

	corp   *corpus.Corpus
	cols   map[string]int
	fitted bool
}

func (v *CountVectorizer) ngramRange() (lo, hi int, err error) {
	lo, hi = v.NGramRange[0], v.NGramRange[1]
	if lo == 0 && hi == 0 {
		return 1, 1, nil
	}
	if lo < 1 || hi < lo {
		return 0, 0, errors.Errorf("invalid ngram range (%d, %d)", lo, hi)
	}
	return lo, hi, nil
}

// Fit learns the vocabulary. Refitting replaces any prior vocabulary.
func (v *CountVectorizer) Fit(docs [][]string) error {
	lo, hi, err := v.ngramRange()
	if err != nil {
		return err
	}

	v.corp = corpus.New()
	v.Vocab = v.Vocab[:0]
	v.cols = make(map[string]int)

	for _, tokens := range docs {
		for _, term := range ngrams(tokens, lo, hi) {
			if _, ok := v.cols[term]; ok {
				continue
			}
			v.corp.Add(term)
			v.cols[term] = len(v.Vocab)
			v.Vocab = append(v.Vocab, term)
		}
	}
	if len(v.Vocab) == 0 {
		return errors.New("empty vocabulary: no terms in any document")
	}
	v.fitted = true
	return nil
}

// Transform maps documents onto the fitted vocabulary; terms never seen at
// fit time are dropped.
func (v *CountVectorizer) Transform(docs [][]string) (*mat.Dense, error) {
	if !v.fitted {
		if len(v.Vocab) == 0 {
			return nil, &UnfittedStateError{Op: "CountVectorizer.Transform"}
		}
		v.rebuild()
	}
	lo, hi, err := v.ngramRange()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents to transform")
	}

	X := mat.NewDense(len(docs), len(v.Vocab), nil)
	for i, tokens := range docs {
		row := X.RawRowView(i)
		for _, term := range ngrams(tokens, lo, hi) {
			if j, ok := v.cols[term]; ok {
				row[j]++
			}
		}
	}
	return X, nil
}

// rebuild reconstructs the lookup structures from Vocab after a restore.
func (v *CountVectorizer) rebuild() {
	v.corp = corpus.New()
	v.cols = make(map[string]int, len(v.Vocab))
	for j, term := range v.Vocab {
		v.corp.Add(term)
		v.cols[term] = j
	}
	v.fitted = true
}

// ID reports the corpus id of a fitted term.
func (v *CountVectorizer) ID(term string) (int, bool) {
	if v.corp == nil {
		return 0, false
	}
	return v.corp.Id(term)
}

func ngrams(tokens []string, lo, hi int) []string {
	if lo == 1 && hi == 1 {
		return tokens
	}
	var grams []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
