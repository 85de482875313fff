// Package pipeline composes vectorization, tf-idf weighting, chi-squared
// feature selection and a pluggable classifier into one fit/predict unit.
//
// The four sub-states travel together: a fitted pipeline owns its
// vocabulary, its IDF weights, its selection mask and its trained
// classifier, and predicting with any of them detached is invalid.
package pipeline

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Classifier is the capability every model family implements. The pipeline
// depends only on this contract, never on a concrete model.
type Classifier interface {
	Fit(X *mat.Dense, y []string) error
	Predict(X *mat.Dense) ([]string, error)
	Score(X *mat.Dense, y []string) (float64, error)
}

// Parameterized exposes name-addressed hyperparameters, the contract grid
// search validates against.
type Parameterized interface {
	Params() map[string]interface{}
	SetParam(name string, value interface{}) error
}

// Cloneable returns an unfitted copy with the same hyperparameters.
type Cloneable interface {
	Clone() Classifier
}

// Pipeline chains vect -> tfidf -> kbest -> clf.
type Pipeline struct {
	Vect  *CountVectorizer
	Tfidf *TfidfTransformer
	Kbest *SelectKBest
	Clf   Classifier

	fitted bool
}

// New builds a pipeline with default stages around clf: unigram counts,
// IDF weighting on, all features kept.
func New(clf Classifier) *Pipeline {
	return NewWith(&CountVectorizer{}, NewTfidfTransformer(), &SelectKBest{}, clf)
}

// NewWith builds a pipeline from explicitly configured stages.
func NewWith(vect *CountVectorizer, tf *TfidfTransformer, kbest *SelectKBest, clf Classifier) *Pipeline {
	if vect == nil {
		vect = &CountVectorizer{}
	}
	if tf == nil {
		tf = NewTfidfTransformer()
	}
	if kbest == nil {
		kbest = &SelectKBest{}
	}
	return &Pipeline{Vect: vect, Tfidf: tf, Kbest: kbest, Clf: clf}
}

// Restored rebuilds a fitted pipeline from previously persisted stage
// state. The stages must already carry their learned state.
func Restored(vect *CountVectorizer, tf *TfidfTransformer, kbest *SelectKBest, clf Classifier) *Pipeline {
	p := NewWith(vect, tf, kbest, clf)
	p.fitted = true
	return p
}

// Fitted reports whether the pipeline can predict.
func (p *Pipeline) Fitted() bool { return p.fitted }

// Fit fits every stage in order, feeding each stage's output to the next.
// Refitting with the same data replaces all prior state and yields the
// same model.
func (p *Pipeline) Fit(docs [][]string, y []string) error {
	if len(docs) != len(y) {
		return errors.Errorf("pipeline: %d documents but %d labels", len(docs), len(y))
	}
	p.fitted = false

	if err := p.Vect.Fit(docs); err != nil {
		return errors.Wrap(err, "vect")
	}
	X, err := p.Vect.Transform(docs)
	if err != nil {
		return errors.Wrap(err, "vect")
	}
	if err := p.Tfidf.Fit(X); err != nil {
		return errors.Wrap(err, "tfidf")
	}
	if X, err = p.Tfidf.Transform(X); err != nil {
		return errors.Wrap(err, "tfidf")
	}
	if err := p.Kbest.Fit(X, y); err != nil {
		return errors.Wrap(err, "kbest")
	}
	if X, err = p.Kbest.Transform(X); err != nil {
		return errors.Wrap(err, "kbest")
	}
	if err := p.Clf.Fit(X, y); err != nil {
		return errors.Wrap(err, "clf")
	}
	p.fitted = true
	return nil
}

// Transform runs the fitted feature stages over docs.
func (p *Pipeline) Transform(docs [][]string) (*mat.Dense, error) {
	if !p.fitted {
		return nil, &UnfittedStateError{Op: "Transform"}
	}
	X, err := p.Vect.Transform(docs)
	if err != nil {
		return nil, errors.Wrap(err, "vect")
	}
	if X, err = p.Tfidf.Transform(X); err != nil {
		return nil, errors.Wrap(err, "tfidf")
	}
	if X, err = p.Kbest.Transform(X); err != nil {
		return nil, errors.Wrap(err, "kbest")
	}
	return X, nil
}

// Predict classifies docs with the fitted pipeline.
func (p *Pipeline) Predict(docs [][]string) ([]string, error) {
	if !p.fitted {
		return nil, &UnfittedStateError{Op: "Predict"}
	}
	X, err := p.Transform(docs)
	if err != nil {
		return nil, err
	}
	return p.Clf.Predict(X)
}

// Score reports the fraction of docs predicted with the correct label.
func (p *Pipeline) Score(docs [][]string, y []string) (float64, error) {
	if !p.fitted {
		return 0, &UnfittedStateError{Op: "Score"}
	}
	predicted, err := p.Predict(docs)
	if err != nil {
		return 0, err
	}
	if len(predicted) != len(y) {
		return 0, errors.Errorf("pipeline: %d predictions but %d labels", len(predicted), len(y))
	}
	var correct float64
	for i := range predicted {
		if predicted[i] == y[i] {
			correct++
		}
	}
	return correct / float64(len(y)), nil
}

// Clone returns an unfitted pipeline with the same stage configuration.
// The classifier must be Cloneable.
func (p *Pipeline) Clone() (*Pipeline, error) {
	cl, ok := p.Clf.(Cloneable)
	if !ok {
		return nil, errors.Errorf("pipeline: classifier %T is not cloneable", p.Clf)
	}
	return NewWith(
		&CountVectorizer{NGramRange: p.Vect.NGramRange},
		&TfidfTransformer{UseIDF: p.Tfidf.UseIDF},
		&SelectKBest{K: p.Kbest.K},
		cl.Clone(),
	), nil
}
