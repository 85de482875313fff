// Package persist saves a fitted pipeline to disk and loads it back as one
// unit: vocabulary, IDF weights, selection mask and classifier parameters
// travel together, so the reloaded pipeline predicts without retraining.
package persist

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/models"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

// snapshot is the on-disk shape of a fitted pipeline. Exactly one of the
// classifier fields is set.
type snapshot struct {
	Vocab      []string
	NGramRange [2]int

	UseIDF bool
	IDF    []float64

	K    int
	Mask []int

	NB  *models.MultinomialNB
	SGD *models.SGDClassifier
	MLP *models.MLPState
}

// Save writes the fitted pipeline to path, creating intermediate
// directories as needed. Saving an unfitted pipeline is refused.
func Save(path string, p *pipeline.Pipeline) error {
	if !p.Fitted() {
		return &pipeline.UnfittedStateError{Op: "persist.Save"}
	}

	snap := snapshot{
		Vocab:      p.Vect.Vocab,
		NGramRange: p.Vect.NGramRange,
		UseIDF:     p.Tfidf.UseIDF,
		IDF:        p.Tfidf.IDF,
		K:          p.Kbest.K,
		Mask:       p.Kbest.Mask,
	}
	switch clf := p.Clf.(type) {
	case *models.MultinomialNB:
		snap.NB = clf
	case *models.SGDClassifier:
		snap.SGD = clf
	case *models.MLPClassifier:
		state, err := clf.State()
		if err != nil {
			return err
		}
		snap.MLP = state
	default:
		return errors.Errorf("persist: unsupported classifier %T", p.Clf)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "persist: creating %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "persist: creating %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return errors.Wrapf(err, "persist: encoding %s", path)
	}
	return f.Close()
}

// Load reads a previously saved pipeline, ready to predict.
func Load(path string) (*pipeline.Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "persist: opening %s", path)
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, errors.Wrapf(err, "persist: decoding %s", path)
	}

	var clf pipeline.Classifier
	switch {
	case snap.NB != nil:
		clf = snap.NB
	case snap.SGD != nil:
		clf = snap.SGD
	case snap.MLP != nil:
		clf = models.RestoreMLP(snap.MLP)
	default:
		return nil, errors.Errorf("persist: %s carries no classifier state", path)
	}

	return pipeline.Restored(
		&pipeline.CountVectorizer{Vocab: snap.Vocab, NGramRange: snap.NGramRange},
		&pipeline.TfidfTransformer{UseIDF: snap.UseIDF, IDF: snap.IDF},
		&pipeline.SelectKBest{K: snap.K, Mask: snap.Mask},
		clf,
	), nil
}
