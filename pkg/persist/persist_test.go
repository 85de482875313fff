package persist

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/models"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

var (
	trainDocs = [][]string{
		{"quiet", "books", "theory", "alone"},
		{"quiet", "theory", "chess"},
		{"books", "theory", "quiet"},
		{"party", "people", "loud", "fun"},
		{"party", "loud", "crowd"},
		{"people", "crowd", "party"},
	}
	trainY = []string{"INTJ", "INTJ", "INTJ", "ESFP", "ESFP", "ESFP"}
)

func fitted(t *testing.T, clf pipeline.Classifier) *pipeline.Pipeline {
	t.Helper()
	p := pipeline.New(clf)
	if err := p.Fit(trainDocs, trainY); err != nil {
		t.Fatal(err)
	}
	return p
}

func roundTrip(t *testing.T, clf pipeline.Classifier) {
	t.Helper()
	p := fitted(t, clf)
	want, err := p.Predict(trainDocs)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "models", "clf.gob")
	if err := Save(path, p); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Fitted() {
		t.Fatal("loaded pipeline not fitted")
	}

	got, err := loaded.Predict(trainDocs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded predictions %q, want %q", got, want)
	}
}

func TestSaveLoadNaiveBayes(t *testing.T) {
	roundTrip(t, models.NewMultinomialNB())
}

func TestSaveLoadSGD(t *testing.T) {
	svm := models.NewSGDClassifier()
	svm.Epochs = 10
	roundTrip(t, svm)
}

func TestSaveLoadMLP(t *testing.T) {
	nn := models.NewMLPClassifier()
	nn.Hidden = 8
	nn.Epochs = 50
	roundTrip(t, nn)
}

func TestSaveRefusesUnfitted(t *testing.T) {
	p := pipeline.New(models.NewMultinomialNB())
	err := Save(filepath.Join(t.TempDir(), "clf.gob"), p)
	var unfitted *pipeline.UnfittedStateError
	if !errors.As(err, &unfitted) {
		t.Fatalf("expected UnfittedStateError, got %v", err)
	}
}

func TestSaveRefusesUnknownClassifier(t *testing.T) {
	p := fitted(t, &models.MajorityBaseline{})
	if err := Save(filepath.Join(t.TempDir(), "clf.gob"), p); err == nil {
		t.Fatal("expected error for unsupported classifier")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.gob")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
