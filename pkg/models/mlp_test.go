package models

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
)

func TestMLPUnfitted(t *testing.T) {
	nn := NewMLPClassifier()
	_, err := nn.Predict(sepX)
	var unfitted *pipeline.UnfittedStateError
	if !errors.As(err, &unfitted) {
		t.Fatalf("expected UnfittedStateError, got %v", err)
	}
	if _, err := nn.State(); !errors.As(err, &unfitted) {
		t.Fatalf("State before Fit: expected UnfittedStateError, got %v", err)
	}
}

func TestMLPSeparable(t *testing.T) {
	nn := NewMLPClassifier()
	nn.Hidden = 8
	nn.Epochs = 300
	nn.LearnRate = 0.5
	if err := nn.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	predicted, err := nn.Predict(sepX)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(predicted, sepY) {
		t.Fatalf("predicted %q, want %q", predicted, sepY)
	}
}

func TestMLPDeterministic(t *testing.T) {
	a := NewMLPClassifier()
	a.Hidden = 4
	a.Epochs = 10
	b := NewMLPClassifier()
	b.Hidden = 4
	b.Epochs = 10
	if err := a.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}

	sa, err := a.State()
	if err != nil {
		t.Fatal(err)
	}
	sb, err := b.State()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sa, sb) {
		t.Fatal("identical seeds produced different weights")
	}
}

func TestMLPStateRoundTrip(t *testing.T) {
	nn := NewMLPClassifier()
	nn.Hidden = 8
	nn.Epochs = 300
	nn.LearnRate = 0.5
	if err := nn.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	want, err := nn.Predict(sepX)
	if err != nil {
		t.Fatal(err)
	}

	state, err := nn.State()
	if err != nil {
		t.Fatal(err)
	}
	restored := RestoreMLP(state)
	got, err := restored.Predict(sepX)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatal("restored network predicts differently")
	}
}

func TestMLPRejectsBadConfig(t *testing.T) {
	nn := NewMLPClassifier()
	nn.Hidden = 0
	if err := nn.Fit(sepX, sepY); err == nil {
		t.Fatal("expected error for zero hidden units")
	}
	nn = NewMLPClassifier()
	nn.Epochs = 0
	if err := nn.Fit(sepX, sepY); err == nil {
		t.Fatal("expected error for zero epochs")
	}
}

func TestMLPFeatureCountMismatch(t *testing.T) {
	nn := NewMLPClassifier()
	nn.Hidden = 4
	nn.Epochs = 5
	if err := nn.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	if _, err := nn.Predict(mat.NewDense(1, 3, []float64{1, 2, 3})); err == nil {
		t.Fatal("expected error for feature count mismatch")
	}
}

func TestMajorityBaseline(t *testing.T) {
	base := &MajorityBaseline{}
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := []string{"INFP", "INFP", "INFP", "ESTJ", "ESTJ"}
	if err := base.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	predicted, err := base.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range predicted {
		if p != "INFP" {
			t.Fatalf("predicted %q, want INFP", p)
		}
	}
	acc, err := base.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if acc != 0.6 {
		t.Fatalf("accuracy = %v, want 0.6", acc)
	}

	// refit on new data must drop the old majority
	y2 := []string{"ESTJ", "ESTJ", "ESTJ", "INFP", "INFP"}
	if err := base.Fit(X, y2); err != nil {
		t.Fatal(err)
	}
	predicted, err = base.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	if predicted[0] != "ESTJ" {
		t.Fatalf("refit predicted %q, want ESTJ", predicted[0])
	}
}

func TestSeparableBeatsBaseline(t *testing.T) {
	base := &MajorityBaseline{}
	if err := base.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	baseAcc, err := base.Score(sepX, sepY)
	if err != nil {
		t.Fatal(err)
	}

	nb := NewMultinomialNB()
	if err := nb.Fit(sepX, sepY); err != nil {
		t.Fatal(err)
	}
	nbAcc, err := nb.Score(sepX, sepY)
	if err != nil {
		t.Fatal(err)
	}
	if nbAcc <= baseAcc {
		t.Fatalf("naive Bayes accuracy %v does not beat baseline %v", nbAcc, baseAcc)
	}
}
