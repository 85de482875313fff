package report

import (
	"math"
	"reflect"
	"testing"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/mbtidata"
)

func TestLabelCounts(t *testing.T) {
	ds := mbtidata.Dataset{
		{Type: "INTJ", Posts: "a"},
		{Type: "INTJ", Posts: "b"},
		{Type: "ENFP", Posts: "c"},
	}
	got := LabelCounts(ds)
	want := map[string]int{"INTJ": 2, "ENFP": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LabelCounts = %v, want %v", got, want)
	}
}

func TestGatherWords(t *testing.T) {
	cleaned := []mbtidata.CleanedRecord{
		{Type: "INTJ", Tokens: []string{"a", "b"}},
		{Type: "ENFP", Tokens: []string{"c"}},
	}
	got := GatherWords(cleaned)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GatherWords = %q", got)
	}
}

func TestTopWords(t *testing.T) {
	cleaned := []mbtidata.CleanedRecord{
		{Type: "INTJ", Tokens: []string{"beta", "alpha", "beta"}},
		{Type: "ENFP", Tokens: []string{"alpha", "gamma", "beta"}},
	}
	got := TopWords(cleaned, 2)
	want := []WordCount{
		{Word: "beta", Count: 3},
		{Word: "alpha", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopWords = %v, want %v", got, want)
	}

	// equal counts fall back to alphabetical order
	tied := TopWords([]mbtidata.CleanedRecord{{Type: "INTJ", Tokens: []string{"zz", "aa"}}}, 5)
	if tied[0].Word != "aa" || tied[1].Word != "zz" {
		t.Fatalf("tie order = %v", tied)
	}
}

func TestFindPattern(t *testing.T) {
	cleaned := []mbtidata.CleanedRecord{
		{Type: "INTJ", Tokens: []string{"#mbti", "rocks", "#intj"}},
		{Type: "ENFP", Tokens: []string{"no", "tags", "here"}},
		{Type: "ISTP", Tokens: []string{"#hello", "world"}},
	}
	words, records, err := FindPattern(cleaned, `^#`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(words, []string{"#mbti", "#intj", "#hello"}) {
		t.Fatalf("words = %q", words)
	}
	if records != 2 {
		t.Fatalf("records = %d, want 2", records)
	}

	words, records, err = FindPattern(cleaned, `^zzz$`)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 0 || records != 0 {
		t.Fatalf("no-match case: words=%q records=%d", words, records)
	}
}

func TestFindPatternBadPattern(t *testing.T) {
	if _, _, err := FindPattern(nil, "("); err == nil {
		t.Fatal("expected error for an invalid pattern")
	}
}

func TestTrendLine(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{3, 5, 7, 9, 11} // y = 2x + 1
	slope, intercept, r2, err := TrendLine(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Fatalf("line = %vx + %v, want 2x + 1", slope, intercept)
	}
	if math.Abs(r2-1) > 1e-9 {
		t.Fatalf("r2 = %v, want 1", r2)
	}
}

func TestTrendLineErrors(t *testing.T) {
	if _, _, _, err := TrendLine([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if _, _, _, err := TrendLine([]float64{1}, []float64{1}); err == nil {
		t.Fatal("expected error for a single point")
	}
}
