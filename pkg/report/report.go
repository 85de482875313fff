// Package report computes the summaries consumed by external
// visualization: label frequencies for bar charts, top-N word frequencies,
// the flat token multiset for word clouds, and a scatter trend line.
// It produces data only; drawing happens elsewhere.
package report

import (
	"regexp"
	"sort"

	"github.com/pkg/errors"
	"github.com/sajari/regression"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/mbtidata"
)

// LabelCounts counts records per personality type.
func LabelCounts(ds mbtidata.Dataset) map[string]int {
	counts := make(map[string]int)
	for _, rec := range ds {
		counts[rec.Type]++
	}
	return counts
}

// GatherWords flattens cleaned records into one token multiset.
func GatherWords(cleaned []mbtidata.CleanedRecord) []string {
	var words []string
	for _, rec := range cleaned {
		words = append(words, rec.Tokens...)
	}
	return words
}

// WordCount pairs a word with its corpus frequency.
type WordCount struct {
	Word  string
	Count int
}

// TopWords returns the n most frequent words, count descending, ties
// alphabetical.
func TopWords(cleaned []mbtidata.CleanedRecord, n int) []WordCount {
	freq := make(map[string]int)
	for _, rec := range cleaned {
		for _, tok := range rec.Tokens {
			freq[tok]++
		}
	}

	counts := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		counts = append(counts, WordCount{Word: word, Count: count})
	}
	sort.Slice(counts, func(a, b int) bool {
		if counts[a].Count != counts[b].Count {
			return counts[a].Count > counts[b].Count
		}
		return counts[a].Word < counts[b].Word
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// FindPattern returns every token matching the regular expression pattern,
// in corpus order, along with the number of records containing at least one
// match. Useful for pulling hashtags, mentions or URL tokens out of the
// cleaned corpus.
func FindPattern(cleaned []mbtidata.CleanedRecord, pattern string) (words []string, records int, err error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "report: pattern %q", pattern)
	}

	for _, rec := range cleaned {
		matched := false
		for _, tok := range rec.Tokens {
			if re.MatchString(tok) {
				words = append(words, tok)
				matched = true
			}
		}
		if matched {
			records++
		}
	}
	return words, records, nil
}

// TrendLine fits a degree-1 line through the points, for scatter-plot
// overlays.
func TrendLine(xs, ys []float64) (slope, intercept, r2 float64, err error) {
	if len(xs) != len(ys) {
		return 0, 0, 0, errors.Errorf("report: %d xs but %d ys", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, 0, 0, errors.New("report: need at least 2 points for a trend line")
	}

	r := new(regression.Regression)
	r.SetObserved("y")
	r.SetVar(0, "x")
	for i := range xs {
		r.Train(regression.DataPoint(ys[i], []float64{xs[i]}))
	}
	if err := r.Run(); err != nil {
		return 0, 0, 0, errors.Wrap(err, "report: trend line")
	}
	return r.Coeff(1), r.Coeff(0), r.R2, nil
}
