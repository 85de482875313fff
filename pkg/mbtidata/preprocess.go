package mbtidata

import (
	"log"
	"strings"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/tokenize"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/workerpool"
)

// PreprocessOptions configure the corpus preprocessor.
type PreprocessOptions struct {
	// FilterStopwords removes stopwords and punctuation after tokenizing.
	FilterStopwords bool
	// Stoplist must be set when FilterStopwords is true.
	Stoplist *tokenize.Stoplist
	// Normalize strips combining marks from the raw posts first.
	Normalize bool
	// Tokenizer defaults to the shared process tokenizer.
	Tokenizer *tokenize.Tokenizer
	// Pool controls partitioned execution; nil runs sequentially.
	Pool *workerpool.Pool
	// LogEvery logs progress after that many records; 0 disables it.
	LogEvery int
}

// Preprocess expands every record into one cleaned record per individual
// post: the posts column is split on "|||", each post tokenized and
// optionally filtered. A record with an empty posts column contributes
// nothing.
//
// With a pool, the dataset is split into one contiguous partition per
// worker, partitions are processed independently and their results
// concatenated in partition order, so the output is identical to
// sequential execution for any worker count.
func Preprocess(ds Dataset, opts PreprocessOptions) ([]CleanedRecord, error) {
	if opts.Tokenizer == nil {
		opts.Tokenizer = tokenize.Default()
	}
	if opts.FilterStopwords && opts.Stoplist == nil {
		stops, err := tokenize.DefaultStoplist()
		if err != nil {
			return nil, err
		}
		opts.Stoplist = stops
	}

	parts := 1
	if opts.Pool != nil {
		parts = opts.Pool.Workers()
	}
	ranges := workerpool.Partition(len(ds), parts)
	results := make([][]CleanedRecord, len(ranges))

	run := func(i int) error {
		out, err := preprocessRange(ds, ranges[i][0], ranges[i][1], opts)
		if err != nil {
			return err
		}
		results[i] = out
		return nil
	}

	if opts.Pool == nil {
		for i := range ranges {
			if err := run(i); err != nil {
				return nil, err
			}
		}
	} else {
		if err := opts.Pool.Run(len(ranges), run); err != nil {
			return nil, err
		}
	}

	var cleaned []CleanedRecord
	for _, part := range results {
		cleaned = append(cleaned, part...)
	}
	return cleaned, nil
}

func preprocessRange(ds Dataset, start, end int, opts PreprocessOptions) ([]CleanedRecord, error) {
	var cleaned []CleanedRecord
	for i := start; i < end; i++ {
		rec := ds[i]
		if rec.Posts == "" {
			continue
		}
		posts := rec.Posts
		if opts.Normalize {
			var err error
			if posts, err = tokenize.Normalize(posts); err != nil {
				return nil, err
			}
		}
		for _, post := range strings.Split(posts, PostDelimiter) {
			tokens := opts.Tokenizer.Tokenize(post)
			if opts.FilterStopwords {
				tokens = opts.Stoplist.Filter(tokens)
			}
			cleaned = append(cleaned, CleanedRecord{Type: rec.Type, Tokens: tokens})
		}
		if opts.LogEvery > 0 && (i-start)%opts.LogEvery == 0 {
			log.Printf("record %d of %d done", i, len(ds))
		}
	}
	return cleaned, nil
}
