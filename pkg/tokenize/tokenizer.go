// Package tokenize turns raw social-media posts into normalized tokens and
// strips stopwords and punctuation from them.
package tokenize

import (
	"regexp"
	"strings"
	"sync"
)

// emoticonPat matches western-style emoticons: eyes, an optional nose and a
// mouth. It is matched before anything else so that ":)" or ";-D" survive as
// single tokens.
const emoticonPat = `[:=;][oO\-]?[D\)\]\(/\\OpPd]`

// tokenPats are tried in order at every position, first match wins.
var tokenPats = []string{
	emoticonPat,
	`<[^>]+>`,                    // HTML tags
	`@[\w_]+`,                    // @-mentions
	`#+[\w_]+[\w'_\-]*[\w_]+`,    // hashtags
	`https?://(?:[a-z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-f][0-9a-f]))+`, // URLs
	`(?:\d+,?)+(?:\.?\d+)?`,      // numbers, optionally comma-grouped
	`[a-z][a-z'\-_]+[a-z]`,       // words with dashes and apostrophes
	`[\w_]+`,                     // other words
	`\S`,                         // anything else
}

// Tokenizer splits text into tokens using a fixed ordered rule set.
// Tokens are lowercased except those that are themselves emoticons,
// whose casing carries meaning (":D" vs ":d").
type Tokenizer struct {
	tokenRe    *regexp.Regexp
	emoticonRe *regexp.Regexp
}

// NewTokenizer compiles the pattern set.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		tokenRe:    regexp.MustCompile(`(?i)` + strings.Join(tokenPats, "|")),
		emoticonRe: regexp.MustCompile(`(?i)^(?:` + emoticonPat + `)$`),
	}
}

var (
	defaultTok     *Tokenizer
	defaultTokOnce sync.Once
)

// Default returns the shared process-wide tokenizer. The patterns are
// compiled once on first use.
func Default() *Tokenizer {
	defaultTokOnce.Do(func() {
		defaultTok = NewTokenizer()
	})
	return defaultTok
}

// Tokenize returns the ordered tokens of text. Empty input yields nil.
func (t *Tokenizer) Tokenize(text string) []string {
	matches := t.tokenRe.FindAllString(text, -1)
	for i, m := range matches {
		if !t.emoticonRe.MatchString(m) {
			matches[i] = strings.ToLower(m)
		}
	}
	return matches
}
