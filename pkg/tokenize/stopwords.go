package tokenize

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// DefaultStopwordURL serves the English stopword list, one word per line.
const DefaultStopwordURL = "https://raw.githubusercontent.com/stopwords-iso/stopwords-en/master/stopwords-en.txt"

// DefaultStopwordCache is where a fetched list is kept for later runs.
const DefaultStopwordCache = "data/stopwords-en.txt"

// punctuation mirrors string.punctuation: every ASCII punctuation mark is a
// single-character stopword.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ResourceUnavailableError reports that the stopword list could not be
// loaded from the local cache nor fetched remotely. Proceeding with an
// empty set would silently change results, so this is always surfaced.
type ResourceUnavailableError struct {
	Path string
	URL  string
	Err  error
}

func (e *ResourceUnavailableError) Error() string {
	return "stopwords unavailable: no cache at " + e.Path + " and fetch from " + e.URL + " failed: " + e.Err.Error()
}

func (e *ResourceUnavailableError) Unwrap() error { return e.Err }

// Stoplist is an immutable set of stopwords plus single-character
// punctuation. Safe for concurrent use once built.
type Stoplist struct {
	stops map[string]struct{}
}

// NewStoplist builds a stoplist from words; punctuation marks are always
// included.
func NewStoplist(words []string) *Stoplist {
	stops := make(map[string]struct{}, len(words)+len(punctuation))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			stops[w] = struct{}{}
		}
	}
	for _, r := range punctuation {
		stops[string(r)] = struct{}{}
	}
	return &Stoplist{stops: stops}
}

// IsStop checks if a token is a stopword.
func (s *Stoplist) IsStop(token string) bool {
	_, ok := s.stops[token]
	return ok
}

// Filter removes stopwords and punctuation from tokens, preserving order.
// Filtering an already filtered sequence is a no-op.
func (s *Stoplist) Filter(tokens []string) []string {
	clean := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !s.IsStop(tok) {
			clean = append(clean, tok)
		}
	}
	return clean
}

// Len reports the number of entries, punctuation included.
func (s *Stoplist) Len() int { return len(s.stops) }

// StopwordLoader loads the stopword list from a local cache file, falling
// back to a remote fetch which is then cached. The fetch is retried once;
// network failures are the only retryable error in the whole system.
type StopwordLoader struct {
	CachePath string
	URL       string
	Client    *http.Client
}

// Load returns the stoplist, fetching and caching it if needed.
func (l *StopwordLoader) Load() (*Stoplist, error) {
	path := l.CachePath
	if path == "" {
		path = DefaultStopwordCache
	}
	url := l.URL
	if url == "" {
		url = DefaultStopwordURL
	}

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		words, err := readWords(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading stopword cache %s", path)
		}
		return NewStoplist(words), nil
	}

	body, err := l.fetch(url)
	if err != nil {
		// retry once, then give up
		body, err = l.fetch(url)
	}
	if err != nil {
		return nil, &ResourceUnavailableError{Path: path, URL: url, Err: err}
	}

	if err := writeCache(path, body); err != nil {
		return nil, errors.Wrapf(err, "caching stopwords to %s", path)
	}
	words, err := readWords(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return NewStoplist(words), nil
}

func (l *StopwordLoader) fetch(url string) (string, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, strings.TrimSpace(sc.Text()))
	}
	return words, sc.Err()
}

func writeCache(path, body string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

var (
	defaultStops     *Stoplist
	defaultStopsErr  error
	defaultStopsOnce sync.Once
)

// DefaultStoplist loads the shared process-wide stoplist on first use.
// Concurrent first access performs the load exactly once; a failed load is
// sticky for the process lifetime.
func DefaultStoplist() (*Stoplist, error) {
	defaultStopsOnce.Do(func() {
		l := &StopwordLoader{}
		defaultStops, defaultStopsErr = l.Load()
	})
	return defaultStops, defaultStopsErr
}
