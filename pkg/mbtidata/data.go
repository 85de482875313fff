// Package mbtidata loads, validates and preprocesses the labeled MBTI posts
// dataset.
//
// The raw dataset is a two-column CSV: a personality-type label and a single
// string of posts joined by "|||". Preprocessing expands every post into its
// own training example.
package mbtidata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// PostDelimiter joins individual posts inside the posts column.
const PostDelimiter = "|||"

// Types are the 16 valid personality-type labels, combinations of the four
// binary axes.
var Types = []string{
	"ENFJ", "ENFP", "ENTJ", "ENTP",
	"ESFJ", "ESFP", "ESTJ", "ESTP",
	"INFJ", "INFP", "INTJ", "INTP",
	"ISFJ", "ISFP", "ISTJ", "ISTP",
}

var typeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Types))
	for _, t := range Types {
		m[t] = struct{}{}
	}
	return m
}()

// ValidType checks a label against the fixed 16-value set.
func ValidType(label string) bool {
	_, ok := typeSet[label]
	return ok
}

// Record is one subject's aggregated posts. Immutable once loaded.
type Record struct {
	Type  string
	Posts string
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// CleanedRecord pairs a label with the tokens of one individual post.
type CleanedRecord struct {
	Type   string
	Tokens []string
}

// DataIntegrityError reports a malformed row: wrong column count or a label
// outside the fixed type set. The load fails rather than skipping the row.
type DataIntegrityError struct {
	Row    int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: row %d: %s", e.Row, e.Reason)
}

// LoadCSV reads the raw two-column dataset. No header row is expected; a
// leading "type,posts" header is tolerated and skipped. Any other row with
// the wrong shape or an unknown label fails the whole load.
func LoadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var ds Dataset
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		if row == 0 && len(rec) == 2 && rec[0] == "type" && rec[1] == "posts" {
			row++
			continue
		}
		if len(rec) != 2 {
			return nil, &DataIntegrityError{Row: row, Reason: fmt.Sprintf("expected 2 columns, got %d", len(rec))}
		}
		if !ValidType(rec[0]) {
			return nil, &DataIntegrityError{Row: row, Reason: fmt.Sprintf("unknown personality type %q", rec[0])}
		}
		ds = append(ds, Record{Type: rec[0], Posts: rec[1]})
		row++
	}
	return ds, nil
}

// WriteCleanedCSV writes cleaned records in the two-column shape, the posts
// column holding the token list serialized as a JSON array. Consumers must
// treat this as already-tokenized data.
func WriteCleanedCSV(w io.Writer, cleaned []CleanedRecord) error {
	cw := csv.NewWriter(w)
	for i, rec := range cleaned {
		tokens, err := json.Marshal(rec.Tokens)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		if err := cw.Write([]string{rec.Type, string(tokens)}); err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadCleanedCSV reads a cleaned dataset back. Tokens are not re-tokenized.
func LoadCleanedCSV(r io.Reader) ([]CleanedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var cleaned []CleanedRecord
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		if len(rec) != 2 {
			return nil, &DataIntegrityError{Row: row, Reason: fmt.Sprintf("expected 2 columns, got %d", len(rec))}
		}
		if !ValidType(rec[0]) {
			return nil, &DataIntegrityError{Row: row, Reason: fmt.Sprintf("unknown personality type %q", rec[0])}
		}
		var tokens []string
		if err := json.Unmarshal([]byte(rec[1]), &tokens); err != nil {
			return nil, &DataIntegrityError{Row: row, Reason: "posts column is not a serialized token list"}
		}
		cleaned = append(cleaned, CleanedRecord{Type: rec[0], Tokens: tokens})
		row++
	}
	return cleaned, nil
}

// XY splits cleaned records into parallel token-document and label slices,
// the shape the feature pipeline consumes.
func XY(cleaned []CleanedRecord) (docs [][]string, labels []string) {
	docs = make([][]string, len(cleaned))
	labels = make([]string, len(cleaned))
	for i, rec := range cleaned {
		docs[i] = rec.Tokens
		labels[i] = rec.Type
	}
	return docs, labels
}
