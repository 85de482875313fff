package mbtidata

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestLoadCSV(t *testing.T) {
	in := strings.NewReader("INTJ,\"hello|||world\"\nENFP,single post\n")
	ds, err := LoadCSV(in)
	if err != nil {
		t.Fatal(err)
	}
	want := Dataset{
		{Type: "INTJ", Posts: "hello|||world"},
		{Type: "ENFP", Posts: "single post"},
	}
	if !reflect.DeepEqual(ds, want) {
		t.Fatalf("LoadCSV = %+v, want %+v", ds, want)
	}
}

func TestLoadCSVSkipsHeader(t *testing.T) {
	in := strings.NewReader("type,posts\nISTP,a|||b\n")
	ds, err := LoadCSV(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 1 || ds[0].Type != "ISTP" {
		t.Fatalf("unexpected dataset %+v", ds)
	}
}

func TestLoadCSVRejectsUnknownType(t *testing.T) {
	in := strings.NewReader("INTJ,fine\nZZZZ,bad\n")
	_, err := LoadCSV(in)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError, got %v", err)
	}
	if integrity.Row != 1 {
		t.Fatalf("error row = %d, want 1", integrity.Row)
	}
}

func TestLoadCSVRejectsWrongColumns(t *testing.T) {
	in := strings.NewReader("INTJ,posts,extra\n")
	_, err := LoadCSV(in)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError, got %v", err)
	}
}

func TestValidType(t *testing.T) {
	if len(Types) != 16 {
		t.Fatalf("expected 16 types, got %d", len(Types))
	}
	for _, label := range Types {
		if !ValidType(label) {
			t.Errorf("ValidType(%q) = false", label)
		}
	}
	for _, label := range []string{"", "intj", "ABCD", "INTJX"} {
		if ValidType(label) {
			t.Errorf("ValidType(%q) = true", label)
		}
	}
}

func TestCleanedCSVRoundTrip(t *testing.T) {
	cleaned := []CleanedRecord{
		{Type: "INFP", Tokens: []string{"i", "luv", ":)"}},
		{Type: "ESTJ", Tokens: []string{"comma,inside", "quote\"inside"}},
		{Type: "ISFP", Tokens: []string{}},
	}

	var buf bytes.Buffer
	if err := WriteCleanedCSV(&buf, cleaned); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCleanedCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cleaned) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, cleaned)
	}
}

func TestLoadCleanedCSVRejectsPlainText(t *testing.T) {
	in := strings.NewReader("INTJ,not a token list\n")
	_, err := LoadCleanedCSV(in)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError, got %v", err)
	}
}

func TestXY(t *testing.T) {
	cleaned := []CleanedRecord{
		{Type: "INTJ", Tokens: []string{"a"}},
		{Type: "ENFP", Tokens: []string{"b", "c"}},
	}
	docs, labels := XY(cleaned)
	if !reflect.DeepEqual(labels, []string{"INTJ", "ENFP"}) {
		t.Fatalf("labels = %q", labels)
	}
	if !reflect.DeepEqual(docs, [][]string{{"a"}, {"b", "c"}}) {
		t.Fatalf("docs = %q", docs)
	}
}
