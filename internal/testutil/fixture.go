// Package testutil provides helpers for fixture-driven tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"snapdiff/internal/document"
)

// LoadDocument reads a JSON fixture from the package's testdata directory
// into a document tree, failing the test on error.
func LoadDocument(t *testing.T, name string) *document.Value {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}

	doc, err := document.DecodeJSON(data)
	if err != nil {
		t.Fatalf("failed to decode fixture %s: %v", name, err)
	}
	return doc
}

// AssertTreeEqual compares two document trees structurally and reports a
// readable diff of their serialized forms on mismatch.
func AssertTreeEqual(t *testing.T, got, want *document.Value) {
	t.Helper()

	if document.Equal(got, want) {
		return
	}
	gotJSON, _ := document.EncodeJSON(got, "  ")
	wantJSON, _ := document.EncodeJSON(want, "  ")
	t.Errorf("trees differ:\n got: %s\nwant: %s", gotJSON, wantJSON)
}
