// Package diffengine computes a structured difference between two
// snapshot documents sharing a fixed shape: an identifier, a metadata
// block and a list of candidate records keyed by id.
//
// The engine is stateless and synchronous; every call is independent and
// side-effect free, so concurrent use needs no coordination. All failures
// are fatal validation or parse errors from snapdiff/internal/errors;
// nothing is caught, downgraded or logged inside the engine.
package diffengine

import (
	"snapdiff/internal/document"
	errs "snapdiff/internal/errors"
)

// Engine is the diff entry point.
type Engine struct{}

// New creates a diff engine
func New() *Engine {
	return &Engine{}
}

// Diff compares the before and after documents and returns the diff
// report. The result tree contains a "meta" section (ordered field diffs)
// and a "candidates" section (removed/edited/added id rows); a section
// with no differences is omitted entirely.
func (e *Engine) Diff(before, after *document.Value) (*Report, error) {
	if before == nil || before.IsNull() {
		return nil, errs.NewNullInput("first")
	}
	if after == nil || after.IsNull() {
		return nil, errs.NewNullInput("second")
	}
	if before.Kind() != document.KindObject {
		return nil, errs.NewInvalidDocument("first input must be a json object")
	}
	if after.Kind() != document.KindObject {
		return nil, errs.NewInvalidDocument("second input must be a json object")
	}

	// documents with different identifiers are never diffed; this guard
	// runs before any section validation
	beforeID, _ := before.Get(document.FieldID)
	afterID, _ := after.Get(document.FieldID)
	if !document.Equal(beforeID, afterID) {
		return nil, errs.NewIdentifierMismatch()
	}

	result := document.NewObject()

	beforeMeta, _ := before.Get(document.FieldMeta)
	afterMeta, _ := after.Get(document.FieldMeta)
	metaDiffs, err := diffMeta(beforeMeta, afterMeta)
	if err != nil {
		return nil, err
	}
	if metaDiffs.Len() > 0 {
		result.Set(document.FieldMeta, metaDiffs)
	}

	beforeCandidates, _ := before.Get(document.FieldCandidates)
	afterCandidates, _ := after.Get(document.FieldCandidates)
	candidateDiffs, err := diffCandidates(beforeCandidates, afterCandidates)
	if err != nil {
		return nil, err
	}
	if candidateDiffs.Len() > 0 {
		result.Set(document.FieldCandidates, candidateDiffs)
	}

	return newReport(result), nil
}
