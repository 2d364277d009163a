package diffengine

import (
	"snapdiff/internal/document"
)

// Stats summarizes a report for logging and history storage
type Stats struct {
	MetaChanged       int `json:"metaChanged"`
	CandidatesRemoved int `json:"candidatesRemoved"`
	CandidatesEdited  int `json:"candidatesEdited"`
	CandidatesAdded   int `json:"candidatesAdded"`
}

// Report is the result of one diff run: the diff document tree plus
// derived statistics. The tree omits empty sections entirely; a fully
// empty diff is an object with no members.
type Report struct {
	tree  *document.Value
	Stats Stats
}

// Tree returns the diff document
func (r *Report) Tree() *document.Value {
	return r.tree
}

// IsEmpty reports whether the diff found no differences
func (r *Report) IsEmpty() bool {
	return r.tree.Len() == 0
}

// EncodeJSON serializes the report tree to JSON. Section and category
// order follows insertion order: meta before candidates, candidate
// categories in first-occurrence order.
func (r *Report) EncodeJSON(indent string) ([]byte, error) {
	return document.EncodeJSON(r.tree, indent)
}

func newReport(tree *document.Value) *Report {
	r := &Report{tree: tree}
	if meta, ok := tree.Get(document.FieldMeta); ok {
		r.Stats.MetaChanged = meta.Len()
	}
	if cands, ok := tree.Get(document.FieldCandidates); ok {
		if rows, ok := cands.Get(document.FieldRemoved); ok {
			r.Stats.CandidatesRemoved = rows.Len()
		}
		if rows, ok := cands.Get(document.FieldEdited); ok {
			r.Stats.CandidatesEdited = rows.Len()
		}
		if rows, ok := cands.Get(document.FieldAdded); ok {
			r.Stats.CandidatesAdded = rows.Len()
		}
	}
	return r
}
