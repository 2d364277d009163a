package diffengine

import (
	"snapdiff/internal/document"
	errs "snapdiff/internal/errors"
)

// keyedItem is one candidate prepared for reconciliation: its canonical
// lookup key, the raw id value and the full record.
type keyedItem struct {
	key string
	id  *document.Value
	val *document.Value
}

// outcome is one classified candidate.
type outcome struct {
	category string // document.FieldRemoved, FieldEdited or FieldAdded
	id       *document.Value
}

// diffCandidates reconciles the two candidate lists into an object with
// removed/edited/added categories, each an ordered array of {id} rows.
// Categories appear in first-occurrence order and empty categories are
// omitted.
func diffCandidates(beforeList, afterList *document.Value) (*document.Value, error) {
	if beforeList.IsNull() || afterList.IsNull() {
		return nil, errs.NewMissingCandidates()
	}

	before, err := keyCandidates(beforeList)
	if err != nil {
		return nil, err
	}
	after, err := keyCandidates(afterList)
	if err != nil {
		return nil, err
	}

	result := document.NewObject()
	for _, o := range reconcileByKey(before, after, hasDifferentFieldValues) {
		rows, ok := result.Get(o.category)
		if !ok {
			rows = document.NewArray()
			result.Set(o.category, rows)
		}
		row := document.NewObject()
		row.Set(document.FieldID, o.id)
		rows.Append(row)
	}
	return result, nil
}

// reconcileByKey classifies two keyed sequences against each other.
// Pass 1 looks every before-item up in the after set: a missing key is
// removed, a present key whose values differ is edited. Pass 2 looks
// every after-item up in the before set: a missing key is added.
// Outcomes preserve the scan order of the originating list.
//
// Lookups are last-write-wins: when a key repeats within one list, only
// the last occurrence is visible to the other side. Behavior with
// duplicate ids is therefore lookup-table dependent, a documented
// limitation of the format.
func reconcileByKey(before, after []keyedItem, differs func(before, after *document.Value) bool) []outcome {
	afterByKey := make(map[string]*document.Value, len(after))
	for _, item := range after {
		afterByKey[item.key] = item.val
	}

	var out []outcome
	for _, item := range before {
		match, ok := afterByKey[item.key]
		if !ok {
			out = append(out, outcome{document.FieldRemoved, item.id})
			continue
		}
		if differs(item.val, match) {
			out = append(out, outcome{document.FieldEdited, item.id})
		}
	}

	beforeByKey := make(map[string]*document.Value, len(before))
	for _, item := range before {
		beforeByKey[item.key] = item.val
	}
	for _, item := range after {
		if _, ok := beforeByKey[item.key]; !ok {
			out = append(out, outcome{document.FieldAdded, item.id})
		}
	}
	return out
}

// keyCandidates validates a candidate list and extracts each record's
// identifier and canonical lookup key.
func keyCandidates(list *document.Value) ([]keyedItem, error) {
	items, err := list.Items()
	if err != nil {
		return nil, errs.NewInvalidDocument("candidates field must be an array")
	}

	keyed := make([]keyedItem, 0, len(items))
	for _, cand := range items {
		if cand.Kind() != document.KindObject {
			return nil, errs.NewInvalidDocument("candidate must be an object")
		}
		id, ok := cand.Get(document.FieldID)
		if !ok {
			return nil, errs.NewInvalidDocument("candidate id is missed")
		}
		key, ok := id.LookupKey()
		if !ok {
			return nil, errs.NewInvalidDocument("candidate id must be a scalar value")
		}
		keyed = append(keyed, keyedItem{key: key, id: id, val: cand})
	}
	return keyed, nil
}

// hasDifferentFieldValues compares every field of the before-candidate
// against the matched after-candidate. Only before's own key set is
// examined; fields present only in after are ignored for this direction.
func hasDifferentFieldValues(before, after *document.Value) bool {
	members, err := before.Members()
	if err != nil {
		return false
	}
	for _, m := range members {
		afterVal, ok := after.Get(m.Key)
		if !ok {
			afterVal = document.Null()
		}
		if !document.Equal(m.Value, afterVal) {
			return true
		}
	}
	return false
}
