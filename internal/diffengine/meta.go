package diffengine

import (
	"snapdiff/internal/document"
	errs "snapdiff/internal/errors"
)

// diffMeta compares the two metadata blocks and returns an ordered array
// of {field, before, after} entries, one per changed key.
//
// Iteration follows the before-side key insertion order, and keys present
// only in the after block are never reported. The asymmetry is part of the
// contract, not an oversight.
func diffMeta(beforeMeta, afterMeta *document.Value) (*document.Value, error) {
	if err := verifyMetaFields(beforeMeta); err != nil {
		return nil, err
	}
	if err := verifyMetaFields(afterMeta); err != nil {
		return nil, err
	}

	result := document.NewArray()
	members, err := beforeMeta.Members()
	if err != nil {
		return nil, errs.NewInvalidDocument("meta field must be an object")
	}

	for _, m := range members {
		afterVal, ok := afterMeta.Get(m.Key)
		if !ok {
			afterVal = document.Null()
		}
		// equality runs on the raw values; normalization below only
		// affects how a difference is recorded
		if document.Equal(m.Value, afterVal) {
			continue
		}

		entry := document.NewObject()
		entry.Set(document.FieldField, document.String(m.Key))
		if isTimeField(m.Key) {
			beforeTime, err := convertTime(m.Value)
			if err != nil {
				return nil, err
			}
			afterTime, err := convertTime(afterVal)
			if err != nil {
				return nil, err
			}
			entry.Set(document.FieldBefore, document.String(beforeTime))
			entry.Set(document.FieldAfter, document.String(afterTime))
		} else {
			entry.Set(document.FieldBefore, m.Value)
			entry.Set(document.FieldAfter, afterVal)
		}
		result.Append(entry)
	}
	return result, nil
}

// verifyMetaFields checks that a metadata block is present and carries the
// required title/startTime/endTime keys. Runs on both sides independently
// before any comparison.
func verifyMetaFields(meta *document.Value) error {
	if meta.IsNull() {
		return errs.NewMissingMeta()
	}
	if meta.Kind() != document.KindObject {
		return errs.NewInvalidDocument("meta field must be an object")
	}
	for _, required := range document.RequiredMetaFields {
		if _, ok := meta.Get(required); !ok {
			return errs.NewIncompleteMeta()
		}
	}
	return nil
}
