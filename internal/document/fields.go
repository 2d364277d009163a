package document

// Field names of the snapshot document schema. The same closed set is used
// for validation and for building diff reports, never as scattered literals.
const (
	// FieldID keys the document and candidate identifier
	FieldID = "id"
	// FieldMeta keys the metadata block
	FieldMeta = "meta"
	// FieldCandidates keys the candidate list
	FieldCandidates = "candidates"

	// FieldField names the changed key inside a meta diff entry
	FieldField = "field"
	// FieldBefore holds the value before the change
	FieldBefore = "before"
	// FieldAfter holds the value after the change
	FieldAfter = "after"

	// FieldRemoved lists candidates present only in the before snapshot
	FieldRemoved = "removed"
	// FieldEdited lists candidates present in both snapshots with changes
	FieldEdited = "edited"
	// FieldAdded lists candidates present only in the after snapshot
	FieldAdded = "added"

	// FieldTitle is a required metadata key
	FieldTitle = "title"
	// FieldStartTime is a required metadata key
	FieldStartTime = "startTime"
	// FieldEndTime is a required metadata key
	FieldEndTime = "endTime"
)

// RequiredMetaFields are the metadata keys that must be present on both
// sides before any comparison runs.
var RequiredMetaFields = []string{FieldTitle, FieldStartTime, FieldEndTime}
