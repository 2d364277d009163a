package diffengine

import (
	"strings"
	"time"

	"snapdiff/internal/document"
	errs "snapdiff/internal/errors"
)

// Report timestamps are always rendered in UTC+2 with an hour-only offset
// suffix, regardless of the host timezone.
const reportTimeLayout = "2006-01-02T15:04:05Z07"

var reportZone = time.FixedZone("UTC+2", 2*60*60)

// isTimeField reports whether a metadata key holds a timestamp. Detection
// is by naming convention: any key whose name contains "Time". A non-time
// field that happens to contain the substring will be parsed as a
// timestamp and fail the diff; declaring field types explicitly would
// remove that, at the cost of a schema the input documents do not carry.
func isTimeField(key string) bool {
	return strings.Contains(key, "Time")
}

// convertTime parses an ISO-8601 offset date-time value and re-renders it
// in the fixed report zone. Any unparseable value fails the whole diff.
func convertTime(v *document.Value) (string, error) {
	s, err := v.Str()
	if err != nil {
		return "", errs.NewTimestampParse(v.Raw(), err)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", errs.NewTimestampParse(s, err)
	}
	return t.In(reportZone).Format(reportTimeLayout), nil
}
