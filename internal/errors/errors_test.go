package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(MissingMeta, "meta field is missed", nil)
	if err.Error() != "[MISSING_META] meta field is missed" {
		t.Errorf("unexpected error string: %q", err.Error())
	}

	cause := fmt.Errorf("underlying")
	wrapped := New(TimestampParse, "bad timestamp", cause)
	want := "[TIMESTAMP_PARSE] bad timestamp: underlying"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestStableMessages(t *testing.T) {
	tests := []struct {
		err  *DiffError
		code ErrorCode
		msg  string
	}{
		{NewNullInput("first"), NullInput, "first input json object must not be null"},
		{NewNullInput("second"), NullInput, "second input json object must not be null"},
		{NewIdentifierMismatch(), IdentifierMismatch, "json objects have different identifiers"},
		{NewMissingMeta(), MissingMeta, "meta field is missed"},
		{NewIncompleteMeta(), IncompleteMeta, "meta data has missed fields"},
		{NewMissingCandidates(), MissingCandidates, "candidates field is missed"},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("code = %q, want %q", tt.err.Code, tt.code)
		}
		if tt.err.Message != tt.msg {
			t.Errorf("message = %q, want %q", tt.err.Message, tt.msg)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewMissingCandidates()); got != MissingCandidates {
		t.Errorf("CodeOf = %q, want %q", got, MissingCandidates)
	}
	wrapped := fmt.Errorf("while diffing: %w", NewIncompleteMeta())
	if got := CodeOf(wrapped); got != IncompleteMeta {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, IncompleteMeta)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestWithDetails(t *testing.T) {
	err := NewIdentifierMismatch().WithDetails(map[string]interface{}{
		"before": 1,
		"after":  2,
	})
	details, ok := err.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details not a map: %T", err.Details)
	}
	if details["before"] != 1 || details["after"] != 2 {
		t.Errorf("unexpected details: %v", details)
	}
}
