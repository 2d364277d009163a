package history

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"snapdiff/internal/diffengine"
	"snapdiff/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func TestSaveAndGet(t *testing.T) {
	store, _ := openTestStore(t)

	report := []byte(`{"meta":[{"field":"title","before":"A","after":"B"}]}`)
	stats := diffengine.Stats{MetaChanged: 1}

	id, err := store.Save("100", "before.json", "after.json", report, stats)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	entry, payload, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(payload, report) {
		t.Errorf("payload round trip failed:\n got: %s\nwant: %s", payload, report)
	}
	if entry.DocumentID != "100" {
		t.Errorf("documentId = %q, want 100", entry.DocumentID)
	}
	if entry.BeforeLabel != "before.json" || entry.AfterLabel != "after.json" {
		t.Errorf("labels = %q/%q", entry.BeforeLabel, entry.AfterLabel)
	}
	if entry.Stats.MetaChanged != 1 {
		t.Errorf("stats not stored: %+v", entry.Stats)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("createdAt not stored")
	}
}

func TestGetUnknownID(t *testing.T) {
	store, _ := openTestStore(t)
	if _, _, err := store.Get("no-such-id"); err == nil {
		t.Error("Get of unknown id should fail")
	}
}

func TestListNewestFirst(t *testing.T) {
	store, _ := openTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.Save("100", "b", "a", []byte(`{}`), diffengine.Stats{})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, id)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != ids[2] {
		t.Errorf("newest entry first: got %s, want %s", entries[0].ID, ids[2])
	}

	limited, err := store.List(2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d entries", len(limited))
	}
}

func TestPrune(t *testing.T) {
	store, _ := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Save("100", "b", "a", []byte(`{}`), diffengine.Stats{}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	pruned, err := store.Prune(2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if pruned != 3 {
		t.Errorf("pruned %d rows, want 3", pruned)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("%d entries remain, want 2", len(entries))
	}
}

func TestDescriptorWrittenOnCreate(t *testing.T) {
	_, dir := openTestStore(t)

	desc, err := ReadDescriptor(dir)
	if err != nil {
		t.Fatalf("ReadDescriptor: %v", err)
	}
	if desc.SchemaVersion != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", desc.SchemaVersion, currentSchemaVersion)
	}
	if !strings.HasPrefix(desc.CreatedBy, "snapdiff ") {
		t.Errorf("createdBy = %q", desc.CreatedBy)
	}
	if desc.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestReopenExistingStore(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := store.Save("100", "b", "a", []byte(`{"x":1}`), diffengine.Stats{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	_, payload, err := reopened.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(payload) != `{"x":1}` {
		t.Errorf("payload = %s", payload)
	}
}
