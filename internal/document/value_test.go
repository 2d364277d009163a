package document

import (
	"encoding/json"
	"testing"
)

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("title", String("A"))
	obj.Set("startTime", String("2023-01-01T10:00:00+00:00"))
	obj.Set("endTime", String("2023-01-01T12:00:00+00:00"))
	obj.Set("title", String("B")) // replace must not reorder

	want := []string{"title", "startTime", "endTime"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	v, ok := obj.Get("title")
	if !ok {
		t.Fatal("title missing after replace")
	}
	if s, _ := v.Str(); s != "B" {
		t.Errorf("title = %q, want B", s)
	}
}

func TestTypedAccessorsFailOnShapeMismatch(t *testing.T) {
	if _, err := String("x").Num(); err == nil {
		t.Error("Num() on string should fail")
	}
	if _, err := Int(1).Str(); err == nil {
		t.Error("Str() on number should fail")
	}
	if _, err := NewArray().Members(); err == nil {
		t.Error("Members() on array should fail")
	}
	if _, err := NewObject().Items(); err == nil {
		t.Error("Items() on object should fail")
	}
	if _, err := Null().BoolVal(); err == nil {
		t.Error("BoolVal() on null should fail")
	}
}

func TestEqual(t *testing.T) {
	mkObj := func(pairs ...[2]string) *Value {
		obj := NewObject()
		for _, p := range pairs {
			obj.Set(p[0], String(p[1]))
		}
		return obj
	}

	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"nil is null", nil, Null(), true},
		{"bools", Bool(true), Bool(true), true},
		{"bool mismatch", Bool(true), Bool(false), false},
		{"strings", String("a"), String("a"), true},
		{"numbers", Int(10), Number(json.Number("10")), true},
		{"number literal typed", Int(10), Number(json.Number("10.0")), false},
		{"kind mismatch", String("10"), Int(10), false},
		{"arrays ordered", NewArray(Int(1), Int(2)), NewArray(Int(1), Int(2)), true},
		{"arrays order matters", NewArray(Int(1), Int(2)), NewArray(Int(2), Int(1)), false},
		{"objects order free", mkObj([2]string{"a", "1"}, [2]string{"b", "2"}), mkObj([2]string{"b", "2"}, [2]string{"a", "1"}), true},
		{"object value differs", mkObj([2]string{"a", "1"}), mkObj([2]string{"a", "2"}), false},
		{"object key missing", mkObj([2]string{"a", "1"}), mkObj([2]string{"b", "1"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupKey(t *testing.T) {
	if k, ok := Int(10).LookupKey(); !ok || k != "n:10" {
		t.Errorf("Int(10).LookupKey() = %q, %v", k, ok)
	}
	if k, ok := String("10").LookupKey(); !ok || k != "s:10" {
		t.Errorf("String lookup key = %q, %v", k, ok)
	}
	// a number id and a string id with the same text must not collide
	nk, _ := Int(10).LookupKey()
	sk, _ := String("10").LookupKey()
	if nk == sk {
		t.Error("number and string lookup keys collide")
	}
	if _, ok := NewObject().LookupKey(); ok {
		t.Error("objects must not produce lookup keys")
	}
	if _, ok := Null().LookupKey(); ok {
		t.Error("null must not produce a lookup key")
	}
}

func TestRaw(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(42), "42"},
		{String("hello"), "hello"},
		{NewArray(), "<array>"},
	}
	for _, tt := range tests {
		if got := tt.v.Raw(); got != tt.want {
			t.Errorf("Raw() = %q, want %q", got, tt.want)
		}
	}
}
