// Package document provides the in-memory tree representation consumed and
// produced by the diff engine: a tagged union over the JSON value kinds with
// insertion-ordered objects and typed accessors that fail explicitly on
// shape mismatch.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the null value
	KindNull Kind = iota
	// KindBool is a boolean
	KindBool
	// KindNumber is a number, stored as its literal text
	KindNumber
	// KindString is a string
	KindString
	// KindArray is an ordered sequence
	KindArray
	// KindObject is a mapping with insertion-ordered members
	KindObject
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single object entry. Objects keep members in insertion order;
// the diff engine depends on that for before-side-ordered iteration.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a document tree.
type Value struct {
	kind    Kind
	boolVal bool
	text    string // string content, or the number literal
	items   []*Value
	members []Member
	index   map[string]int
}

// Null returns the null value
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolVal: b}
}

// Number returns a number value holding the given literal.
// The literal is kept verbatim; 10 and 10.0 are distinct values.
func Number(literal json.Number) *Value {
	return &Value{kind: KindNumber, text: string(literal)}
}

// Int returns a number value for an integer
func Int(n int64) *Value {
	return &Value{kind: KindNumber, text: fmt.Sprintf("%d", n)}
}

// String returns a string value
func String(s string) *Value {
	return &Value{kind: KindString, text: s}
}

// NewArray returns an array value with the given items
func NewArray(items ...*Value) *Value {
	return &Value{kind: KindArray, items: items}
}

// NewObject returns an empty object value
func NewObject() *Value {
	return &Value{kind: KindObject, index: make(map[string]int)}
}

// Kind returns the variant held by v. A nil Value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is nil or the null value
func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Str returns the string content, failing on any other kind
func (v *Value) Str() (string, error) {
	if v.Kind() != KindString {
		return "", fmt.Errorf("expected string, got %s", v.Kind())
	}
	return v.text, nil
}

// Num returns the number literal, failing on any other kind
func (v *Value) Num() (json.Number, error) {
	if v.Kind() != KindNumber {
		return "", fmt.Errorf("expected number, got %s", v.Kind())
	}
	return json.Number(v.text), nil
}

// BoolVal returns the boolean content, failing on any other kind
func (v *Value) BoolVal() (bool, error) {
	if v.Kind() != KindBool {
		return false, fmt.Errorf("expected bool, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// Items returns the array elements, failing on any other kind
func (v *Value) Items() ([]*Value, error) {
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("expected array, got %s", v.Kind())
	}
	return v.items, nil
}

// Members returns the object members in insertion order, failing on any
// other kind
func (v *Value) Members() ([]Member, error) {
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("expected object, got %s", v.Kind())
	}
	return v.members, nil
}

// Get returns the member value for key. The second result is false when v
// is not an object or the key is absent.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Keys returns the object keys in insertion order. Nil for non-objects.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Set inserts or replaces a member, preserving insertion order on replace
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != KindObject {
		return
	}
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Append adds an element to an array value
func (v *Value) Append(val *Value) {
	if v.Kind() != KindArray {
		return
	}
	v.items = append(v.items, val)
}

// Len returns the number of array items or object members, zero otherwise
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Equal reports structural equality between two values. Numbers compare by
// literal, objects by key set and per-key equality (member order does not
// matter), arrays element-wise in order. A nil Value equals null.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber, KindString:
		return a.text == b.text
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LookupKey returns a canonical map key for scalar values, used when
// building candidate lookups by id. The second result is false for arrays,
// objects and null, which cannot act as identifiers.
func (v *Value) LookupKey() (string, bool) {
	switch v.Kind() {
	case KindBool:
		if v.boolVal {
			return "b:true", true
		}
		return "b:false", true
	case KindNumber:
		return "n:" + v.text, true
	case KindString:
		return "s:" + v.text, true
	default:
		return "", false
	}
}

// Raw returns the scalar content as a plain string for display purposes:
// the string itself, the number literal, "true"/"false" or "null".
// Composite values render as their kind name.
func (v *Value) Raw() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindNumber, KindString:
		return v.text
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// GoString aids debugging in test failures
func (v *Value) GoString() string {
	data, err := EncodeJSON(v, "")
	if err != nil {
		return fmt.Sprintf("document.Value(%s)", v.Kind())
	}
	return strings.TrimSpace(string(data))
}
