// Package optional provides a three-state field for partial updates:
// absent (leave unchanged), null (clear) and value (overwrite).
package optional

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Field[T any] struct {
	set   bool
	null  bool
	value T
}

func Of[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was present, including an explicit null.
func (f Field[T]) IsSet() bool { return f.set }

func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value when the field carries one.
func (f Field[T]) Get() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Ptr returns nil for null, a pointer to the value otherwise.
// Callers must check IsSet first.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

// IsZero lets encoding/json's omitzero drop absent fields.
func (f Field[T]) IsZero() bool { return !f.set }

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(b, &f.value)
}

// TrimSpace trims a set string value and leaves absent or null fields alone.
func TrimSpace(f Field[string]) Field[string] {
	if v, ok := f.Get(); ok {
		return Of(strings.TrimSpace(v))
	}
	return f
}

// BlankAsNull turns a set empty string into an explicit null.
func BlankAsNull(f Field[string]) Field[string] {
	if v, ok := f.Get(); ok && strings.TrimSpace(v) == "" {
		return Null[string]()
	}
	return f
}

// Map converts the value of a set field, keeping absent and null as they are.
func Map[T, U any](f Field[T], fn func(T) U) Field[U] {
	if !f.set {
		return Field[U]{}
	}
	if f.null {
		return Null[U]()
	}
	return Of(fn(f.value))
}
