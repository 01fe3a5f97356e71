package optional

import (
	"encoding/json"
	"testing"
)

type patch struct {
	Title Field[string] `json:"title,omitzero"`
	Notes Field[string] `json:"notes,omitzero"`
	Count Field[int]    `json:"count,omitzero"`
}

func TestField_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	if err := json.Unmarshal([]byte(`{"title":"Go Dev","notes":null}`), &p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if v, ok := p.Title.Get(); !ok || v != "Go Dev" {
		t.Fatalf("expected title value, got %q ok=%v", v, ok)
	}
	if !p.Notes.IsSet() || !p.Notes.IsNull() {
		t.Fatalf("expected notes to be explicit null")
	}
	if p.Notes.Ptr() != nil {
		t.Fatalf("expected nil pointer for null")
	}
	if p.Count.IsSet() {
		t.Fatalf("expected count absent")
	}
}

func TestField_MarshalOmitsAbsent(t *testing.T) {
	p := patch{Title: Of("X"), Notes: Null[string]()}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(b) != `{"title":"X","notes":null}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestField_InvalidValueFails(t *testing.T) {
	var p patch
	if err := json.Unmarshal([]byte(`{"count":"three"}`), &p); err == nil {
		t.Fatalf("expected error for wrong type")
	}
}

func TestTrimSpaceAndBlankAsNull(t *testing.T) {
	f := BlankAsNull(TrimSpace(Of("   ")))
	if !f.IsNull() {
		t.Fatalf("expected blank string to become null")
	}

	f = TrimSpace(Of("  Berlin "))
	if v, _ := f.Get(); v != "Berlin" {
		t.Fatalf("expected trimmed value, got %q", v)
	}

	if BlankAsNull(Field[string]{}).IsSet() {
		t.Fatalf("absent field must stay absent")
	}
}
