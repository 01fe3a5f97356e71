package validate

import (
	"errors"
	"testing"

	"job-board/internal/domain"
)

type signup struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,password"`
	Role        string `json:"role" validate:"required,oneof=student recruiter"`
	CompanyName string `json:"companyName" validate:"required_if=Role recruiter,max=255"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Email: "nope", Password: "short", Role: "recruiter"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation kind")
	}

	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Message
	}
	if got["email"] != "must be a valid email address" {
		t.Fatalf("unexpected email message: %q", got["email"])
	}
	if got["password"] == "" {
		t.Fatalf("expected password error")
	}
	if got["companyName"] != "is required for recruiters" {
		t.Fatalf("unexpected companyName message: %q", got["companyName"])
	}
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(signup{Email: "a@b.co", Password: "password1", Role: "student"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestField(t *testing.T) {
	var fields domain.Fields
	Field(&fields, "title", "", "notblank")
	Field(&fields, "status", "archived", "oneof=open closed paused")
	Field(&fields, "location", "Remote", "notblank,max=255")

	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", fields)
	}
	if fields[1].Message != "must be one of: open, closed, paused" {
		t.Fatalf("unexpected message: %q", fields[1].Message)
	}
}
