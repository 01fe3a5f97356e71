package job

import (
	"testing"

	"job-board/internal/pkg/optional"
)

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestListFilter_Offset(t *testing.T) {
	if got := (ListFilter{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
	if got := (ListFilter{Page: 0, Limit: 20}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := (ListFilter{Page: 922337203685477582, Limit: 10}).Offset(); got < 0 {
		t.Fatalf("offset must not overflow, got %d", got)
	}
}

func TestPatch_Apply(t *testing.T) {
	min, max := 1000, 2000
	req := "Go"
	j := Job{Title: "Old", Requirements: &req, SalaryMin: &min, SalaryMax: &max, Status: StatusOpen}

	got := Patch{
		Title:        optional.Of("New"),
		Requirements: optional.Null[string](),
		SalaryMax:    optional.Of(3000),
	}.Apply(j)

	if got.Title != "New" {
		t.Fatalf("expected title New, got %q", got.Title)
	}
	if got.Requirements != nil {
		t.Fatalf("expected requirements cleared")
	}
	if got.SalaryMin == nil || *got.SalaryMin != 1000 {
		t.Fatalf("absent salaryMin must be kept")
	}
	if got.SalaryMax == nil || *got.SalaryMax != 3000 {
		t.Fatalf("expected salaryMax 3000")
	}
	if got.Status != StatusOpen {
		t.Fatalf("absent status must be kept")
	}
}

func TestCheckSalaryRange(t *testing.T) {
	lo, hi := 10, 20
	if err := CheckSalaryRange(&lo, &hi); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := CheckSalaryRange(&hi, &lo); err != ErrSalaryRange {
		t.Fatalf("expected ErrSalaryRange, got %v", err)
	}
	if err := CheckSalaryRange(nil, &lo); err != nil {
		t.Fatalf("single bound must pass, got %v", err)
	}
}

func TestEnums(t *testing.T) {
	for _, ty := range Types {
		if !ty.Valid() {
			t.Fatalf("%s should be valid", ty)
		}
	}
	if Type("gig").Valid() || Status("archived").Valid() {
		t.Fatalf("unknown values must be invalid")
	}
}
