package job

import (
	"context"

	"job-board/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = domain.NewError(domain.ErrNotFound, "Job not found.")
	ErrNotOwner         = domain.NewError(domain.ErrForbidden, "You can only manage your own job postings.")
	ErrSalaryRange      = domain.NewValidationError("Salary minimum cannot exceed salary maximum.", domain.FieldError{Field: "salaryMin", Message: "must not exceed salaryMax"})
	ErrRecruiterMissing = domain.NewError(domain.ErrNotFound, "Recruiter not found.")
)

// CheckSalaryRange enforces min <= max when both bounds are present.
func CheckSalaryRange(min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return ErrSalaryRange
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, in NewJob) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f ListFilter) ([]Job, int, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Job, error)
	// UpdateOwned and DeleteOwned check ownership and mutate atomically.
	UpdateOwned(ctx context.Context, id, recruiterID uuid.UUID, p Patch) (Job, error)
	DeleteOwned(ctx context.Context, id, recruiterID uuid.UUID) error
}
