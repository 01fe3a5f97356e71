package application

import (
	"context"

	"job-board/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = domain.NewError(domain.ErrNotFound, "Application not found.")
	ErrNotOwner      = domain.NewError(domain.ErrForbidden, "You can only manage applications for your own jobs.")
	ErrJobClosed     = domain.NewValidationError("This job is no longer accepting applications.")
	ErrDuplicate     = domain.NewError(domain.ErrConflict, "You have already applied to this job.")
	ErrNotPending    = domain.NewValidationError("Only pending applications can be withdrawn.")
	ErrDecisionFinal = domain.NewValidationError("This application has already been decided; its status can no longer change.")
)

type Repository interface {
	// Create inserts only while the job is open and snapshots the student's resume URL.
	Create(ctx context.Context, in NewApplication) (Application, error)
	GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]StudentView, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]RecruiterView, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, status Status) ([]RecruiterView, error)
	UpdateOwned(ctx context.Context, id, recruiterID uuid.UUID, p StatusPatch) (Application, error)
	DeletePendingOwned(ctx context.Context, id, studentID uuid.UUID) error
}
