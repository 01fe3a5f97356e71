package usecase

import (
	"context"

	"job-board/internal/domain/application"
	"job-board/internal/domain/user"
	ucapp "job-board/internal/usecase/application"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, student user.User, jobID uuid.UUID, in ucapp.ApplyInput) (application.Application, error)
	MyApplications(ctx context.Context, student user.User) ([]application.StudentView, error)
	Check(ctx context.Context, student user.User, jobID uuid.UUID) (ucapp.CheckResult, error)
	Withdraw(ctx context.Context, student user.User, id uuid.UUID) error
	JobApplications(ctx context.Context, recruiter user.User, jobID uuid.UUID) (ucapp.JobApplications, error)
	RecruiterApplications(ctx context.Context, recruiter user.User, status string) ([]application.RecruiterView, error)
	UpdateStatus(ctx context.Context, recruiter user.User, id uuid.UUID, p application.StatusPatch) (application.Application, error)
}
