package usecase

import (
	"context"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	ucjob "job-board/internal/usecase/job"

	"github.com/google/uuid"
)

type JobUsecase interface {
	Create(ctx context.Context, recruiter user.User, in ucjob.CreateInput) (job.Job, error)
	List(ctx context.Context, in ucjob.ListInput) (job.Page, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListMine(ctx context.Context, recruiter user.User) ([]job.Job, error)
	Update(ctx context.Context, recruiter user.User, id uuid.UUID, p job.Patch) (job.Job, error)
	Delete(ctx context.Context, recruiter user.User, id uuid.UUID) error
}
