package user

import (
	"context"

	"job-board/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = domain.NewError(domain.ErrNotFound, "User not found.")
	ErrEmailTaken = domain.NewError(domain.ErrConflict, "An account with this email already exists.")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (User, error)
}

var (
	ErrRecruiterOnly = domain.NewError(domain.ErrForbidden, "Access denied. Recruiters only.")
	ErrStudentOnly   = domain.NewError(domain.ErrForbidden, "Access denied. Students only.")
)
