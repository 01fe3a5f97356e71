package usecase

import (
	"context"

	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, caller user.User, p user.ProfilePatch) (user.User, error)
}
