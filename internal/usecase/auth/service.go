package auth

import (
	"context"
	"errors"
	"strings"

	"job-board/internal/domain"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/validate"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = domain.NewError(domain.ErrUnauthenticated, "Invalid email or password.")

type PasswordHasher interface {
	Hash(pw string) (string, error)
	Compare(hash, pw string) error
}

type SignupInput struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,password"`
	FirstName   string `json:"firstName" validate:"notblank,max=100"`
	LastName    string `json:"lastName" validate:"notblank,max=100"`
	Role        string `json:"role" validate:"required,oneof=student recruiter"`
	CompanyName string `json:"companyName" validate:"required_if=Role recruiter,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	users  user.Repository
	hasher PasswordHasher
}

func NewService(users user.Repository, hasher PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Role = strings.TrimSpace(in.Role)
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	if err := validate.Struct(in); err != nil {
		return user.User{}, err
	}

	role, _ := user.ParseRole(in.Role)
	if role == user.RoleStudent && in.CompanyName != "" {
		return user.User{}, domain.NewValidationError("Validation failed.",
			domain.FieldError{Field: "companyName", Message: "is only allowed for recruiters"})
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return user.User{}, domain.Internal("hash password", err)
	}

	var u user.User
	switch role {
	case user.RoleRecruiter:
		u = user.NewRecruiter(uuid.New(), in.Email, hash, in.FirstName, in.LastName, in.CompanyName)
	default:
		u = user.NewStudent(uuid.New(), in.Email, hash, in.FirstName, in.LastName)
	}

	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, domain.Wrap("create user", err)
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, domain.Internal("load created user", err)
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return user.User{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, domain.Internal("find user by email", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
