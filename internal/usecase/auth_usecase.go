package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-board/internal/domain"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/jwt"
	ucauth "job-board/internal/usecase/auth"
)

var (
	ErrMissingToken = domain.NewError(domain.ErrUnauthenticated, "Access denied. No token provided.")
	ErrTokenExpired = domain.NewError(domain.ErrUnauthenticated, "Token expired. Please log in again.")
	ErrTokenInvalid = domain.NewError(domain.ErrUnauthenticated, "Invalid token.")
	ErrUnknownUser  = domain.NewError(domain.ErrUnauthenticated, "User not found.")
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error)
	// Resolve turns a bearer token into the live user it names.
	Resolve(ctx context.Context, token string) (user.User, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	logger  *log.Logger
}

func NewAuthUsecase(users user.Repository, hasher ucauth.PasswordHasher, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{authSvc: ucauth.NewService(users, hasher), users: users, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, error) {
	usr, err := u.authSvc.Signup(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	tok, err := u.jwt.GenerateToken(usr.ID, usr.Role.String())
	if err != nil {
		return user.User{}, "", domain.Internal("generate token", err)
	}
	if u.logger != nil {
		u.logger.Printf("[Auth] signup user_id=%s role=%s", usr.ID, usr.Role)
	}
	return usr, tok, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	tok, err := u.jwt.GenerateToken(usr.ID, usr.Role.String())
	if err != nil {
		return user.User{}, "", domain.Internal("generate token", err)
	}
	return usr, tok, nil
}

func (u *Auth) Resolve(ctx context.Context, token string) (user.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, ErrMissingToken
	}

	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.User{}, ErrTokenExpired
		}
		return user.User{}, ErrTokenInvalid
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnknownUser
		}
		return user.User{}, domain.Internal("resolve user", err)
	}
	usr.PasswordHash = ""
	return usr, nil
}
