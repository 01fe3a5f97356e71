package middleware

import (
	"context"
	"strings"

	"job-board/internal/domain/user"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

// Authenticator resolves a bearer token to the user it names.
type Authenticator interface {
	Resolve(ctx context.Context, token string) (user.User, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware re-resolves the caller on every request; nothing is cached.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return FromDomain(usecase.ErrMissingToken)
		}

		usr, err := m.auth.Resolve(c.Context(), token)
		if err != nil {
			return FromDomain(err)
		}

		c.Locals(CtxUserKey, usr)
		return c.Next()
	}
}

// RequireRole must run after Middleware.
func RequireRole(role user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		usr, ok := CurrentUser(c)
		if !ok {
			return FromDomain(usecase.ErrMissingToken)
		}
		if usr.Role != role {
			if role == user.RoleRecruiter {
				return FromDomain(user.ErrRecruiterOnly)
			}
			return FromDomain(user.ErrStudentOnly)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	usr, ok := c.Locals(CtxUserKey).(user.User)
	return usr, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
