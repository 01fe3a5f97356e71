package handler

import (
	"strconv"
	"strings"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain"
	"job-board/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Guards are the middleware chains routes are wrapped in. Nil entries pass through.
type Guards struct {
	Auth       fiber.Handler
	Recruiter  fiber.Handler
	Student    fiber.Handler
	AuthLimit  fiber.Handler
	ApplyLimit fiber.Handler
}

func (g Guards) withDefaults() Guards {
	pass := func(c fiber.Ctx) error { return c.Next() }
	if g.Auth == nil {
		g.Auth = pass
	}
	if g.Recruiter == nil {
		g.Recruiter = pass
	}
	if g.Student == nil {
		g.Student = pass
	}
	if g.AuthLimit == nil {
		g.AuthLimit = pass
	}
	if g.ApplyLimit == nil {
		g.ApplyLimit = pass
	}
	return g
}

func mapUsecaseError(err error) error {
	return middleware.FromDomain(err)
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload.", nil, err)
	}
	return nil
}

func currentUser(c fiber.Ctx) (user.User, error) {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return user.User{}, middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}
	return usr, nil
}

func uuidParam(c fiber.Ctx, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		// A malformed id cannot name an existing record.
		return uuid.Nil, mapUsecaseError(notFound)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, fields *domain.Fields, key string) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields.Add(key, "must be an integer")
		return 0
	}
	if n == 0 {
		// Zero would be read as "use the default".
		fields.Add(key, "must be at least 1")
	}
	return n
}

func queryBool(c fiber.Ctx, fields *domain.Fields, key string) bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		fields.Add(key, "must be true or false")
		return false
	}
	return b
}
