package v1

import (
	"log"
	"time"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/password"
	"job-board/internal/repository"
	"job-board/internal/usecase"
	ucapp "job-board/internal/usecase/application"
	ucauth "job-board/internal/usecase/auth"
	ucjob "job-board/internal/usecase/job"
	ucuser "job-board/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Limiter middleware.Limiter
	Logger  *log.Logger
	// Hasher defaults to bcrypt at password.Cost.
	Hasher ucauth.PasswordHasher
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	var hasher ucauth.PasswordHasher = password.NewHasher(password.Cost)
	if d.Hasher != nil {
		hasher = d.Hasher
	}
	jwtSvc := jwt.NewHMACService(d.Config.JWT.Secret, d.Config.JWT.ExpiresIn)

	userRepo := repository.NewPostgresUserRepository(d.DB)
	jobRepo := repository.NewPostgresJobRepository(d.DB)
	appRepo := repository.NewPostgresApplicationRepository(d.DB)

	authUC := usecase.NewAuthUsecase(userRepo, hasher, jwtSvc, d.Logger)
	userUC := ucuser.NewService(userRepo)
	jobUC := ucjob.NewService(jobRepo, d.Logger)
	appUC := ucapp.NewService(appRepo, jobRepo, d.Logger)

	authMw := middleware.NewAuthMiddleware(authUC)
	rl := middleware.NewRateLimitMiddleware(d.Limiter, d.Logger)

	g := handler.Guards{
		Auth:      authMw.Middleware(),
		Recruiter: middleware.RequireRole(user.RoleRecruiter),
		Student:   middleware.RequireRole(user.RoleStudent),
		AuthLimit: rl.Limit("auth", middleware.ClientIPKey, d.Config.RateLimit.AuthPerMinute, time.Minute),
		ApplyLimit: rl.Limit("apply", func(c fiber.Ctx) string {
			usr, ok := middleware.CurrentUser(c)
			if !ok {
				return ""
			}
			return c.Params("jobId") + ":" + usr.ID.String()
		}, d.Config.RateLimit.ApplyPerMinute, time.Minute),
	}

	authHandler := handler.NewAuthHandler(authUC, userUC)
	jobsHandler := handler.NewJobsHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)

	authHandler.RegisterRoutes(r.Group("/auth"), g)

	jobs := r.Group("/jobs")
	appHandler.RegisterJobRoutes(jobs, g)
	jobsHandler.RegisterRoutes(jobs, g)

	appHandler.RegisterRoutes(r.Group("/applications"), g)
}
