package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"job-board/internal/config"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	v1 "job-board/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

// New wires the HTTP app around an already-connected container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)

	var redisPinger handler.Pinger
	if c.Redis != nil {
		redisPinger = c.Redis
	}
	health := handler.NewHealthHandler(c.DB, redisPinger)
	routes.NewRegistry(health, v1.Deps{
		Config:  c.Config,
		DB:      c.DB,
		Limiter: c.Limiter,
		Logger:  c.Logger,
	}).Register(f)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	if err := c.Prepare(context.Background()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("prepare database: %w", err)
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	origins := c.Config.HTTP.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
