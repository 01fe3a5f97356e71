package app

import (
	"context"
	"errors"
	"log"
	"time"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/database/migration"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/database/seeder"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/infrastructure/redis"
	"job-board/migrations"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Redis   *redis.Client
	Limiter middleware.Limiter
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, DB: db, Logger: logger}

	c.Redis = redis.Connect(cfg.Redis, logger)
	if l := redis.NewLimiter(c.Redis); l != nil {
		c.Limiter = l
	} else {
		c.Limiter = middleware.NewMemoryLimiter()
	}

	return c, nil
}

// Prepare runs migrations and seeders according to config.
func (c *Container) Prepare(ctx context.Context) error {
	if c.Config.Database.RunMigrations {
		r := migration.Runner{Dir: c.Config.Database.MigrationsDir, FS: migrations.FS, Logger: c.Logger}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return err
		}
	}
	if c.Config.Database.RunSeeders {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.DB); err != nil {
			return err
		}
		c.Logger.Printf("[Seeder] demo data ready")
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
