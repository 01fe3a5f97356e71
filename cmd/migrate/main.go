package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"job-board/internal/config"
	"job-board/internal/database/migration"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/database/seeder"
	"job-board/migrations"
)

func main() {
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	seed := flag.Bool("seed", false, "load demo users and jobs after migrating")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connCancel()
	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migDir := *dir
	if migDir == "" {
		migDir = cfg.Database.MigrationsDir
	}
	r := migration.Runner{Dir: migDir, FS: migrations.FS, Logger: logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Printf("[Migration] up to date")

	if !*seed {
		return
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.Printf("[Seeder] demo data ready (password %q)", seeder.DemoPassword)
}
