package seeder

import (
	"context"
	"fmt"

	"job-board/internal/database"
	"job-board/internal/pkg/password"
)

const (
	DemoPassword       = "password123"
	DemoRecruiterEmail = "recruiter@demo.dev"
	DemoStudentEmail   = "student@demo.dev"
)

type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "first_name", "last_name", "company_name", "bio", "location"); err != nil {
		return err
	}

	hash, err := password.NewHasher(password.Cost).Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Email     string
		Role      string
		FirstName string
		LastName  string
		Company   *string
		Bio       string
		Location  string
	}{
		{Email: DemoRecruiterEmail, Role: "recruiter", FirstName: "Rosa", LastName: "Martinez", Company: strPtr("Northwind Labs"), Bio: "Hiring engineers and interns.", Location: "Austin, TX"},
		{Email: DemoStudentEmail, Role: "student", FirstName: "Sam", LastName: "Okafor", Bio: "CS junior looking for a summer internship.", Location: "Chicago, IL"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (email, password_hash, role, first_name, last_name, company_name, bio, location)
			 VALUES ($1, $2, $3::user_role, $4, $5, $6, $7, $8)
			 ON CONFLICT ((lower(email))) DO NOTHING`,
			it.Email, hash, it.Role, it.FirstName, it.LastName, it.Company, it.Bio, it.Location,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
