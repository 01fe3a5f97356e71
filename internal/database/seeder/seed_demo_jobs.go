package seeder

import (
	"context"
	"fmt"

	"job-board/internal/database"
)

type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "recruiter_id", "title", "company", "description", "requirements", "location", "job_type", "salary_min", "salary_max", "status", "remote_ok"); err != nil {
		return err
	}

	var recruiterID, company string
	err := db.QueryRow(ctx,
		`SELECT id::text, company_name FROM users WHERE lower(email) = lower($1) AND role = 'recruiter'`,
		DemoRecruiterEmail,
	).Scan(&recruiterID, &company)
	if err != nil {
		return fmt.Errorf("load demo recruiter: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Title        string
		Description  string
		Requirements string
		Location     string
		JobType      string
		SalaryMin    *int
		SalaryMax    *int
		Status       string
		RemoteOK     bool
	}{
		{
			Title:        "Backend Engineering Intern",
			Description:  "Work with the platform team on Go services backed by PostgreSQL.",
			Requirements: "Familiarity with one backend language and SQL basics.",
			Location:     "Austin, TX",
			JobType:      "internship",
			SalaryMin:    intPtr(25),
			SalaryMax:    intPtr(35),
			Status:       "open",
			RemoteOK:     true,
		},
		{
			Title:        "Frontend Developer",
			Description:  "Build the customer dashboard in TypeScript.",
			Requirements: "2+ years with a modern frontend framework.",
			Location:     "Remote",
			JobType:      "full-time",
			SalaryMin:    intPtr(90000),
			SalaryMax:    intPtr(120000),
			Status:       "open",
			RemoteOK:     true,
		},
		{
			Title:       "Data Analyst (Part-time)",
			Description: "Own weekly reporting for the operations team.",
			Location:    "Chicago, IL",
			JobType:     "part-time",
			Status:      "open",
		},
		{
			Title:       "DevOps Contractor",
			Description: "Three-month engagement to migrate CI pipelines.",
			Location:    "Austin, TX",
			JobType:     "contract",
			Status:      "paused",
		},
	}

	for _, it := range items {
		var req *string
		if it.Requirements != "" {
			req = &it.Requirements
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (recruiter_id, title, company, description, requirements, location, job_type, salary_min, salary_max, status, remote_ok)
			 SELECT $1::uuid, $2, $3, $4, $5, $6, $7::job_type, $8, $9, $10::job_status, $11
			 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE recruiter_id = $1::uuid AND title = $2)`,
			recruiterID, it.Title, company, it.Description, req, it.Location, it.JobType, it.SalaryMin, it.SalaryMax, it.Status, it.RemoteOK,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func intPtr(n int) *int { return &n }
