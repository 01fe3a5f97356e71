package repository

import (
	"context"
	"fmt"
	"strings"

	"job-board/internal/database"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

const jobSelect = `SELECT j.id, j.recruiter_id, j.title, j.company, j.description, j.requirements, j.location,
	j.job_type::text, j.salary_min, j.salary_max, j.status::text, j.remote_ok, j.created_at, j.updated_at,
	u.first_name, u.last_name, COALESCE(u.company_name, ''), u.email,
	(SELECT COUNT(1) FROM applications a WHERE a.job_id = j.id) AS application_count
FROM jobs j
JOIN users u ON u.id = j.recruiter_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, in job.NewJob) (job.Job, error) {
	status := in.Status
	if status == "" {
		status = job.StatusOpen
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, company, description, requirements, location, job_type,
			salary_min, salary_max, status, remote_ok)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		in.RecruiterID, in.Title, in.Company, in.Description, in.Requirements, in.Location, string(in.Type),
		in.SalaryMin, in.SalaryMax, string(status), in.RemoteOK,
	).Scan(&id)
	if err != nil {
		if _, ok := dbpostgres.ForeignKeyViolation(err); ok {
			return job.Job{}, job.ErrRecruiterMissing
		}
		if _, ok := dbpostgres.CheckViolation(err); ok {
			return job.Job{}, job.ErrSalaryRange
		}
		return job.Job{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Job, int, error) {
	where := []string{"j.status = 'open'"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg(likePattern(s))
		where = append(where, fmt.Sprintf("(j.title ILIKE %s OR j.company ILIKE %s OR j.description ILIKE %s)", p, p, p))
	}
	if f.Type != "" {
		where = append(where, "j.job_type = "+arg(string(f.Type))+"::job_type")
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		where = append(where, "j.location ILIKE "+arg(likePattern(l)))
	}
	if f.RemoteOnly {
		where = append(where, "j.remote_ok = true")
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs j`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = job.DefaultPageLimit
	}
	q := jobSelect + cond + fmt.Sprintf(" ORDER BY j.created_at DESC, j.id DESC LIMIT %s OFFSET %s", arg(limit), arg(f.Offset()))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, jobSelect+` WHERE j.recruiter_id = $1 ORDER BY j.created_at DESC, j.id DESC`, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *PostgresJobRepository) UpdateOwned(ctx context.Context, id, recruiterID uuid.UUID, p job.Patch) (job.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return job.Job{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	current, err := scanJob(tx.QueryRow(ctx, jobSelect+` WHERE j.id = $1 FOR UPDATE OF j`, id))
	if err != nil {
		return job.Job{}, err
	}
	if current.RecruiterID != recruiterID {
		return job.Job{}, job.ErrNotOwner
	}

	next := p.Apply(current)
	if err := job.CheckSalaryRange(next.SalaryMin, next.SalaryMax); err != nil {
		return job.Job{}, err
	}

	var s setClause
	setField(&s, "title", p.Title)
	setField(&s, "company", p.Company)
	setField(&s, "description", p.Description)
	setField(&s, "requirements", p.Requirements)
	setField(&s, "location", p.Location)
	setString(&s, "job_type", p.Type)
	setField(&s, "salary_min", p.SalaryMin)
	setField(&s, "salary_max", p.SalaryMax)
	setString(&s, "status", p.Status)
	setField(&s, "remote_ok", p.RemoteOK)
	s.raw("updated_at = now()")

	q := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = %s`, s.sql(), s.arg(id))
	if _, err := tx.Exec(ctx, q, s.args...); err != nil {
		return job.Job{}, err
	}

	updated, err := scanJob(tx.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		return job.Job{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return job.Job{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *PostgresJobRepository) DeleteOwned(ctx context.Context, id, recruiterID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND recruiter_id = $2`, id, recruiterID)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return job.ErrNotOwner
	}
	return job.ErrNotFound
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j              job.Job
		jobType, state string
	)
	err := row.Scan(
		&j.ID, &j.RecruiterID, &j.Title, &j.Company, &j.Description, &j.Requirements, &j.Location,
		&jobType, &j.SalaryMin, &j.SalaryMax, &state, &j.RemoteOK, &j.CreatedAt, &j.UpdatedAt,
		&j.Recruiter.FirstName, &j.Recruiter.LastName, &j.Recruiter.Company, &j.Recruiter.Email,
		&j.ApplicationCount,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Status = job.Status(state)
	j.Recruiter.ID = j.RecruiterID
	return j, nil
}
