package repository

import (
	"context"
	"errors"
	"fmt"

	"job-board/internal/database"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/domain/application"
	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

const applicationColumns = `a.id, a.job_id, a.student_id, a.cover_letter, a.resume_url, a.status::text,
	a.recruiter_notes, a.created_at, a.updated_at`

const recruiterViewSelect = `SELECT ` + applicationColumns + `,
	j.title, j.company, j.location, j.job_type::text, j.status::text,
	s.id, s.first_name, s.last_name, s.email, s.location, s.linkedin, s.github, s.bio
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users s ON s.id = a.student_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, in application.NewApplication) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications AS a (job_id, student_id, cover_letter, resume_url)
		 SELECT j.id, u.id, $3::text, u.resume_url
		 FROM jobs j, users u
		 WHERE j.id = $1 AND j.status = 'open' AND u.id = $2
		 RETURNING `+applicationColumns,
		in.JobID, in.StudentID, in.CoverLetter,
	)
	app, err := scanApplication(row)
	if err == nil {
		return app, nil
	}

	if _, ok := dbpostgres.UniqueViolation(err); ok {
		return application.Application{}, application.ErrDuplicate
	}
	if _, ok := dbpostgres.ForeignKeyViolation(err); ok {
		return application.Application{}, job.ErrNotFound
	}
	if !errors.Is(err, application.ErrNotFound) {
		return application.Application{}, err
	}

	// Nothing inserted: the job is gone or no longer open.
	var open bool
	err = r.db.QueryRow(ctx, `SELECT status = 'open' FROM jobs WHERE id = $1`, in.JobID).Scan(&open)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, job.ErrNotFound
		}
		return application.Application{}, err
	}
	if !open {
		return application.Application{}, application.ErrJobClosed
	}
	return application.Application{}, fmt.Errorf("apply: student %s not found", in.StudentID)
}

func (r *PostgresApplicationRepository) GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.job_id = $1 AND a.student_id = $2`,
		jobID, studentID,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.StudentView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`,
			j.title, j.company, j.location, j.job_type::text, j.status::text,
			u.first_name, u.last_name
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = j.recruiter_id
		 WHERE a.student_id = $1
		 ORDER BY a.created_at DESC, a.id DESC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.StudentView, 0)
	for rows.Next() {
		var (
			v              application.StudentView
			status         string
			jobType, state string
		)
		err := rows.Scan(
			&v.ID, &v.JobID, &v.StudentID, &v.CoverLetter, &v.ResumeURL, &status, &v.RecruiterNotes, &v.CreatedAt, &v.UpdatedAt,
			&v.Job.Title, &v.Job.Company, &v.Job.Location, &jobType, &state,
			&v.RecruiterFirstName, &v.RecruiterLastName,
		)
		if err != nil {
			return nil, err
		}
		v.Status = application.Status(status)
		v.Job.ID = v.JobID
		v.Job.Type = job.Type(jobType)
		v.Job.Status = job.Status(state)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.RecruiterView, error) {
	rows, err := r.db.Query(ctx, recruiterViewSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC, a.id DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecruiterViews(rows)
}

func (r *PostgresApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, status application.Status) ([]application.RecruiterView, error) {
	q := recruiterViewSelect + ` WHERE j.recruiter_id = $1`
	args := []any{recruiterID}
	if status != "" {
		q += ` AND a.status = $2::application_status`
		args = append(args, string(status))
	}
	q += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecruiterViews(rows)
}

func (r *PostgresApplicationRepository) UpdateOwned(ctx context.Context, id, recruiterID uuid.UUID, p application.StatusPatch) (application.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var (
		current string
		owner   uuid.UUID
	)
	err = tx.QueryRow(ctx,
		`SELECT a.status::text, j.recruiter_id
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1
		 FOR UPDATE OF a`,
		id,
	).Scan(&current, &owner)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	if owner != recruiterID {
		return application.Application{}, application.ErrNotOwner
	}
	if err := application.CheckTransition(application.Status(current), p); err != nil {
		return application.Application{}, err
	}

	var s setClause
	setString(&s, "status", p.Status)
	setField(&s, "recruiter_notes", p.RecruiterNotes)
	s.raw("updated_at = now()")

	q := fmt.Sprintf(`UPDATE applications AS a SET %s WHERE a.id = %s RETURNING `+applicationColumns, s.sql(), s.arg(id))
	updated, err := scanApplication(tx.QueryRow(ctx, q, s.args...))
	if err != nil {
		return application.Application{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *PostgresApplicationRepository) DeletePendingOwned(ctx context.Context, id, studentID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND student_id = $2 AND status = 'pending'`,
		id, studentID,
	)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1 AND student_id = $2)`,
		id, studentID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return application.ErrNotPending
	}
	return application.ErrNotFound
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	err := row.Scan(&a.ID, &a.JobID, &a.StudentID, &a.CoverLetter, &a.ResumeURL, &status, &a.RecruiterNotes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func collectRecruiterViews(rows database.Rows) ([]application.RecruiterView, error) {
	out := make([]application.RecruiterView, 0)
	for rows.Next() {
		var (
			v              application.RecruiterView
			status         string
			jobType, state string
		)
		err := rows.Scan(
			&v.ID, &v.JobID, &v.StudentID, &v.CoverLetter, &v.ResumeURL, &status, &v.RecruiterNotes, &v.CreatedAt, &v.UpdatedAt,
			&v.Job.Title, &v.Job.Company, &v.Job.Location, &jobType, &state,
			&v.Student.ID, &v.Student.FirstName, &v.Student.LastName, &v.Student.Email,
			&v.Student.Location, &v.Student.LinkedIn, &v.Student.GitHub, &v.Student.Bio,
		)
		if err != nil {
			return nil, err
		}
		v.Status = application.Status(status)
		v.Job.ID = v.JobID
		v.Job.Type = job.Type(jobType)
		v.Job.Status = job.Status(state)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
