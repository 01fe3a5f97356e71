package repository

import (
	"context"
	"fmt"

	"job-board/internal/database"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, role::text, first_name, last_name, company_name,
	bio, location, website, linkedin, github, resume_url, profile_image_url, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	var company, resume *string
	if u.Recruiter != nil {
		c := u.Recruiter.CompanyName
		company = &c
	}
	if u.Student != nil {
		resume = u.Student.ResumeURL
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name, company_name,
			bio, location, website, linkedin, github, resume_url, profile_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.FirstName, u.LastName, company,
		u.Profile.Bio, u.Profile.Location, u.Profile.Website, u.Profile.LinkedIn, u.Profile.GitHub, resume, u.Profile.ProfileImageURL,
	)
	if err != nil {
		if _, ok := dbpostgres.UniqueViolation(err); ok {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.ProfilePatch) (user.User, error) {
	var s setClause
	setField(&s, "first_name", p.FirstName)
	setField(&s, "last_name", p.LastName)
	setField(&s, "company_name", p.CompanyName)
	setField(&s, "resume_url", p.ResumeURL)
	setField(&s, "bio", p.Bio)
	setField(&s, "location", p.Location)
	setField(&s, "website", p.Website)
	setField(&s, "linkedin", p.LinkedIn)
	setField(&s, "github", p.GitHub)
	setField(&s, "profile_image_url", p.ProfileImageURL)
	s.raw("updated_at = now()")

	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = %s RETURNING `+userColumns, s.sql(), s.arg(id))
	return scanUser(r.db.QueryRow(ctx, q, s.args...))
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u       user.User
		role    string
		company *string
		resume  *string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &role, &u.FirstName, &u.LastName, &company,
		&u.Profile.Bio, &u.Profile.Location, &u.Profile.Website, &u.Profile.LinkedIn, &u.Profile.GitHub,
		&resume, &u.Profile.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	u.Role = user.Role(role)
	switch u.Role {
	case user.RoleRecruiter:
		c := ""
		if company != nil {
			c = *company
		}
		u.Recruiter = &user.RecruiterDetails{CompanyName: c}
	case user.RoleStudent:
		u.Student = &user.StudentDetails{ResumeURL: resume}
	default:
		return user.User{}, fmt.Errorf("unknown role %q for user %s", role, u.ID)
	}
	return u, nil
}
