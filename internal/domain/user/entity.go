package user

import (
	"time"

	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleRecruiter
}

func (r Role) String() string { return string(r) }

// Profile holds the fields shared by both roles.
type Profile struct {
	Bio             *string
	Location        *string
	Website         *string
	LinkedIn        *string
	GitHub          *string
	ProfileImageURL *string
}

type StudentDetails struct {
	ResumeURL *string
}

type RecruiterDetails struct {
	CompanyName string
}

// User is either a student or a recruiter. Exactly one of Student and
// Recruiter is non-nil and it always matches Role.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Profile      Profile
	Student      *StudentDetails
	Recruiter    *RecruiterDetails
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsStudent() bool   { return u.Role == RoleStudent }
func (u User) IsRecruiter() bool { return u.Role == RoleRecruiter }

func (u User) CompanyName() string {
	if u.Recruiter == nil {
		return ""
	}
	return u.Recruiter.CompanyName
}

func (u User) ResumeURL() *string {
	if u.Student == nil {
		return nil
	}
	return u.Student.ResumeURL
}

// NewStudent and NewRecruiter build the role variants.
func NewStudent(id uuid.UUID, email, passwordHash, firstName, lastName string) User {
	return User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleStudent,
		FirstName:    firstName,
		LastName:     lastName,
		Student:      &StudentDetails{},
	}
}

func NewRecruiter(id uuid.UUID, email, passwordHash, firstName, lastName, companyName string) User {
	return User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleRecruiter,
		FirstName:    firstName,
		LastName:     lastName,
		Recruiter:    &RecruiterDetails{CompanyName: companyName},
	}
}

type ProfilePatch struct {
	FirstName       optional.Field[string]
	LastName        optional.Field[string]
	CompanyName     optional.Field[string]
	ResumeURL       optional.Field[string]
	Bio             optional.Field[string]
	Location        optional.Field[string]
	Website         optional.Field[string]
	LinkedIn        optional.Field[string]
	GitHub          optional.Field[string]
	ProfileImageURL optional.Field[string]
}
