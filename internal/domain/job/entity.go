package job

import (
	"math"
	"time"

	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeInternship Type = "internship"
	TypeContract   Type = "contract"
)

var Types = []Type{TypeFullTime, TypePartTime, TypeInternship, TypeContract}

func (t Type) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeInternship, TypeContract:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusPaused Status = "paused"
)

var Statuses = []Status{StatusOpen, StatusClosed, StatusPaused}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusPaused:
		return true
	}
	return false
}

// Recruiter is the posting recruiter as shown next to a job.
type Recruiter struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Company   string
	Email     string
}

type Job struct {
	ID           uuid.UUID
	RecruiterID  uuid.UUID
	Title        string
	Company      string
	Description  string
	Requirements *string
	Location     string
	Type         Type
	SalaryMin    *int
	SalaryMax    *int
	Status       Status
	RemoteOK     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Derived at read time.
	ApplicationCount int
	Recruiter        Recruiter
}

type NewJob struct {
	RecruiterID  uuid.UUID
	Title        string
	Company      string
	Description  string
	Requirements *string
	Location     string
	Type         Type
	SalaryMin    *int
	SalaryMax    *int
	Status       Status
	RemoteOK     bool
}

type Patch struct {
	Title        optional.Field[string]
	Company      optional.Field[string]
	Description  optional.Field[string]
	Requirements optional.Field[string]
	Location     optional.Field[string]
	Type         optional.Field[Type]
	SalaryMin    optional.Field[int]
	SalaryMax    optional.Field[int]
	Status       optional.Field[Status]
	RemoteOK     optional.Field[bool]
}

// Apply returns j with every set field of p written over it.
func (p Patch) Apply(j Job) Job {
	if v, ok := p.Title.Get(); ok {
		j.Title = v
	}
	if v, ok := p.Company.Get(); ok {
		j.Company = v
	}
	if v, ok := p.Description.Get(); ok {
		j.Description = v
	}
	if p.Requirements.IsSet() {
		j.Requirements = p.Requirements.Ptr()
	}
	if v, ok := p.Location.Get(); ok {
		j.Location = v
	}
	if v, ok := p.Type.Get(); ok {
		j.Type = v
	}
	if p.SalaryMin.IsSet() {
		j.SalaryMin = p.SalaryMin.Ptr()
	}
	if p.SalaryMax.IsSet() {
		j.SalaryMax = p.SalaryMax.Ptr()
	}
	if v, ok := p.Status.Get(); ok {
		j.Status = v
	}
	if v, ok := p.RemoteOK.Get(); ok {
		j.RemoteOK = v
	}
	return j
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage keeps (page-1)*limit well inside int4 for any allowed limit.
	MaxPage = 10_000_000

	// MaxSalary matches the INTEGER salary columns.
	MaxSalary = math.MaxInt32
)

type ListFilter struct {
	Search     string
	Location   string
	Type       Type
	RemoteOnly bool
	Page       int
	Limit      int
}

func (f ListFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	if f.Page > MaxPage {
		return (MaxPage - 1) * f.Limit
	}
	return (f.Page - 1) * f.Limit
}

type Page struct {
	Jobs       []Job
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
}

func TotalPages(totalCount, limit int) int {
	if limit <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
