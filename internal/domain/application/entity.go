package application

import (
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusReviewed     Status = "reviewed"
	StatusInterviewing Status = "interviewing"
	StatusRejected     Status = "rejected"
	StatusAccepted     Status = "accepted"
)

var Statuses = []Status{StatusPending, StatusReviewed, StatusInterviewing, StatusRejected, StatusAccepted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterviewing, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Final reports whether a decision has been made.
func (s Status) Final() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Application struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	StudentID      uuid.UUID
	CoverLetter    *string
	ResumeURL      *string
	Status         Status
	RecruiterNotes *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type JobSummary struct {
	ID       uuid.UUID
	Title    string
	Company  string
	Location string
	Type     job.Type
	Status   job.Status
}

type Applicant struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Location  *string
	LinkedIn  *string
	GitHub    *string
	Bio       *string
}

// StudentView is one of the caller's own applications.
type StudentView struct {
	Application
	Job                JobSummary
	RecruiterFirstName string
	RecruiterLastName  string
}

// RecruiterView is an application as seen by the job owner.
type RecruiterView struct {
	Application
	Job     JobSummary
	Student Applicant
}

type NewApplication struct {
	JobID       uuid.UUID
	StudentID   uuid.UUID
	CoverLetter *string
}

type StatusPatch struct {
	Status         optional.Field[Status]
	RecruiterNotes optional.Field[string]
}

func (p StatusPatch) Empty() bool {
	return !p.Status.IsSet() && !p.RecruiterNotes.IsSet()
}

// CheckTransition rejects moving a decided application to a different status.
// Notes stay editable after a decision.
func CheckTransition(current Status, p StatusPatch) error {
	next, ok := p.Status.Get()
	if !ok || next == current {
		return nil
	}
	if current.Final() {
		return ErrDecisionFinal
	}
	return nil
}
