package application

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-board/internal/domain"
	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"
	"job-board/internal/pkg/validate"

	"github.com/google/uuid"
)

const maxTextLength = 5000

type ApplyInput struct {
	CoverLetter *string `json:"coverLetter" validate:"omitempty,max=5000"`
}

// CheckResult answers whether a student has applied to a job.
type CheckResult struct {
	HasApplied  bool
	Application *application.Application
}

// JobApplications is a job together with everything submitted to it.
type JobApplications struct {
	Job          job.Job
	Applications []application.RecruiterView
}

type Service struct {
	apps   application.Repository
	jobs   job.Repository
	logger *log.Logger
}

func NewService(apps application.Repository, jobs job.Repository, logger *log.Logger) *Service {
	return &Service{apps: apps, jobs: jobs, logger: logger}
}

func (s *Service) Apply(ctx context.Context, student user.User, jobID uuid.UUID, in ApplyInput) (application.Application, error) {
	if !student.IsStudent() {
		return application.Application{}, user.ErrStudentOnly
	}
	if in.CoverLetter != nil && strings.TrimSpace(*in.CoverLetter) == "" {
		in.CoverLetter = nil
	}
	if err := validate.Struct(in); err != nil {
		return application.Application{}, err
	}

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return application.Application{}, domain.Wrap("apply: load job", err)
	}
	if j.Status != job.StatusOpen {
		return application.Application{}, application.ErrJobClosed
	}

	_, err = s.apps.GetByJobAndStudent(ctx, jobID, student.ID)
	switch {
	case err == nil:
		return application.Application{}, application.ErrDuplicate
	case !errors.Is(err, application.ErrNotFound):
		return application.Application{}, domain.Internal("apply: check duplicate", err)
	}

	// The repository re-checks both conditions inside the insert.
	created, err := s.apps.Create(ctx, application.NewApplication{
		JobID:       jobID,
		StudentID:   student.ID,
		CoverLetter: in.CoverLetter,
	})
	if err != nil {
		return application.Application{}, domain.Wrap("apply", err)
	}
	if s.logger != nil {
		s.logger.Printf("[Applications] submitted application_id=%s job_id=%s student_id=%s", created.ID, jobID, student.ID)
	}
	return created, nil
}

func (s *Service) MyApplications(ctx context.Context, student user.User) ([]application.StudentView, error) {
	if !student.IsStudent() {
		return nil, user.ErrStudentOnly
	}
	items, err := s.apps.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, domain.Internal("list student applications", err)
	}
	return items, nil
}

func (s *Service) Check(ctx context.Context, student user.User, jobID uuid.UUID) (CheckResult, error) {
	if !student.IsStudent() {
		return CheckResult{}, user.ErrStudentOnly
	}
	a, err := s.apps.GetByJobAndStudent(ctx, jobID, student.ID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return CheckResult{}, nil
		}
		return CheckResult{}, domain.Internal("check application", err)
	}
	return CheckResult{HasApplied: true, Application: &a}, nil
}

// Withdraw deletes one of the student's own applications while it is still pending.
func (s *Service) Withdraw(ctx context.Context, student user.User, id uuid.UUID) error {
	if !student.IsStudent() {
		return user.ErrStudentOnly
	}
	if err := s.apps.DeletePendingOwned(ctx, id, student.ID); err != nil {
		return domain.Wrap("withdraw application", err)
	}
	if s.logger != nil {
		s.logger.Printf("[Applications] withdrawn application_id=%s student_id=%s", id, student.ID)
	}
	return nil
}

func (s *Service) JobApplications(ctx context.Context, recruiter user.User, jobID uuid.UUID) (JobApplications, error) {
	if !recruiter.IsRecruiter() {
		return JobApplications{}, user.ErrRecruiterOnly
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return JobApplications{}, domain.Wrap("job applications: load job", err)
	}
	if j.RecruiterID != recruiter.ID {
		return JobApplications{}, job.ErrNotOwner
	}

	items, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return JobApplications{}, domain.Internal("list job applications", err)
	}
	return JobApplications{Job: j, Applications: items}, nil
}

// RecruiterApplications lists applications across all of the recruiter's jobs.
// An empty status means no filter.
func (s *Service) RecruiterApplications(ctx context.Context, recruiter user.User, status string) ([]application.RecruiterView, error) {
	if !recruiter.IsRecruiter() {
		return nil, user.ErrRecruiterOnly
	}
	st := application.Status(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		var fields domain.Fields
		fields.Add("status", statusChoices)
		return nil, fields.Err()
	}

	items, err := s.apps.ListByRecruiter(ctx, recruiter.ID, st)
	if err != nil {
		return nil, domain.Internal("list recruiter applications", err)
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, recruiter user.User, id uuid.UUID, p application.StatusPatch) (application.Application, error) {
	if !recruiter.IsRecruiter() {
		return application.Application{}, user.ErrRecruiterOnly
	}

	p.RecruiterNotes = optional.BlankAsNull(p.RecruiterNotes)
	if err := validateStatusPatch(p); err != nil {
		return application.Application{}, err
	}

	updated, err := s.apps.UpdateOwned(ctx, id, recruiter.ID, p)
	if err != nil {
		return application.Application{}, domain.Wrap("update application", err)
	}
	if s.logger != nil {
		s.logger.Printf("[Applications] updated application_id=%s status=%s", id, updated.Status)
	}
	return updated, nil
}

const statusChoices = "must be one of: pending, reviewed, interviewing, rejected, accepted"

func validateStatusPatch(p application.StatusPatch) error {
	if p.Empty() {
		return domain.NewValidationError("Provide a status or recruiter notes to update.")
	}

	var fields domain.Fields
	if p.Status.IsNull() {
		fields.Add("status", "cannot be cleared")
	} else if st, ok := p.Status.Get(); ok && !st.Valid() {
		fields.Add("status", statusChoices)
	}
	if notes, ok := p.RecruiterNotes.Get(); ok && len([]rune(notes)) > maxTextLength {
		fields.Add("recruiterNotes", "must be at most 5000 characters")
	}
	return fields.Err()
}
