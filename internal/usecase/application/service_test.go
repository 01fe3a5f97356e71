package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"job-board/internal/domain"
	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

// memStore backs both repositories and mirrors the database constraints
// the service relies on.
type memStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]job.Job
	apps map[uuid.UUID]application.Application
}

func newMemStore() *memStore {
	return &memStore{jobs: map[uuid.UUID]job.Job{}, apps: map[uuid.UUID]application.Application{}}
}

type memJobs struct{ *memStore }
type memApps struct{ *memStore }

func (s memJobs) Create(_ context.Context, in job.NewJob) (job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := job.Job{ID: uuid.New(), RecruiterID: in.RecruiterID, Title: in.Title, Company: in.Company, Status: in.Status, Type: in.Type}
	s.jobs[j.ID] = j
	return j, nil
}

func (s memJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (s memJobs) List(context.Context, job.ListFilter) ([]job.Job, int, error) { return nil, 0, nil }
func (s memJobs) ListByRecruiter(context.Context, uuid.UUID) ([]job.Job, error) { return nil, nil }

func (s memJobs) UpdateOwned(_ context.Context, id, recruiterID uuid.UUID, p job.Patch) (job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	if j.RecruiterID != recruiterID {
		return job.Job{}, job.ErrNotOwner
	}
	j = p.Apply(j)
	s.jobs[id] = j
	return j, nil
}

func (s memJobs) DeleteOwned(_ context.Context, id, recruiterID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	if j.RecruiterID != recruiterID {
		return job.ErrNotOwner
	}
	delete(s.jobs, id)
	for aid, a := range s.apps {
		if a.JobID == id {
			delete(s.apps, aid)
		}
	}
	return nil
}

func (s memApps) Create(_ context.Context, in application.NewApplication) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[in.JobID]
	if !ok {
		return application.Application{}, job.ErrNotFound
	}
	if j.Status != job.StatusOpen {
		return application.Application{}, application.ErrJobClosed
	}
	for _, a := range s.apps {
		if a.JobID == in.JobID && a.StudentID == in.StudentID {
			return application.Application{}, application.ErrDuplicate
		}
	}
	a := application.Application{ID: uuid.New(), JobID: in.JobID, StudentID: in.StudentID, CoverLetter: in.CoverLetter, Status: application.StatusPending}
	s.apps[a.ID] = a
	return a, nil
}

func (s memApps) GetByJobAndStudent(_ context.Context, jobID, studentID uuid.UUID) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (s memApps) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.StudentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []application.StudentView{}
	for _, a := range s.apps {
		if a.StudentID == studentID {
			j := s.jobs[a.JobID]
			out = append(out, application.StudentView{Application: a, Job: application.JobSummary{ID: j.ID, Title: j.Title, Status: j.Status}})
		}
	}
	return out, nil
}

func (s memApps) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.RecruiterView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []application.RecruiterView{}
	for _, a := range s.apps {
		if a.JobID == jobID {
			out = append(out, application.RecruiterView{Application: a})
		}
	}
	return out, nil
}

func (s memApps) ListByRecruiter(_ context.Context, recruiterID uuid.UUID, status application.Status) ([]application.RecruiterView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []application.RecruiterView{}
	for _, a := range s.apps {
		if s.jobs[a.JobID].RecruiterID != recruiterID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, application.RecruiterView{Application: a})
	}
	return out, nil
}

func (s memApps) UpdateOwned(_ context.Context, id, recruiterID uuid.UUID, p application.StatusPatch) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if s.jobs[a.JobID].RecruiterID != recruiterID {
		return application.Application{}, application.ErrNotOwner
	}
	if err := application.CheckTransition(a.Status, p); err != nil {
		return application.Application{}, err
	}
	if st, ok := p.Status.Get(); ok {
		a.Status = st
	}
	if p.RecruiterNotes.IsSet() {
		a.RecruiterNotes = p.RecruiterNotes.Ptr()
	}
	s.apps[id] = a
	return a, nil
}

func (s memApps) DeletePendingOwned(_ context.Context, id, studentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok || a.StudentID != studentID {
		return application.ErrNotFound
	}
	if a.Status != application.StatusPending {
		return application.ErrNotPending
	}
	delete(s.apps, id)
	return nil
}

type fixture struct {
	svc       *Service
	jobs      memJobs
	recruiter user.User
	student   user.User
	openJob   job.Job
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := newMemStore()
	jobs := memJobs{store}
	rec := user.NewRecruiter(uuid.New(), "r@example.com", "", "Rita", "Recruiter", "Acme")
	stu := user.NewStudent(uuid.New(), "s@example.com", "", "Sam", "Student")

	j, err := jobs.Create(context.Background(), job.NewJob{RecruiterID: rec.ID, Title: "Intern", Company: "Acme", Type: job.TypeInternship, Status: job.StatusOpen})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return fixture{svc: NewService(memApps{store}, jobs, nil), jobs: jobs, recruiter: rec, student: stu, openJob: j}
}

func strp(s string) *string { return &s }

func TestService_Apply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{CoverLetter: strp("Hello")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	_, err = f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on second apply, got %v", err)
	}
}

func TestService_Apply_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Apply(ctx, f.recruiter, f.openJob.ID, ApplyInput{}); !errors.Is(err, user.ErrStudentOnly) {
		t.Fatalf("expected ErrStudentOnly, got %v", err)
	}
	if _, err := f.svc.Apply(ctx, f.student, uuid.New(), ApplyInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	long := strings.Repeat("a", 5001)
	if _, err := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{CoverLetter: &long}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := f.jobs.UpdateOwned(ctx, f.openJob.ID, f.recruiter.ID, job.Patch{Status: optional.Of(job.StatusPaused)}); err != nil {
		t.Fatalf("pause job: %v", err)
	}
	if _, err := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{}); !errors.Is(err, application.ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
}

func TestService_Check(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Check(ctx, f.student, f.openJob.ID)
	if err != nil || res.HasApplied || res.Application != nil {
		t.Fatalf("expected no application, got %+v err=%v", res, err)
	}

	a, _ := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{})
	res, err = f.svc.Check(ctx, f.student, f.openJob.ID)
	if err != nil || !res.HasApplied || res.Application.ID != a.ID {
		t.Fatalf("expected application %s, got %+v err=%v", a.ID, res, err)
	}
}

func TestService_Withdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _ := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{})

	other := user.NewStudent(uuid.New(), "o@example.com", "", "Oli", "Other")
	if err := f.svc.Withdraw(ctx, other, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for another student, got %v", err)
	}

	if _, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, application.StatusPatch{Status: optional.Of(application.StatusReviewed)}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := f.svc.Withdraw(ctx, f.student, a.ID); !errors.Is(err, application.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{})

	cases := []struct {
		name  string
		patch application.StatusPatch
		kind  error
	}{
		{"empty", application.StatusPatch{}, domain.ErrValidation},
		{"null status", application.StatusPatch{Status: optional.Null[application.Status]()}, domain.ErrValidation},
		{"bad status", application.StatusPatch{Status: optional.Of(application.Status("hired"))}, domain.ErrValidation},
		{"long notes", application.StatusPatch{RecruiterNotes: optional.Of(strings.Repeat("n", 5001))}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, tc.patch); !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
		})
	}

	other := user.NewRecruiter(uuid.New(), "x@example.com", "", "Xan", "Other", "Beta")
	if _, err := f.svc.UpdateStatus(ctx, other, a.ID, application.StatusPatch{Status: optional.Of(application.StatusReviewed)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	got, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, application.StatusPatch{
		Status:         optional.Of(application.StatusAccepted),
		RecruiterNotes: optional.Of("Strong candidate"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusAccepted || got.RecruiterNotes == nil || *got.RecruiterNotes != "Strong candidate" {
		t.Fatalf("unexpected application %+v", got)
	}

	if _, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, application.StatusPatch{Status: optional.Of(application.StatusRejected)}); !errors.Is(err, application.ErrDecisionFinal) {
		t.Fatalf("expected ErrDecisionFinal, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, application.StatusPatch{RecruiterNotes: optional.Of("Offer sent")}); err != nil {
		t.Fatalf("notes should stay editable: %v", err)
	}
}

func TestService_RecruiterApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{})

	all, err := f.svc.RecruiterApplications(ctx, f.recruiter, "")
	if err != nil || len(all) != 1 {
		t.Fatalf("expected 1 application, got %d err=%v", len(all), err)
	}

	reviewed, err := f.svc.RecruiterApplications(ctx, f.recruiter, "reviewed")
	if err != nil || len(reviewed) != 0 {
		t.Fatalf("expected 0 reviewed, got %d err=%v", len(reviewed), err)
	}

	if _, err := f.svc.RecruiterApplications(ctx, f.recruiter, "hired"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	jobApps, err := f.svc.JobApplications(ctx, f.recruiter, f.openJob.ID)
	if err != nil || len(jobApps.Applications) != 1 || jobApps.Applications[0].ID != a.ID {
		t.Fatalf("unexpected job applications %+v err=%v", jobApps, err)
	}

	other := user.NewRecruiter(uuid.New(), "x@example.com", "", "Xan", "Other", "Beta")
	if _, err := f.svc.JobApplications(ctx, other, f.openJob.ID); !errors.Is(err, job.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

// A full pass through the pipeline: post, apply, review, decide, and remove.
func TestService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, f.student, f.openJob.ID, ApplyInput{CoverLetter: strp("I'd love to join.")})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	mine, err := f.svc.MyApplications(ctx, f.student)
	if err != nil || len(mine) != 1 || mine[0].Job.Title != "Intern" {
		t.Fatalf("unexpected student view %+v err=%v", mine, err)
	}

	for _, st := range []application.Status{application.StatusReviewed, application.StatusInterviewing, application.StatusAccepted} {
		if _, err := f.svc.UpdateStatus(ctx, f.recruiter, a.ID, application.StatusPatch{Status: optional.Of(st)}); err != nil {
			t.Fatalf("move to %s: %v", st, err)
		}
	}

	mine, _ = f.svc.MyApplications(ctx, f.student)
	if mine[0].Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", mine[0].Status)
	}

	if err := f.jobs.DeleteOwned(ctx, f.openJob.ID, f.recruiter.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	mine, _ = f.svc.MyApplications(ctx, f.student)
	if len(mine) != 0 {
		t.Fatalf("expected applications to go with the job, got %d", len(mine))
	}
}
