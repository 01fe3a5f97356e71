package job

import (
	"context"
	"errors"
	"testing"

	"job-board/internal/domain"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	jobs    map[uuid.UUID]job.Job
	total   int
	filter  job.ListFilter
	created job.NewJob
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[uuid.UUID]job.Job{}}
}

func (m *mockJobRepo) Create(_ context.Context, in job.NewJob) (job.Job, error) {
	m.created = in
	j := job.Job{
		ID:          uuid.New(),
		RecruiterID: in.RecruiterID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Type:        in.Type,
		Status:      in.Status,
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
	}
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *mockJobRepo) List(_ context.Context, f job.ListFilter) ([]job.Job, int, error) {
	m.filter = f
	return []job.Job{}, m.total, nil
}

func (m *mockJobRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]job.Job, error) {
	out := []job.Job{}
	for _, j := range m.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) UpdateOwned(_ context.Context, id, recruiterID uuid.UUID, p job.Patch) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	if j.RecruiterID != recruiterID {
		return job.Job{}, job.ErrNotOwner
	}
	j = p.Apply(j)
	if err := job.CheckSalaryRange(j.SalaryMin, j.SalaryMax); err != nil {
		return job.Job{}, err
	}
	m.jobs[id] = j
	return j, nil
}

func (m *mockJobRepo) DeleteOwned(_ context.Context, id, recruiterID uuid.UUID) error {
	j, ok := m.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	if j.RecruiterID != recruiterID {
		return job.ErrNotOwner
	}
	delete(m.jobs, id)
	return nil
}

func recruiter(company string) user.User {
	return user.NewRecruiter(uuid.New(), "r@example.com", "", "Rita", "Recruiter", company)
}

func validCreate() CreateInput {
	return CreateInput{
		Title:       "Backend Intern",
		Description: "Build APIs",
		Location:    "Remote",
		JobType:     "internship",
	}
}

func intp(n int) *int { return &n }

func TestService_Create_Defaults(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)

	j, err := svc.Create(context.Background(), recruiter("Acme"), validCreate())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if j.Company != "Acme" {
		t.Fatalf("expected company to default to recruiter's, got %q", j.Company)
	}
	if j.Status != job.StatusOpen {
		t.Fatalf("expected default status open, got %q", j.Status)
	}
}

func TestService_Create_RejectsStudent(t *testing.T) {
	svc := NewService(newMockJobRepo(), nil)
	student := user.NewStudent(uuid.New(), "s@example.com", "", "Sam", "Student")
	_, err := svc.Create(context.Background(), student, validCreate())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newMockJobRepo(), nil)

	in := validCreate()
	in.JobType = "gig"
	if _, err := svc.Create(context.Background(), recruiter("Acme"), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for job type, got %v", err)
	}

	in = validCreate()
	in.Title = "   "
	if _, err := svc.Create(context.Background(), recruiter("Acme"), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	in = validCreate()
	in.SalaryMin, in.SalaryMax = intp(5000), intp(1000)
	if _, err := svc.Create(context.Background(), recruiter("Acme"), in); !errors.Is(err, job.ErrSalaryRange) {
		t.Fatalf("expected salary range error, got %v", err)
	}
}

func TestService_List_Pagination(t *testing.T) {
	repo := newMockJobRepo()
	repo.total = 25
	svc := NewService(repo, nil)

	page, err := svc.List(context.Background(), ListInput{Page: 2, Limit: 10, Search: "  go "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.TotalPages != 3 || page.TotalCount != 25 {
		t.Fatalf("expected 25 items over 3 pages, got %+v", page)
	}
	if repo.filter.Offset() != 10 || repo.filter.Search != "go" {
		t.Fatalf("unexpected filter %+v", repo.filter)
	}

	page, err = svc.List(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Page != 1 || page.Limit != job.DefaultPageLimit {
		t.Fatalf("expected defaults, got page=%d limit=%d", page.Page, page.Limit)
	}
}

func TestService_List_InvalidInput(t *testing.T) {
	svc := NewService(newMockJobRepo(), nil)
	for _, in := range []ListInput{
		{Page: -1},
		{Limit: 101},
		{Limit: -5},
		{JobType: "gig"},
	} {
		if _, err := svc.List(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
}

func TestService_List_PageOutOfRange(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)

	for _, p := range []int{job.MaxPage + 1, 922337203685477582} {
		_, err := svc.List(context.Background(), ListInput{Page: p, Limit: 10})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || len(ve.Fields) != 1 || ve.Fields[0].Field != "page" {
			t.Fatalf("page %d: expected page field error, got %v", p, err)
		}
	}
	if repo.filter.Page != 0 {
		t.Fatalf("repository must not be queried, got filter %+v", repo.filter)
	}

	if _, err := svc.List(context.Background(), ListInput{Page: job.MaxPage, Limit: job.MaxPageLimit}); err != nil {
		t.Fatalf("last allowed page: unexpected err: %v", err)
	}
	if off := repo.filter.Offset(); off <= 0 || off > job.MaxSalary {
		t.Fatalf("offset %d does not fit the query", off)
	}
}

func TestService_SalaryAboveColumnRange(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)
	owner := recruiter("Acme")

	in := validCreate()
	in.SalaryMin = intp(3000000000)
	_, err := svc.Create(context.Background(), owner, in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 1 || ve.Fields[0].Field != "salaryMin" {
		t.Fatalf("expected salaryMin field error, got %v", err)
	}

	in = validCreate()
	in.SalaryMax = intp(job.MaxSalary)
	j, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("max salary must be accepted, got %v", err)
	}

	_, err = svc.Update(context.Background(), owner, j.ID, job.Patch{SalaryMax: optional.Of(job.MaxSalary + 1)})
	if !errors.As(err, &ve) || len(ve.Fields) != 1 || ve.Fields[0].Field != "salaryMax" {
		t.Fatalf("expected salaryMax field error on update, got %v", err)
	}
}

func TestService_Update_OwnershipAndPatch(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)
	owner := recruiter("Acme")

	j, err := svc.Create(context.Background(), owner, validCreate())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = svc.Update(context.Background(), recruiter("Other"), j.ID, job.Patch{Title: optional.Of("Hijacked")})
	if !errors.Is(err, job.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, j.ID, job.Patch{Status: optional.Of(job.StatusClosed)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != job.StatusClosed || updated.Title != "Backend Intern" {
		t.Fatalf("expected only status to change, got %+v", updated)
	}

	_, err = svc.Update(context.Background(), owner, j.ID, job.Patch{Title: optional.Null[string]()})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error clearing title, got %v", err)
	}

	_, err = svc.Update(context.Background(), owner, j.ID, job.Patch{Status: optional.Of(job.Status("archived"))})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for status, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)
	owner := recruiter("Acme")

	j, _ := svc.Create(context.Background(), owner, validCreate())

	if err := svc.Delete(context.Background(), recruiter("Other"), j.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Get(context.Background(), j.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestService_ListMine(t *testing.T) {
	repo := newMockJobRepo()
	svc := NewService(repo, nil)
	a, b := recruiter("Acme"), recruiter("Beta")

	_, _ = svc.Create(context.Background(), a, validCreate())
	_, _ = svc.Create(context.Background(), a, validCreate())
	_, _ = svc.Create(context.Background(), b, validCreate())

	mine, err := svc.ListMine(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(mine))
	}
}
