package job

import (
	"context"
	"fmt"
	"log"
	"strings"

	"job-board/internal/domain"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"
	"job-board/internal/pkg/validate"

	"github.com/google/uuid"
)

type CreateInput struct {
	Title        string  `json:"title" validate:"notblank,max=255"`
	Company      string  `json:"company" validate:"max=255"`
	Description  string  `json:"description" validate:"notblank"`
	Requirements *string `json:"requirements"`
	Location     string  `json:"location" validate:"notblank,max=255"`
	JobType      string  `json:"jobType" validate:"required,oneof=full-time part-time internship contract"`
	SalaryMin    *int    `json:"salaryMin" validate:"omitempty,gte=0,lte=2147483647"`
	SalaryMax    *int    `json:"salaryMax" validate:"omitempty,gte=0,lte=2147483647"`
	Status       string  `json:"status" validate:"omitempty,oneof=open closed paused"`
	RemoteOK     bool    `json:"remoteOk"`
}

type ListInput struct {
	Search     string
	JobType    string
	Location   string
	RemoteOnly bool
	Page       int
	Limit      int
}

type Service struct {
	jobs   job.Repository
	logger *log.Logger
}

func NewService(jobs job.Repository, logger *log.Logger) *Service {
	return &Service{jobs: jobs, logger: logger}
}

func (s *Service) Create(ctx context.Context, recruiter user.User, in CreateInput) (job.Job, error) {
	if !recruiter.IsRecruiter() {
		return job.Job{}, user.ErrRecruiterOnly
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = strings.TrimSpace(in.JobType)
	in.Status = strings.TrimSpace(in.Status)
	if in.Requirements != nil && strings.TrimSpace(*in.Requirements) == "" {
		in.Requirements = nil
	}

	if err := validate.Struct(in); err != nil {
		return job.Job{}, err
	}
	if err := job.CheckSalaryRange(in.SalaryMin, in.SalaryMax); err != nil {
		return job.Job{}, err
	}

	company := in.Company
	if company == "" {
		company = recruiter.CompanyName()
	}
	status := job.Status(in.Status)
	if status == "" {
		status = job.StatusOpen
	}

	created, err := s.jobs.Create(ctx, job.NewJob{
		RecruiterID:  recruiter.ID,
		Title:        in.Title,
		Company:      company,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		Type:         job.Type(in.JobType),
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Status:       status,
		RemoteOK:     in.RemoteOK,
	})
	if err != nil {
		return job.Job{}, domain.Wrap("create job", err)
	}
	if s.logger != nil {
		s.logger.Printf("[Jobs] created job_id=%s recruiter_id=%s", created.ID, recruiter.ID)
	}
	return created, nil
}

// List returns one page of open jobs, newest first.
func (s *Service) List(ctx context.Context, in ListInput) (job.Page, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = job.DefaultPageLimit
	}

	var fields domain.Fields
	if in.Page < 1 || in.Page > job.MaxPage {
		fields.Add("page", fmt.Sprintf("must be between 1 and %d", job.MaxPage))
	}
	if in.Limit < 1 || in.Limit > job.MaxPageLimit {
		fields.Add("limit", "must be between 1 and 100")
	}
	jobType := job.Type(strings.TrimSpace(in.JobType))
	if jobType != "" && !jobType.Valid() {
		fields.Add("jobType", "must be one of: full-time, part-time, internship, contract")
	}
	if err := fields.Err(); err != nil {
		return job.Page{}, err
	}

	f := job.ListFilter{
		Search:     strings.TrimSpace(in.Search),
		Location:   strings.TrimSpace(in.Location),
		Type:       jobType,
		RemoteOnly: in.RemoteOnly,
		Page:       in.Page,
		Limit:      in.Limit,
	}
	items, total, err := s.jobs.List(ctx, f)
	if err != nil {
		return job.Page{}, domain.Internal("list jobs", err)
	}

	return job.Page{
		Jobs:       items,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalCount: total,
		TotalPages: job.TotalPages(total, in.Limit),
	}, nil
}

// Get returns a job of any status.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, domain.Wrap("get job", err)
	}
	return j, nil
}

func (s *Service) ListMine(ctx context.Context, recruiter user.User) ([]job.Job, error) {
	if !recruiter.IsRecruiter() {
		return nil, user.ErrRecruiterOnly
	}
	items, err := s.jobs.ListByRecruiter(ctx, recruiter.ID)
	if err != nil {
		return nil, domain.Internal("list recruiter jobs", err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, recruiter user.User, id uuid.UUID, p job.Patch) (job.Job, error) {
	if !recruiter.IsRecruiter() {
		return job.Job{}, user.ErrRecruiterOnly
	}

	p.Title = optional.TrimSpace(p.Title)
	p.Company = optional.TrimSpace(p.Company)
	p.Location = optional.TrimSpace(p.Location)
	p.Requirements = optional.BlankAsNull(p.Requirements)
	if err := validatePatch(p); err != nil {
		return job.Job{}, err
	}

	updated, err := s.jobs.UpdateOwned(ctx, id, recruiter.ID, p)
	if err != nil {
		return job.Job{}, domain.Wrap("update job", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, recruiter user.User, id uuid.UUID) error {
	if !recruiter.IsRecruiter() {
		return user.ErrRecruiterOnly
	}
	if err := s.jobs.DeleteOwned(ctx, id, recruiter.ID); err != nil {
		return domain.Wrap("delete job", err)
	}
	if s.logger != nil {
		s.logger.Printf("[Jobs] deleted job_id=%s recruiter_id=%s", id, recruiter.ID)
	}
	return nil
}

func validatePatch(p job.Patch) error {
	var fields domain.Fields

	required := func(name string, set, null bool, value any, tag string) {
		if !set {
			return
		}
		if null {
			fields.Add(name, "cannot be cleared")
			return
		}
		validate.Field(&fields, name, value, tag)
	}

	v, _ := p.Title.Get()
	required("title", p.Title.IsSet(), p.Title.IsNull(), v, "notblank,max=255")
	v, _ = p.Company.Get()
	required("company", p.Company.IsSet(), p.Company.IsNull(), v, "notblank,max=255")
	v, _ = p.Description.Get()
	required("description", p.Description.IsSet(), p.Description.IsNull(), v, "notblank")
	v, _ = p.Location.Get()
	required("location", p.Location.IsSet(), p.Location.IsNull(), v, "notblank,max=255")

	if p.Type.IsSet() {
		t, ok := p.Type.Get()
		if !ok || !t.Valid() {
			fields.Add("jobType", "must be one of: full-time, part-time, internship, contract")
		}
	}
	if p.Status.IsSet() {
		st, ok := p.Status.Get()
		if !ok || !st.Valid() {
			fields.Add("status", "must be one of: open, closed, paused")
		}
	}
	if p.RemoteOK.IsNull() {
		fields.Add("remoteOk", "cannot be cleared")
	}
	salary := func(name string, f optional.Field[int]) {
		n, ok := f.Get()
		switch {
		case !ok:
		case n < 0:
			fields.Add(name, "must be at least 0")
		case n > job.MaxSalary:
			fields.Add(name, fmt.Sprintf("must be at most %d", job.MaxSalary))
		}
	}
	salary("salaryMin", p.SalaryMin)
	salary("salaryMax", p.SalaryMax)

	return fields.Err()
}
