package dto

import (
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type RecruiterResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Email     string `json:"email"`
}

type JobResponse struct {
	ID               uuid.UUID         `json:"id"`
	RecruiterID      uuid.UUID         `json:"recruiterId"`
	Title            string            `json:"title"`
	Company          string            `json:"company"`
	Description      string            `json:"description"`
	Requirements     *string           `json:"requirements"`
	Location         string            `json:"location"`
	JobType          string            `json:"jobType"`
	SalaryMin        *int              `json:"salaryMin"`
	SalaryMax        *int              `json:"salaryMax"`
	Status           string            `json:"status"`
	RemoteOK         bool              `json:"remoteOk"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	ApplicationCount int               `json:"applicationCount"`
	Recruiter        RecruiterResponse `json:"recruiter"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		RecruiterID:      j.RecruiterID,
		Title:            j.Title,
		Company:          j.Company,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Location:         j.Location,
		JobType:          string(j.Type),
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		Status:           string(j.Status),
		RemoteOK:         j.RemoteOK,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		ApplicationCount: j.ApplicationCount,
		Recruiter: RecruiterResponse{
			FirstName: j.Recruiter.FirstName,
			LastName:  j.Recruiter.LastName,
			Company:   j.Recruiter.Company,
			Email:     j.Recruiter.Email,
		},
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}

func NewJobListResponse(p job.Page) JobListResponse {
	return JobListResponse{
		Jobs: NewJobResponses(p.Jobs),
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			TotalCount: p.TotalCount,
			TotalPages: p.TotalPages,
		},
	}
}

type CreateJobRequest struct {
	Title        string  `json:"title"`
	Company      string  `json:"company,omitempty"`
	Description  string  `json:"description"`
	Requirements *string `json:"requirements,omitempty"`
	Location     string  `json:"location"`
	JobType      string  `json:"jobType"`
	SalaryMin    *int    `json:"salaryMin,omitempty"`
	SalaryMax    *int    `json:"salaryMax,omitempty"`
	Status       string  `json:"status,omitempty"`
	RemoteOK     bool    `json:"remoteOk"`
}

type UpdateJobRequest struct {
	Title        optional.Field[string] `json:"title,omitzero"`
	Company      optional.Field[string] `json:"company,omitzero"`
	Description  optional.Field[string] `json:"description,omitzero"`
	Requirements optional.Field[string] `json:"requirements,omitzero"`
	Location     optional.Field[string] `json:"location,omitzero"`
	JobType      optional.Field[string] `json:"jobType,omitzero"`
	SalaryMin    optional.Field[int]    `json:"salaryMin,omitzero"`
	SalaryMax    optional.Field[int]    `json:"salaryMax,omitzero"`
	Status       optional.Field[string] `json:"status,omitzero"`
	RemoteOK     optional.Field[bool]   `json:"remoteOk,omitzero"`
}

func (r UpdateJobRequest) ToPatch() job.Patch {
	return job.Patch{
		Title:        r.Title,
		Company:      r.Company,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		Type:         optional.Map(r.JobType, func(s string) job.Type { return job.Type(s) }),
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Status:       optional.Map(r.Status, func(s string) job.Status { return job.Status(s) }),
		RemoteOK:     r.RemoteOK,
	}
}
