package dto

import (
	"time"

	"job-board/internal/domain/application"
	"job-board/internal/pkg/optional"
	ucapp "job-board/internal/usecase/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"jobId"`
	StudentID      uuid.UUID `json:"studentId"`
	CoverLetter    *string   `json:"coverLetter"`
	ResumeURL      *string   `json:"resumeUrl"`
	Status         string    `json:"status"`
	RecruiterNotes *string   `json:"recruiterNotes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		StudentID:      a.StudentID,
		CoverLetter:    a.CoverLetter,
		ResumeURL:      a.ResumeURL,
		Status:         string(a.Status),
		RecruiterNotes: a.RecruiterNotes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

type JobRef struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Company string    `json:"company"`
}

type JobSummaryResponse struct {
	JobRef
	Location string `json:"location"`
	JobType  string `json:"jobType"`
	Status   string `json:"status"`
}

type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StudentApplicationResponse is one entry of a student's own applications.
type StudentApplicationResponse struct {
	ApplicationResponse
	Job       JobSummaryResponse `json:"job"`
	Recruiter PersonName         `json:"recruiter"`
}

func NewStudentApplicationResponses(items []application.StudentView) []StudentApplicationResponse {
	out := make([]StudentApplicationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, StudentApplicationResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			Job: JobSummaryResponse{
				JobRef:   JobRef{ID: v.Job.ID, Title: v.Job.Title, Company: v.Job.Company},
				Location: v.Job.Location,
				JobType:  string(v.Job.Type),
				Status:   string(v.Job.Status),
			},
			Recruiter: PersonName{FirstName: v.RecruiterFirstName, LastName: v.RecruiterLastName},
		})
	}
	return out
}

type ApplicantResponse struct {
	ID uuid.UUID `json:"id"`
	PersonName
	Email    string  `json:"email"`
	Location *string `json:"location,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type ApplicantApplicationResponse struct {
	ApplicationResponse
	Student ApplicantResponse `json:"student"`
}

type JobApplicationsResponse struct {
	Job          JobRef                         `json:"job"`
	Applications []ApplicantApplicationResponse `json:"applications"`
}

func NewJobApplicationsResponse(res ucapp.JobApplications) JobApplicationsResponse {
	out := JobApplicationsResponse{
		Job:          JobRef{ID: res.Job.ID, Title: res.Job.Title, Company: res.Job.Company},
		Applications: make([]ApplicantApplicationResponse, 0, len(res.Applications)),
	}
	for _, v := range res.Applications {
		out.Applications = append(out.Applications, ApplicantApplicationResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			Student:             newApplicant(v.Student, true),
		})
	}
	return out
}

// RecruiterApplicationResponse is one entry of the recruiter-wide listing.
type RecruiterApplicationResponse struct {
	ApplicationResponse
	Job     JobRef            `json:"job"`
	Student ApplicantResponse `json:"student"`
}

func NewRecruiterApplicationResponses(items []application.RecruiterView) []RecruiterApplicationResponse {
	out := make([]RecruiterApplicationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, RecruiterApplicationResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			Job:                 JobRef{ID: v.Job.ID, Title: v.Job.Title, Company: v.Job.Company},
			Student:             newApplicant(v.Student, false),
		})
	}
	return out
}

func newApplicant(a application.Applicant, withProfile bool) ApplicantResponse {
	res := ApplicantResponse{
		ID:         a.ID,
		PersonName: PersonName{FirstName: a.FirstName, LastName: a.LastName},
		Email:      a.Email,
	}
	if withProfile {
		res.Location = a.Location
		res.LinkedIn = a.LinkedIn
		res.GitHub = a.GitHub
		res.Bio = a.Bio
	}
	return res
}

type CheckApplicationResponse struct {
	HasApplied  bool                 `json:"hasApplied"`
	Application *ApplicationResponse `json:"application"`
}

func NewCheckApplicationResponse(res ucapp.CheckResult) CheckApplicationResponse {
	out := CheckApplicationResponse{HasApplied: res.HasApplied}
	if res.Application != nil {
		a := NewApplicationResponse(*res.Application)
		out.Application = &a
	}
	return out
}

type ApplyRequest struct {
	CoverLetter *string `json:"coverLetter,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status         optional.Field[string] `json:"status,omitzero"`
	RecruiterNotes optional.Field[string] `json:"recruiterNotes,omitzero"`
}

func (r UpdateApplicationStatusRequest) ToPatch() application.StatusPatch {
	return application.StatusPatch{
		Status:         optional.Map(r.Status, func(s string) application.Status { return application.Status(s) }),
		RecruiterNotes: r.RecruiterNotes,
	}
}
