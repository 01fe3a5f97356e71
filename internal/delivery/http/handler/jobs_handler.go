package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain"
	"job-board/internal/domain/job"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucjob "job-board/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}
	g = g.withDefaults()

	r.Get("/", h.List)
	// Registered ahead of /:id so "recruiter" is not parsed as an id.
	r.Get("/recruiter/my-jobs", g.Auth, g.Recruiter, h.ListMine)
	r.Get("/:id", h.Get)
	r.Post("/", g.Auth, g.Recruiter, h.Create)
	r.Put("/:id", g.Auth, g.Recruiter, h.Update)
	r.Delete("/:id", g.Auth, g.Recruiter, h.Delete)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	var fields domain.Fields
	in := ucjob.ListInput{
		Search:     c.Query("search"),
		JobType:    c.Query("jobType"),
		Location:   c.Query("location"),
		RemoteOnly: queryBool(c, &fields, "remoteOk"),
		Page:       queryInt(c, &fields, "page"),
		Limit:      queryInt(c, &fields, "limit"),
	}
	if err := fields.Err(); err != nil {
		return mapUsecaseError(err)
	}

	page, err := h.uc.List(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(page))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", job.ErrNotFound)
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) ListMine(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), caller)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), caller, ucjob.CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		JobType:      req.JobType,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Status:       req.Status,
		RemoteOK:     req.RemoteOK,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created successfully.", dto.NewJobResponse(j))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", job.ErrNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Update(c.Context(), caller, id, req.ToPatch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated successfully.", dto.NewJobResponse(j))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", job.ErrNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), caller, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully.", nil)
}
