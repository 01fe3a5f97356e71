package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucapp "job-board/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterJobRoutes mounts the apply endpoint under /jobs.
func (h *ApplicationHandler) RegisterJobRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}
	g = g.withDefaults()

	r.Post("/:jobId/apply", g.Auth, g.Student, g.ApplyLimit, h.Apply)
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}
	g = g.withDefaults()

	r.Get("/my-applications", g.Auth, g.Student, h.MyApplications)
	r.Get("/check/:jobId", g.Auth, g.Student, h.Check)
	r.Get("/recruiter/all", g.Auth, g.Recruiter, h.RecruiterApplications)
	r.Get("/job/:jobId", g.Auth, g.Recruiter, h.JobApplications)
	r.Put("/:id/status", g.Auth, g.Recruiter, h.UpdateStatus)
	r.Delete("/:id", g.Auth, g.Student, h.Withdraw)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", job.ErrNotFound)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	a, err := h.uc.Apply(c.Context(), caller, jobID, ucapp.ApplyInput{CoverLetter: req.CoverLetter})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully.", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) MyApplications(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MyApplications(c.Context(), caller)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentApplicationResponses(items))
}

func (h *ApplicationHandler) Check(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", job.ErrNotFound)
	if err != nil {
		return err
	}

	res, err := h.uc.Check(c.Context(), caller, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCheckApplicationResponse(res))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", application.ErrNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.Withdraw(c.Context(), caller, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn successfully.", nil)
}

func (h *ApplicationHandler) JobApplications(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId", job.ErrNotFound)
	if err != nil {
		return err
	}

	res, err := h.uc.JobApplications(c.Context(), caller, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobApplicationsResponse(res))
}

func (h *ApplicationHandler) RecruiterApplications(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.RecruiterApplications(c.Context(), caller, c.Query("status"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterApplicationResponses(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", application.ErrNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateApplicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), caller, id, req.ToPatch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application updated successfully.", dto.NewApplicationResponse(a))
}
