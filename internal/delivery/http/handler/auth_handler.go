package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucauth "job-board/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	auth  usecase.AuthUsecase
	users usecase.UserUsecase
}

func NewAuthHandler(auth usecase.AuthUsecase, users usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}
	g = g.withDefaults()

	r.Post("/signup", g.AuthLimit, h.Signup)
	r.Post("/login", g.AuthLimit, h.Login)
	r.Get("/me", g.Auth, h.Me)
	r.Put("/profile", g.Auth, h.UpdateProfile)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, token, err := h.auth.Signup(c.Context(), ucauth.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	res := dto.AuthResponse{Token: token, User: dto.NewUserResponse(usr)}
	return response.Success(c, fiber.StatusCreated, "User created successfully.", res)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, token, err := h.auth.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	res := dto.AuthResponse{Token: token, User: dto.NewUserResponse(usr)}
	return response.Success(c, fiber.StatusOK, "Login successful.", res)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	usr, err := h.users.GetMe(c.Context(), caller.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *AuthHandler) UpdateProfile(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, err := h.users.UpdateProfile(c.Context(), caller, req.ToPatch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully.", dto.NewUserResponse(usr))
}
