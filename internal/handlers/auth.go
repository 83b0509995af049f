package handlers

import (
	"handshake/internal/services/auth"
	"handshake/internal/utils/response"
	"handshake/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("name", input.Name)
	v.Email("email", input.Email)
	v.Password("password", input.Password)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	user, err := h.authService.Register(c.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if err == auth.ErrEmailTaken {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, "Registration successful", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	token, user, err := h.authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
