package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/attendx/hrms-service/internal/api/dto"
	"github.com/attendx/hrms-service/internal/service"
)

// Authenticator performs credential checks.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth      Authenticator
	validator *Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth Authenticator, validator *Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validator: validator}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		UserID:      res.Account.ID,
		Email:       res.Account.Email,
		Role:        string(res.Account.Role),
		Name:        res.Account.Name,
	})
}
