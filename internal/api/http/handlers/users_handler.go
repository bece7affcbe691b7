package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/attendx/hrms-service/internal/api/dto"
	"github.com/attendx/hrms-service/internal/auth"
	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/service"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

// AccountManager is the account directory as seen by HTTP handlers.
type AccountManager interface {
	RequireCreator(ctx context.Context, actor *domain.Account) error
	CreateAccount(ctx context.Context, actor *domain.Account, in service.CreateAccountInput) (*domain.Account, error)
	ListAccounts(ctx context.Context, actor *domain.Account, in service.ListAccountsInput) (*service.AccountPage, error)
	Me(actor *domain.Account) (*domain.Account, error)
}

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	accounts  AccountManager
	validator *Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts AccountManager, validator *Validator) *UsersHandler {
	return &UsersHandler{accounts: accounts, validator: validator}
}

// Create handles POST /users/createUser. The route runs optional authentication so the
// very first account can be created anonymously.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	actor, _ := auth.AccountFromContext(c)
	if err := h.accounts.RequireCreator(c.UserContext(), actor); err != nil {
		return err
	}

	var req dto.CreateUserRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	joined, err := dto.ParseDate(req.DateOfJoining)
	if err != nil {
		return apperrors.NewValidationError("date_of_joining must be a date in YYYY-MM-DD format", nil)
	}
	born, err := dto.ParseDate(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("date_of_birth must be a date in YYYY-MM-DD format", nil)
	}

	account, err := h.accounts.CreateAccount(c.UserContext(), actor, service.CreateAccountInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          domain.Role(req.Role),
		Status:        domain.AccountStatus(req.Status),
		DepartmentID:  req.DepartmentID,
		OfficeID:      req.OfficeID,
		ManagerID:     req.ManagerID,
		DateOfJoining: joined,
		DateOfBirth:   born,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(account))
}

// List handles GET /users/getUsers.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	q := dto.ListUsersQuery{
		Limit:  service.DefaultListLimit,
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
	var err error
	if q.Skip, err = queryInt(c, "skip", 0); err != nil {
		return err
	}
	if q.Limit, err = queryInt(c, "limit", service.DefaultListLimit); err != nil {
		return err
	}
	if err := h.validator.Struct(q); err != nil {
		return err
	}

	in := service.ListAccountsInput{Skip: q.Skip, Limit: q.Limit}
	if q.Role != "" {
		role, err := domain.ParseRole(q.Role)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Role = &role
	}
	if q.Status != "" {
		status, err := domain.ParseStatus(q.Status)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Status = &status
	}

	actor, _ := auth.AccountFromContext(c)
	page, err := h.accounts.ListAccounts(c.UserContext(), actor, in)
	if err != nil {
		return err
	}

	resp := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(page.Accounts)), Total: page.Total}
	for i := range page.Accounts {
		resp.Users = append(resp.Users, dto.NewUserResponse(&page.Accounts[i]))
	}
	return c.JSON(resp)
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	actor, _ := auth.AccountFromContext(c)
	account, err := h.accounts.Me(actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(account))
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key+" must be an integer", map[string]any{key: raw})
	}
	return v, nil
}
