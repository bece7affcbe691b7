package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/attendx/hrms-service/internal/api/dto"
	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/service"
)

// OrgManager manages departments and offices.
type OrgManager interface {
	CreateDepartment(ctx context.Context, name string) (*domain.Department, error)
	GetDepartment(ctx context.Context, id int64) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, int, error)
	CreateOffice(ctx context.Context, in service.CreateOfficeInput) (*domain.Office, error)
	GetOffice(ctx context.Context, id int64) (*domain.Office, error)
	ListOffices(ctx context.Context) ([]domain.Office, int, error)
}

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	org       OrgManager
	validator *Validator
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(org OrgManager, validator *Validator) *DepartmentsHandler {
	return &DepartmentsHandler{org: org, validator: validator}
}

// Create handles POST /departments/createDepartment.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	dept, err := h.org.CreateDepartment(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewDepartmentResponse(dept))
}

// Get handles GET /departments: a single department when ?id= is present, otherwise all of them.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		id, err := queryInt(c, "id", 0)
		if err != nil {
			return err
		}
		dept, err := h.org.GetDepartment(c.UserContext(), int64(id))
		if err != nil {
			return err
		}
		return c.JSON(dto.NewDepartmentResponse(dept))
	}

	depts, total, err := h.org.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.DepartmentListResponse{Departments: make([]dto.DepartmentResponse, 0, len(depts)), Total: total}
	for i := range depts {
		resp.Departments = append(resp.Departments, dto.NewDepartmentResponse(&depts[i]))
	}
	return c.JSON(resp)
}
