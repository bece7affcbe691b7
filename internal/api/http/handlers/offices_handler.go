package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/attendx/hrms-service/internal/api/dto"
	"github.com/attendx/hrms-service/internal/service"
)

// OfficesHandler exposes office endpoints.
type OfficesHandler struct {
	org       OrgManager
	validator *Validator
}

// NewOfficesHandler constructs handler.
func NewOfficesHandler(org OrgManager, validator *Validator) *OfficesHandler {
	return &OfficesHandler{org: org, validator: validator}
}

// Create handles POST /offices/createOffice.
func (h *OfficesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOfficeRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	office, err := h.org.CreateOffice(c.UserContext(), service.CreateOfficeInput{
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewOfficeResponse(office))
}

// Get handles GET /offices.
func (h *OfficesHandler) Get(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		id, err := queryInt(c, "id", 0)
		if err != nil {
			return err
		}
		office, err := h.org.GetOffice(c.UserContext(), int64(id))
		if err != nil {
			return err
		}
		return c.JSON(dto.NewOfficeResponse(office))
	}

	offices, total, err := h.org.ListOffices(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.OfficeListResponse{Offices: make([]dto.OfficeResponse, 0, len(offices)), Total: total}
	for i := range offices {
		resp.Offices = append(resp.Offices, dto.NewOfficeResponse(&offices[i]))
	}
	return c.JSON(resp)
}
