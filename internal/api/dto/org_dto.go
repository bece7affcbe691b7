package dto

import "github.com/attendx/hrms-service/internal/domain"

// CreateDepartmentRequest payload for department creation.
type CreateDepartmentRequest struct {
	Name string `json:"department_name" validate:"required,min=1,max=255"`
}

// DepartmentResponse view of a department.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"department_name"`
}

// DepartmentListResponse wraps all departments.
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

// CreateOfficeRequest payload for office creation.
type CreateOfficeRequest struct {
	Name    string  `json:"office_name" validate:"required,min=1,max=255"`
	City    string  `json:"city" validate:"required,min=1,max=255"`
	Country string  `json:"country" validate:"required,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=1024"`
}

// OfficeResponse view of an office.
type OfficeResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"office_name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Address *string `json:"address"`
}

// OfficeListResponse wraps all offices.
type OfficeListResponse struct {
	Offices []OfficeResponse `json:"offices"`
	Total   int              `json:"total"`
}

// NewDepartmentResponse converts a domain department.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name}
}

// NewOfficeResponse converts a domain office.
func NewOfficeResponse(o *domain.Office) OfficeResponse {
	return OfficeResponse{ID: o.ID, Name: o.Name, City: o.City, Country: o.Country, Address: o.Address}
}
