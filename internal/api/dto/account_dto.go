package dto

import (
	"time"

	"github.com/attendx/hrms-service/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateUserRequest payload for account creation.
type CreateUserRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6"`
	Role          string  `json:"role" validate:"required,oneof=employee hr sub_admin admin"`
	DepartmentID  *int64  `json:"department_id"`
	OfficeID      *int64  `json:"office_id"`
	ManagerID     *int64  `json:"manager_id"`
	DateOfJoining *string `json:"date_of_joining" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListUsersQuery holds query parameters for account listing, after defaults are applied.
type ListUsersQuery struct {
	Skip   int    `query:"skip" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=1,max=1000"`
	Role   string `query:"role" validate:"omitempty,oneof=employee hr sub_admin admin"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	DepartmentID  *int64    `json:"department_id"`
	OfficeID      *int64    `json:"office_id"`
	ManagerID     *int64    `json:"manager_id"`
	DateOfJoining *string   `json:"date_of_joining"`
	DateOfBirth   *string   `json:"date_of_birth"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserListResponse wraps a page of accounts.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// NewUserResponse converts a domain account; the password hash never leaves the service.
func NewUserResponse(a *domain.Account) UserResponse {
	return UserResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          string(a.Role),
		DepartmentID:  a.DepartmentID,
		OfficeID:      a.OfficeID,
		ManagerID:     a.ManagerID,
		DateOfJoining: formatDate(a.DateOfJoining),
		DateOfBirth:   formatDate(a.DateOfBirth),
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ParseDate parses an optional YYYY-MM-DD value.
func ParseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
