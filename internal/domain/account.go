package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleSubAdmin Role = "sub_admin"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role in declaration order.
var Roles = []Role{RoleEmployee, RoleHR, RoleSubAdmin, RoleAdmin}

// ParseRole converts a raw value into a Role, rejecting anything outside the closed set.
func ParseRole(raw string) (Role, error) {
	for _, r := range Roles {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", raw)
}

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Statuses lists every valid account status.
var Statuses = []AccountStatus{AccountStatusActive, AccountStatusInactive}

// ParseStatus converts a raw value into an AccountStatus.
func ParseStatus(raw string) (AccountStatus, error) {
	for _, s := range Statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", raw)
}

// Account is an employee identity record.
type Account struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Status        AccountStatus
	DepartmentID  *int64
	OfficeID      *int64
	ManagerID     *int64
	DateOfJoining *time.Time
	DateOfBirth   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the account may authenticate.
func (a *Account) IsActive() bool {
	return a != nil && a.Status == AccountStatusActive
}
