package auth

import (
	"github.com/attendx/hrms-service/internal/domain"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

// Action names a guarded operation.
type Action string

const (
	ActionCreateAccount Action = "create_account"
	ActionListAccounts  Action = "list_accounts"
	ActionViewAccount   Action = "view_account"
)

var grants = map[domain.Role]map[Action]struct{}{
	domain.RoleEmployee: {
		ActionViewAccount: {},
	},
	domain.RoleHR: {
		ActionCreateAccount: {},
		ActionListAccounts:  {},
		ActionViewAccount:   {},
	},
	domain.RoleSubAdmin: {
		ActionCreateAccount: {},
		ActionListAccounts:  {},
		ActionViewAccount:   {},
	},
	domain.RoleAdmin: {
		ActionCreateAccount: {},
		ActionListAccounts:  {},
		ActionViewAccount:   {},
	},
}

// Can reports whether role may perform action. Unknown pairs are denied.
func Can(role domain.Role, action Action) bool {
	actions, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// Authorize returns a domain error when account may not perform action.
func Authorize(account *domain.Account, action Action) error {
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !Can(account.Role, action) {
		return apperrors.NewForbidden("insufficient permissions")
	}
	return nil
}
