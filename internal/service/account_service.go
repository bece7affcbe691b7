package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/attendx/hrms-service/internal/auth"
	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/events"
	"github.com/attendx/hrms-service/internal/observability"
	"github.com/attendx/hrms-service/internal/repository"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// AccountService manages the account directory.
type AccountService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	offices     repository.OfficeRepository
	hasher      *auth.Hasher
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// AccountDependencies encapsulates collaborators for the account service.
type AccountDependencies struct {
	AccountRepo    repository.AccountRepository
	DepartmentRepo repository.DepartmentRepository
	OfficeRepo     repository.OfficeRepository
	Hasher         *auth.Hasher
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// CreateAccountInput carries a validated creation request. Zero reference ids mean absent.
type CreateAccountInput struct {
	Name          string
	Email         string
	Password      string
	Role          domain.Role
	Status        domain.AccountStatus
	DepartmentID  *int64
	OfficeID      *int64
	ManagerID     *int64
	DateOfJoining *time.Time
	DateOfBirth   *time.Time
}

// ListAccountsInput define listing parameters.
type ListAccountsInput struct {
	Role   *domain.Role
	Status *domain.AccountStatus
	Skip   int
	Limit  int
}

// AccountPage is one page of accounts plus the filtered total.
type AccountPage struct {
	Accounts []domain.Account
	Total    int64
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts:    deps.AccountRepo,
		departments: deps.DepartmentRepo,
		offices:     deps.OfficeRepo,
		hasher:      deps.Hasher,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
	}
}

// RequireCreator rejects an anonymous caller once the directory holds an account. It lets
// the HTTP layer answer 401 before looking at the request body.
func (s *AccountService) RequireCreator(ctx context.Context, actor *domain.Account) error {
	if actor != nil {
		return nil
	}
	existing, err := s.accounts.Count(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if existing > 0 {
		return apperrors.NewUnauthorized("authentication required")
	}
	return nil
}

// CreateAccount creates an account. While the directory is empty no actor is required, but
// the account must be an admin; afterwards the actor must hold create_account.
func (s *AccountService) CreateAccount(ctx context.Context, actor *domain.Account, in CreateAccountInput) (*domain.Account, error) {
	if _, err := domain.ParseRole(string(in.Role)); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"role": in.Role})
	}

	existing, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	bootstrap := existing == 0

	if bootstrap {
		if in.Role != domain.RoleAdmin {
			return nil, apperrors.NewValidationError("the first user must have the admin role", map[string]any{"role": in.Role})
		}
	} else if err := auth.Authorize(actor, auth.ActionCreateAccount); err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = domain.AccountStatusActive
	}
	if _, err := domain.ParseStatus(string(in.Status)); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	in.DepartmentID = normalizeRef(in.DepartmentID)
	in.OfficeID = normalizeRef(in.OfficeID)
	in.ManagerID = normalizeRef(in.ManagerID)

	if _, err := s.accounts.GetByEmail(ctx, in.Email); err == nil {
		return nil, emailTaken(in.Email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          in.Role,
		Status:        in.Status,
		DepartmentID:  in.DepartmentID,
		OfficeID:      in.OfficeID,
		ManagerID:     in.ManagerID,
		DateOfJoining: in.DateOfJoining,
		DateOfBirth:   in.DateOfBirth,
	}

	if bootstrap {
		err = s.accounts.CreateBootstrapAdmin(ctx, account)
	} else {
		err = s.accounts.Create(ctx, account)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBootstrapTaken):
			return nil, apperrors.NewUnauthorized("authentication required")
		case repository.IsUniqueViolation(err, repository.ConstraintAccountEmail):
			return nil, emailTaken(in.Email)
		}
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordAccountCreated(string(account.Role))
	s.logger.Info("account created",
		zap.Int64("account_id", account.ID),
		zap.String("role", string(account.Role)),
		zap.Bool("bootstrap", bootstrap))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountCreated, strconv.FormatInt(account.ID, 10), actor,
		events.AccountCreatedPayload{Email: account.Email, Role: account.Role, Bootstrap: bootstrap}))

	return account, nil
}

func (s *AccountService) checkReferences(ctx context.Context, in CreateAccountInput) error {
	if in.ManagerID != nil {
		if _, err := s.accounts.GetByID(ctx, *in.ManagerID); err != nil {
			return referenceError(err, "manager", *in.ManagerID)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *in.DepartmentID); err != nil {
			return referenceError(err, "department", *in.DepartmentID)
		}
	}
	if in.OfficeID != nil {
		if _, err := s.offices.GetByID(ctx, *in.OfficeID); err != nil {
			return referenceError(err, "office", *in.OfficeID)
		}
	}
	return nil
}

// ListAccounts returns one page of accounts. Requires list_accounts.
func (s *AccountService) ListAccounts(ctx context.Context, actor *domain.Account, in ListAccountsInput) (*AccountPage, error) {
	if err := auth.Authorize(actor, auth.ActionListAccounts); err != nil {
		return nil, err
	}
	if in.Skip < 0 {
		return nil, apperrors.NewValidationError("skip must be greater than or equal to 0", map[string]any{"skip": in.Skip})
	}
	if in.Limit < 1 || in.Limit > MaxListLimit {
		return nil, apperrors.NewValidationError("limit must be between 1 and 1000", map[string]any{"limit": in.Limit})
	}

	accounts, total, err := s.accounts.List(ctx, repository.AccountFilter{
		Role:   in.Role,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Skip,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &AccountPage{Accounts: accounts, Total: total}, nil
}

// Me returns the caller's own account.
func (s *AccountService) Me(actor *domain.Account) (*domain.Account, error) {
	if err := auth.Authorize(actor, auth.ActionViewAccount); err != nil {
		return nil, err
	}
	return actor, nil
}

func normalizeRef(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func emailTaken(email string) error {
	return apperrors.NewConflict("email already registered", map[string]any{"email": email})
}

func referenceError(err error, resource string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewReferenceNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
