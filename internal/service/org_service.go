package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/events"
	"github.com/attendx/hrms-service/internal/repository"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

// OrgService manages departments and offices.
type OrgService struct {
	departments repository.DepartmentRepository
	offices     repository.OfficeRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// OrgDependencies encapsulates repositories required for org management.
type OrgDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	OfficeRepo     repository.OfficeRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// CreateOfficeInput carries office fields.
type CreateOfficeInput struct {
	Name    string
	City    string
	Country string
	Address *string
}

// NewOrgService constructs the service.
func NewOrgService(deps OrgDependencies) *OrgService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgService{
		departments: deps.DepartmentRepo,
		offices:     deps.OfficeRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// CreateDepartment adds a department; names are unique.
func (s *OrgService) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	if _, err := s.departments.GetByName(ctx, name); err == nil {
		return nil, departmentExists(name)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	dept := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, dept); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintDepartmentName) {
			return nil, departmentExists(name)
		}
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventDepartmentCreated, strconv.FormatInt(dept.ID, 10), nil,
		events.DepartmentCreatedPayload{Name: dept.Name}))
	return dept, nil
}

// GetDepartment loads a department by id.
func (s *OrgService) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "department", id)
	}
	return dept, nil
}

// ListDepartments returns every department and the count.
func (s *OrgService) ListDepartments(ctx context.Context) ([]domain.Department, int, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return depts, len(depts), nil
}

// CreateOffice adds an office.
func (s *OrgService) CreateOffice(ctx context.Context, in CreateOfficeInput) (*domain.Office, error) {
	office := &domain.Office{
		Name:    in.Name,
		City:    in.City,
		Country: in.Country,
		Address: in.Address,
	}
	if err := s.offices.Create(ctx, office); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOfficeCreated, strconv.FormatInt(office.ID, 10), nil,
		events.OfficeCreatedPayload{Name: office.Name, City: office.City, Country: office.Country}))
	return office, nil
}

// GetOffice loads an office by id.
func (s *OrgService) GetOffice(ctx context.Context, id int64) (*domain.Office, error) {
	office, err := s.offices.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "office", id)
	}
	return office, nil
}

// ListOffices returns every office and the count.
func (s *OrgService) ListOffices(ctx context.Context) ([]domain.Office, int, error) {
	offices, err := s.offices.List(ctx)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return offices, len(offices), nil
}

func departmentExists(name string) error {
	return apperrors.NewConflict(fmt.Sprintf("department '%s' already exists", name), map[string]any{"department_name": name})
}

func notFound(err error, resource string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
