// Package repotest provides in-memory repositories that mirror the Postgres
// implementations' observable behavior: pgx.ErrNoRows for missing rows and
// unique violations carrying the real constraint names.
package repotest

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/attendx/hrms-service/internal/domain"
	"github.com/attendx/hrms-service/internal/repository"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// Accounts is an in-memory repository.AccountRepository.
type Accounts struct {
	mu            sync.Mutex
	rows          []domain.Account
	bootstrapDone bool

	// CountOverride, when set, is returned by Count instead of the row count.
	CountOverride *int64
}

// NewAccounts returns an empty directory.
func NewAccounts() *Accounts {
	return &Accounts{}
}

var _ repository.AccountRepository = (*Accounts)(nil)

func (m *Accounts) insert(account *domain.Account) error {
	for _, row := range m.rows {
		if row.Email == account.Email {
			return uniqueViolation(repository.ConstraintAccountEmail)
		}
	}
	account.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *account)
	return nil
}

func (m *Accounts) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(account)
}

func (m *Accounts) CreateBootstrapAdmin(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bootstrapDone {
		return repository.ErrBootstrapTaken
	}
	if err := m.insert(account); err != nil {
		return err
	}
	m.bootstrapDone = true
	return nil
}

// BootstrapDone reports whether the bootstrap marker was written.
func (m *Accounts) BootstrapDone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bootstrapDone
}

func (m *Accounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			acc := row
			return &acc, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Accounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == email {
			acc := row
			return &acc, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Accounts) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountOverride != nil {
		return *m.CountOverride, nil
	}
	return int64(len(m.rows)), nil
}

func (m *Accounts) List(_ context.Context, filter repository.AccountFilter) ([]domain.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []domain.Account{}
	for _, row := range m.rows {
		if filter.Role != nil && row.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		matched = append(matched, row)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []domain.Account{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// Departments is an in-memory repository.DepartmentRepository.
type Departments struct {
	mu   sync.Mutex
	rows []domain.Department
}

// NewDepartments returns an empty repository.
func NewDepartments() *Departments {
	return &Departments{}
}

var _ repository.DepartmentRepository = (*Departments)(nil)

func (m *Departments) create(dept *domain.Department) error {
	for _, row := range m.rows {
		if row.Name == dept.Name {
			return uniqueViolation(repository.ConstraintDepartmentName)
		}
	}
	dept.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *dept)
	return nil
}

func (m *Departments) Create(_ context.Context, dept *domain.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(dept)
}

func (m *Departments) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			d := row
			return &d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Departments) GetByName(_ context.Context, name string) (*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Name == name {
			d := row
			return &d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Departments) List(context.Context) ([]domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Department{}, m.rows...), nil
}

func (m *Departments) SeedNames(_ context.Context, names []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := 0
	for _, name := range names {
		if err := m.create(&domain.Department{Name: name}); err != nil {
			if repository.IsUniqueViolation(err, "") {
				continue
			}
			return 0, err
		}
		created++
	}
	return created, nil
}

// Offices is an in-memory repository.OfficeRepository.
type Offices struct {
	mu   sync.Mutex
	rows []domain.Office
}

// NewOffices returns an empty repository.
func NewOffices() *Offices {
	return &Offices{}
}

var _ repository.OfficeRepository = (*Offices)(nil)

func (m *Offices) Create(_ context.Context, office *domain.Office) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	office.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *office)
	return nil
}

func (m *Offices) GetByID(_ context.Context, id int64) (*domain.Office, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			o := row
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Offices) List(context.Context) ([]domain.Office, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Office{}, m.rows...), nil
}
