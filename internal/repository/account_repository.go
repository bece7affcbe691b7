package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendx/hrms-service/internal/domain"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Role   *domain.Role
	Status *domain.AccountStatus
	Limit  int
	Offset int
}

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateBootstrapAdmin(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filter AccountFilter) ([]domain.Account, int64, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, name, email, password_hash, role, status, department_id, office_id, manager_id,
        date_of_joining, date_of_birth, created_at, updated_at`

const insertAccount = `
        INSERT INTO users (name, email, password_hash, role, status, department_id, office_id, manager_id,
                           date_of_joining, date_of_birth)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertAccountRow(ctx context.Context, q querier, account *domain.Account) error {
	return q.QueryRow(ctx, insertAccount,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Status,
		account.DepartmentID,
		account.OfficeID,
		account.ManagerID,
		account.DateOfJoining,
		account.DateOfBirth,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	return insertAccountRow(ctx, r.pool, account)
}

// CreateBootstrapAdmin inserts the first account and the bootstrap marker in one transaction.
// A concurrent winner surfaces as ErrBootstrapTaken.
func (r *accountRepository) CreateBootstrapAdmin(ctx context.Context, account *domain.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertAccountRow(ctx, tx, account); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO bootstrap_marker (id, account_id) VALUES (1, $1)`, account.ID); err != nil {
		if IsUniqueViolation(err, ConstraintBootstrapMarker) {
			return ErrBootstrapTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]domain.Account, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	where := " WHERE " + strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + accountColumns + ` FROM users` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *account)
	}
	return result, total, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Status,
		&account.DepartmentID,
		&account.OfficeID,
		&account.ManagerID,
		&account.DateOfJoining,
		&account.DateOfBirth,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
