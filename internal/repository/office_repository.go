package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendx/hrms-service/internal/domain"
)

// OfficeRepository manages office persistence.
type OfficeRepository interface {
	Create(ctx context.Context, office *domain.Office) error
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
	List(ctx context.Context) ([]domain.Office, error)
}

type officeRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeRepository builds the repository.
func NewOfficeRepository(pool *pgxpool.Pool) OfficeRepository {
	return &officeRepository{pool: pool}
}

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	const query = `
        INSERT INTO offices (office_name, city, country, address)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		office.Name,
		office.City,
		office.Country,
		office.Address,
	).Scan(&office.ID)
}

func (r *officeRepository) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	const query = `SELECT id, office_name, city, country, address FROM offices WHERE id=$1`
	var office domain.Office
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&office.ID,
		&office.Name,
		&office.City,
		&office.Country,
		&office.Address,
	); err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) List(ctx context.Context) ([]domain.Office, error) {
	const query = `SELECT id, office_name, city, country, address FROM offices ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Office{}
	for rows.Next() {
		var office domain.Office
		if err := rows.Scan(&office.ID, &office.Name, &office.City, &office.Country, &office.Address); err != nil {
			return nil, err
		}
		result = append(result, office)
	}
	return result, rows.Err()
}
