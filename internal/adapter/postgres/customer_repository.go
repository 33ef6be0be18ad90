package postgres

import (
	"context"
	"errors"
	"fmt"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

type customerRepository struct {
	db DB
}

func NewCustomerRepository(db DB) interfaces.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Upsert(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, city, zip, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			zip = EXCLUDED.zip,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.Zip, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, city, zip, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var c domain.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.Zip, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return &c, nil
}
