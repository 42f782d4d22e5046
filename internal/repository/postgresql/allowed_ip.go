package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

type allowedIPRepository struct {
	db *database.DB
}

func NewAllowedIPRepository(db *database.DB) allowedip.AllowedIPRepository {
	return &allowedIPRepository{db: db}
}

// Create implements allowedip.AllowedIPRepository.
func (a *allowedIPRepository) Create(ctx context.Context, ip allowedip.AllowedIP) (allowedip.AllowedIP, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO allowed_ips (address, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, ip.Address, ip.Description).Scan(&ip.ID, &ip.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return allowedip.AllowedIP{}, allowedip.ErrAddressExists
		}
		return allowedip.AllowedIP{}, fmt.Errorf("failed to create allowed ip: %w", err)
	}

	return ip, nil
}

// List implements allowedip.AllowedIPRepository.
func (a *allowedIPRepository) List(ctx context.Context) ([]allowedip.AllowedIP, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, address, description, created_at
		FROM allowed_ips
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowed ips: %w", err)
	}
	defer rows.Close()

	var ips []allowedip.AllowedIP
	for rows.Next() {
		var ip allowedip.AllowedIP
		if err := rows.Scan(&ip.ID, &ip.Address, &ip.Description, &ip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allowed ip: %w", err)
		}
		ips = append(ips, ip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allowed ips: %w", err)
	}

	return ips, nil
}

// Delete implements allowedip.AllowedIPRepository.
func (a *allowedIPRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM allowed_ips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allowed ip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return allowedip.ErrAllowedIPNotFound
	}

	return nil
}
