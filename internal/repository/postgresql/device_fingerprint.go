package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepository{db: db}
}

// Create implements device.DeviceRepository.
func (d *deviceRepository) Create(ctx context.Context, fp device.DeviceFingerprint) (device.DeviceFingerprint, error) {
	q := GetQuerier(ctx, d.db)

	// ON CONFLICT keeps a re-submitted fingerprint idempotent while the
	// device waits in the approval queue.
	query := `
		INSERT INTO device_fingerprints (user_id, fingerprint, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, fingerprint) DO UPDATE SET updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, fp.UserID, fp.Fingerprint, fp.Status).
		Scan(&fp.ID, &fp.Status, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		return device.DeviceFingerprint{}, fmt.Errorf("failed to create device fingerprint: %w", err)
	}

	return fp, nil
}

// GetByID implements device.DeviceRepository.
func (d *deviceRepository) GetByID(ctx context.Context, id string) (device.DeviceFingerprint, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT d.id, d.user_id, d.fingerprint, d.status, d.created_at, d.updated_at, u.name AS user_name
		FROM device_fingerprints d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`

	var fp device.DeviceFingerprint
	err := q.QueryRow(ctx, query, id).Scan(
		&fp.ID, &fp.UserID, &fp.Fingerprint, &fp.Status, &fp.CreatedAt, &fp.UpdatedAt, &fp.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.DeviceFingerprint{}, device.ErrDeviceNotFound
		}
		return device.DeviceFingerprint{}, fmt.Errorf("failed to get device fingerprint: %w", err)
	}

	return fp, nil
}

// GetByUserAndFingerprint implements device.DeviceRepository.
func (d *deviceRepository) GetByUserAndFingerprint(ctx context.Context, userID string, fingerprint string) (*device.DeviceFingerprint, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT d.id, d.user_id, d.fingerprint, d.status, d.created_at, d.updated_at, u.name AS user_name
		FROM device_fingerprints d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1 AND d.fingerprint = $2
	`

	var fp device.DeviceFingerprint
	err := q.QueryRow(ctx, query, userID, fingerprint).Scan(
		&fp.ID, &fp.UserID, &fp.Fingerprint, &fp.Status, &fp.CreatedAt, &fp.UpdatedAt, &fp.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device fingerprint: %w", err)
	}

	return &fp, nil
}

// List implements device.DeviceRepository.
func (d *deviceRepository) List(ctx context.Context, filter device.ListDevicesFilter) ([]device.DeviceFingerprint, error) {
	q := GetQuerier(ctx, d.db)

	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("d.user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", len(args)))
	}

	query := `
		SELECT d.id, d.user_id, d.fingerprint, d.status, d.created_at, d.updated_at, u.name AS user_name
		FROM device_fingerprints d
		JOIN users u ON u.id = d.user_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY d.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list device fingerprints: %w", err)
	}
	defer rows.Close()

	var fps []device.DeviceFingerprint
	for rows.Next() {
		var fp device.DeviceFingerprint
		if err := rows.Scan(
			&fp.ID, &fp.UserID, &fp.Fingerprint, &fp.Status, &fp.CreatedAt, &fp.UpdatedAt, &fp.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan device fingerprint: %w", err)
		}
		fps = append(fps, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate device fingerprints: %w", err)
	}

	return fps, nil
}

// UpdateStatus implements device.DeviceRepository.
func (d *deviceRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	q := GetQuerier(ctx, d.db)

	query := `
		UPDATE device_fingerprints
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update device fingerprint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrDeviceNotFound
	}

	return nil
}

// Delete implements device.DeviceRepository.
func (d *deviceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, d.db)

	tag, err := q.Exec(ctx, `DELETE FROM device_fingerprints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device fingerprint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrDeviceNotFound
	}

	return nil
}
