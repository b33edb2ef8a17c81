package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"ticketscan/internal/domain"
	"ticketscan/internal/port"
)

type licenseRepo struct {
	db *sqlx.DB
}

// NewLicenseRepo creates a SQL-backed LicenseRepository. Queries are written
// with ? placeholders and rebound for the connected driver.
func NewLicenseRepo(db *sqlx.DB) port.LicenseRepository {
	return &licenseRepo{db: db}
}

const licenseColumns = "code, duration_days, created_at, used_at, device_id"

func (r *licenseRepo) CreateBatch(ctx context.Context, licenses []domain.License) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("licenseRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`INSERT INTO licenses (` + licenseColumns + `) VALUES (?, ?, ?, ?, ?)`)
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("licenseRepo.CreateBatch prepare: %w", err)
	}
	defer stmt.Close()

	for i := range licenses {
		l := &licenses[i]
		l.CreatedAt = l.CreatedAt.UTC()
		if _, err := stmt.ExecContext(ctx, l.Code, l.DurationDays, l.CreatedAt, l.UsedAt, l.DeviceID); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateLicenseCode
			}
			return fmt.Errorf("licenseRepo.CreateBatch insert %s: %w", l.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("licenseRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *licenseRepo) GetByCode(ctx context.Context, code string) (*domain.License, error) {
	var l domain.License
	err := r.db.GetContext(ctx, &l,
		r.db.Rebind("SELECT "+licenseColumns+" FROM licenses WHERE code = ?"), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("licenseRepo.GetByCode: %w", err)
	}
	return &l, nil
}

func (r *licenseRepo) List(ctx context.Context, offset, limit int) ([]domain.License, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM licenses"); err != nil {
		return nil, 0, fmt.Errorf("licenseRepo.List count: %w", err)
	}

	var licenses []domain.License
	err := r.db.SelectContext(ctx, &licenses,
		r.db.Rebind("SELECT "+licenseColumns+" FROM licenses ORDER BY created_at DESC, code LIMIT ? OFFSET ?"),
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("licenseRepo.List: %w", err)
	}
	return licenses, total, nil
}

func (r *licenseRepo) BindDevice(ctx context.Context, code, deviceID string, usedAt time.Time) error {
	query := r.db.Rebind(`UPDATE licenses
		SET device_id = ?, used_at = COALESCE(used_at, ?)
		WHERE code = ? AND (device_id IS NULL OR device_id = ?)`)

	result, err := r.db.ExecContext(ctx, query, deviceID, usedAt.UTC(), code, deviceID)
	if err != nil {
		return fmt.Errorf("licenseRepo.BindDevice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("licenseRepo.BindDevice rows: %w", err)
	}
	if rows > 0 {
		return nil
	}

	if _, err := r.GetByCode(ctx, code); err != nil {
		return err
	}
	return domain.ErrLicenseBound
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
