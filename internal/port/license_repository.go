package port

import (
	"context"
	"time"

	"ticketscan/internal/domain"
)

// LicenseRepository defines the contract for license persistence.
type LicenseRepository interface {
	// CreateBatch inserts all licenses or none of them.
	CreateBatch(ctx context.Context, licenses []domain.License) error
	GetByCode(ctx context.Context, code string) (*domain.License, error)
	List(ctx context.Context, offset, limit int) ([]domain.License, int, error)
	// BindDevice records the first activation of code. It succeeds when the
	// license is unbound or already bound to deviceID, and returns
	// domain.ErrLicenseBound when another device holds it.
	BindDevice(ctx context.Context, code, deviceID string, usedAt time.Time) error
}
