package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticketscan/internal/config"
	"ticketscan/internal/domain"
	"ticketscan/internal/licenseexport"
	"ticketscan/internal/port"
)

const (
	codeAttempts   = 3
	exportPageSize = 500
)

// GenerateLicensesInput is the DTO for license batch creation.
type GenerateLicensesInput struct {
	Count        int `json:"count" binding:"required"`
	DurationDays int `json:"durationDays" binding:"required"`
}

// ActivateInput is the DTO for license activation requests.
type ActivateInput struct {
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
}

// ActivationResult reports whether a device may use the app with a code.
type ActivationResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// LicenseService defines the license issuance and activation contract.
type LicenseService interface {
	Generate(ctx context.Context, input GenerateLicensesInput) ([]domain.License, error)
	Activate(ctx context.Context, input ActivateInput) (*ActivationResult, error)
	List(ctx context.Context, offset, limit int) ([]domain.LicenseView, int, error)
	Export(ctx context.Context, w io.Writer) error
}

type licenseService struct {
	repo     port.LicenseRepository
	maxBatch int
	log      *zap.Logger
	now      func() time.Time
}

// NewLicenseService creates a new LicenseService implementation.
func NewLicenseService(repo port.LicenseRepository, cfg config.LicenseConfig, log *zap.Logger) LicenseService {
	if log == nil {
		log = zap.NewNop()
	}
	return &licenseService{
		repo:     repo,
		maxBatch: cfg.MaxBatch,
		log:      log,
		now:      time.Now,
	}
}

func (s *licenseService) Generate(ctx context.Context, input GenerateLicensesInput) ([]domain.License, error) {
	if input.Count <= 0 || input.DurationDays <= 0 {
		return nil, domain.ErrInvalidBatch
	}
	if s.maxBatch > 0 && input.Count > s.maxBatch {
		return nil, domain.ErrBatchTooLarge
	}

	var lastErr error
	for attempt := 1; attempt <= codeAttempts; attempt++ {
		licenses := newLicenses(input.Count, input.DurationDays, s.now().UTC())
		err := s.repo.CreateBatch(ctx, licenses)
		if err == nil {
			s.log.Info("licenses generated",
				zap.Int("count", len(licenses)),
				zap.Int("duration_days", input.DurationDays),
			)
			return licenses, nil
		}
		if !errors.Is(err, domain.ErrDuplicateLicenseCode) {
			return nil, fmt.Errorf("license.Generate: %w", err)
		}
		s.log.Warn("license code collision, regenerating batch", zap.Int("attempt", attempt))
		lastErr = err
	}
	return nil, fmt.Errorf("license.Generate: %w", lastErr)
}

// newLicenses builds count licenses with distinct codes.
func newLicenses(count, durationDays int, createdAt time.Time) []domain.License {
	seen := make(map[string]struct{}, count)
	out := make([]domain.License, 0, count)
	for len(out) < count {
		code := newCode()
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, domain.License{
			Code:         code,
			DurationDays: durationDays,
			CreatedAt:    createdAt,
		})
	}
	return out
}

// newCode returns an 8 character uppercase hex code.
func newCode() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func (s *licenseService) Activate(ctx context.Context, input ActivateInput) (*ActivationResult, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	deviceID := strings.TrimSpace(input.DeviceID)
	if code == "" || deviceID == "" {
		return nil, domain.ErrInvalidActivation
	}

	lic, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("license.Activate: %w", err)
	}

	now := s.now()
	expiresAt := lic.ExpiresAt()
	switch lic.StatusAt(now) {
	case domain.LicenseStatusNotYetActive:
		return &ActivationResult{Success: false, Message: "code not yet active"}, nil
	case domain.LicenseStatusExpired:
		return &ActivationResult{Success: false, Message: domain.ErrLicenseExpired.Error(), ExpiresAt: &expiresAt}, nil
	}
	if lic.IsBound() && *lic.DeviceID != deviceID {
		return &ActivationResult{Success: false, Message: domain.ErrLicenseBound.Error()}, nil
	}

	if err := s.repo.BindDevice(ctx, code, deviceID, now.UTC()); err != nil {
		switch {
		case errors.Is(err, domain.ErrLicenseBound):
			return &ActivationResult{Success: false, Message: domain.ErrLicenseBound.Error()}, nil
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("license.Activate: %w", err)
	}

	msg := "code activated"
	if lic.IsBound() {
		msg = "code valid"
	}
	s.log.Info("license activated", zap.String("code", code), zap.Bool("first_use", !lic.IsBound()))
	return &ActivationResult{Success: true, Message: msg, ExpiresAt: &expiresAt}, nil
}

func (s *licenseService) List(ctx context.Context, offset, limit int) ([]domain.LicenseView, int, error) {
	licenses, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("license.List: %w", err)
	}
	now := s.now()
	views := make([]domain.LicenseView, len(licenses))
	for i := range licenses {
		views[i] = domain.NewLicenseView(licenses[i], now)
	}
	return views, total, nil
}

func (s *licenseService) Export(ctx context.Context, w io.Writer) error {
	xw, err := licenseexport.NewWriter()
	if err != nil {
		return fmt.Errorf("license.Export: %w", err)
	}
	defer func() { _ = xw.Close() }()

	if err := xw.WriteHeader(); err != nil {
		return fmt.Errorf("license.Export: %w", err)
	}
	for offset := 0; ; offset += exportPageSize {
		views, total, err := s.List(ctx, offset, exportPageSize)
		if err != nil {
			return fmt.Errorf("license.Export: %w", err)
		}
		if err := xw.WriteLicenses(views); err != nil {
			return fmt.Errorf("license.Export: %w", err)
		}
		if len(views) == 0 || offset+len(views) >= total {
			break
		}
	}
	if _, err := xw.WriteTo(w); err != nil {
		return fmt.Errorf("license.Export: %w", err)
	}
	return nil
}
