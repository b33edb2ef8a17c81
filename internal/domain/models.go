package domain

import (
	"time"
)

// License is an activation code sold to end users of the scanning app.
type License struct {
	Code         string     `db:"code" json:"code"`
	DurationDays int        `db:"duration_days" json:"durationDays"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UsedAt       *time.Time `db:"used_at" json:"usedAt"`
	DeviceID     *string    `db:"device_id" json:"deviceId"`
}

// ExpiresAt returns the end of the license validity window.
func (l *License) ExpiresAt() time.Time {
	return l.CreatedAt.Add(time.Duration(l.DurationDays) * 24 * time.Hour)
}

// IsBound reports whether a device has claimed the license.
func (l *License) IsBound() bool {
	return l.DeviceID != nil && *l.DeviceID != ""
}

// StatusAt derives the license status at the given instant.
func (l *License) StatusAt(now time.Time) LicenseStatus {
	switch {
	case now.Before(l.CreatedAt):
		return LicenseStatusNotYetActive
	case now.After(l.ExpiresAt()):
		return LicenseStatusExpired
	case l.IsBound() || l.UsedAt != nil:
		return LicenseStatusUsed
	default:
		return LicenseStatusActive
	}
}

// LicenseView is the listing representation of a license with derived fields.
type LicenseView struct {
	License
	ExpiresAt time.Time     `json:"expiresAt"`
	Status    LicenseStatus `json:"status"`
}

// NewLicenseView builds the listing representation of l as of now.
func NewLicenseView(l License, now time.Time) LicenseView {
	return LicenseView{
		License:   l,
		ExpiresAt: l.ExpiresAt(),
		Status:    l.StatusAt(now),
	}
}
