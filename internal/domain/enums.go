package domain

// LicenseStatus is the derived lifecycle state of a license.
type LicenseStatus string

const (
	LicenseStatusActive       LicenseStatus = "active"
	LicenseStatusUsed         LicenseStatus = "used"
	LicenseStatusExpired      LicenseStatus = "expired"
	LicenseStatusNotYetActive LicenseStatus = "not-yet-active"
)

// ImageQuality values the model is asked to choose from.
const (
	ImageQualityGood = "Good quality image"
	ImageQualityPoor = "Poor quality image"
)
