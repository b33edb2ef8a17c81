package licenseexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ticketscan/internal/domain"
	"ticketscan/internal/licenseexport"
)

func TestWriter_WritesLicenses(t *testing.T) {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	used := created.Add(48 * time.Hour)
	device := "device-123"
	now := created.Add(72 * time.Hour)

	views := []domain.LicenseView{
		domain.NewLicenseView(domain.License{Code: "AB12CD34", DurationDays: 30, CreatedAt: created}, now),
		domain.NewLicenseView(domain.License{Code: "EF56AB78", DurationDays: 1, CreatedAt: created, UsedAt: &used, DeviceID: &device}, now),
	}

	w, err := licenseexport.NewWriter()
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteLicenses(views))

	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(licenseexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Code", "Duration (days)", "Created At", "Expires At", "Status", "Device ID", "Used At"}, rows[0])
	assert.Equal(t, "AB12CD34", rows[1][0])
	assert.Equal(t, "30", rows[1][1])
	assert.Equal(t, "2024-04-01T09:00:00Z", rows[1][2])
	assert.Equal(t, "2024-05-01T09:00:00Z", rows[1][3])
	assert.Equal(t, "active", rows[1][4])

	assert.Equal(t, "EF56AB78", rows[2][0])
	assert.Equal(t, "expired", rows[2][4])
	assert.Equal(t, "device-123", rows[2][5])
	assert.Equal(t, "2024-04-03T09:00:00Z", rows[2][6])
}

func TestBuildFilename(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("X", -3*3600))
	assert.Equal(t, "licenses_2025-01-01.xlsx", licenseexport.BuildFilename(ts))
}
