package licenseexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"ticketscan/internal/domain"
)

// SheetName is the worksheet holding the license rows.
const SheetName = "Licenses"

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columns = []interface{}{
	"Code",
	"Duration (days)",
	"Created At",
	"Expires At",
	"Status",
	"Device ID",
	"Used At",
}

// Writer builds an XLSX workbook of licenses.
type Writer struct {
	f   *excelize.File
	row int
}

// NewWriter creates a workbook with an empty Licenses sheet.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("licenseexport.NewWriter: %w", err)
	}
	return &Writer{f: f, row: 1}, nil
}

// WriteHeader writes the header row and freezes it.
func (w *Writer) WriteHeader() error {
	if err := w.writeRow(columns); err != nil {
		return err
	}
	return w.f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// WriteLicenses appends one row per license.
func (w *Writer) WriteLicenses(views []domain.LicenseView) error {
	for i := range views {
		if err := w.writeRow(licenseToRow(&views[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo serialises the workbook.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.f.WriteTo(out)
}

// Close releases the workbook.
func (w *Writer) Close() error {
	return w.f.Close()
}

func (w *Writer) writeRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("licenseexport: row %d: %w", w.row, err)
	}
	w.row++
	return nil
}

func licenseToRow(v *domain.LicenseView) []interface{} {
	deviceID := ""
	if v.DeviceID != nil {
		deviceID = *v.DeviceID
	}
	usedAt := ""
	if v.UsedAt != nil {
		usedAt = formatTime(*v.UsedAt)
	}
	return []interface{}{
		v.Code,
		v.DurationDays,
		formatTime(v.CreatedAt),
		formatTime(v.ExpiresAt),
		string(v.Status),
		deviceID,
		usedAt,
	}
}

// BuildFilename returns the download filename for an export taken at t.
// Format: licenses_{YYYY-MM-DD}.xlsx
func BuildFilename(t time.Time) string {
	return fmt.Sprintf("licenses_%s.xlsx", t.UTC().Format("2006-01-02"))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
