package export

import (
	"fmt"

	"kenkai/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// BookingsWorkbook builds an XLSX workbook with one row per booking, in the
// order the bookings are given.
func BookingsWorkbook(bookings []*models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{
		"ID", "Date", "Time", "Name", "Email", "Company", "Service",
		"Role", "Challenge", "Timeline", "Budget", "Created At",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID, b.Date, b.Time, b.Name, b.Email, b.Company, b.Service,
			b.Role, b.Challenge, b.Timeline, b.Budget,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
