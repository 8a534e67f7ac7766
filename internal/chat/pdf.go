package chat

import (
	"bytes"
	"fmt"
	"time"

	"kenkai/internal/models"

	"github.com/phpdave11/gofpdf"
)

// renderSummary assembles the project scope document from the captured
// answers.
func renderSummary(state *models.ChatState) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Project Scope Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Project Scope Summary")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, fmt.Sprintf("Session %s", state.SessionID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("January 2, 2006 15:04 MST")))
	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)

	for _, ft := range fieldTitles {
		answer := state.Get(ft.Field)
		if answer == "" {
			answer = "Not provided"
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, ft.Title)
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, answer, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, "Next step: book a consultation call to review this scope together.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
