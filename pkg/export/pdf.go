package export

import (
	"bytes"
	"fmt"
	"time"

	"ai-writing-be/pkg/richtext"

	"github.com/go-pdf/fpdf"
)

// fixedDate keeps PDF metadata stable across renders.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	pdfTitleSize = 20
	pdfBodySize  = 12
	pdfLineMM    = 6
)

func PDF(title, content string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(fixedDate)
	pdf.SetModificationDate(fixedDate)
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.MultiCell(0, 10, tr(title), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", pdfBodySize)
	for _, line := range richtext.Lines(content) {
		if line == "" {
			pdf.Ln(pdfLineMM)
			continue
		}
		pdf.MultiCell(0, pdfLineMM, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
