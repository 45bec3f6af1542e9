package infra

// pdf.go — PDF export for quotations using go-pdf/fpdf.
// Generates an A4 document with the client header, the item table and the
// final total. The output file is saved to storagePath/presupuesto_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"obranza/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePresupuestoPDF renders a quotation to PDF and returns its path.
func GeneratePresupuestoPDF(p *model.Presupuesto, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("presupuesto_%s.pdf", p.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Obranza", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Presupuesto", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, p.Titulo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if p.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+p.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, p.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.58 // description
	col2 := contentW * 0.14 // quantity
	col3 := contentW * 0.28 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range p.Items {
		desc := item.Descripcion
		if len(desc) > 60 {
			desc = desc[:59] + "…"
		}
		pdf.CellFormat(col1, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Cantidad.StringFixed(0), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+p.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if p.Observacion != nil && *p.Observacion != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, *p.Observacion, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
