package infra

// pdf.go renders printable receipts with go-pdf/fpdf.
// Transaction receipts list every item with quantity, unit value and line
// total; service receipts show the client, the job and its value.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"jandervidros/internal/model"
)

// Receipt renders PDFs branded with the business name.
type Receipt struct {
	business string
}

func NewReceipt(business string) *Receipt {
	return &Receipt{business: business}
}

// A5 portrait: wide enough for a four column item table
func (r *Receipt) newDoc(title string) (*fpdf.Fpdf, func(string) string, float64) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(r.business), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)
	return pdf, tr, contentW
}

// WriteTransaction renders a sale receipt or purchase note to w.
func (r *Receipt) WriteTransaction(w io.Writer, t *model.Transaction) error {
	title := "SALE RECEIPT"
	party := "Customer"
	if t.Type == model.TransactionPurchase {
		title = "PURCHASE NOTE"
		party = "Supplier"
	}
	pdf, tr, contentW := r.newDoc(title)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("N. %d", t.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+t.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr(party+": "+t.Counterparty), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	col1 := contentW * 0.46
	col2 := contentW * 0.14
	col3 := contentW * 0.20
	col4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range t.Items {
		desc := it.Description
		if len(desc) > 40 {
			desc = desc[:39] + "..."
		}
		pdf.CellFormat(col1, 5, tr(desc), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, it.Quantity.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+it.UnitValue.StringFixed(model.MoneyPlaces), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "R$ "+it.LineTotal.StringFixed(model.MoneyPlaces), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "R$ "+t.Total.StringFixed(model.MoneyPlaces), "T", 1, "R", false, 0, "")

	// signature line
	pdf.Ln(14)
	pageW, _ := pdf.GetPageSize()
	pdf.Line(pageW/2-30, pdf.GetY(), pageW/2+30, pdf.GetY())
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Signature", "", 1, "C", false, 0, "")

	footer(pdf, tr, contentW)
	return pdf.Output(w)
}

// WriteService renders a service order receipt to w.
func (r *Receipt) WriteService(w io.Writer, s *model.ServiceOrder) error {
	pdf, tr, contentW := r.newDoc("SERVICE RECEIPT")

	rows := [][2]string{
		{"N.", fmt.Sprintf("%d", s.ID)},
		{"Client", s.ClientName},
		{"Date", s.ServiceDate},
		{"Status", s.Status},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.25, 6, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.75, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	if strings.TrimSpace(s.Description) != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Description", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(s.Description), "", "L", false)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "TOTAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "R$ "+s.Value.StringFixed(model.MoneyPlaces), "T", 1, "R", false, 0, "")

	footer(pdf, tr, contentW)
	return pdf.Output(w)
}

func footer(pdf *fpdf.Fpdf, tr func(string) string, contentW float64) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, tr("Thank you for your business!"), "", 1, "C", false, 0, "")
}

// SaveTransaction writes the transaction receipt to storagePath and returns
// the file path. The directory is created if needed.
func (r *Receipt) SaveTransaction(storagePath string, t *model.Transaction) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storagePath, fmt.Sprintf("%s_%d.pdf", t.Type, t.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	if err := r.WriteTransaction(f, t); err != nil {
		f.Close()
		return "", fmt.Errorf("pdf: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}
