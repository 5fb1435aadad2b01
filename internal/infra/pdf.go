package infra

// pdf.go — report rendering with go-pdf/fpdf.
// Two documents are produced:
//   - GenerateReportPDF: A4 landscape table of report rows (import or sales)
//   - GenerateTransactionPDF: single-transaction voucher with its line items

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReportPDF writes a tabular report to storagePath and returns the
// absolute file path. title distinguishes "Import Report" from "Sales Report".
func GenerateReportPDF(title string, rows []repository.ReportRow, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("report_%s.pdf", time.Now().Format("2006_01_02_15_04_05"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	type col struct {
		label string
		w     float64
		align string
	}
	cols := []col{
		{"Date", 0.09, "L"},
		{"Staff", 0.15, "L"},
		{"Counterparty", 0.17, "L"},
		{"Product", 0.23, "L"},
		{"Qty", 0.07, "R"},
		{"Unit Price", 0.09, "R"},
		{"Amount", 0.10, "R"},
		{"Txn Total", 0.10, "R"},
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, c := range cols {
		pdf.CellFormat(contentW*c.w, 6, c.label, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	grand := decimal.Zero
	for _, row := range rows {
		cells := []string{
			row.TxnDate.Format("2006-01-02"),
			truncate(row.StaffName, 24),
			truncate(row.CounterpartyName, 26),
			truncate(row.ProductName, 36),
			fmt.Sprintf("%d", row.Qty),
			row.UnitPrice.StringFixed(2),
			row.Amount.StringFixed(2),
			row.TransactionTotal.StringFixed(2),
		}
		for i, c := range cols {
			pdf.CellFormat(contentW*c.w, 5, cells[i], "", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
		grand = grand.Add(row.Amount)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.90, 6, "Total amount:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.10, 6, grand.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateTransactionPDF renders a single import/order voucher.
func GenerateTransactionPDF(t *model.StockTransaction, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.pdf", t.Kind, t.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	title := "Import Voucher"
	partnerLabel := "Supplier"
	if t.Kind == model.KindOrder {
		title = "Sales Invoice"
		partnerLabel = "Customer"
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+t.TxnDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, partnerLabel+": "+t.CounterpartyName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Staff: "+t.StaffName, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	col1 := contentW * 0.48
	col2 := contentW * 0.12
	col3 := contentW * 0.18
	col4 := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range t.Details {
		pdf.CellFormat(col1, 5, truncate(d.ProductName, 30), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Qty), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, d.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, d.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, t.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
