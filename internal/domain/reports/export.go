package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayout is the cell format for dates in exported workbooks.
const dateLayout = "2006-01-02"

// sheetWriter accumulates rows on one worksheet.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func newSheetWriter(f *excelize.File, sheet string, headers []string, widths []float64) *sheetWriter {
	w := &sheetWriter{f: f, sheet: sheet}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return w
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			w.err = err
			return w
		}
	}

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	w.writeRow(cells...)
	return w
}

func (w *sheetWriter) writeRow(cells ...any) {
	if w.err != nil {
		return
	}
	w.row++
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = err
			return
		}
	}
}

// serialize finishes the workbook into xlsx bytes.
func serialize(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportClients(rows []ClientRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Clients"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	w := newSheetWriter(f, sheet,
		[]string{"Name", "Email", "Phone", "Projects"},
		[]float64{30, 35, 18, 12})
	for _, r := range rows {
		w.writeRow(r.Name, r.Email, r.Phone, r.ProjectCount)
	}
	if w.err != nil {
		return nil, w.err
	}

	return serialize(f)
}

func exportProjects(rows []ProjectRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Projects"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	w := newSheetWriter(f, sheet,
		[]string{"Name", "Client", "Status", "Total Value", "Deadline"},
		[]float64{30, 30, 16, 14, 20})
	for _, r := range rows {
		w.writeRow(r.Name, r.ClientName, r.Status, r.TotalValue.InexactFloat64(), r.Deadline)
	}
	if w.err != nil {
		return nil, w.err
	}

	return serialize(f)
}

func exportStock(report *StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	w := newSheetWriter(f, sheet,
		[]string{"Item", "Category", "Unit", "Quantity", "Threshold", "Low", "Unit Cost", "Valuation"},
		[]float64{30, 20, 8, 12, 12, 8, 12, 14})
	for _, r := range report.Rows {
		low := ""
		if r.Low {
			low = "LOW"
		}
		w.writeRow(r.Name, r.CategoryName, r.Unit,
			r.Quantity.InexactFloat64(), r.Threshold.InexactFloat64(), low,
			r.UnitCost.InexactFloat64(), r.Valuation.InexactFloat64())
	}
	w.writeRow()
	w.writeRow("Total", "", "", "", "", "", "", report.TotalValuation.InexactFloat64())
	if w.err != nil {
		return nil, w.err
	}

	return serialize(f)
}

// exportFinance writes two worksheets, one per ledger side.
func exportFinance(report *FinanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "Payables"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Receivables"); err != nil {
		return nil, err
	}

	pw := newSheetWriter(f, "Payables",
		[]string{"Description", "Amount", "Due Date", "Status", "Settled At"},
		[]float64{40, 14, 14, 12, 20})
	for _, r := range report.Payables {
		pw.writeRow(r.Description, r.Amount.InexactFloat64(), r.DueDate.Format(dateLayout), r.Status, settledLabel(r.SettledAt))
	}
	pw.writeRow()
	pw.writeRow("Total", report.TotalPayable.InexactFloat64())
	if pw.err != nil {
		return nil, pw.err
	}

	rw := newSheetWriter(f, "Receivables",
		[]string{"Description", "Amount", "Due Date", "Status", "Settled At", "Project"},
		[]float64{40, 14, 14, 12, 20, 30})
	for _, r := range report.Receivables {
		rw.writeRow(r.Description, r.Amount.InexactFloat64(), r.DueDate.Format(dateLayout), r.Status, settledLabel(r.SettledAt), r.ProjectName)
	}
	rw.writeRow()
	rw.writeRow("Total", report.TotalReceivable.InexactFloat64())
	if rw.err != nil {
		return nil, rw.err
	}

	return serialize(f)
}

func settledLabel(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
