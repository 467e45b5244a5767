package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

const defaultColWidth = 18

// XLSXWriter renders tables as Excel workbooks, one sheet per table.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger.With(slog.String("component", "xlsx_writer"))}
}

// Write builds a workbook from tables and streams it to dst. The header row
// is bold and frozen. It returns the number of bytes written.
func (x *XLSXWriter) Write(dst io.Writer, tables ...Table) (int64, error) {
	if len(tables) == 0 {
		return 0, fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"667EEA"}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return 0, fmt.Errorf("failed to name sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return 0, fmt.Errorf("failed to create sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t, header); err != nil {
			return 0, err
		}
	}
	f.SetActiveSheet(0)

	cw := &countingWriter{w: dst}
	if err := f.Write(cw); err != nil {
		return cw.n, fmt.Errorf("failed to write workbook: %w", err)
	}

	x.logger.Debug("Workbook written",
		slog.Int("sheets", len(tables)),
		slog.Int64("bytes", cw.n))
	return cw.n, nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	if len(t.Headers) > 0 {
		headers := make([]interface{}, len(t.Headers))
		for i, h := range t.Headers {
			headers[i] = h
		}
		if err := f.SetSheetRow(t.Name, "A1", &headers); err != nil {
			return fmt.Errorf("failed to write headers of %s: %w", t.Name, err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style headers of %s: %w", t.Name, err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, "A", lastCol, defaultColWidth); err != nil {
			return err
		}
		if err := f.SetPanes(t.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header of %s: %w", t.Name, err)
		}
	}

	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := t.Rows[i]
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, t.Name, err)
		}
	}
	return nil
}

// WriteInterventionsXLSX writes the filtered interventions as a single sheet.
func (x *XLSXWriter) WriteInterventionsXLSX(dst io.Writer, records []domain.InterventionRecord) (int64, error) {
	return x.Write(dst, InterventionsTable(records))
}

// WriteCompanyTableXLSX writes the top-companies table as a single sheet.
func (x *XLSXWriter) WriteCompanyTableXLSX(dst io.Writer, rows []domain.CompanyTableRow) (int64, error) {
	return x.Write(dst, CompanyTable(rows))
}

// WriteWorkbook writes the multi-sheet report: summary, breakdowns, company
// histogram, top companies, workshops when enabled, and the filtered data.
func (x *XLSXWriter) WriteWorkbook(dst io.Writer, d *domain.Dashboard, records []domain.InterventionRecord, companies []domain.CompanyTableRow) (int64, error) {
	tables := []Table{
		SummaryTable(d),
		BreakdownsTable(d.Breakdowns),
		HistogramTable(d.Profile.Histogram),
		CompanyTable(companies),
	}
	if d.Workshops != nil {
		tables = append(tables, WorkshopsTable(d.Workshops))
	}
	tables = append(tables, InterventionsTable(records))
	return x.Write(dst, tables...)
}
