package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding
	BOMPrefix bool
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		logger:    logger.With(slog.String("component", "csv_writer")),
		BOMPrefix: true,
	}
}

// Write streams one table as CSV and returns the number of bytes written.
func (w *CSVWriter) Write(dst io.Writer, t Table) (int64, error) {
	cw := &countingWriter{w: dst}

	if w.BOMPrefix {
		if _, err := cw.Write(utf8BOM); err != nil {
			return cw.n, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(cw)
	if len(t.Headers) > 0 {
		if err := writer.Write(t.Headers); err != nil {
			return cw.n, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		if len(record) < len(row) {
			record = make([]string, len(row))
		}
		record = record[:len(row)]
		for j, v := range row {
			record[j] = formatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return cw.n, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return cw.n, err
	}

	w.logger.Debug("CSV table written",
		slog.String("table", t.Name),
		slog.Int("record_count", len(t.Rows)),
		slog.Int64("bytes", cw.n))
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
