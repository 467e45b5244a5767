// Package exporter serializes dashboard tables to downloadable files.
//
// Two writers share the Table shape:
//
// CSVWriter: streams one table as CSV with a UTF-8 BOM for Excel
// compatibility.
//
// XLSXWriter: builds an Excel workbook with one sheet per table, a bold
// frozen header row and fixed column widths.
//
// Example usage:
//
//	xw := exporter.NewXLSXWriter(logger)
//	n, err := xw.WriteInterventionsXLSX(w, filtered)
//
//	cw := exporter.NewCSVWriter(logger)
//	n, err = cw.Write(w, exporter.CompanyTable(profile.CompanyTable(50)))
package exporter
