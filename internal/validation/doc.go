// Package validation checks workbook paths before the report command reads
// or writes them.
package validation
