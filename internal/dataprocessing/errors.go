package dataprocessing

import "errors"

var (
	// ErrMissingSource is returned when a required workbook does not exist.
	ErrMissingSource = errors.New("source file not found")

	// ErrMissingColumns is returned when a workbook lacks expected headers.
	ErrMissingColumns = errors.New("missing expected columns")

	// ErrEmptySheet is returned when the selected sheet has no header row.
	ErrEmptySheet = errors.New("sheet has no header row")

	// ErrSheetNotFound is returned when a configured sheet name is absent.
	ErrSheetNotFound = errors.New("sheet not found")
)
