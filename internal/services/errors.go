package services

import "errors"

// Dashboard service errors
var (
	// ErrWorkshopsDisabled is returned when the workshops workbook was not loaded.
	ErrWorkshopsDisabled = errors.New("workshop data not available")

	// ErrInvalidInput is returned for out of range arguments such as a table limit.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDatasetNotLoaded is returned when a service is built without a dataset.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
)
