// Package dataprocessing loads the interventions and workshops workbooks into
// an immutable in-memory Dataset.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads a sheet with excelize, trims headers and maps columns
// 2. Coercion: turns cells into typed values, counting failures per column
// 3. Identity: resolves the company id of every intervention once at load time
// 4. Quality: per-column completeness and coercion warnings
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderOptions{NullSentinel: "NAN"})
//	ds, err := dataprocessing.LoadDataset(ctx, loader, dataprocessing.Sources{
//	    InterventionsPath: "transformacion_completamente_dividido.xlsx",
//	    WorkshopsPath:     "Horas_talleres.xlsx",
//	})
//	if errors.Is(err, dataprocessing.ErrMissingSource) {
//	    // fatal: nothing to show
//	}
//
// A missing or unreadable workshops workbook only disables the workshop
// section. Numeric cells that cannot be parsed become absent values and are
// reported as coercion warnings, never as errors.
package dataprocessing
