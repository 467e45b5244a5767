// Package http implements the HTTP handlers of the dashboard service.
// Handlers are thin: they parse the query string, call the dashboard service
// and render the result. Every failure goes through errors.ErrorHandler and
// reaches the client as an RFC 7807 problem document.
//
// # Routes
//
//	GET /api/health, /api/health/ready, /api/health/live, /api/version
//	GET /api/dashboard                   full payload for a selection
//	GET /api/dashboard/options           selectable values per dimension
//	GET /api/dashboard/summary           headline metrics
//	GET /api/dashboard/companies?limit=N company profile and top-N table
//	GET /api/dashboard/workshops         workshop summary, 404 when disabled
//	GET /api/dashboard/quality           load report and column completeness
//	GET /api/export/interventions.{xlsx,csv}
//	GET /api/export/companies.{xlsx,csv}
//	GET /api/charts/{name}.png
//	GET /metrics
//
// # Filters
//
// The dashboard, export and chart routes accept the filter parameters
// program, phase, cohort, year, municipality, sector and gender. Repeat a
// parameter to select several values. Values are taken whole, commas included:
//
//	/api/dashboard?sector=Textiles&sector=Turismo&year=2023&year=2024
//
// An absent parameter, or one holding "All", leaves the dimension unrestricted.
package http
