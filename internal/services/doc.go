// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the analytics package, so handlers
// never touch the dataset directly.
//
// # Services
//
//	DashboardService  filters the shared dataset and computes every view
//	HealthService     readiness, liveness and version information
//
// Every DashboardService method takes a context.Context and checks it before
// computing. The full dashboard fans its independent sections out with an
// errgroup; each goroutine reads the same filtered slice and writes only its
// own field of the result.
//
// # Errors
//
// Services return *errors.AppError values so the transport layer can map
// them to problem responses:
//
//	VALIDATION  limit out of range (wraps ErrInvalidInput)
//	NOT_FOUND   workshop section disabled (wraps ErrWorkshopsDisabled)
//	STORAGE     no dataset (wraps ErrDatasetNotLoaded)
package services
