// Package app wires the dashboard service together and manages its lifecycle.
//
// NewApplication performs the startup sequence:
//
//  1. Initialize OpenTelemetry and the dashboard metrics
//  2. Load the interventions and workshops workbooks into an immutable dataset
//  3. Build the dashboard and health services over that dataset
//  4. Assemble the chi router and its middleware chain
//  5. Create the HTTP server
//
// A missing interventions workbook is fatal and surfaces as an
// errors.AppError of type MISSING_SOURCE. A missing workshops workbook only
// disables the workshop section.
//
// Run serves until its context is canceled, then shuts the server and the
// telemetry providers down within the configured shutdown timeout. The
// package never calls os.Exit; the command decides the exit code.
package app
