// Package config loads the dashboard configuration.
//
// # Configuration Sources
//
// Values are resolved in increasing order of precedence:
//
//  1. Defaults from Default()
//  2. config.yaml or configs/config.yaml
//  3. A .env file in the working directory
//  4. Environment variables
//
// # Environment Variables
//
// Variables are namespaced with the DASHBOARD prefix and the section name:
//
//	DASHBOARD_SERVER_PORT=8080
//	DASHBOARD_DATA_INTERVENTIONS_PATH=/srv/data/transformacion.xlsx
//	DASHBOARD_DATA_WORKSHOPS_PATH=/srv/data/Horas_talleres.xlsx
//	DASHBOARD_DATA_CORREGIMIENTOS=BARCELONA
//	DASHBOARD_LOGGING_LEVEL=debug
//	DASHBOARD_TELEMETRY_TRACE_EXPORTER=stdout
//
// List values are comma separated. The loaded configuration is validated
// with go-playground/validator struct tags before it is returned.
package config
