// Package shared holds helpers used across packages. The testutil
// subpackage provides log capture and workbook fixtures for tests.
package shared
