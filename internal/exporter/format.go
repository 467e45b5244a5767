package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// formatFloat formats a float64 value for CSV output in its shortest exact form
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatCell renders a table cell as CSV text. Nil is an empty field.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}

func joinValues(values []string) string {
	return strings.Join(values, ", ")
}
