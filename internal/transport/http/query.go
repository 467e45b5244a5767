package http

import (
	"net/url"
	"strings"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// ParseSelection reads the seven filter dimensions from query parameters.
// A parameter repeats to select several values; each value is taken whole so
// category names containing commas survive. Blanks are dropped. A missing
// parameter leaves its dimension unrestricted.
func ParseSelection(q url.Values) domain.FilterSelection {
	sel := make(domain.FilterSelection)
	for _, dim := range domain.FilterDimensions {
		var values []string
		for _, raw := range q[string(dim)] {
			if v := strings.TrimSpace(raw); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			sel[dim] = values
		}
	}
	return sel
}
