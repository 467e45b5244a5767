package analytics

import (
	"sort"
	"strconv"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// Options lists the selectable values of every filter dimension over the
// full table: All first, then the sorted distinct present values other than
// the null sentinel. Years sort numerically.
func Options(records []domain.InterventionRecord, sentinel string) domain.FilterOptions {
	out := make(domain.FilterOptions, len(domain.FilterDimensions))
	for _, dim := range domain.FilterDimensions {
		values := DistinctValues(records, dim, sentinel)
		if dim == domain.DimYear {
			sort.SliceStable(values, func(a, b int) bool {
				ya, _ := strconv.Atoi(values[a])
				yb, _ := strconv.Atoi(values[b])
				return ya < yb
			})
		}
		out[dim] = append([]string{domain.All}, values...)
	}
	return out
}
