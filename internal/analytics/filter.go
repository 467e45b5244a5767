package analytics

import (
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// ApplyFilter narrows records by one dimension. When values is empty or
// contains All the result is an unfiltered copy.
func ApplyFilter(records []domain.InterventionRecord, dim domain.Dimension, values []string) []domain.InterventionRecord {
	sel := domain.FilterSelection{dim: values}
	if !sel.Active(dim) {
		return append([]domain.InterventionRecord(nil), records...)
	}

	accepted := make(map[string]struct{}, len(values))
	for _, v := range values {
		accepted[v] = struct{}{}
	}

	out := make([]domain.InterventionRecord, 0, len(records))
	for i := range records {
		v, ok := dim.Value(&records[i])
		if !ok {
			if dim.KeepsNulls() {
				out = append(out, records[i])
			}
			continue
		}
		if _, hit := accepted[v]; hit {
			out = append(out, records[i])
		}
	}
	return out
}

// ApplyFilters narrows records by every active dimension of sel. The source
// slice is never modified.
func ApplyFilters(records []domain.InterventionRecord, sel domain.FilterSelection) []domain.InterventionRecord {
	out := append([]domain.InterventionRecord(nil), records...)
	for _, dim := range filterOrder {
		if sel.Active(dim) {
			out = ApplyFilter(out, dim, sel[dim])
		}
	}
	return out
}

var filterOrder = []domain.Dimension{
	domain.DimProgram, domain.DimPhase, domain.DimCohort, domain.DimYear,
	domain.DimMunicipality, domain.DimSector, domain.DimGender, domain.DimTopic,
}
