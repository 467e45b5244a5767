package analytics

import (
	"strings"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// SummaryOptions tunes the headline metrics.
type SummaryOptions struct {
	NullSentinel string
	// Corregimientos are municipality values counted apart from municipalities.
	Corregimientos []string
}

// Summarize computes the headline metric cards of a filtered view.
func Summarize(records []domain.InterventionRecord, opts SummaryOptions) domain.Summary {
	s := domain.Summary{
		TotalInterventions:   TotalRows(records),
		DistinctCompanies:    DistinctCompanyCount(records),
		SectorsServed:        DistinctNonSentinelCount(records, domain.DimSector, opts.NullSentinel),
		TotalConsultingHours: round(SumColumn(records, domain.MeasureConsultingHours), 2),
	}
	for _, m := range DistinctValues(records, domain.DimMunicipality, opts.NullSentinel) {
		if isCorregimiento(m, opts.Corregimientos) {
			s.Corregimientos++
		} else {
			s.Municipalities++
		}
	}
	return s
}

func isCorregimiento(v string, list []string) bool {
	for _, c := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(c)) {
			return true
		}
	}
	return false
}

// BreakdownOptions tunes the chart series.
type BreakdownOptions struct {
	NullSentinel string
	TopSectors   int
}

// ComputeBreakdowns builds every chart series of a filtered view. Sector
// series leave out records whose sector is absent or the null sentinel.
func ComputeBreakdowns(records []domain.InterventionRecord, opts BreakdownOptions) domain.Breakdowns {
	withSector := ExcludeSentinel(records, domain.DimSector, opts.NullSentinel)
	return domain.Breakdowns{
		Topics:                  CountByCategory(records, domain.DimTopic),
		Gender:                  CountByCategory(records, domain.DimGender),
		Municipalities:          CountByCategory(records, domain.DimMunicipality),
		Programs:                CountByCategory(records, domain.DimProgram),
		TopSectors:              TopN(CountByCategory(withSector, domain.DimSector), opts.TopSectors),
		HoursByTopic:            Shares(SumByCategory(records, domain.DimTopic, domain.MeasureConsultingHours)),
		AverageHoursByTopic:     MeanByCategory(records, domain.DimTopic, domain.MeasureConsultingHours),
		CompaniesByMunicipality: UniqueCompanyCountByCategory(records, domain.DimMunicipality),
		CompaniesBySector:       UniqueCompanyCountByCategory(withSector, domain.DimSector),
		InterventionsByYear:     CountByYear(records),
		SectorByGender:          CrossTabulate(withSector, domain.DimSector, domain.DimGender),
	}
}
