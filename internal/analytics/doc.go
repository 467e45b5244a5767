// Package analytics implements the filter-and-aggregate layer of the
// dashboard. Every function is a pure function of its inputs: it reads the
// shared interventions table and returns newly allocated results, so the
// functions may run concurrently over the same filtered view.
//
// # Filtering
//
// ApplyFilters narrows the table by a domain.FilterSelection. Dimensions are
// AND-combined and commute. Phase and cohort keep records whose value is
// absent; the other dimensions drop them once a specific value is selected.
//
//	filtered := analytics.ApplyFilters(ds.Interventions(), selection)
//
// # Aggregation
//
// CountByCategory, SumByCategory, UniqueCompanyCountByCategory and
// CrossTabulate feed the charts. Percentages are rounded to one decimal over
// the total of the breakdown they belong to and are zero when that total is
// zero.
//
// # Company profile
//
// Profile groups the filtered rows by resolved company id and exposes the
// ranking, the fixed-bin histogram and the threshold metrics.
//
//	p := analytics.Profile(filtered)
//	top := p.RankedTop(15)
//	bins := p.Histogram()
package analytics
