package analytics

import (
	"sort"
	"strings"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// Threshold levels of the company profile cards.
const (
	RecurringThreshold    = 5
	HighlyActiveThreshold = 10
	maxTablePrograms      = 3
)

type histogramBin struct {
	label        string
	lower, upper int
}

// histogramBins are half-open [lower, upper); upper 0 means unbounded.
var histogramBins = []histogramBin{
	{"1 intervention", 1, 2},
	{"2-4 interventions", 2, 5},
	{"5-9 interventions", 5, 10},
	{"10-19 interventions", 10, 20},
	{"20-49 interventions", 20, 50},
	{"50+ interventions", 50, 0},
}

// companyStats accumulates everything the profile needs about one company.
type companyStats struct {
	id           string
	count        int
	hours        float64
	displayName  *string
	companyName  *string
	personName   *string
	municipality *string
	sector       *string
	programs     []string
}

// CompanyProfile is the per-company view of a filtered table.
type CompanyProfile struct {
	companies []*companyStats
}

// Profile groups records by company id. Companies are ordered by descending
// intervention count; ties keep ascending company id order.
func Profile(records []domain.InterventionRecord) *CompanyProfile {
	index := make(map[string]*companyStats)
	for i := range records {
		r := &records[i]
		if r.CompanyID == nil {
			continue
		}
		c, seen := index[*r.CompanyID]
		if !seen {
			c = &companyStats{id: *r.CompanyID}
			index[c.id] = c
		}
		c.count++
		if r.ConsultingHours != nil {
			c.hours += *r.ConsultingHours
		}
		if c.displayName == nil {
			c.displayName = r.DisplayName()
		}
		if c.companyName == nil {
			c.companyName = r.CompanyName
		}
		if c.personName == nil {
			c.personName = r.PersonName
		}
		if c.municipality == nil {
			c.municipality = r.Municipality
		}
		if c.sector == nil {
			c.sector = r.Sector
		}
		if r.Program != "" && !contains(c.programs, r.Program) {
			c.programs = append(c.programs, r.Program)
		}
	}

	p := &CompanyProfile{companies: make([]*companyStats, 0, len(index))}
	for _, c := range index {
		p.companies = append(p.companies, c)
	}
	sort.Slice(p.companies, func(a, b int) bool { return p.companies[a].id < p.companies[b].id })
	sort.SliceStable(p.companies, func(a, b int) bool { return p.companies[a].count > p.companies[b].count })
	return p
}

// Companies is the number of distinct companies with at least one intervention.
func (p *CompanyProfile) Companies() int {
	return len(p.companies)
}

// CountsByCompany returns every company with its intervention count.
func (p *CompanyProfile) CountsByCompany() []domain.CompanyCount {
	return p.RankedTop(len(p.companies))
}

// RankedTop returns the n companies with the most interventions. The display
// name is the company name, else the person name, never the tax id.
func (p *CompanyProfile) RankedTop(n int) []domain.CompanyCount {
	if n > len(p.companies) {
		n = len(p.companies)
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.CompanyCount, n)
	for i, c := range p.companies[:n] {
		out[i] = domain.CompanyCount{CompanyID: c.id, DisplayName: c.displayName, Count: c.count}
	}
	return out
}

// Histogram counts companies per fixed bin, in bin order.
func (p *CompanyProfile) Histogram() []domain.HistogramBin {
	out := make([]domain.HistogramBin, len(histogramBins))
	for i, b := range histogramBins {
		out[i] = domain.HistogramBin{Label: b.label, Lower: b.lower, Upper: b.upper}
	}
	for _, c := range p.companies {
		for i, b := range histogramBins {
			if c.count >= b.lower && (b.upper == 0 || c.count < b.upper) {
				out[i].Companies++
				break
			}
		}
	}
	return out
}

// CountAtLeast counts companies with at least k interventions.
func (p *CompanyProfile) CountAtLeast(k int) int {
	n := 0
	for _, c := range p.companies {
		if c.count >= k {
			n++
		}
	}
	return n
}

// CountExactly counts companies with exactly k interventions.
func (p *CompanyProfile) CountExactly(k int) int {
	n := 0
	for _, c := range p.companies {
		if c.count == k {
			n++
		}
	}
	return n
}

func (p *CompanyProfile) threshold(n int) domain.Threshold {
	return domain.Threshold{Companies: n, Percent: Percent(float64(n), float64(len(p.companies)))}
}

// Single is the share of companies with exactly one intervention.
func (p *CompanyProfile) Single() domain.Threshold { return p.threshold(p.CountExactly(1)) }

// Recurring is the share of companies with at least RecurringThreshold interventions.
func (p *CompanyProfile) Recurring() domain.Threshold {
	return p.threshold(p.CountAtLeast(RecurringThreshold))
}

// HighlyActive is the share of companies with at least HighlyActiveThreshold interventions.
func (p *CompanyProfile) HighlyActive() domain.Threshold {
	return p.threshold(p.CountAtLeast(HighlyActiveThreshold))
}

// Mean is the average number of interventions per company.
func (p *CompanyProfile) Mean() float64 {
	if len(p.companies) == 0 {
		return 0
	}
	total := 0
	for _, c := range p.companies {
		total += c.count
	}
	return round(float64(total)/float64(len(p.companies)), 2)
}

// Median is the median number of interventions per company.
func (p *CompanyProfile) Median() float64 {
	n := len(p.companies)
	if n == 0 {
		return 0
	}
	// companies are sorted by descending count
	if n%2 == 1 {
		return float64(p.companies[n/2].count)
	}
	return float64(p.companies[n/2-1].count+p.companies[n/2].count) / 2
}

// Max is the largest number of interventions received by one company.
func (p *CompanyProfile) Max() int {
	if len(p.companies) == 0 {
		return 0
	}
	return p.companies[0].count
}

// CompanyTable builds the top-n rows of the exported company table. Each
// row carries the first present municipality and sector seen for the company
// and its first three distinct programs.
func (p *CompanyProfile) CompanyTable(n int) []domain.CompanyTableRow {
	top := p.companies
	if n >= 0 && n < len(top) {
		top = top[:n]
	}
	out := make([]domain.CompanyTableRow, len(top))
	for i, c := range top {
		name := c.companyName
		if name == nil {
			name = c.personName
		}
		programs := c.programs
		if len(programs) > maxTablePrograms {
			programs = programs[:maxTablePrograms]
		}
		out[i] = domain.CompanyTableRow{
			Rank:          i + 1,
			CompanyID:     c.id,
			Company:       name,
			Interventions: c.count,
			TotalHours:    round(c.hours, 2),
			Municipality:  c.municipality,
			Sector:        c.sector,
			Programs:      strings.Join(programs, ", "),
		}
	}
	return out
}

// Summary assembles the serializable profile with the top n companies.
func (p *CompanyProfile) Summary(top int) domain.ProfileSummary {
	return domain.ProfileSummary{
		Companies:    p.Companies(),
		Mean:         p.Mean(),
		Median:       p.Median(),
		Max:          p.Max(),
		Single:       p.Single(),
		Recurring:    p.Recurring(),
		HighlyActive: p.HighlyActive(),
		Histogram:    p.Histogram(),
		Top:          p.RankedTop(top),
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
