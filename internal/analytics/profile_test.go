package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// tableWithCounts builds one company per entry with that many interventions.
func tableWithCounts(counts ...int) []domain.InterventionRecord {
	var rs []rec
	for i, n := range counts {
		for j := 0; j < n; j++ {
			rs = append(rs, rec{program: "ZASCA", taxID: fmt.Sprintf("9%02d", i), company: fmt.Sprintf("Empresa %d", i)})
		}
	}
	return build(rs...)
}

func TestProfile_Histogram(t *testing.T) {
	p := Profile(tableWithCounts(1, 1, 2, 3, 5, 12))

	got := make([]int, 0, 6)
	for _, b := range p.Histogram() {
		got = append(got, b.Companies)
	}
	assert.Equal(t, []int{2, 2, 1, 1, 0, 0}, got)

	bins := p.Histogram()
	assert.Equal(t, "1 intervention", bins[0].Label)
	assert.Equal(t, 50, bins[5].Lower)
	assert.Zero(t, bins[5].Upper)
}

func TestProfile_HistogramCoversEveryCompany(t *testing.T) {
	for _, table := range [][]domain.InterventionRecord{
		sampleTable(),
		tableWithCounts(1, 60, 49, 50, 20, 19, 10, 9, 5, 4, 2),
		nil,
	} {
		p := Profile(table)
		total := 0
		for _, b := range p.Histogram() {
			total += b.Companies
		}
		assert.Equal(t, p.Companies(), total)
		assert.Equal(t, DistinctCompanyCount(table), p.Companies())
	}
}

func TestProfile_Monotonicity(t *testing.T) {
	p := Profile(sampleTable())
	assert.GreaterOrEqual(t, p.CountAtLeast(1), p.CountAtLeast(5))
	assert.GreaterOrEqual(t, p.CountAtLeast(5), p.CountAtLeast(10))
	assert.Equal(t, p.Companies(), p.CountAtLeast(1))
}

func TestProfile_Thresholds(t *testing.T) {
	p := Profile(tableWithCounts(1, 1, 2, 3, 5, 12))

	assert.Equal(t, domain.Threshold{Companies: 2, Percent: 33.3}, p.Single())
	assert.Equal(t, domain.Threshold{Companies: 2, Percent: 33.3}, p.Recurring())
	assert.Equal(t, domain.Threshold{Companies: 1, Percent: 16.7}, p.HighlyActive())
	assert.Equal(t, 2, p.CountExactly(1))
	assert.Equal(t, 4.0, p.Mean())
	assert.Equal(t, 2.5, p.Median())
	assert.Equal(t, 12, p.Max())
}

func TestProfile_RankedTop(t *testing.T) {
	table := build(
		rec{taxID: "300", company: "Gamma"},
		rec{taxID: "100", person: "Ana Pérez"},
		rec{taxID: "100", company: "Alfa SAS"},
		rec{taxID: "200", company: "Beta"},
		rec{taxID: "200", company: "Beta"},
		rec{taxID: "050", company: "Delta"},
	)
	top := Profile(table).RankedTop(3)
	require.Len(t, top, 3)

	assert.Equal(t, "100", top[0].CompanyID, "ties ordered by company id")
	assert.Equal(t, "Ana Pérez", *top[0].DisplayName, "first present display name wins")
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, "200", top[1].CompanyID)
	assert.Equal(t, "050", top[2].CompanyID)
	assert.Equal(t, "Delta", *top[2].DisplayName)

	assert.Len(t, Profile(table).RankedTop(50), 4)
}

func TestProfile_DisplayNameNeverTaxID(t *testing.T) {
	table := build(rec{taxID: "900111"})
	top := Profile(table).RankedTop(1)
	require.Len(t, top, 1)
	assert.Equal(t, "900111", top[0].CompanyID)
	assert.Nil(t, top[0].DisplayName)
}

func TestProfile_SkipsRecordsWithoutIdentity(t *testing.T) {
	table := build(rec{program: "ZASCA"}, rec{company: "Acme"})
	assert.Equal(t, 1, Profile(table).Companies())
}

func TestProfile_CompanyTable(t *testing.T) {
	table := build(
		rec{taxID: "1", person: "Ana", program: "ZASCA", hours: f64(2)},
		rec{taxID: "1", company: "Alfa", municipality: "ARMENIA", program: "Fábricas", hours: f64(3)},
		rec{taxID: "1", company: "Alfa", sector: "Turismo", program: "ZASCA"},
		rec{taxID: "1", company: "Alfa", program: "Digital"},
		rec{taxID: "1", company: "Alfa", program: "Exporta"},
		rec{taxID: "2", company: "Beta", program: "ZASCA", hours: f64(1)},
	)
	rows := Profile(table).CompanyTable(50)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "Alfa", *first.Company)
	assert.Equal(t, 5, first.Interventions)
	assert.Equal(t, 5.0, first.TotalHours)
	assert.Equal(t, "ARMENIA", *first.Municipality)
	assert.Equal(t, "Turismo", *first.Sector)
	assert.Equal(t, "ZASCA, Fábricas, Digital", first.Programs)

	assert.Equal(t, 2, rows[1].Rank)
	assert.Len(t, Profile(table).CompanyTable(1), 1)
}

func TestProfile_Empty(t *testing.T) {
	p := Profile(nil)
	s := p.Summary(15)
	assert.Zero(t, s.Companies)
	assert.Zero(t, s.Mean)
	assert.Zero(t, s.Median)
	assert.Zero(t, s.Single.Percent)
	assert.Empty(t, s.Top)
	assert.Len(t, s.Histogram, 6)
}
