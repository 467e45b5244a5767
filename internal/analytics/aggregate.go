package analytics

import (
	"math"
	"sort"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// Percent returns part/total*100 rounded to one decimal, or 0 for a zero total.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round(part/total*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// CountByCategory counts records per value of dim, sorted by descending
// count with ties in first-appearance order. Absent values are skipped.
func CountByCategory(records []domain.InterventionRecord, dim domain.Dimension) []domain.CategoryCount {
	index := make(map[string]int)
	var out []domain.CategoryCount
	total := 0
	for i := range records {
		v, ok := dim.Value(&records[i])
		if !ok {
			continue
		}
		total++
		if j, seen := index[v]; seen {
			out[j].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, domain.CategoryCount{Category: v, Count: 1})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	for i := range out {
		out[i].Percent = Percent(float64(out[i].Count), float64(total))
	}
	return out
}

// TopN returns the first n entries of a breakdown. Percentages keep the
// denominator of the full breakdown.
func TopN(counts []domain.CategoryCount, n int) []domain.CategoryCount {
	if n <= 0 || n >= len(counts) {
		return append([]domain.CategoryCount(nil), counts...)
	}
	return append([]domain.CategoryCount(nil), counts[:n]...)
}

// SumByCategory sums measure per value of dim. Absent measure values are
// skipped, not counted as zero; a category whose values are all absent sums
// to zero.
func SumByCategory(records []domain.InterventionRecord, dim domain.Dimension, measure domain.Measure) map[string]float64 {
	out := make(map[string]float64)
	for i := range records {
		k, ok := dim.Value(&records[i])
		if !ok {
			continue
		}
		sum := out[k]
		if v := measure.Value(&records[i]); v != nil {
			sum += *v
		}
		out[k] = sum
	}
	return out
}

// Shares turns a category sum into a breakdown sorted by descending value,
// each with its percentage of the total.
func Shares(sums map[string]float64) []domain.CategoryValue {
	out := make([]domain.CategoryValue, 0, len(sums))
	total := 0.0
	for k, v := range sums {
		out = append(out, domain.CategoryValue{Category: k, Value: v})
		total += v
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value > out[b].Value
		}
		return out[a].Category < out[b].Category
	})
	for i := range out {
		out[i].Percent = Percent(out[i].Value, total)
	}
	return out
}

// MeanByCategory averages measure per value of dim over present values only,
// sorted ascending. Categories without any present value are omitted.
func MeanByCategory(records []domain.InterventionRecord, dim domain.Dimension, measure domain.Measure) []domain.CategoryValue {
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for i := range records {
		k, ok := dim.Value(&records[i])
		if !ok {
			continue
		}
		v := measure.Value(&records[i])
		if v == nil {
			continue
		}
		g, seen := groups[k]
		if !seen {
			g = &acc{}
			groups[k] = g
		}
		g.sum += *v
		g.n++
	}
	out := make([]domain.CategoryValue, 0, len(groups))
	for k, g := range groups {
		out = append(out, domain.CategoryValue{Category: k, Value: round(g.sum/float64(g.n), 2)})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value < out[b].Value
		}
		return out[a].Category < out[b].Category
	})
	return out
}

// UniqueCompanyCountByCategory counts distinct company ids per value of dim,
// sorted ascending by count for horizontal bars. Records without a company
// id are skipped.
func UniqueCompanyCountByCategory(records []domain.InterventionRecord, dim domain.Dimension) []domain.CategoryCount {
	companies := make(map[string]map[string]struct{})
	for i := range records {
		r := &records[i]
		if r.CompanyID == nil {
			continue
		}
		k, ok := dim.Value(r)
		if !ok {
			continue
		}
		set, seen := companies[k]
		if !seen {
			set = make(map[string]struct{})
			companies[k] = set
		}
		set[*r.CompanyID] = struct{}{}
	}
	out := make([]domain.CategoryCount, 0, len(companies))
	total := 0
	for k, set := range companies {
		out = append(out, domain.CategoryCount{Category: k, Count: len(set)})
		total += len(set)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count < out[b].Count
		}
		return out[a].Category < out[b].Category
	})
	for i := range out {
		out[i].Percent = Percent(float64(out[i].Count), float64(total))
	}
	return out
}

// CrossTabulate counts records for every (row, column) pair of values. Labels
// are sorted and every combination is present, zero when unobserved.
func CrossTabulate(records []domain.InterventionRecord, rowDim, colDim domain.Dimension) domain.Matrix {
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})
	counts := make(map[[2]string]int)
	for i := range records {
		rv, ok := rowDim.Value(&records[i])
		if !ok {
			continue
		}
		cv, ok := colDim.Value(&records[i])
		if !ok {
			continue
		}
		rowSet[rv] = struct{}{}
		colSet[cv] = struct{}{}
		counts[[2]string{rv, cv}]++
	}

	m := domain.Matrix{Rows: sortedKeys(rowSet), Columns: sortedKeys(colSet)}
	m.Cells = make([][]int, len(m.Rows))
	for i, r := range m.Rows {
		m.Cells[i] = make([]int, len(m.Columns))
		for j, c := range m.Columns {
			m.Cells[i][j] = counts[[2]string{r, c}]
		}
	}
	return m
}

// CountByYear counts records per execution year in ascending year order.
func CountByYear(records []domain.InterventionRecord) []domain.YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		if r.ExecutionYear != nil {
			counts[*r.ExecutionYear]++
		}
	}
	out := make([]domain.YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, domain.YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Year < out[b].Year })
	return out
}

// TotalRows is the number of records in the view.
func TotalRows(records []domain.InterventionRecord) int {
	return len(records)
}

// DistinctCompanyCount counts distinct company ids. Records without one are
// not counted.
func DistinctCompanyCount(records []domain.InterventionRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.CompanyID != nil {
			seen[*r.CompanyID] = struct{}{}
		}
	}
	return len(seen)
}

// DistinctValues returns the sorted distinct present values of dim, leaving
// out the null sentinel.
func DistinctValues(records []domain.InterventionRecord, dim domain.Dimension, sentinel string) []string {
	seen := make(map[string]struct{})
	for i := range records {
		v, ok := dim.Value(&records[i])
		if !ok || isSentinel(v, sentinel) {
			continue
		}
		seen[v] = struct{}{}
	}
	return sortedKeys(seen)
}

// DistinctNonSentinelCount counts distinct present values of dim other than
// the null sentinel.
func DistinctNonSentinelCount(records []domain.InterventionRecord, dim domain.Dimension, sentinel string) int {
	return len(DistinctValues(records, dim, sentinel))
}

// SumColumn sums the present values of measure.
func SumColumn(records []domain.InterventionRecord, measure domain.Measure) float64 {
	total := 0.0
	for i := range records {
		if v := measure.Value(&records[i]); v != nil {
			total += *v
		}
	}
	return total
}

// ExcludeSentinel returns the records whose dim value is present and is not
// the null sentinel.
func ExcludeSentinel(records []domain.InterventionRecord, dim domain.Dimension, sentinel string) []domain.InterventionRecord {
	out := make([]domain.InterventionRecord, 0, len(records))
	for i := range records {
		v, ok := dim.Value(&records[i])
		if !ok || isSentinel(v, sentinel) {
			continue
		}
		out = append(out, records[i])
	}
	return out
}

// isSentinel matches the sentinel literally. Other spellings such as "Nan"
// are ordinary category values.
func isSentinel(v, sentinel string) bool {
	return sentinel != "" && v == sentinel
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
