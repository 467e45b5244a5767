package analytics

import "github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"

// NormalizePercentScale rescales an indicator column stored as fractions to
// the 0-100 scale. When the largest value is at most 1 every value is
// multiplied by 100; otherwise the values are returned unchanged. It is
// applied to one column at a time and returns a new slice together with
// whether rescaling happened.
func NormalizePercentScale(values []float64) ([]float64, bool) {
	out := append([]float64(nil), values...)
	if len(out) == 0 {
		return out, false
	}
	peak := out[0]
	for _, v := range out[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak > 1 {
		return out, false
	}
	for i := range out {
		out[i] *= 100
	}
	return out, true
}

// Values collects the present values of measure in record order.
func Values(records []domain.InterventionRecord, measure domain.Measure) []float64 {
	var out []float64
	for i := range records {
		if v := measure.Value(&records[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Mean returns the arithmetic mean, 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
