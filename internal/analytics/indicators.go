package analytics

import "github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"

// SatisfactionTarget is the score at which a company counts as highly satisfied.
const SatisfactionTarget = 75.0

// Gauge summarizes an outcome indicator on the 0-100 scale. It returns nil
// when no record carries a value.
func Gauge(records []domain.InterventionRecord, measure domain.Measure) *domain.IndicatorGauge {
	values, rescaled := NormalizePercentScale(Values(records, measure))
	if len(values) == 0 {
		return nil
	}
	return &domain.IndicatorGauge{
		Evaluated: len(values),
		Average:   round(Mean(values), 2),
		Rescaled:  rescaled,
	}
}

// Satisfaction summarizes the satisfaction indicator and the share of
// evaluations at or above SatisfactionTarget.
func Satisfaction(records []domain.InterventionRecord) *domain.SatisfactionSummary {
	values, rescaled := NormalizePercentScale(Values(records, domain.MeasureSatisfaction))
	if len(values) == 0 {
		return nil
	}
	high := 0
	for _, v := range values {
		if v >= SatisfactionTarget {
			high++
		}
	}
	return &domain.SatisfactionSummary{
		IndicatorGauge: domain.IndicatorGauge{
			Evaluated: len(values),
			Average:   round(Mean(values), 2),
			Rescaled:  rescaled,
		},
		Target:               SatisfactionTarget,
		HighlySatisfied:      high,
		HighlySatisfiedShare: Percent(float64(high), float64(len(values))),
	}
}

// Sales classifies the sales indicator by sign and reports the mean of the
// positive values as the average improvement, on the 0-100 scale. The
// column is rescaled by 100 only when its largest value is at most 1, so a
// view whose sales values are all fractions reads as percent while a view
// holding any value above 1 is reported as stored.
func Sales(records []domain.InterventionRecord) *domain.SalesImpact {
	values, _ := NormalizePercentScale(Values(records, domain.MeasureSales))
	if len(values) == 0 {
		return nil
	}
	s := &domain.SalesImpact{Measured: len(values)}
	var gains []float64
	for _, v := range values {
		switch {
		case v > 0:
			s.Improved++
			gains = append(gains, v)
		case v < 0:
			s.Declined++
		default:
			s.Unchanged++
		}
	}
	s.AverageImprovement = round(Mean(gains), 1)
	return s
}

// Indicators computes the four outcome indicator summaries.
func Indicators(records []domain.InterventionRecord) domain.IndicatorSet {
	return domain.IndicatorSet{
		Satisfaction:   Satisfaction(records),
		Sales:          Sales(records),
		TechProcesses:  Gauge(records, domain.MeasureTechProcesses),
		OnlinePresence: Gauge(records, domain.MeasureOnlinePresence),
	}
}
