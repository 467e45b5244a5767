package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

func TestNormalizePercentScale(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		want     []float64
		rescaled bool
	}{
		{name: "fractions", in: []float64{0.5, 0.8, 1.0}, want: []float64{50, 80, 100}, rescaled: true},
		{name: "percentages", in: []float64{50, 80, 100}, want: []float64{50, 80, 100}},
		{name: "mixed above one", in: []float64{0.5, 1.5}, want: []float64{0.5, 1.5}},
		{name: "negative fractions", in: []float64{-0.2, 0, 0.3}, want: []float64{-20, 0, 30}, rescaled: true},
		{name: "empty", in: nil, want: []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.in...)
			got, rescaled := NormalizePercentScale(in)
			assert.Equal(t, tt.rescaled, rescaled)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
			assert.Equal(t, tt.in, in, "input is not modified")
		})
	}
}

func TestGauge_RescaledAverage(t *testing.T) {
	table := []domain.InterventionRecord{
		{TechProcessesIndicator: f64(0.5)},
		{TechProcessesIndicator: f64(0.8)},
		{TechProcessesIndicator: f64(1.0)},
		{},
	}
	g := Gauge(table, domain.MeasureTechProcesses)
	require.NotNil(t, g)
	assert.Equal(t, 3, g.Evaluated)
	assert.Equal(t, 76.67, g.Average)
	assert.True(t, g.Rescaled)
}

func TestGauge_ColumnsAreIndependent(t *testing.T) {
	table := []domain.InterventionRecord{
		{TechProcessesIndicator: f64(0.4), OnlinePresenceIndicator: f64(40)},
		{TechProcessesIndicator: f64(0.6), OnlinePresenceIndicator: f64(60)},
	}
	set := Indicators(table)
	require.NotNil(t, set.TechProcesses)
	require.NotNil(t, set.OnlinePresence)
	assert.Equal(t, 50.0, set.TechProcesses.Average)
	assert.True(t, set.TechProcesses.Rescaled)
	assert.Equal(t, 50.0, set.OnlinePresence.Average)
	assert.False(t, set.OnlinePresence.Rescaled)
	assert.Nil(t, set.Satisfaction)
	assert.Nil(t, set.Sales)
}

func TestSatisfaction(t *testing.T) {
	table := []domain.InterventionRecord{
		{SatisfactionIndicator: f64(90)},
		{SatisfactionIndicator: f64(75)},
		{SatisfactionIndicator: f64(60)},
		{SatisfactionIndicator: f64(40)},
	}
	s := Satisfaction(table)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.Evaluated)
	assert.Equal(t, 66.25, s.Average)
	assert.Equal(t, 2, s.HighlySatisfied)
	assert.Equal(t, 50.0, s.HighlySatisfiedShare)
	assert.Equal(t, SatisfactionTarget, s.Target)
}

func TestSales(t *testing.T) {
	table := []domain.InterventionRecord{
		{SalesIndicator: f64(0.2)},
		{SalesIndicator: f64(0.1)},
		{SalesIndicator: f64(0)},
		{SalesIndicator: f64(-0.05)},
		{},
	}
	s := Sales(table)
	require.NotNil(t, s)
	assert.Equal(t, domain.SalesImpact{
		Measured:           4,
		Improved:           2,
		Unchanged:          1,
		Declined:           1,
		AverageImprovement: 15,
	}, *s)
}

func TestSales_ScaleFollowsColumnPeak(t *testing.T) {
	tests := []struct {
		name        string
		values      []float64
		wantAverage float64
	}{
		{name: "fractions rescaled", values: []float64{0.5, 0.3}, wantAverage: 40},
		{name: "peak of one rescaled", values: []float64{1, 0.5}, wantAverage: 75},
		{name: "value above one keeps scale", values: []float64{20, 0.5, 4}, wantAverage: 8.2},
		{name: "percent values kept", values: []float64{10, 30}, wantAverage: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := make([]domain.InterventionRecord, 0, len(tt.values))
			for _, v := range tt.values {
				table = append(table, domain.InterventionRecord{SalesIndicator: f64(v)})
			}
			s := Sales(table)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantAverage, s.AverageImprovement)
		})
	}
}

func TestIndicators_EmptyView(t *testing.T) {
	set := Indicators(nil)
	assert.Nil(t, set.Satisfaction)
	assert.Nil(t, set.Sales)
	assert.Nil(t, set.TechProcesses)
	assert.Nil(t, set.OnlinePresence)
}
