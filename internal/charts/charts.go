// Package charts renders dashboard series as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

var (
	// ErrUnknownChart is returned for a chart name outside Names.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNoChartData is returned when the selected view has nothing to plot.
	ErrNoChartData = errors.New("no chart data available")
)

// Chart names served by the renderer.
const (
	Topics         = "topics"
	Gender         = "gender"
	Municipalities = "municipalities"
	Programs       = "programs"
	Sectors        = "sectors"
	HoursByTopic   = "hours-by-topic"
	Years          = "years"
	Histogram      = "histogram"
	TopCompanies   = "top-companies"
)

// Names lists every chart the renderer can draw.
var Names = []string{
	Topics, Gender, Municipalities, Programs, Sectors, HoursByTopic, Years, Histogram, TopCompanies,
}

const maxLabel = 50

var palette = []drawing.Color{
	drawing.ColorFromHex("667eea"),
	drawing.ColorFromHex("764ba2"),
	drawing.ColorFromHex("f093fb"),
	drawing.ColorFromHex("4facfe"),
	drawing.ColorFromHex("43e97b"),
	drawing.ColorFromHex("fa709a"),
	drawing.ColorFromHex("fbbf24"),
	drawing.ColorFromHex("10b981"),
}

// Renderer draws dashboard charts at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer; zero sizes fall back to 800x500.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}
	return &Renderer{Width: width, Height: height}
}

// Known reports whether name is a chart the renderer can draw.
func Known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Render draws the named chart of d as PNG into w.
func (r *Renderer) Render(w io.Writer, name string, d *domain.Dashboard) error {
	b := d.Breakdowns
	switch name {
	case Topics:
		return r.pie(w, "Fase alcanzada por las empresas", countValues(b.Topics))
	case Gender:
		return r.pie(w, "Distribución por género", countValues(b.Gender))
	case Municipalities:
		return r.pie(w, "Intervenciones por municipio", countValues(b.Municipalities))
	case Programs:
		return r.pie(w, "Distribución por programa", countValues(b.Programs))
	case Sectors:
		return r.pie(w, "Top sectores atendidos", countValues(b.TopSectors))
	case HoursByTopic:
		return r.pie(w, "Horas de consultoría por tema", shareValues(b.HoursByTopic))
	case Years:
		return r.years(w, b.InterventionsByYear)
	case Histogram:
		bars := make([]chart.Value, len(d.Profile.Histogram))
		for i, bin := range d.Profile.Histogram {
			bars[i] = chart.Value{Label: bin.Label, Value: float64(bin.Companies)}
		}
		return r.bars(w, "Distribución de intervenciones por empresa", bars)
	case TopCompanies:
		bars := make([]chart.Value, len(d.Profile.Top))
		for i, c := range d.Profile.Top {
			label := c.CompanyID
			if c.DisplayName != nil {
				label = *c.DisplayName
			}
			bars[i] = chart.Value{Label: truncate(label), Value: float64(c.Count)}
		}
		return r.bars(w, "Empresas con más intervenciones", bars)
	}
	return fmt.Errorf("%w: %s", ErrUnknownChart, name)
}

func (r *Renderer) pie(w io.Writer, title string, values []chart.Value) error {
	total := 0.0
	for _, v := range values {
		total += v.Value
	}
	if len(values) == 0 || total <= 0 {
		return ErrNoChartData
	}
	for i := range values {
		values[i].Style = chart.Style{FillColor: palette[i%len(palette)], StrokeColor: drawing.ColorWhite}
	}
	pc := chart.PieChart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return pc.Render(chart.PNG, w)
}

func (r *Renderer) bars(w io.Writer, title string, values []chart.Value) error {
	peak := 0.0
	for _, v := range values {
		if v.Value > peak {
			peak = v.Value
		}
	}
	if len(values) == 0 || peak <= 0 {
		return ErrNoChartData
	}
	for i := range values {
		values[i].Style = chart.Style{FillColor: palette[i%len(palette)], StrokeColor: palette[i%len(palette)]}
	}
	bw, spacing := barLayout(r.Width, len(values))
	bc := chart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   bw,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
		},
		Bars: values,
	}
	return bc.Render(chart.PNG, w)
}

func (r *Renderer) years(w io.Writer, series []domain.YearCount) error {
	if len(series) == 0 {
		return ErrNoChartData
	}
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))
	peak := 0.0
	for i, p := range series {
		xs[i] = float64(p.Year)
		ys[i] = float64(p.Count)
		ticks[i] = chart.Tick{Value: xs[i], Label: strconv.Itoa(p.Year)}
		if ys[i] > peak {
			peak = ys[i]
		}
	}
	ch := chart.Chart{
		Title:      "Evolución por año",
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:  "Año",
			Range: &chart.ContinuousRange{Min: xs[0] - 0.5, Max: xs[len(xs)-1] + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Intervenciones",
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Intervenciones",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: palette[0],
					StrokeWidth: 3,
					DotColor:    palette[0],
					DotWidth:    5,
					FillColor:   palette[0].WithAlpha(40),
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// barLayout splits the plot width between n bars and the gaps between them.
func barLayout(width, n int) (barWidth, spacing int) {
	if n == 0 {
		return 0, 0
	}
	usable := width - 80
	barWidth = usable / (n * 2)
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 80 {
		barWidth = 80
	}
	spacing = (usable - n*barWidth) / n
	if spacing < 4 {
		spacing = 4
	}
	return barWidth, spacing
}

func countValues(cs []domain.CategoryCount) []chart.Value {
	out := make([]chart.Value, len(cs))
	for i, c := range cs {
		out[i] = chart.Value{Label: fmt.Sprintf("%s (%.1f%%)", truncate(c.Category), c.Percent), Value: float64(c.Count)}
	}
	return out
}

func shareValues(vs []domain.CategoryValue) []chart.Value {
	out := make([]chart.Value, 0, len(vs))
	for _, v := range vs {
		if v.Value <= 0 {
			continue
		}
		out = append(out, chart.Value{Label: fmt.Sprintf("%s (%.1f%%)", truncate(v.Category), v.Percent), Value: v.Value})
	}
	return out
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabel {
		return s
	}
	return string(r[:maxLabel])
}
