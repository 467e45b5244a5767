package domain

// CategoryCount is one bar or slice of a count breakdown.
type CategoryCount struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// CategoryValue is one bar or slice of a numeric breakdown.
type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Percent  float64 `json:"percent,omitempty"`
}

// YearCount is one point of the yearly evolution series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Matrix is a full row x column contingency table. Missing combinations are zero.
type Matrix struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// At returns the cell for the given row and column labels, zero if absent.
func (m Matrix) At(row, col string) int {
	for i, r := range m.Rows {
		if r != row {
			continue
		}
		for j, c := range m.Columns {
			if c == col {
				return m.Cells[i][j]
			}
		}
	}
	return 0
}

// CompanyCount is the number of interventions received by one company.
type CompanyCount struct {
	CompanyID   string  `json:"company_id"`
	DisplayName *string `json:"display_name"`
	Count       int     `json:"count"`
}

// HistogramBin counts companies whose intervention count falls in [Lower, Upper).
// Upper is zero for the open-ended last bin.
type HistogramBin struct {
	Label     string `json:"label"`
	Lower     int    `json:"lower"`
	Upper     int    `json:"upper,omitempty"`
	Companies int    `json:"companies"`
}

// Threshold is a company count with its share of all profiled companies.
type Threshold struct {
	Companies int     `json:"companies"`
	Percent   float64 `json:"percent"`
}

// CompanyTableRow is one row of the exported top-companies table.
type CompanyTableRow struct {
	Rank          int     `json:"rank"`
	CompanyID     string  `json:"company_id"`
	Company       *string `json:"company"`
	Interventions int     `json:"interventions"`
	TotalHours    float64 `json:"total_hours"`
	Municipality  *string `json:"municipality"`
	Sector        *string `json:"sector"`
	Programs      string  `json:"programs"`
}

// IndicatorGauge summarizes a 0-100 outcome score.
type IndicatorGauge struct {
	Evaluated int     `json:"evaluated"`
	Average   float64 `json:"average"`
	Rescaled  bool    `json:"rescaled"`
}

// SatisfactionSummary extends the gauge with the highly satisfied share.
type SatisfactionSummary struct {
	IndicatorGauge
	Target               float64 `json:"target"`
	HighlySatisfied      int     `json:"highly_satisfied"`
	HighlySatisfiedShare float64 `json:"highly_satisfied_percent"`
}

// SalesImpact classifies the sales indicator by sign.
type SalesImpact struct {
	Measured           int     `json:"measured"`
	Improved           int     `json:"improved"`
	Unchanged          int     `json:"unchanged"`
	Declined           int     `json:"declined"`
	AverageImprovement float64 `json:"average_improvement"`
}

// IndicatorSet groups the four outcome indicators.
type IndicatorSet struct {
	Satisfaction   *SatisfactionSummary `json:"satisfaction"`
	Sales          *SalesImpact         `json:"sales"`
	TechProcesses  *IndicatorGauge      `json:"tech_processes"`
	OnlinePresence *IndicatorGauge      `json:"online_presence"`
}

// WorkshopHighlight is the most attended workshop.
type WorkshopHighlight struct {
	Topic        string `json:"topic"`
	Participants int    `json:"participants"`
	Date         string `json:"date"`
}

// MonthlyParticipants is one point of the monthly workshop series.
type MonthlyParticipants struct {
	Month        string `json:"month"`
	Participants int    `json:"participants"`
}

// WorkshopSummary aggregates the workshop dataset.
type WorkshopSummary struct {
	TotalWorkshops      int                   `json:"total_workshops"`
	TotalHours          float64               `json:"total_hours"`
	TotalParticipants   int                   `json:"total_participants"`
	AverageParticipants float64               `json:"average_participants"`
	ParticipantsByTopic []CategoryValue       `json:"participants_by_topic"`
	MonthlyParticipants []MonthlyParticipants `json:"monthly_participants"`
	UndatedWorkshops    int                   `json:"undated_workshops"`
	MostAttended        *WorkshopHighlight    `json:"most_attended,omitempty"`
}
