package domain

import "time"

// Summary holds the headline metric cards of the dashboard.
type Summary struct {
	TotalInterventions   int     `json:"total_interventions"`
	DistinctCompanies    int     `json:"distinct_companies"`
	Municipalities       int     `json:"municipalities"`
	Corregimientos       int     `json:"corregimientos"`
	SectorsServed        int     `json:"sectors_served"`
	TotalConsultingHours float64 `json:"total_consulting_hours"`
}

// FilterOptions lists the selectable values per filter dimension, each list
// starting with All.
type FilterOptions map[Dimension][]string

// Breakdowns groups the chart series computed from the filtered view.
type Breakdowns struct {
	Topics                  []CategoryCount `json:"topics"`
	Gender                  []CategoryCount `json:"gender"`
	Municipalities          []CategoryCount `json:"municipalities"`
	Programs                []CategoryCount `json:"programs"`
	TopSectors              []CategoryCount `json:"top_sectors"`
	HoursByTopic            []CategoryValue `json:"hours_by_topic"`
	AverageHoursByTopic     []CategoryValue `json:"average_hours_by_topic"`
	CompaniesByMunicipality []CategoryCount `json:"companies_by_municipality"`
	CompaniesBySector       []CategoryCount `json:"companies_by_sector"`
	InterventionsByYear     []YearCount     `json:"interventions_by_year"`
	SectorByGender          Matrix          `json:"sector_by_gender"`
}

// ProfileSummary is the serializable view of a company profile.
type ProfileSummary struct {
	Companies    int            `json:"companies"`
	Mean         float64        `json:"mean_interventions"`
	Median       float64        `json:"median_interventions"`
	Max          int            `json:"max_interventions"`
	Single       Threshold      `json:"single_intervention"`
	Recurring    Threshold      `json:"recurring"`
	HighlyActive Threshold      `json:"highly_active"`
	Histogram    []HistogramBin `json:"histogram"`
	Top          []CompanyCount `json:"top"`
}

// Dashboard is the full payload for one filter selection.
type Dashboard struct {
	Filters     map[Dimension][]string `json:"filters"`
	Empty       bool                   `json:"empty"`
	Summary     Summary                `json:"summary"`
	Breakdowns  Breakdowns             `json:"breakdowns"`
	Indicators  IndicatorSet           `json:"indicators"`
	Profile     ProfileSummary         `json:"profile"`
	Workshops   *WorkshopSummary       `json:"workshops"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// ColumnQuality describes the completeness of one source column.
type ColumnQuality struct {
	Column           string  `json:"column"`
	Present          int     `json:"present"`
	Missing          int     `json:"missing"`
	Sentinel         int     `json:"sentinel"`
	Distinct         int     `json:"distinct"`
	CoercionFailures int     `json:"coercion_failures"`
	Completeness     float64 `json:"completeness_percent"`
}

// LoadReport records what the loader saw while reading one table.
type LoadReport struct {
	Table            string          `json:"table"`
	Path             string          `json:"path"`
	Sheet            string          `json:"sheet"`
	Rows             int             `json:"rows"`
	MissingColumns   []string        `json:"missing_columns,omitempty"`
	CoercionWarnings map[string]int  `json:"coercion_warnings"`
	Columns          []ColumnQuality `json:"columns,omitempty"`
	LoadedAt         time.Time       `json:"loaded_at"`
}

// QualityReport is the data quality view over both tables.
type QualityReport struct {
	Interventions LoadReport  `json:"interventions"`
	Workshops     *LoadReport `json:"workshops"`
}
