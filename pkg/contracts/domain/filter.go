package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// All is the distinguished filter value meaning "no restriction".
const All = "All"

// DefaultNullSentinel is the literal text the source data uses for an absent
// value. It is distinct from an empty cell.
const DefaultNullSentinel = "NAN"

// Dimension names a categorical column of the interventions table.
type Dimension string

const (
	DimProgram      Dimension = "program"
	DimPhase        Dimension = "phase"
	DimCohort       Dimension = "cohort"
	DimYear         Dimension = "year"
	DimMunicipality Dimension = "municipality"
	DimSector       Dimension = "sector"
	DimGender       Dimension = "gender"
	DimTopic        Dimension = "topic"
)

// FilterDimensions are the seven user-facing filter dimensions in display order.
var FilterDimensions = []Dimension{
	DimProgram, DimPhase, DimCohort, DimYear, DimMunicipality, DimSector, DimGender,
}

// ParseDimension converts a name such as "sector" into a Dimension.
func ParseDimension(name string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(name)))
	switch d {
	case DimProgram, DimPhase, DimCohort, DimYear, DimMunicipality, DimSector, DimGender, DimTopic:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", name)
}

// KeepsNulls reports whether records with a null value in this dimension are
// retained by any active filter. Only phase and cohort behave this way.
func (d Dimension) KeepsNulls() bool {
	return d == DimPhase || d == DimCohort
}

// Value returns the record's value for the dimension and whether it is present.
// Years are rendered as decimal strings.
func (d Dimension) Value(r *InterventionRecord) (string, bool) {
	switch d {
	case DimProgram:
		return r.Program, r.Program != ""
	case DimTopic:
		return r.Topic, r.Topic != ""
	case DimPhase:
		return deref(r.Phase)
	case DimCohort:
		return deref(r.Cohort)
	case DimMunicipality:
		return deref(r.Municipality)
	case DimSector:
		return deref(r.Sector)
	case DimGender:
		return deref(r.Gender)
	case DimYear:
		if r.ExecutionYear == nil {
			return "", false
		}
		return strconv.Itoa(*r.ExecutionYear), true
	}
	return "", false
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// Measure names a numeric column of the interventions table.
type Measure string

const (
	MeasureConsultingHours Measure = "consulting_hours"
	MeasureSatisfaction    Measure = "satisfaction"
	MeasureSales           Measure = "sales"
	MeasureTechProcesses   Measure = "tech_processes"
	MeasureOnlinePresence  Measure = "online_presence"
)

// Value returns the record's value for the measure, nil when absent.
func (m Measure) Value(r *InterventionRecord) *float64 {
	switch m {
	case MeasureConsultingHours:
		return r.ConsultingHours
	case MeasureSatisfaction:
		return r.SatisfactionIndicator
	case MeasureSales:
		return r.SalesIndicator
	case MeasureTechProcesses:
		return r.TechProcessesIndicator
	case MeasureOnlinePresence:
		return r.OnlinePresenceIndicator
	}
	return nil
}

// FilterSelection maps each dimension to its accepted values. A dimension
// that is missing, empty, or contains All is unrestricted.
type FilterSelection map[Dimension][]string

// Active reports whether the selection restricts dimension d.
func (s FilterSelection) Active(d Dimension) bool {
	values := s[d]
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v == All {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the selection.
func (s FilterSelection) Clone() FilterSelection {
	out := make(FilterSelection, len(s))
	for d, values := range s {
		out[d] = append([]string(nil), values...)
	}
	return out
}

// Normalized returns a copy with every filter dimension present, unrestricted
// dimensions collapsed to [All]. It is the form echoed back to clients.
func (s FilterSelection) Normalized() map[Dimension][]string {
	out := make(map[Dimension][]string, len(FilterDimensions))
	for _, d := range FilterDimensions {
		if s.Active(d) {
			out[d] = append([]string(nil), s[d]...)
		} else {
			out[d] = []string{All}
		}
	}
	return out
}
