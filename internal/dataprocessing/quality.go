package dataprocessing

import (
	"math"
	"strconv"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// columnValue extracts a column as text; ok is false when the cell is absent.
type columnValue func(*domain.InterventionRecord) (string, bool)

func textColumn(get func(*domain.InterventionRecord) *string) columnValue {
	return func(r *domain.InterventionRecord) (string, bool) {
		if v := get(r); v != nil {
			return *v, true
		}
		return "", false
	}
}

func numberColumn(get func(*domain.InterventionRecord) *float64) columnValue {
	return func(r *domain.InterventionRecord) (string, bool) {
		if v := get(r); v != nil {
			return strconv.FormatFloat(*v, 'f', -1, 64), true
		}
		return "", false
	}
}

var interventionColumnValues = map[string]columnValue{
	domain.ColProgram: func(r *domain.InterventionRecord) (string, bool) { return r.Program, r.Program != "" },
	domain.ColPhase:   textColumn(func(r *domain.InterventionRecord) *string { return r.Phase }),
	domain.ColCohort:  textColumn(func(r *domain.InterventionRecord) *string { return r.Cohort }),
	domain.ColExecutionYear: func(r *domain.InterventionRecord) (string, bool) {
		if r.ExecutionYear == nil {
			return "", false
		}
		return strconv.Itoa(*r.ExecutionYear), true
	},
	domain.ColMunicipality:    textColumn(func(r *domain.InterventionRecord) *string { return r.Municipality }),
	domain.ColSector:          textColumn(func(r *domain.InterventionRecord) *string { return r.Sector }),
	domain.ColGender:          textColumn(func(r *domain.InterventionRecord) *string { return r.Gender }),
	domain.ColTopic:           func(r *domain.InterventionRecord) (string, bool) { return r.Topic, r.Topic != "" },
	domain.ColConsultingHours: numberColumn(func(r *domain.InterventionRecord) *float64 { return r.ConsultingHours }),
	domain.ColSatisfaction:    numberColumn(func(r *domain.InterventionRecord) *float64 { return r.SatisfactionIndicator }),
	domain.ColSales:           numberColumn(func(r *domain.InterventionRecord) *float64 { return r.SalesIndicator }),
	domain.ColTechProcesses:   numberColumn(func(r *domain.InterventionRecord) *float64 { return r.TechProcessesIndicator }),
	domain.ColOnlinePresence:  numberColumn(func(r *domain.InterventionRecord) *float64 { return r.OnlinePresenceIndicator }),
	domain.ColTaxID:           textColumn(func(r *domain.InterventionRecord) *string { return r.TaxID }),
	domain.ColCompanyName:     textColumn(func(r *domain.InterventionRecord) *string { return r.CompanyName }),
	domain.ColPersonName:      textColumn(func(r *domain.InterventionRecord) *string { return r.PersonName }),
}

// InterventionQuality profiles every interventions column. A cell holding the
// null sentinel counts as present text but not towards completeness.
func InterventionQuality(records []domain.InterventionRecord, warnings map[string]int, sentinel string) []domain.ColumnQuality {
	out := make([]domain.ColumnQuality, 0, len(domain.InterventionColumns))
	for _, column := range domain.InterventionColumns {
		get := interventionColumnValues[column]
		q := domain.ColumnQuality{Column: column, CoercionFailures: warnings[column]}
		seen := make(map[string]struct{})
		for i := range records {
			v, ok := get(&records[i])
			if !ok {
				q.Missing++
				continue
			}
			if sentinel != "" && v == sentinel {
				q.Sentinel++
				continue
			}
			q.Present++
			seen[v] = struct{}{}
		}
		q.Distinct = len(seen)
		q.Completeness = completeness(q.Present, len(records))
		out = append(out, q)
	}
	return out
}

// WorkshopQuality profiles the workshops columns. Participants and hours
// count as missing when their cell was empty or failed coercion.
func WorkshopQuality(records []domain.WorkshopRecord, warnings map[string]int) []domain.ColumnQuality {
	topic := domain.ColumnQuality{Column: domain.ColWorkshopTopic}
	date := domain.ColumnQuality{Column: domain.ColWorkshopDate, CoercionFailures: warnings[domain.ColWorkshopDate]}
	participants := domain.ColumnQuality{Column: domain.ColWorkshopParticipants, CoercionFailures: warnings[domain.ColWorkshopParticipants]}
	hours := domain.ColumnQuality{Column: domain.ColWorkshopHours, CoercionFailures: warnings[domain.ColWorkshopHours]}
	topics := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, r := range records {
		if r.ParticipantCount == nil {
			participants.Missing++
		} else {
			participants.Present++
		}
		if r.HoursHeld == nil {
			hours.Missing++
		} else {
			hours.Present++
		}
		if r.Topic == "" {
			topic.Missing++
		} else {
			topic.Present++
			topics[r.Topic] = struct{}{}
		}
		if r.Date == nil {
			date.Missing++
		} else {
			date.Present++
			months[r.Date.Format("2006-01")] = struct{}{}
		}
	}
	topic.Distinct = len(topics)
	topic.Completeness = completeness(topic.Present, len(records))
	date.Distinct = len(months)
	date.Completeness = completeness(date.Present, len(records))
	participants.Completeness = completeness(participants.Present, len(records))
	hours.Completeness = completeness(hours.Present, len(records))

	return []domain.ColumnQuality{topic, participants, hours, date}
}

func completeness(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}
