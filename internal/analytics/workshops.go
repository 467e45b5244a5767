package analytics

import (
	"sort"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// SummarizeWorkshops aggregates the workshop table. A nil table means the
// section is disabled and yields nil. Undated workshops count towards the
// totals but not the monthly series. Workshops without a participant count
// are left out of the participant totals, the average and the highlight.
func SummarizeWorkshops(records []domain.WorkshopRecord) *domain.WorkshopSummary {
	if records == nil {
		return nil
	}
	s := &domain.WorkshopSummary{TotalWorkshops: len(records)}

	byTopic := make(map[string]float64)
	byMonth := make(map[string]int)
	var best *domain.WorkshopRecord
	counted := 0
	for i := range records {
		w := &records[i]
		if w.HoursHeld != nil {
			s.TotalHours += *w.HoursHeld
		}
		if w.Date == nil {
			s.UndatedWorkshops++
		}
		if w.ParticipantCount == nil {
			continue
		}
		n := *w.ParticipantCount
		counted++
		s.TotalParticipants += n
		if w.Topic != "" {
			byTopic[w.Topic] += float64(n)
		}
		if w.Date != nil {
			byMonth[w.Date.Format("2006-01")] += n
		}
		if best == nil || n > *best.ParticipantCount {
			best = w
		}
	}

	if counted > 0 {
		s.AverageParticipants = round(float64(s.TotalParticipants)/float64(counted), 1)
	}
	s.TotalHours = round(s.TotalHours, 2)
	s.ParticipantsByTopic = Shares(byTopic)

	s.MonthlyParticipants = make([]domain.MonthlyParticipants, 0, len(byMonth))
	for m, n := range byMonth {
		s.MonthlyParticipants = append(s.MonthlyParticipants, domain.MonthlyParticipants{Month: m, Participants: n})
	}
	sort.Slice(s.MonthlyParticipants, func(a, b int) bool {
		return s.MonthlyParticipants[a].Month < s.MonthlyParticipants[b].Month
	})

	if best != nil {
		// The caption shows the date as written in the workbook.
		date := best.RawDate
		if date == "" && best.Date != nil {
			date = best.Date.Format("2006-01-02")
		}
		s.MostAttended = &domain.WorkshopHighlight{
			Topic:        best.Topic,
			Participants: *best.ParticipantCount,
			Date:         date,
		}
	}
	return s
}
