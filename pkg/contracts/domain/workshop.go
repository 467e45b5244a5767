package domain

import "time"

// Source column names of the workshops workbook. Headers are trimmed before
// matching, so "Fecha " in the source maps to ColWorkshopDate.
const (
	ColWorkshopTopic        = "Tema"
	ColWorkshopParticipants = "Participantes"
	ColWorkshopHours        = "Horas"
	ColWorkshopDate         = "Fecha"
)

// WorkshopColumns lists the workshop columns in source order.
var WorkshopColumns = []string{
	ColWorkshopTopic, ColWorkshopParticipants, ColWorkshopHours, ColWorkshopDate,
}

// WorkshopRecord is one training workshop. It is independent of the
// intervention records and never joined with them. ParticipantCount and
// HoursHeld are nil when the cell is empty or not numeric.
type WorkshopRecord struct {
	Topic            string     `json:"topic"`
	ParticipantCount *int       `json:"participant_count"`
	HoursHeld        *float64   `json:"hours_held"`
	Date             *time.Time `json:"date"`
	RawDate          string     `json:"raw_date,omitempty"`
}
