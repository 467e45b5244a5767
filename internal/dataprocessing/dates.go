package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var spanishMonths = map[string]string{
	"enero":      "January",
	"febrero":    "February",
	"marzo":      "March",
	"abril":      "April",
	"mayo":       "May",
	"junio":      "June",
	"julio":      "July",
	"agosto":     "August",
	"septiembre": "September",
	"setiembre":  "September",
	"octubre":    "October",
	"noviembre":  "November",
	"diciembre":  "December",
}

var dateLayouts = []string{
	"2-January-2006",
	"2-Jan-2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"January 2, 2006",
}

// ParseWorkshopDate parses the free-text date of a workshop row. It accepts
// Excel serial numbers, English or Spanish month names ("15-marzo-2024",
// "15 de marzo de 2024") and day-first numeric layouts. The second return is
// false when the text is not a recognizable date.
func ParseWorkshopDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	s = normalizeMonthNames(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeMonthNames rewrites Spanish month names to English and drops the
// "de" connector so the result matches the standard layouts.
func normalizeMonthNames(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(fields) < 3 {
		return s
	}
	out := make([]string, 0, len(fields))
	translated := false
	for _, f := range fields {
		if f == "de" || f == "del" {
			continue
		}
		if en, ok := spanishMonths[f]; ok {
			out = append(out, en)
			translated = true
			continue
		}
		out = append(out, f)
	}
	if !translated {
		return s
	}
	return strings.Join(out, "-")
}
