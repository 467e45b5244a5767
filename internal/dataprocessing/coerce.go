package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// coercer turns raw cell text into typed values and counts the cells that
// carried text but could not be converted.
type coercer struct {
	sentinel string
	failures map[string]int
}

func newCoercer(sentinel string) *coercer {
	return &coercer{sentinel: sentinel, failures: make(map[string]int)}
}

// text returns nil for empty cells. The null sentinel is kept verbatim.
func (c *coercer) text(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// number parses a numeric cell. Empty and sentinel cells are absent without
// a warning; any other unparsable text is absent and counted against column.
func (c *coercer) number(column, raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || c.isSentinel(s) {
		return nil
	}
	f, ok := parseNumber(s)
	if !ok {
		c.failures[column]++
		return nil
	}
	return &f
}

// integer parses a whole-number cell such as a year stored as 2023 or 2023.0.
func (c *coercer) integer(column, raw string) *int {
	f := c.number(column, raw)
	if f == nil {
		return nil
	}
	if *f != math.Trunc(*f) {
		c.failures[column]++
		return nil
	}
	i := int(*f)
	return &i
}

// isSentinel compares the trimmed cell with the sentinel exactly.
func (c *coercer) isSentinel(s string) bool {
	return c.sentinel != "" && s == c.sentinel
}

// warnings returns a copy of the per-column failure counts.
func (c *coercer) warnings() map[string]int {
	out := make(map[string]int, len(c.failures))
	for k, v := range c.failures {
		out[k] = v
	}
	return out
}

// parseNumber accepts plain decimals, a trailing percent sign and a decimal
// comma when no dot is present. NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
