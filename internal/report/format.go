// Package report renders measurement records into the plain-text summaries
// sent to chats and email bodies. All functions are pure and keep the input
// record order.
package report

import (
	"strconv"
	"strings"

	"github.com/aleRizzolo/SeaScan/internal/measurements"
)

// Full renders one line per record with every reading.
func Full(records []measurements.Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(r.Beach)
		b.WriteString(": ph: ")
		b.WriteString(formatReading(r.PH))
		b.WriteString(", hydrocarbons: ")
		b.WriteString(formatReading(r.Hydrocarbons))
		b.WriteString(" µg/L, daytime: ")
		b.WriteString(DayPortion(r.ObservedAt))
		b.WriteString("\n")
	}
	return b.String()
}

// PHOnly renders one line per record with only the ph reading.
func PHOnly(records []measurements.Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(r.Beach)
		b.WriteString(": ph: ")
		b.WriteString(formatReading(r.PH))
		b.WriteString(", daytime: ")
		b.WriteString(DayPortion(r.ObservedAt))
		b.WriteString("\n")
	}
	return b.String()
}

// HydrocarbonsOnly renders one line per record with only the hydrocarbon reading.
func HydrocarbonsOnly(records []measurements.Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(r.Beach)
		b.WriteString(": hydrocarbons: ")
		b.WriteString(formatReading(r.Hydrocarbons))
		b.WriteString(" µg/L, daytime: ")
		b.WriteString(DayPortion(r.ObservedAt))
		b.WriteString("\n")
	}
	return b.String()
}

// DayPortion extracts the date part of a stored day-time value, which the
// sensors write as a locale string like "9/1/2026, 10:04:11 AM".
func DayPortion(observedAt string) string {
	day, _, _ := strings.Cut(observedAt, ",")
	return strings.TrimSpace(day)
}

// formatReading prints a reading without a trailing ".0" for whole values.
func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
