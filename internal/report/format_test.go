package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aleRizzolo/SeaScan/internal/measurements"
)

func sampleRecords() []measurements.Record {
	return []measurements.Record{
		{Beach: "north", PH: 7.1, Hydrocarbons: 2, ObservedAt: "3/14/2026, 9:30:00 AM"},
		{Beach: "south", PH: 6.9, Hydrocarbons: 5, ObservedAt: "3/15/2026, 4:05:12 PM"},
	}
}

func TestFull(t *testing.T) {
	out := Full(sampleRecords())
	require.Equal(t,
		"- north: ph: 7.1, hydrocarbons: 2 µg/L, daytime: 3/14/2026\n"+
			"- south: ph: 6.9, hydrocarbons: 5 µg/L, daytime: 3/15/2026\n",
		out)
}

func TestPHOnly(t *testing.T) {
	out := PHOnly(sampleRecords())
	require.Contains(t, out, "north: ph: 7.1")
	require.Contains(t, out, "south: ph: 6.9")
	require.NotContains(t, out, "hydrocarbons")
}

func TestHydrocarbonsOnly(t *testing.T) {
	out := HydrocarbonsOnly(sampleRecords())
	require.Contains(t, out, "north: hydrocarbons: 2 µg/L")
	require.Contains(t, out, "south: hydrocarbons: 5 µg/L")
	require.NotContains(t, out, "ph:")
}

func TestKeepsRecordOrder(t *testing.T) {
	records := []measurements.Record{
		{Beach: "venice_beach", PH: 8, Hydrocarbons: 1, ObservedAt: "1/2/2026, 8:00:00 AM"},
		{Beach: "long_beach", PH: 7, Hydrocarbons: 3, ObservedAt: "1/2/2026, 8:00:01 AM"},
	}
	out := PHOnly(records)
	require.Less(t, strings.Index(out, "venice_beach"), strings.Index(out, "long_beach"))
}

func TestEmptyRecords(t *testing.T) {
	require.Empty(t, Full(nil))
	require.Empty(t, PHOnly(nil))
	require.Empty(t, HydrocarbonsOnly(nil))
}

func TestDayPortion(t *testing.T) {
	require.Equal(t, "3/14/2026", DayPortion("3/14/2026, 9:30:00 AM"))
	require.Equal(t, "3/14/2026", DayPortion("3/14/2026"))
	require.Equal(t, "", DayPortion(""))
}
