package render

import (
	"fmt"
	"strings"

	"openf1telemetry/pkg/model"
)

// LapTime formats seconds as minutes:seconds.milliseconds.
func LapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	ms := int64(seconds*1000 + 0.5)
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms%60000/1000, ms%1000)
}

// isDurationColumn reports whether a column holds a duration in seconds,
// like lap_duration or duration_sector_2.
func isDurationColumn(name string) bool {
	return name == "lap_duration" || name == "pit_duration" || strings.HasPrefix(name, "duration_sector_")
}

func cell(column string, v model.Value, lapTimes bool) string {
	if lapTimes && isDurationColumn(column) {
		if f, ok := v.AsFloat(); ok {
			return LapTime(f)
		}
	}
	return v.String()
}
