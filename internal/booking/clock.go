package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a wall-clock string ("9", "09:30") into an
// offset from midnight. 24:00 is accepted as the end of day.
func ParseClock(s string) (time.Duration, error) {
	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")

	hours, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	minutes := 0
	if hasMinutes {
		minutes, err = strconv.Atoi(minutePart)
		if err != nil || len(minutePart) != 2 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if d > dayLength {
		return 0, fmt.Errorf("time %q is past the end of day", s)
	}
	return d, nil
}

// FormatClock formats an offset from midnight as HH:MM
func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
