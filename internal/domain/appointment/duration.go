package appointment

import (
	"fmt"
	"time"
)

// FormatDuration renders the elapsed time of an appointment:
// "45 mins" under an hour, "1h 30m" above, "2h" on the exact hour.
func FormatDuration(start, end time.Time) string {
	mins := int(end.Sub(start).Minutes())
	if mins < 60 {
		return fmt.Sprintf("%d mins", mins)
	}

	h := mins / 60
	m := mins % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
