package instructions

import (
	"fmt"
	"math"
)

// FormatDistance renders meters for display: whole meters under 10,
// the nearest 10 meters up to 999, and kilometers with one decimal above.
func FormatDistance(meters float64) string {
	switch {
	case meters < 10:
		n := int(math.Round(meters))
		if n == 1 {
			return "1 meter"
		}
		return fmt.Sprintf("%d meters", n)
	case meters < 1000:
		return fmt.Sprintf("%d meters", int(math.Round(meters/10)*10))
	default:
		return fmt.Sprintf("%.1f kilometers", meters/1000)
	}
}

// FormatMinutes renders a walking estimate
func FormatMinutes(minutes int) string {
	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}

// Summary is the one-line distance and walking-time header shown above a
// list of instructions.
func Summary(totalMeters float64, walkingMinutes int) string {
	return fmt.Sprintf("%s, %s", FormatDistance(totalMeters), FormatMinutes(walkingMinutes))
}
