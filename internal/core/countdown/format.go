package countdown

import "fmt"

// FormatTime renders seconds as zero padded HH:MM:SS. Hours are not capped,
// so 100 hours and more print with three or more digits.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
