package demo

import "fmt"

// FormatTick converts a tick to a wall-clock string such as "1h02m05.250s",
// "3m07.000s" or "4.125s". A non-positive interval yields "-".
func FormatTick(interval float64, tick int32) string {
	if interval <= 0 {
		return "-"
	}
	seconds := interval * float64(tick)
	if seconds < 0 {
		seconds = 0
	}
	out := ""
	hours := int(seconds / 3600)
	seconds -= float64(hours) * 3600
	if hours > 0 {
		out += fmt.Sprintf("%dh", hours)
	}
	minutes := int(seconds / 60)
	seconds -= float64(minutes) * 60
	if out != "" {
		out += fmt.Sprintf("%02dm", minutes)
	} else if minutes > 0 {
		out += fmt.Sprintf("%dm", minutes)
	}
	if out != "" {
		return out + fmt.Sprintf("%06.3fs", seconds)
	}
	return fmt.Sprintf("%.3fs", seconds)
}
