package maps

import "fmt"

func GoogleMapsDirectionsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", lat, lng)
}

func GoogleMapsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", lat, lng)
}

// FormatDriveTime renders minutes as "45 min", "2h" or "2h 15m".
func FormatDriveTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
