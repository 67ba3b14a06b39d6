package utils

import "time"

// New Zealand time (NZDT during the trip window)
var nzLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Pacific/Auckland"); err == nil {
		return loc
	}
	return time.FixedZone("NZDT", 13*3600)
}()

// Sync metadata stores milliseconds since epoch, matching the wire format.
func NowUnixMillis() int64 { return time.Now().UnixMilli() }

// Convert an epoch value in milliseconds to NZ time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixMillisNZ(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(t).In(nzLoc)
}

func FormatRFC3339NZ(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(nzLoc).Format(time.RFC3339)
}
