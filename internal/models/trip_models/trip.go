// Package trip_models defines the JSON value types shared by the device
// store, the sync client and the server mirror. Field names are the wire
// format; two app generations already persist them.
package trip_models

// VisitedState maps a location id to whether it has been visited.
type VisitedState map[string]bool

// NotesState maps a location id to a free-text note. An empty note is
// never stored; it deletes the entry instead.
type NotesState map[string]string

// DayPlan is the user-curated order of activities for one trip date.
// Ids may reference static itinerary entries or custom activities;
// consumers skip ids they cannot resolve.
type DayPlan struct {
	Date              string   `json:"date"`
	OrderedActivities []string `json:"orderedActivities"`
	DepartureTime     string   `json:"departureTime,omitempty"` // HH:MM
}

// CustomActivity is a user-added point of interest, usually created from a
// shared Google Maps link. Category is always "custom" locally; the server
// copy omits it.
type CustomActivity struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Date     string  `json:"date"`
	Category string  `json:"category,omitempty"`
	Address  string  `json:"address,omitempty"`
}

const CustomCategory = "custom"

// ActivityEnrichment is optional extra info attached to any activity,
// static or custom.
type ActivityEnrichment struct {
	Address  string `json:"address,omitempty"`
	MapsLink string `json:"mapsLink,omitempty"`
}

type ActivityEnrichments map[string]ActivityEnrichment

type DailyWeather struct {
	Date                string  `json:"date"`
	MaxTemp             int     `json:"maxTemp"`
	MinTemp             int     `json:"minTemp"`
	PrecipitationChance float64 `json:"precipitationChance"`
	PrecipitationMm     float64 `json:"precipitationMm,omitempty"`
	WeatherCode         int     `json:"weatherCode"`
}

type WeatherData struct {
	Daily []DailyWeather `json:"daily"`
}

// WeatherCache is the persisted forecast plus its fetch time (epoch millis).
type WeatherCache struct {
	Data      WeatherData `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// DriveTimeCache maps a directional coordinate-pair key to minutes.
type DriveTimeCache map[string]int

// Snapshot is the full five-category state exchanged on pull and import.
// Any category may be empty.
type Snapshot struct {
	Visited             VisitedState        `json:"visited,omitempty"`
	Notes               NotesState          `json:"notes,omitempty"`
	DayPlans            map[string]DayPlan  `json:"dayPlans,omitempty"`
	CustomActivities    []CustomActivity    `json:"customActivities,omitempty"`
	ActivityEnrichments ActivityEnrichments `json:"activityEnrichments,omitempty"`
}
