package response_models

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DriveTimeResponse answers a fetchDriveTime action. DriveTime is nil when
// the route could not be computed; LimitReached flags quota exhaustion so
// clients stop asking for the rest of their session.
type DriveTimeResponse struct {
	Success      bool   `json:"success"`
	DriveTime    *int   `json:"driveTime"`
	LimitReached bool   `json:"limitReached,omitempty"`
	Error        string `json:"error,omitempty"`
}

type MapsLinkResponse struct {
	Name         string   `json:"name"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Address      string   `json:"address,omitempty"`
	ResolvedURL  string   `json:"resolvedUrl"`
	NeedsGeocode bool     `json:"needsGeocode,omitempty"`
}
