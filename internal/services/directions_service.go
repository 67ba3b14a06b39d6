package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	mem "tramper/pkg/memcache"
	"tramper/pkg/utils"
)

// DirectionsService resolves the driving duration in minutes between two
// coordinates. It is the upstream of the fetchDriveTime sync action.
type DirectionsService interface {
	DriveMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error)
}

type MapboxDirectionsClient struct {
	HTTP        *http.Client
	AccessToken string
	Cache       mem.RouteCacheStore
	DefaultTTL  time.Duration
	Profile     string // "driving"
}

func NewMapboxDirectionsClient(cache mem.RouteCacheStore) *MapboxDirectionsClient {
	token := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if token == "" {
		panic("MAPBOX_ACCESS_TOKEN is empty")
	}
	return &MapboxDirectionsClient{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		AccessToken: token,
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
		Profile:     "driving",
	}
}

func (c *MapboxDirectionsClient) DriveMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error) {
	key := mem.RouteKey(fromLat, fromLng, toLat, toLng)
	if minutes, ok := c.Cache.Get(key); ok {
		return minutes, nil
	}

	coordStr := fmt.Sprintf("%f,%f;%f,%f", fromLng, fromLat, toLng, toLat)

	u := url.URL{
		Scheme: "https",
		Host:   "api.mapbox.com",
		Path:   fmt.Sprintf("/directions/v5/mapbox/%s/%s", c.Profile, coordStr),
	}
	q := url.Values{}
	q.Set("overview", "false")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrRouteLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, utils.ErrRouteLimitReached
	}
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("%w: bad status %s", utils.ErrRouteLookupFailed, resp.Status)
	}

	var payload struct {
		Routes []struct {
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: decode: %v", utils.ErrRouteLookupFailed, err)
	}
	if len(payload.Routes) == 0 {
		return 0, fmt.Errorf("%w: no route", utils.ErrRouteLookupFailed)
	}

	minutes := int(payload.Routes[0].Duration/60 + 0.5)
	c.Cache.Set(key, minutes, c.DefaultTTL)

	return minutes, nil
}
