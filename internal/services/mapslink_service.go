package services

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tramper/internal/models/response_models"
	"tramper/pkg/utils"
)

// MapsLinkService resolves a shared Google Maps short link into a name and
// coordinates by following the redirect and probing the expanded URL for the
// coordinate encodings Google uses.
type MapsLinkService interface {
	Resolve(ctx context.Context, link string) (*response_models.MapsLinkResponse, error)
}

type mapsLinkService struct {
	http *http.Client
}

func NewMapsLinkService() MapsLinkService {
	return &mapsLinkService{
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Coordinate encodings, tried in order.
var (
	atPattern    = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	d3Pattern    = regexp.MustCompile(`!3d(-?\d+\.\d+)`)
	d4Pattern    = regexp.MustCompile(`!4d(-?\d+\.\d+)`)
	queryPattern = regexp.MustCompile(`[?&](?:query|q)=(-?\d+\.\d+),(-?\d+\.\d+)`)
	llPattern    = regexp.MustCompile(`[?&]ll=(-?\d+\.\d+),(-?\d+\.\d+)`)
	ftidPattern  = regexp.MustCompile(`!8m2!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)
	dataPattern  = regexp.MustCompile(`data=.*?!3d(-?\d+\.\d+).*?!4d(-?\d+\.\d+)`)

	placePattern = regexp.MustCompile(`/place/([^/@]+)`)
	qNamePattern = regexp.MustCompile(`[?&]q=([^&]+)`)
)

func (s *mapsLinkService) Resolve(ctx context.Context, link string) (*response_models.MapsLinkResponse, error) {
	if link == "" {
		return nil, utils.ErrURLRequired
	}
	if !strings.Contains(link, "goo.gl") && !strings.Contains(link, "maps.app.goo.gl") {
		return nil, utils.ErrUnsupportedMapLink
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return nil, utils.ErrLinkResolveFailed
	}
	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("Error resolving maps link: %v", err)
		return nil, utils.ErrLinkResolveFailed
	}
	defer resp.Body.Close()

	resolvedURL := resp.Request.URL.String()

	lat, lng, found := extractCoordinates(resolvedURL)
	name, address := extractPlace(resolvedURL)

	out := &response_models.MapsLinkResponse{
		Name:        name,
		Address:     address,
		ResolvedURL: resolvedURL,
	}
	if !found {
		// Coordinates missing is fine; the caller can geocode by name.
		out.NeedsGeocode = true
		return out, nil
	}
	out.Lat = &lat
	out.Lng = &lng
	return out, nil
}

func extractCoordinates(resolvedURL string) (lat, lng float64, ok bool) {
	if m := atPattern.FindStringSubmatch(resolvedURL); m != nil {
		return parsePair(m[1], m[2])
	}
	d3 := d3Pattern.FindStringSubmatch(resolvedURL)
	d4 := d4Pattern.FindStringSubmatch(resolvedURL)
	if d3 != nil && d4 != nil {
		return parsePair(d3[1], d4[1])
	}
	if m := queryPattern.FindStringSubmatch(resolvedURL); m != nil {
		return parsePair(m[1], m[2])
	}
	if m := llPattern.FindStringSubmatch(resolvedURL); m != nil {
		return parsePair(m[1], m[2])
	}
	if m := ftidPattern.FindStringSubmatch(resolvedURL); m != nil {
		return parsePair(m[1], m[2])
	}
	if m := dataPattern.FindStringSubmatch(resolvedURL); m != nil {
		return parsePair(m[1], m[2])
	}
	return 0, 0, false
}

func parsePair(latStr, lngStr string) (float64, float64, bool) {
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

func extractPlace(resolvedURL string) (name, address string) {
	name = "Custom Location"

	if m := placePattern.FindStringSubmatch(resolvedURL); m != nil {
		name = decodePlus(m[1])
	}

	// Mobile share links put "Name, Address" in q=.
	if m := qNamePattern.FindStringSubmatch(resolvedURL); m != nil {
		full := decodePlus(m[1])
		parts := strings.Split(full, ",")
		name = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			address = strings.TrimSpace(strings.Join(parts[1:], ","))
		}
	}
	return name, address
}

func decodePlus(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}
