// Package weather fetches the Open-Meteo daily forecast for the route's
// central point and caches it in the local store for an hour. A failed
// fetch falls back to the cached forecast even when stale.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"tramper/internal/localstore"
	"tramper/internal/models/trip_models"
)

const cacheDuration = time.Hour

// Central South Island point; the forecast covers the general region.
const (
	forecastLat = -42.5
	forecastLng = 171.5
)

type codeInfo struct {
	Description string
	Icon        string
}

// Weather codes from Open-Meteo.
var weatherDescriptions = map[int]codeInfo{
	0:  {"Clear sky", "sun"},
	1:  {"Mainly clear", "sun"},
	2:  {"Partly cloudy", "cloud-sun"},
	3:  {"Overcast", "cloud"},
	45: {"Fog", "smog"},
	48: {"Depositing rime fog", "smog"},
	51: {"Light drizzle", "cloud-rain"},
	53: {"Moderate drizzle", "cloud-rain"},
	55: {"Dense drizzle", "cloud-rain"},
	61: {"Slight rain", "cloud-rain"},
	63: {"Moderate rain", "cloud-showers-heavy"},
	65: {"Heavy rain", "cloud-showers-heavy"},
	71: {"Slight snow", "snowflake"},
	73: {"Moderate snow", "snowflake"},
	75: {"Heavy snow", "snowflake"},
	80: {"Slight rain showers", "cloud-sun-rain"},
	81: {"Moderate rain showers", "cloud-showers-heavy"},
	82: {"Violent rain showers", "cloud-showers-heavy"},
	95: {"Thunderstorm", "bolt"},
}

func Icon(code int) string {
	if info, ok := weatherDescriptions[code]; ok {
		return info.Icon
	}
	return "question"
}

func Description(code int) string {
	if info, ok := weatherDescriptions[code]; ok {
		return info.Description
	}
	return "Unknown"
}

type Service struct {
	store   *localstore.Store
	http    *http.Client
	baseURL string
	now     func() time.Time
}

func NewService(store *localstore.Store, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		store:   store,
		http:    httpClient,
		baseURL: "https://api.open-meteo.com/v1/forecast",
		now:     time.Now,
	}
}

// Fetch returns the 14-day forecast, from cache when fresh enough.
// Returns nil when neither the network nor the cache can provide data.
func (s *Service) Fetch(ctx context.Context, forceRefresh bool) *trip_models.WeatherData {
	if !forceRefresh {
		cached, err := s.store.CachedWeather(ctx)
		if err == nil && cached != nil && s.now().UnixMilli()-cached.Timestamp < cacheDuration.Milliseconds() {
			return &cached.Data
		}
	}

	data, err := s.fetchRemote(ctx)
	if err != nil {
		log.Printf("Failed to fetch weather: %v", err)
		// Stale cache beats nothing.
		if cached, cerr := s.store.CachedWeather(ctx); cerr == nil && cached != nil {
			return &cached.Data
		}
		return nil
	}

	if err := s.store.SetCachedWeather(ctx, *data); err != nil {
		log.Printf("Failed to cache weather: %v", err)
	}
	return data
}

func (s *Service) fetchRemote(ctx context.Context) (*trip_models.WeatherData, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprint(forecastLat))
	q.Set("longitude", fmt.Sprint(forecastLng))
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("timezone", "Pacific/Auckland")
	q.Set("forecast_days", "14")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather fetch failed: %s", resp.Status)
	}

	var payload struct {
		Daily struct {
			Time                        []string  `json:"time"`
			WeatherCode                 []int     `json:"weather_code"`
			Temperature2mMax            []float64 `json:"temperature_2m_max"`
			Temperature2mMin            []float64 `json:"temperature_2m_min"`
			PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	data := &trip_models.WeatherData{}
	for i, date := range payload.Daily.Time {
		day := trip_models.DailyWeather{Date: date}
		if i < len(payload.Daily.Temperature2mMax) {
			day.MaxTemp = int(math.Round(payload.Daily.Temperature2mMax[i]))
		}
		if i < len(payload.Daily.Temperature2mMin) {
			day.MinTemp = int(math.Round(payload.Daily.Temperature2mMin[i]))
		}
		if i < len(payload.Daily.PrecipitationProbabilityMax) {
			day.PrecipitationChance = payload.Daily.PrecipitationProbabilityMax[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		data.Daily = append(data.Daily, day)
	}
	return data, nil
}
