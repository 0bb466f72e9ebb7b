package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrLocationNotFound means the geocoder returned no match for the query.
var ErrLocationNotFound = errors.New("location not found")

// Place is one geocoder match. Name is the leading segment of the display
// name, which is what reports show.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Current holds the current conditions block of a forecast response.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

// Daily holds the parallel per-day arrays of a forecast response.
type Daily struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weathercode"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

type Forecast struct {
	Current Current `json:"current_weather"`
	Daily   Daily   `json:"daily"`
}

// API is the external weather capability consumed by the orchestration layer.
type API interface {
	Geocode(ctx context.Context, query string) (Place, error)
	Forecast(ctx context.Context, place Place, days int) (Forecast, error)
}

// HTTPClient implements API against geocode.maps.co and the Open-Meteo
// forecast endpoint.
type HTTPClient struct {
	geocodeBaseURL  string
	forecastBaseURL string
	client          *http.Client
}

func NewHTTPClient(geocodeBaseURL, forecastBaseURL string) *HTTPClient {
	return &HTTPClient{
		geocodeBaseURL:  strings.TrimRight(geocodeBaseURL, "/"),
		forecastBaseURL: strings.TrimRight(forecastBaseURL, "/"),
		client:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Geocode(ctx context.Context, query string) (Place, error) {
	u := c.geocodeBaseURL + "/search?q=" + url.QueryEscape(query)
	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := c.getJSON(ctx, u, &results); err != nil {
		return Place{}, err
	}
	if len(results) == 0 {
		return Place{}, ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse longitude: %w", err)
	}

	name := results[0].DisplayName
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	return Place{Name: strings.TrimSpace(name), Latitude: lat, Longitude: lon}, nil
}

func (c *HTTPClient) Forecast(ctx context.Context, place Place, days int) (Forecast, error) {
	if days <= 0 {
		days = 1
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "auto")

	var fc Forecast
	if err := c.getJSON(ctx, c.forecastBaseURL+"/v1/forecast?"+params.Encode(), &fc); err != nil {
		return Forecast{}, err
	}
	return fc, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("weather http error: status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
