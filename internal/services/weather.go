package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gowabot/gowabot/internal/config"
)

// Observation is a current-weather reading for one location.
type Observation struct {
	City        string
	Description string
	TempC       float64
	Humidity    int
	WindSpeed   float64
}

// Weather looks up current conditions via the OpenWeatherMap API.
type Weather struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	units      string
	lang       string
}

// NewWeather creates an OpenWeatherMap client from the weather configuration.
func NewWeather(httpClient *http.Client, cfg config.WeatherConfig) *Weather {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Weather{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		lang:       cfg.Lang,
	}
}

// Configured reports whether an API key is set.
func (w *Weather) Configured() bool {
	return w.apiKey != ""
}

type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// Current fetches the current weather for the named city.
func (w *Weather) Current(ctx context.Context, city string) (*Observation, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.apiKey)
	q.Set("units", w.units)
	q.Set("lang", w.lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Message != "" {
			return nil, fmt.Errorf("weather lookup failed: %s", decoded.Message)
		}
		return nil, fmt.Errorf("weather returned status %d", resp.StatusCode)
	}

	obs := &Observation{
		City:      decoded.Name,
		TempC:     decoded.Main.Temp,
		Humidity:  decoded.Main.Humidity,
		WindSpeed: decoded.Wind.Speed,
	}
	if len(decoded.Weather) > 0 {
		obs.Description = decoded.Weather[0].Description
	}
	return obs, nil
}
