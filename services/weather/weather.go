package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Service exposes the weather lookup consumed by the chat dispatcher.
type Service interface {
	// GetCurrentWeather returns a short human-readable description of the
	// current weather in the given city.
	GetCurrentWeather(ctx context.Context, city string) (string, error)
}

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherService implements Service against the OpenWeather current-weather API.
type OpenWeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherService creates a weather service with a bounded HTTP client.
func NewOpenWeatherService(apiKey string) *OpenWeatherService {
	return &OpenWeatherService{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// NewOpenWeatherServiceWithBaseURL is used by tests to point at a stub server.
func NewOpenWeatherServiceWithBaseURL(apiKey, baseURL string) *OpenWeatherService {
	s := NewOpenWeatherService(apiKey)
	s.baseURL = baseURL
	return s
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Name string `json:"name"`
}

func (s *OpenWeatherService) GetCurrentWeather(ctx context.Context, city string) (string, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "vi")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call weather service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather service returned status %d for city %q", resp.StatusCode, city)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return "", fmt.Errorf("weather service returned no conditions for city %q", city)
	}

	return fmt.Sprintf("%s, %.0f°C", payload.Weather[0].Description, payload.Main.Temp), nil
}
