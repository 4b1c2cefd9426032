package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

// WeatherProvider - current conditions at a location.
type WeatherProvider interface {
	Fetch(ctx context.Context, location entity.Location) (entity.Weather, error)
}

type openWeatherClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenWeatherClient - current weather from the OpenWeatherMap API in metric units.
func NewOpenWeatherClient(client *http.Client, baseURL, apiKey string) WeatherProvider {
	return &openWeatherClient{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (that *openWeatherClient) Fetch(ctx context.Context, location entity.Location) (entity.Weather, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	query.Set("appid", that.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return entity.Weather{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return entity.Weather{}, fmt.Errorf("%w: %w", apperror.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Weather{}, fmt.Errorf("%w: status %d", apperror.ErrWeatherUnavailable, resp.StatusCode)
	}

	var data openWeatherResponse
	if err = json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return entity.Weather{}, fmt.Errorf("%w: failed to decode response: %w", apperror.ErrWeatherUnavailable, err)
	}

	weather := entity.Weather{
		Location:    data.Name,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    int(math.Round(data.Main.Humidity)),
		Pressure:    int(math.Round(data.Main.Pressure)),
		WindSpeed:   data.Wind.Speed,
		Source:      entity.WeatherSourceLive,
		Coordinates: location,
		UpdatedAt:   time.Now().UTC(),
	}

	if len(data.Weather) > 0 {
		weather.Condition = data.Weather[0].Main
		weather.Description = data.Weather[0].Description
	}

	return weather, nil
}

var simulatedConditions = []string{"Clear", "Clouds", "Rain", "Snow"}

type simulatedWeather struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulatedWeather - plausible readings by latitude band, used without an API key.
func NewSimulatedWeather(rnd *rand.Rand) WeatherProvider {
	return &simulatedWeather{rnd: rnd}
}

func (that *simulatedWeather) Fetch(_ context.Context, location entity.Location) (entity.Weather, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	name, tempBase, feelsBase := "Southern City", 25.0, 23.0
	switch {
	case location.Latitude > 50:
		name, tempBase, feelsBase = "Northern City", 5, 3
	case location.Latitude > 40:
		name, tempBase, feelsBase = "Temperate City", 15, 13
	}

	return entity.Weather{
		Location:    name,
		Temperature: math.Round(that.rnd.Float64()*15 + tempBase),
		FeelsLike:   math.Round(that.rnd.Float64()*15 + feelsBase),
		Humidity:    int(math.Round(that.rnd.Float64()*40 + 40)),
		Pressure:    int(math.Round(that.rnd.Float64()*50 + 1000)),
		Condition:   simulatedConditions[that.rnd.IntN(len(simulatedConditions))],
		Description: "based on your location",
		WindSpeed:   math.Round(that.rnd.Float64()*10 + 2),
		Source:      entity.WeatherSourceSimulated,
		Coordinates: location,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

// FallbackWeather - fixed reading served when the provider fails.
func FallbackWeather(location entity.Location) entity.Weather {
	return entity.Weather{
		Location:    "Your Location",
		Temperature: 22,
		FeelsLike:   24,
		Humidity:    60,
		Pressure:    1013,
		Condition:   "Clear",
		Description: "clear sky",
		WindSpeed:   5,
		Source:      entity.WeatherSourceFallback,
		Coordinates: location,
		UpdatedAt:   time.Now().UTC(),
	}
}
