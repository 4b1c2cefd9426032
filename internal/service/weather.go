package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type notifier interface {
	AddNotification(ctx context.Context, title, message string, severity entity.Severity) []entity.Notification
}

type WeatherSettings struct {
	LocateTimeout time.Duration
	FetchTimeout  time.Duration
	Fallback      entity.Location
}

// WeatherService - locates the dashboard and keeps the latest weather reading.
// Failures degrade to fallback values and are reported as notifications.
type WeatherService struct {
	logger *slog.Logger

	mu    sync.RWMutex
	state entity.WeatherState

	// lookup serialises RequestLocationAndWeather calls.
	lookup sync.Mutex

	settings WeatherSettings
	locator  Locator
	provider WeatherProvider
	live     bool
	notifier notifier
}

// NewWeatherService - live marks provider as the real API; otherwise readings are simulated.
func NewWeatherService(
	logger *slog.Logger,
	settings WeatherSettings,
	locator Locator,
	provider WeatherProvider,
	live bool,
	notifier notifier,
) *WeatherService {
	return &WeatherService{
		logger: logger.With("component", "weather"),

		state: entity.WeatherState{Permission: entity.PermissionPrompt},

		settings: settings,
		locator:  locator,
		provider: provider,
		live:     live,
		notifier: notifier,
	}
}

func (that *WeatherService) State() entity.WeatherState {
	that.mu.RLock()
	defer that.mu.RUnlock()

	state := that.state
	if state.Weather != nil {
		weather := *state.Weather
		state.Weather = &weather
	}

	return state
}

// RequestLocationAndWeather - locates, fetches and stores the weather. Never fails:
// location errors fall back to the configured coordinates and fetch errors to a fixed reading.
// A cancelled ctx abandons the lookup without storing or notifying anything.
func (that *WeatherService) RequestLocationAndWeather(ctx context.Context) entity.Weather {
	log := that.logger.With("method", "RequestLocationAndWeather")

	that.lookup.Lock()
	defer that.lookup.Unlock()

	that.setLoading(true)
	defer that.setLoading(false)

	location, err := that.locate(ctx)
	if ctx.Err() != nil {
		log.Info("weather lookup cancelled", "error", ctx.Err())
		return FallbackWeather(that.settings.Fallback)
	}

	if err != nil {
		log.Warn("failed to locate, using fallback location", "error", err)

		that.setPermission(entity.PermissionDenied)
		that.notify(ctx, "Location Error", locationErrorMessage(err), entity.SeverityError)

		return that.fetchWeather(ctx, that.settings.Fallback)
	}

	that.setPermission(entity.PermissionGranted)
	weather := that.fetchWeather(ctx, location)
	that.notify(ctx, "Location Access", "Location permission granted successfully", entity.SeveritySuccess)

	return weather
}

func (that *WeatherService) locate(ctx context.Context) (entity.Location, error) {
	locateCtx, cancel := context.WithTimeout(ctx, that.settings.LocateTimeout)
	defer cancel()

	location, err := that.locator.Locate(locateCtx)
	if err != nil && errors.Is(locateCtx.Err(), context.DeadlineExceeded) && !isLocationError(err) {
		return entity.Location{}, apperror.ErrLocationTimeout
	}

	return location, err
}

func (that *WeatherService) fetchWeather(ctx context.Context, location entity.Location) entity.Weather {
	log := that.logger.With("method", "fetchWeather")

	fetchCtx, cancel := context.WithTimeout(ctx, that.settings.FetchTimeout)
	defer cancel()

	weather, err := that.provider.Fetch(fetchCtx, location)
	if ctx.Err() != nil {
		log.Info("weather fetch cancelled", "error", ctx.Err())
		return FallbackWeather(location)
	}

	if err != nil {
		log.Warn("failed to fetch weather, using fallback data", "error", err)

		weather = FallbackWeather(location)
		that.store(weather)
		that.notify(ctx, "Weather Error", "Using fallback weather data", entity.SeverityWarning)

		return weather
	}

	that.store(weather)

	severity := entity.SeverityInfo
	if that.live {
		severity = entity.SeveritySuccess
	}
	that.notify(ctx, "Weather Updated", "Weather data loaded for "+weather.Location, severity)

	log.Info("weather updated", "location", weather.Location, "source", weather.Source)

	return weather
}

func (that *WeatherService) store(weather entity.Weather) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Weather = &weather
}

func (that *WeatherService) setPermission(permission string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Permission = permission
}

func (that *WeatherService) setLoading(loading bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Loading = loading
}

func (that *WeatherService) notify(ctx context.Context, title, message string, severity entity.Severity) {
	if that.notifier != nil {
		that.notifier.AddNotification(ctx, title, message, severity)
	}
}

func isLocationError(err error) bool {
	return errors.Is(err, apperror.ErrGeolocationUnsupported) ||
		errors.Is(err, apperror.ErrLocationPermissionDenied) ||
		errors.Is(err, apperror.ErrLocationUnavailable) ||
		errors.Is(err, apperror.ErrLocationTimeout)
}

func locationErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGeolocationUnsupported):
		return "Geolocation is not supported on this host"
	case errors.Is(err, apperror.ErrLocationPermissionDenied):
		return "Location access denied by user"
	case errors.Is(err, apperror.ErrLocationUnavailable):
		return "Location information unavailable"
	case errors.Is(err, apperror.ErrLocationTimeout):
		return "Location request timed out"
	default:
		return "Unable to get location"
	}
}
