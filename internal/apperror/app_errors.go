package apperror

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidSetting = errors.New("invalid setting")

	ErrGeolocationUnsupported   = errors.New("geolocation is not supported")
	ErrLocationPermissionDenied = errors.New("location access denied by user")
	ErrLocationUnavailable      = errors.New("location information unavailable")
	ErrLocationTimeout          = errors.New("location request timed out")

	ErrWeatherUnavailable = errors.New("weather data unavailable")
)
