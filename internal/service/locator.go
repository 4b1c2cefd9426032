package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
	"github.com/rocketscienceinc/homeboard-backend/internal/config"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

// Locator - resolves the dashboard's position.
type Locator interface {
	Locate(ctx context.Context) (entity.Location, error)
}

// NewLocator - picks the locator named in config; unknown names locate nothing.
func NewLocator(conf config.Weather, client *http.Client) Locator {
	switch conf.Locator {
	case config.LocatorStatic:
		return NewStaticLocator(entity.Location{Latitude: conf.Latitude, Longitude: conf.Longitude})
	case config.LocatorIP:
		return NewIPLocator(client, conf.IPLookupURL)
	default:
		return unsupportedLocator{}
	}
}

type unsupportedLocator struct{}

func (unsupportedLocator) Locate(context.Context) (entity.Location, error) {
	return entity.Location{}, apperror.ErrGeolocationUnsupported
}

type staticLocator struct {
	location entity.Location
}

func NewStaticLocator(location entity.Location) Locator {
	return &staticLocator{location: location}
}

func (that *staticLocator) Locate(ctx context.Context) (entity.Location, error) {
	if err := ctx.Err(); err != nil {
		return entity.Location{}, apperror.ErrLocationTimeout
	}

	return that.location, nil
}

type ipLocator struct {
	client *http.Client
	url    string
}

// NewIPLocator - geolocates the public address through an ip-api compatible endpoint.
func NewIPLocator(client *http.Client, url string) Locator {
	return &ipLocator{client: client, url: url}
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (that *ipLocator) Locate(ctx context.Context) (entity.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.url, nil)
	if err != nil {
		return entity.Location{}, fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return entity.Location{}, apperror.ErrLocationTimeout
		}
		return entity.Location{}, fmt.Errorf("%w: %w", apperror.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return entity.Location{}, apperror.ErrLocationPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return entity.Location{}, fmt.Errorf("%w: status %d", apperror.ErrLocationUnavailable, resp.StatusCode)
	}

	var lookup ipLookupResponse
	if err = json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return entity.Location{}, fmt.Errorf("%w: failed to decode lookup: %w", apperror.ErrLocationUnavailable, err)
	}

	if lookup.Status != "success" {
		return entity.Location{}, fmt.Errorf("%w: %s", apperror.ErrLocationUnavailable, lookup.Message)
	}

	return entity.Location{Latitude: lookup.Lat, Longitude: lookup.Lon}, nil
}
