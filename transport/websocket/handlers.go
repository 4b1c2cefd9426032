package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

var (
	errInvalidPayload = errors.New("invalid payload")
	errTitleRequired  = errors.New("title is required")
	errRefreshRunning = errors.New("weather refresh already in progress")
)

func (that *Server) handleGameMove(ctx context.Context, message *Message) (any, error) {
	var payload movePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", errInvalidPayload)
	}

	return that.game.MakeMove(ctx, *payload.Row, *payload.Col), nil
}

func (that *Server) handleGameReset(ctx context.Context, _ *Message) (any, error) {
	return that.game.Reset(ctx), nil
}

// handleWeatherRefresh - starts a lookup and returns at once; the result arrives with a later dashboard push.
// At most one lookup runs at a time and it stops with the server lifecycle, not the connection.
func (that *Server) handleWeatherRefresh(_ context.Context, _ *Message) (any, error) {
	if that.lifecycle.Err() != nil {
		return nil, that.lifecycle.Err()
	}

	if !that.refreshing.CompareAndSwap(false, true) {
		return nil, errRefreshRunning
	}

	that.background.Add(1)
	go func() {
		defer that.background.Done()
		defer that.refreshing.Store(false)

		that.weather.RequestLocationAndWeather(that.lifecycle)
	}()

	return nil, nil
}

func (that *Server) handleNotificationAdd(ctx context.Context, message *Message) (any, error) {
	var payload notificationPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if payload.Title == "" {
		return nil, errTitleRequired
	}

	return that.telemetry.AddNotification(ctx, payload.Title, payload.Message, entity.ParseSeverity(payload.Type)), nil
}
