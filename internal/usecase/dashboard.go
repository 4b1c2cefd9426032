package usecase

import (
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type gameState interface {
	State() entity.Snapshot
}

type telemetryState interface {
	Readings() entity.ReadingSet
	Notifications() []entity.Notification
}

type weatherState interface {
	State() entity.WeatherState
}

// DashboardUseCase - joins the independent widgets into one read model.
type DashboardUseCase struct {
	game      gameState
	telemetry telemetryState
	weather   weatherState
}

func NewDashboardUseCase(game gameState, telemetry telemetryState, weather weatherState) *DashboardUseCase {
	return &DashboardUseCase{
		game:      game,
		telemetry: telemetry,
		weather:   weather,
	}
}

func (that *DashboardUseCase) Snapshot() entity.Dashboard {
	return entity.Dashboard{
		Game:          that.game.State(),
		Telemetry:     that.telemetry.Readings(),
		Notifications: that.telemetry.Notifications(),
		Weather:       that.weather.State(),
	}
}
