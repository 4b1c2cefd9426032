package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type gameUseCase interface {
	State() entity.Snapshot
	MakeMove(ctx context.Context, row, col int) entity.Snapshot
	Reset(ctx context.Context) entity.Snapshot
	History(ctx context.Context, limit int) ([]entity.GameResult, error)
}

type telemetryService interface {
	Readings() entity.ReadingSet
	Channels() []entity.ChannelSpec
	Notifications() []entity.Notification
	AddNotification(ctx context.Context, title, message string, severity entity.Severity) []entity.Notification
}

type weatherService interface {
	State() entity.WeatherState
	RequestLocationAndWeather(ctx context.Context) entity.Weather
}

type settingsUseCase interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type dashboardUseCase interface {
	Snapshot() entity.Dashboard
}

// Handlers - HTTP surface of the dashboard.
type Handlers struct {
	logger *slog.Logger

	game      gameUseCase
	telemetry telemetryService
	weather   weatherService
	settings  settingsUseCase
	dashboard dashboardUseCase
}

func NewHandlers(
	logger *slog.Logger,
	game gameUseCase,
	telemetry telemetryService,
	weather weatherService,
	settings settingsUseCase,
	dashboard dashboardUseCase,
) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),

		game:      game,
		telemetry: telemetry,
		weather:   weather,
		settings:  settings,
		dashboard: dashboard,
	}
}

// InitRoutes - builds the router; stream is mounted on /ws when given.
func (that *Handlers) InitRoutes(stream http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", that.ping)

	api := router.Group("/api/v1")
	{
		api.GET("/dashboard", that.getDashboard)

		that.registerGameRoutes(api)
		that.registerTelemetryRoutes(api)
		that.registerWeatherRoutes(api)
		that.registerSettingsRoutes(api)
	}

	if stream != nil {
		router.GET("/ws", gin.WrapH(stream))
	}

	return router
}

func (that *Handlers) registerGameRoutes(api *gin.RouterGroup) {
	game := api.Group("/game")
	{
		game.GET("", that.getGame)
		// Body example: {"row":0,"col":2}
		game.POST("/move", that.makeMove)
		game.POST("/reset", that.resetGame)
		game.GET("/history", that.getHistory)
	}
}

func (that *Handlers) registerTelemetryRoutes(api *gin.RouterGroup) {
	api.GET("/telemetry", that.getTelemetry)

	notifications := api.Group("/notifications")
	{
		notifications.GET("", that.getNotifications)
		notifications.POST("", that.addNotification)
	}
}

func (that *Handlers) registerWeatherRoutes(api *gin.RouterGroup) {
	weather := api.Group("/weather")
	{
		weather.GET("", that.getWeather)
		weather.POST("/refresh", that.refreshWeather)
	}
}

func (that *Handlers) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("", that.getSettings)
		settings.GET("/:key", that.getSetting)
		settings.PUT("/:key", that.putSetting)
	}
}

func (that *Handlers) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, that.dashboard.Snapshot())
}

func errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
