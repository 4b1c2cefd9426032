package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/homeboard-backend/internal/config"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
	"github.com/rocketscienceinc/homeboard-backend/internal/repository"
	"github.com/rocketscienceinc/homeboard-backend/internal/repository/storage"
	"github.com/rocketscienceinc/homeboard-backend/internal/scheduler"
	"github.com/rocketscienceinc/homeboard-backend/internal/service"
	"github.com/rocketscienceinc/homeboard-backend/internal/telemetry"
	"github.com/rocketscienceinc/homeboard-backend/internal/usecase"
	"github.com/rocketscienceinc/homeboard-backend/transport/rest"
	"github.com/rocketscienceinc/homeboard-backend/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	statsRepo := repository.NewStatsRepository(redisStorage.Connection)
	settingsRepo := repository.NewSettingsRepository(redisStorage.Connection)
	notificationRepo := repository.NewNotificationRepository(redisStorage.Connection)
	historyRepo := repository.NewHistoryRepository(sqliteStorage.Connection)

	simulator := telemetry.NewSimulator(logger, newRand(), notificationRepo)
	if err = simulator.Restore(ctx); err != nil {
		log.Warn("could not restore notifications", "error", err)
	}

	gameManager := usecase.NewGameManager(
		logger,
		usecase.GameSettings{
			ProfileID:     conf.Game.ProfileID,
			OpponentDelay: conf.Game.OpponentDelay,
		},
		service.NewBotService(newRand()),
		scheduler.New(),
		statsRepo,
		historyRepo,
		simulator,
	)

	if err = gameManager.LoadStats(ctx); err != nil {
		log.Warn("could not load game stats", "error", err)
	}

	weatherService := newWeatherService(logger, conf.Weather, simulator)

	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(gameManager, simulator, weatherService)

	group, groupCtx := errgroup.WithContext(ctx)

	stream := websocket.New(groupCtx, logger, conf.Telemetry.PushInterval, gameManager, simulator, weatherService, dashboardUseCase)
	handlers := rest.NewHandlers(logger, gameManager, simulator, weatherService, settingsUseCase, dashboardUseCase)
	server := rest.NewServer(conf.HTTPPort, handlers.InitRoutes(stream))

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		return server.Start()
	})

	group.Go(func() error {
		simulator.Run(groupCtx, conf.Telemetry.TickInterval)
		return nil
	})

	group.Go(func() error {
		weatherService.RequestLocationAndWeather(groupCtx)
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down")

		gameManager.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr := server.Shutdown(shutdownCtx)
		stream.Wait()

		return shutdownErr
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}

	return nil
}

func newWeatherService(logger *slog.Logger, conf config.Weather, notifier *telemetry.Simulator) *service.WeatherService {
	// Each lookup is bounded by its own context deadline (locate-timeout, fetch-timeout).
	client := &http.Client{}

	var (
		provider service.WeatherProvider
		live     bool
	)

	if conf.APIKey != "" {
		provider = service.NewOpenWeatherClient(client, conf.BaseURL, conf.APIKey)
		live = true
	} else {
		provider = service.NewSimulatedWeather(newRand())
	}

	return service.NewWeatherService(
		logger,
		service.WeatherSettings{
			LocateTimeout: conf.LocateTimeout,
			FetchTimeout:  conf.FetchTimeout,
			Fallback: entity.Location{
				Latitude:  conf.FallbackLatitude,
				Longitude: conf.FallbackLongitude,
			},
		},
		service.NewLocator(conf, client),
		provider,
		live,
		notifier,
	)
}

// newRand - each consumer owns its generator; *rand.Rand is not safe for concurrent use.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
}
