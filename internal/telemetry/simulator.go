package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type notificationRepo interface {
	Push(ctx context.Context, notification entity.Notification) error
	List(ctx context.Context) ([]entity.Notification, error)
}

// Simulator - owns the sensor readings and the notification log.
type Simulator struct {
	logger *slog.Logger

	mu            sync.RWMutex
	specs         []entity.ChannelSpec
	readings      entity.ReadingSet
	notifications *NotificationLog
	rnd           *rand.Rand

	notificationRepo notificationRepo
	now              func() time.Time
}

// NewSimulator - repo may be nil, then notifications live only in memory.
func NewSimulator(logger *slog.Logger, rnd *rand.Rand, repo notificationRepo) *Simulator {
	specs := DefaultChannels()
	now := time.Now

	return &Simulator{
		logger: logger.With("component", "telemetry"),

		specs: specs,
		readings: entity.ReadingSet{
			Values:    InitialValues(specs),
			UpdatedAt: now().UTC(),
		},
		notifications: NewNotificationLog(),
		rnd:           rnd,

		notificationRepo: repo,
		now:              now,
	}
}

func (that *Simulator) Channels() []entity.ChannelSpec {
	return slices.Clone(that.specs)
}

func (that *Simulator) Readings() entity.ReadingSet {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.readings.Clone()
}

// Tick - advances every channel one step and returns the new readings.
func (that *Simulator) Tick() entity.ReadingSet {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.readings = entity.ReadingSet{
		Values:    Step(that.readings.Values, that.specs, that.rnd),
		UpdatedAt: that.now().UTC(),
	}

	return that.readings.Clone()
}

// Run ticks at the given interval until ctx is canceled.
func (that *Simulator) Run(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("telemetry loop started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("telemetry loop stopped")
			return
		case <-ticker.C:
			readings := that.Tick()
			log.DebugContext(ctx, "telemetry tick", "values", readings.Values)
		}
	}
}

// AddNotification - prepends a notification and returns the log, newest first.
// Unknown severities are stored as info.
func (that *Simulator) AddNotification(ctx context.Context, title, message string, severity entity.Severity) []entity.Notification {
	log := that.logger.With("method", "AddNotification")

	notification := entity.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Severity:  entity.ParseSeverity(string(severity)),
		Timestamp: that.now().UTC(),
	}

	that.mu.Lock()
	that.notifications.Add(notification)
	items := that.notifications.Items()
	that.mu.Unlock()

	if that.notificationRepo != nil {
		if err := that.notificationRepo.Push(ctx, notification); err != nil {
			log.Warn("failed to persist notification", "id", notification.ID, "error", err)
		}
	}

	return items
}

func (that *Simulator) Notifications() []entity.Notification {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.notifications.Items()
}

// Restore - loads the persisted notification log.
func (that *Simulator) Restore(ctx context.Context) error {
	if that.notificationRepo == nil {
		return nil
	}

	items, err := that.notificationRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore notifications: %w", err)
	}

	that.mu.Lock()
	that.notifications.Replace(items)
	that.mu.Unlock()

	that.logger.Info("notifications restored", "count", len(items))

	return nil
}
