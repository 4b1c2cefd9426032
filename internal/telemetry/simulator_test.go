package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

var errRedisDown = errors.New("redis down")

type mockNotificationRepo struct {
	mock.Mock
}

func (that *mockNotificationRepo) Push(ctx context.Context, notification entity.Notification) error {
	args := that.Called(ctx, notification)
	return args.Error(0)
}

func (that *mockNotificationRepo) List(ctx context.Context) ([]entity.Notification, error) {
	args := that.Called(ctx)
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint: gosec // it's ok
}

func TestStep(t *testing.T) {
	specs := DefaultChannels()

	t.Run("Values stay within bounds for long random walks", func(t *testing.T) {
		for seed := range uint64(10) {
			// Given: the initial readings and a seeded source
			rnd := newTestRand(seed)
			values := InitialValues(specs)

			for range 2000 {
				// When: stepping the walk
				values = Step(values, specs, rnd)

				// Then: every channel respects its range
				for _, spec := range specs {
					value := values[spec.Name]
					require.GreaterOrEqual(t, value, spec.Min, spec.Name)
					require.LessOrEqual(t, value, spec.Max, spec.Name)
				}
			}
		}
	})

	t.Run("Each step moves at most the channel delta", func(t *testing.T) {
		rnd := newTestRand(42)
		values := InitialValues(specs)

		for range 500 {
			next := Step(values, specs, rnd)

			for _, spec := range specs {
				assert.LessOrEqual(t, abs(next[spec.Name]-values[spec.Name]), spec.MaxDelta+1e-9, spec.Name)
			}
			values = next
		}
	})

	t.Run("Integer channels stay whole", func(t *testing.T) {
		rnd := newTestRand(3)
		values := InitialValues(specs)

		for range 500 {
			values = Step(values, specs, rnd)
			devices := values[ChannelDevicesOnline]
			assert.InDelta(t, float64(int(devices)), devices, 1e-9)
		}
	})

	t.Run("Out of range input is clamped back", func(t *testing.T) {
		// Given: readings far outside every range
		prev := map[string]float64{}
		for _, spec := range specs {
			prev[spec.Name] = spec.Max * 10
		}

		// When: stepping once
		next := Step(prev, specs, newTestRand(1))

		// Then: every channel lands on its maximum
		for _, spec := range specs {
			assert.InDelta(t, spec.Max, next[spec.Name], 1e-9, spec.Name)
		}
	})

	t.Run("Does not modify previous readings", func(t *testing.T) {
		prev := InitialValues(specs)
		snapshot := InitialValues(specs)

		_ = Step(prev, specs, newTestRand(9))

		assert.Equal(t, snapshot, prev)
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestSimulator_Tick(t *testing.T) {
	t.Run("Starts from initial values", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		readings := sim.Readings()

		assert.InDelta(t, 22.0, readings.Values[ChannelTemperature], 1e-9)
		assert.InDelta(t, 12.0, readings.Values[ChannelDevicesOnline], 1e-9)
		assert.Len(t, readings.Values, len(DefaultChannels()))
	})

	t.Run("Tick updates readings and timestamp", func(t *testing.T) {
		// Given: a simulator with a controlled clock
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)
		at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		sim.now = func() time.Time { return at }

		// When: ticking
		readings := sim.Tick()

		// Then: the new readings are stored and timestamped
		assert.Equal(t, at, readings.UpdatedAt)
		assert.Equal(t, readings, sim.Readings())
	})

	t.Run("Returned readings are copies", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		readings := sim.Readings()
		readings.Values[ChannelTemperature] = 1000

		assert.InDelta(t, 22.0, sim.Readings().Values[ChannelTemperature], 1e-9)
	})

	t.Run("Concurrent ticks and reads are safe", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					sim.Tick()
					_ = sim.Readings()
				}
			}()
		}
		wg.Wait()

		for _, spec := range sim.Channels() {
			value := sim.Readings().Values[spec.Name]
			assert.GreaterOrEqual(t, value, spec.Min)
			assert.LessOrEqual(t, value, spec.Max)
		}
	})
}

func TestSimulator_Run(t *testing.T) {
	// Given: a simulator running with a short interval
	sim := NewSimulator(newTestLogger(), newTestRand(1), nil)
	started := sim.Readings().UpdatedAt

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	// When: waiting for a few ticks
	assert.Eventually(t, func() bool {
		return sim.Readings().UpdatedAt.After(started)
	}, time.Second, 5*time.Millisecond)

	// Then: cancelling the context stops the loop
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("telemetry loop did not stop")
	}
}

func TestSimulator_AddNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("Newest notification comes first", func(t *testing.T) {
		// Given: an in-memory simulator
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		// When: adding two notifications
		sim.AddNotification(ctx, "first", "one", entity.SeverityInfo)
		items := sim.AddNotification(ctx, "second", "two", entity.SeveritySuccess)

		// Then: the latest is at index 0 with a generated id
		require.Len(t, items, 2)
		assert.Equal(t, "second", items[0].Title)
		assert.Equal(t, entity.SeveritySuccess, items[0].Severity)
		assert.NotEmpty(t, items[0].ID)
		assert.NotEqual(t, items[0].ID, items[1].ID)
		assert.Equal(t, items, sim.Notifications())
	})

	t.Run("Log never exceeds ten entries", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		var items []entity.Notification
		for i := range 15 {
			items = sim.AddNotification(ctx, fmt.Sprintf("n%d", i), "msg", entity.SeverityInfo)
			assert.LessOrEqual(t, len(items), MaxNotifications)
		}

		require.Len(t, items, MaxNotifications)
		assert.Equal(t, "n14", items[0].Title)
		assert.Equal(t, "n5", items[MaxNotifications-1].Title)
	})

	t.Run("Unknown severity becomes info", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		items := sim.AddNotification(ctx, "odd", "msg", entity.Severity("critical"))

		assert.Equal(t, entity.SeverityInfo, items[0].Severity)
	})

	t.Run("Persists every notification", func(t *testing.T) {
		// Given: a repository that accepts pushes
		repo := &mockNotificationRepo{}
		repo.On("Push", mock.Anything, mock.MatchedBy(func(n entity.Notification) bool {
			return n.Title == "Weather Updated"
		})).Return(nil).Once()
		sim := NewSimulator(newTestLogger(), newTestRand(1), repo)

		// When: adding a notification
		sim.AddNotification(ctx, "Weather Updated", "loaded", entity.SeverityInfo)

		// Then: it reached the repository
		repo.AssertExpectations(t)
	})

	t.Run("Storage failure keeps the in-memory log", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		repo.On("Push", mock.Anything, mock.Anything).Return(errRedisDown).Once()
		sim := NewSimulator(newTestLogger(), newTestRand(1), repo)

		items := sim.AddNotification(ctx, "title", "msg", entity.SeverityError)

		require.Len(t, items, 1)
		repo.AssertExpectations(t)
	})
}

func TestSimulator_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads stored notifications", func(t *testing.T) {
		// Given: a repository with two stored notifications
		stored := []entity.Notification{
			{ID: "b", Title: "newer", Severity: entity.SeverityInfo},
			{ID: "a", Title: "older", Severity: entity.SeverityWarning},
		}
		repo := &mockNotificationRepo{}
		repo.On("List", mock.Anything).Return(stored, nil).Once()
		sim := NewSimulator(newTestLogger(), newTestRand(1), repo)

		// When: restoring
		err := sim.Restore(ctx)

		// Then: the log matches storage order
		require.NoError(t, err)
		assert.Equal(t, stored, sim.Notifications())
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		repo.On("List", mock.Anything).Return([]entity.Notification(nil), errRedisDown).Once()
		sim := NewSimulator(newTestLogger(), newTestRand(1), repo)

		err := sim.Restore(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Empty(t, sim.Notifications())
	})

	t.Run("No repository is a no-op", func(t *testing.T) {
		sim := NewSimulator(newTestLogger(), newTestRand(1), nil)

		require.NoError(t, sim.Restore(ctx))
	})
}

func TestNotificationLog_Replace(t *testing.T) {
	// Given: more stored items than the log can hold
	items := make([]entity.Notification, 0, 12)
	for i := range 12 {
		items = append(items, entity.Notification{ID: fmt.Sprint(i)})
	}

	// When: replacing the log
	notifications := NewNotificationLog()
	notifications.Replace(items)

	// Then: only the newest ten are kept
	assert.Equal(t, MaxNotifications, notifications.Len())
	assert.Equal(t, "0", notifications.Items()[0].ID)
}
