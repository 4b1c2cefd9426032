package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing sections", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are filled in
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Second, conf.Game.OpponentDelay)
		assert.Equal(t, 30*time.Second, conf.Telemetry.TickInterval)
		assert.Equal(t, 15*time.Second, conf.Weather.LocateTimeout)
		assert.Equal(t, LocatorNone, conf.Weather.Locator)
		assert.InDelta(t, 51.5074, conf.Weather.FallbackLatitude, 1e-9)
		assert.InDelta(t, -0.1278, conf.Weather.FallbackLongitude, 1e-9)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		// Given: a config file overriding game and weather settings
		path := writeConfig(t, `
http-port: "8081"
redis:
  host: cache
  port: "6380"
game:
  opponent-delay: 250ms
  profile-id: kitchen
weather:
  locator: static
  latitude: 40.4
  longitude: -3.7
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the overrides are visible
		require.NoError(t, err)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 250*time.Millisecond, conf.Game.OpponentDelay)
		assert.Equal(t, "kitchen", conf.Game.ProfileID)
		assert.Equal(t, LocatorStatic, conf.Weather.Locator)
		assert.InDelta(t, 40.4, conf.Weather.Latitude, 1e-9)
	})

	t.Run("Returns error for missing file", func(t *testing.T) {
		// When: loading a file that does not exist
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		// Then: an error is returned
		require.Error(t, err)
	})

	t.Run("MustLoad panics on missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "nope.yml"))
		})
	})
}
