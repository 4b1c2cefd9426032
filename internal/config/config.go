package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LocatorNone   = "none"
	LocatorStatic = "static"
	LocatorIP     = "ip"
)

type Config struct {
	LogLevel          string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis     `yaml:"redis"`
	SQLiteStoragePath string    `yaml:"sqlite-storage-path" env-default:"./homeboard.db"`
	Game              Game      `yaml:"game"`
	Telemetry         Telemetry `yaml:"telemetry"`
	Weather           Weather   `yaml:"weather"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	OpponentDelay time.Duration `yaml:"opponent-delay" env-default:"1s"`
	ProfileID     string        `yaml:"profile-id" env-default:"default"`
}

type Telemetry struct {
	TickInterval time.Duration `yaml:"tick-interval" env-default:"30s"`
	PushInterval time.Duration `yaml:"push-interval" env-default:"1s"`
}

type Weather struct {
	APIKey            string        `yaml:"api-key" env:"WEATHER_API_KEY" env-default:""`
	BaseURL           string        `yaml:"base-url" env-default:"https://api.openweathermap.org/data/2.5/weather"`
	Locator           string        `yaml:"locator" env-default:"none"`
	Latitude          float64       `yaml:"latitude" env-default:"0"`
	Longitude         float64       `yaml:"longitude" env-default:"0"`
	IPLookupURL       string        `yaml:"ip-lookup-url" env-default:"http://ip-api.com/json"`
	LocateTimeout     time.Duration `yaml:"locate-timeout" env-default:"15s"`
	FetchTimeout      time.Duration `yaml:"fetch-timeout" env-default:"10s"`
	FallbackLatitude  float64       `yaml:"fallback-latitude" env-default:"51.5074"`
	FallbackLongitude float64       `yaml:"fallback-longitude" env-default:"-0.1278"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads config.yml and applies env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
