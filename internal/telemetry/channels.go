package telemetry

import (
	"math"
	"math/rand/v2"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const (
	ChannelEnergyUsage       = "energy_usage"
	ChannelTemperature       = "temperature"
	ChannelHumidity          = "humidity"
	ChannelDevicesOnline     = "devices_online"
	ChannelAirQuality        = "air_quality"
	ChannelNetworkThroughput = "network_throughput"
)

// DefaultChannels - the dashboard sensor schema.
func DefaultChannels() []entity.ChannelSpec {
	return []entity.ChannelSpec{
		{Name: ChannelEnergyUsage, Unit: "kW", Initial: 1.4, Min: 0.5, Max: 5.0, MaxDelta: 0.1},
		{Name: ChannelTemperature, Unit: "°C", Initial: 22, Min: 15, Max: 30, MaxDelta: 1},
		{Name: ChannelHumidity, Unit: "%", Initial: 65, Min: 30, Max: 90, MaxDelta: 2.5},
		{Name: ChannelDevicesOnline, Initial: 12, Min: 8, Max: 15, MaxDelta: 1, Integer: true},
		{Name: ChannelAirQuality, Unit: "AQI", Initial: 85, Min: 20, Max: 100, MaxDelta: 5},
		{Name: ChannelNetworkThroughput, Unit: "Mbps", Initial: 75, Min: 10, Max: 100, MaxDelta: 5},
	}
}

// InitialValues - starting reading for every channel.
func InitialValues(specs []entity.ChannelSpec) map[string]float64 {
	values := make(map[string]float64, len(specs))
	for _, spec := range specs {
		values[spec.Name] = spec.Clamp(spec.Initial)
	}

	return values
}

// Step - one bounded random-walk step for every channel; prev is not modified.
// A channel missing from prev starts from its initial value.
func Step(prev map[string]float64, specs []entity.ChannelSpec, rnd *rand.Rand) map[string]float64 {
	next := make(map[string]float64, len(specs))

	for _, spec := range specs {
		value, ok := prev[spec.Name]
		if !ok {
			value = spec.Initial
		}

		value += (rnd.Float64()*2 - 1) * spec.MaxDelta //nolint: gosec // it's ok
		if spec.Integer {
			value = math.Round(value)
		}

		next[spec.Name] = spec.Clamp(value)
	}

	return next
}
