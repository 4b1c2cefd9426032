package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type StatsRepository interface {
	Save(ctx context.Context, profileID string, stats entity.PlayerStats) error
	Get(ctx context.Context, profileID string) (entity.PlayerStats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) Save(ctx context.Context, profileID string, stats entity.PlayerStats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	statsKey := "stats:" + profileID
	err = that.client.Set(ctx, statsKey, statsJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}

	return nil
}

func (that *dbStats) Get(ctx context.Context, profileID string) (entity.PlayerStats, error) {
	statsKey := "stats:" + profileID

	response, err := that.client.Get(ctx, statsKey).Result()

	if errors.Is(err, redis.Nil) {
		return entity.PlayerStats{}, apperror.ErrNotFound
	}

	if err != nil {
		return entity.PlayerStats{}, fmt.Errorf("failed to get stats by profile: %w", err)
	}

	var stats entity.PlayerStats
	if err = json.Unmarshal([]byte(response), &stats); err != nil {
		return entity.PlayerStats{}, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return stats, nil
}
