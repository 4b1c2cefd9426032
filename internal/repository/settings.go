package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
)

const settingsKey = "settings"

type SettingsRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
}

type dbSettings struct {
	client *redis.Client
}

// NewSettingsRepository - key-value settings kept in a single redis hash.
func NewSettingsRepository(client *redis.Client) SettingsRepository {
	return &dbSettings{
		client: client,
	}
}

func (that *dbSettings) Set(ctx context.Context, key, value string) error {
	if err := that.client.HSet(ctx, settingsKey, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}

func (that *dbSettings) Get(ctx context.Context, key string) (string, error) {
	value, err := that.client.HGet(ctx, settingsKey, key).Result()

	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	return value, nil
}

func (that *dbSettings) GetAll(ctx context.Context) (map[string]string, error) {
	values, err := that.client.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return values, nil
}
