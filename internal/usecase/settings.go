package usecase

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
)

const (
	SettingTheme       = "dashboard-theme"
	SettingCustomTheme = "dashboard-custom-theme"
)

type settingRule struct {
	defaultValue string
	allowed      []string
}

var settingRules = map[string]settingRule{
	SettingTheme:       {defaultValue: "light", allowed: []string{"light", "dark", "morning", "night"}},
	SettingCustomTheme: {defaultValue: "default", allowed: []string{"default", "morning", "night"}},
}

type SettingsUseCase interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type settingsRepo interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type settingsUseCase struct {
	repo settingsRepo
}

func NewSettingsUseCase(repo settingsRepo) SettingsUseCase {
	return &settingsUseCase{
		repo: repo,
	}
}

// All - every known setting, stored values over defaults.
func (that *settingsUseCase) All(ctx context.Context) (map[string]string, error) {
	stored, err := that.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings from storage: %w", err)
	}

	settings := make(map[string]string, len(settingRules))
	for key, rule := range settingRules {
		settings[key] = rule.defaultValue
	}

	for key, value := range stored {
		if _, known := settingRules[key]; known {
			settings[key] = value
		}
	}

	return settings, nil
}

func (that *settingsUseCase) Get(ctx context.Context, key string) (string, error) {
	rule, known := settingRules[key]
	if !known {
		return "", fmt.Errorf("%w: unknown key %q", apperror.ErrInvalidSetting, key)
	}

	value, err := that.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return rule.defaultValue, nil
		}
		return "", fmt.Errorf("failed to get setting from storage: %w", err)
	}

	return value, nil
}

func (that *settingsUseCase) Set(ctx context.Context, key, value string) error {
	rule, known := settingRules[key]
	if !known {
		return fmt.Errorf("%w: unknown key %q", apperror.ErrInvalidSetting, key)
	}

	if !slices.Contains(rule.allowed, value) {
		return fmt.Errorf("%w: %q is not one of %v", apperror.ErrInvalidSetting, value, rule.allowed)
	}

	if err := that.repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save setting into storage: %w", err)
	}

	return nil
}

// SettingKeys - known keys in stable order.
func SettingKeys() []string {
	return slices.Sorted(maps.Keys(settingRules))
}
