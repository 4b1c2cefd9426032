package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const (
	notificationsKey = "notifications"

	maxStoredNotifications = 10
)

type NotificationRepository interface {
	Push(ctx context.Context, notification entity.Notification) error
	List(ctx context.Context) ([]entity.Notification, error)
}

type dbNotifications struct {
	client *redis.Client
}

// NewNotificationRepository - newest-first redis list trimmed to the log size.
func NewNotificationRepository(client *redis.Client) NotificationRepository {
	return &dbNotifications{
		client: client,
	}
}

func (that *dbNotifications) Push(ctx context.Context, notification entity.Notification) error {
	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, notificationsKey, notificationJSON)
		pipe.LTrim(ctx, notificationsKey, 0, maxStoredNotifications-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	return nil
}

func (that *dbNotifications) List(ctx context.Context) ([]entity.Notification, error) {
	response, err := that.client.LRange(ctx, notificationsKey, 0, maxStoredNotifications-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(response))
	for _, item := range response {
		var notification entity.Notification
		if err = json.Unmarshal([]byte(item), &notification); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
		}

		notifications = append(notifications, notification)
	}

	return notifications, nil
}
