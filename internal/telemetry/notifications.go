package telemetry

import (
	"slices"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const MaxNotifications = 10

// NotificationLog - most recent first, never longer than MaxNotifications.
// Not safe for concurrent use.
type NotificationLog struct {
	items []entity.Notification
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{items: make([]entity.Notification, 0, MaxNotifications)}
}

func (that *NotificationLog) Add(notification entity.Notification) {
	that.items = slices.Insert(that.items, 0, notification)
	if len(that.items) > MaxNotifications {
		that.items = that.items[:MaxNotifications]
	}
}

// Replace - loads a stored log, newest first, trimming the tail.
func (that *NotificationLog) Replace(items []entity.Notification) {
	that.items = slices.Clone(items[:min(len(items), MaxNotifications)])
}

func (that *NotificationLog) Items() []entity.Notification {
	return slices.Clone(that.items)
}

func (that *NotificationLog) Len() int {
	return len(that.items)
}
