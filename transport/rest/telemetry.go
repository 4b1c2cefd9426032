package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

type notificationRequest struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message"`
	Severity string `json:"type"`
}

func (that *Handlers) getTelemetry(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"readings": that.telemetry.Readings(),
		"channels": that.telemetry.Channels(),
	})
}

func (that *Handlers) getNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": that.telemetry.Notifications()})
}

func (that *Handlers) addNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "title is required")
		return
	}

	notifications := that.telemetry.AddNotification(c.Request.Context(), req.Title, req.Message, entity.ParseSeverity(req.Severity))

	c.JSON(http.StatusCreated, gin.H{"notifications": notifications})
}
