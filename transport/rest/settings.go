package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
)

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (that *Handlers) getSettings(c *gin.Context) {
	log := that.logger.With("method", "getSettings")

	settings, err := that.settings.All(c.Request.Context())
	if err != nil {
		log.Error("failed to get settings", "error", err)
		errorResponse(c, http.StatusInternalServerError, "failed to get settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (that *Handlers) getSetting(c *gin.Context) {
	log := that.logger.With("method", "getSetting")

	key := c.Param("key")

	value, err := that.settings.Get(c.Request.Context(), key)
	if err != nil {
		that.settingError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

func (that *Handlers) putSetting(c *gin.Context) {
	log := that.logger.With("method", "putSetting")

	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "value is required")
		return
	}

	key := c.Param("key")

	if err := that.settings.Set(c.Request.Context(), key, req.Value); err != nil {
		that.settingError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

func (that *Handlers) settingError(c *gin.Context, log *slog.Logger, err error) {
	if errors.Is(err, apperror.ErrInvalidSetting) {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	log.Error("settings storage failed", "error", err)
	errorResponse(c, http.StatusInternalServerError, "failed to access settings")
}
