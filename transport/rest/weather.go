package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *Handlers) getWeather(c *gin.Context) {
	state := that.weather.State()
	if state.Weather == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":      "weather has not been loaded yet",
			"permission": state.Permission,
			"loading":    state.Loading,
		})
		return
	}

	c.JSON(http.StatusOK, state)
}

// refreshWeather - runs a full lookup; it always yields a reading.
func (that *Handlers) refreshWeather(c *gin.Context) {
	that.weather.RequestLocationAndWeather(c.Request.Context())

	c.JSON(http.StatusOK, that.weather.State())
}
