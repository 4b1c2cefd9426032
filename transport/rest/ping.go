package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *Handlers) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
