package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type moveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (that *Handlers) getGame(c *gin.Context) {
	c.JSON(http.StatusOK, that.game.State())
}

// makeMove - ignored moves still answer 200 with applied=false.
func (that *Handlers) makeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "body must be {\"row\":int,\"col\":int}")
		return
	}

	c.JSON(http.StatusOK, that.game.MakeMove(c.Request.Context(), *req.Row, *req.Col))
}

func (that *Handlers) resetGame(c *gin.Context) {
	c.JSON(http.StatusOK, that.game.Reset(c.Request.Context()))
}

func (that *Handlers) getHistory(c *gin.Context) {
	log := that.logger.With("method", "getHistory")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errorResponse(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	results, err := that.game.History(c.Request.Context(), limit)
	if err != nil {
		log.Error("failed to get game history", "error", err)
		errorResponse(c, http.StatusInternalServerError, "failed to get game history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
