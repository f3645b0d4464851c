package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/db"
)

type HealthHandler struct {
	repo *db.Postgres
}

func NewHealthHandler(repo *db.Postgres) *HealthHandler {
	return &HealthHandler{repo: repo}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	if err := h.repo.Pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
