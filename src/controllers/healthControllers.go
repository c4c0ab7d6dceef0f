package controllers

import (
	"net/http"

	"github.com/anhimov/library/src/db"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health handles GET /health
func (c *HealthController) Health(ctx *gin.Context) {
	if err := db.Ping(ctx.Request.Context(), c.db); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
