package controller

import (
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
// @Summary Liveness and database health
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	sqlDB, err := ctrl.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		util.Error(c, 503, "database unavailable")
		return
	}
	util.Success(c, gin.H{"status": "ok"})
}
