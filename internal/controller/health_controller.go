package controller

import (
	"course_studio_backend/internal/config"
	"course_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"store":   c.cfg.Store.Driver,
		"storage": c.cfg.Storage.Type,
	})
}
