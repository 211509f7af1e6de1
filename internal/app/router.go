package app

import (
	"net/http"

	"course_studio_backend/docs"
	"course_studio_backend/internal/util"
	"course_studio_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		courses := api.Group("/courses")
		{
			courses.GET("", c.course.List)
			courses.GET("/:id", c.course.Get)
			courses.POST("", c.course.Create)
			courses.PUT("/:id", c.course.Update)
			courses.DELETE("/:id", c.course.Delete)
		}

		levels := api.Group("/levels")
		{
			levels.GET("", c.level.List)
			levels.GET("/:id", c.level.Get)
			levels.POST("/image", c.level.CreateImage)
			levels.POST("/image/upload", c.level.UploadImages)
			levels.POST("/video", c.level.CreateVideo)
			levels.POST("/canvas", c.level.CreateCanvas)
			levels.POST("/quiz", c.level.CreateQuiz)
			levels.PUT("/:id", c.level.Update)
			levels.DELETE("/:id", c.level.Delete)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, util.Response{Success: false, Message: "接口不存在"})
	})
}
