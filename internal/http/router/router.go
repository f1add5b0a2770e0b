package router

import (
	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/handler"
	"symposium.app/api-server/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		discussionHandler := handler.NewDiscussionHandler(services.Discussions(), services.Turns())
		DiscussionRouter(v1.Group("/discussions"), discussionHandler)

		expertHandler := handler.NewExpertHandler(services.Registry())
		ExpertRouter(v1.Group("/experts"), expertHandler)

		keyHandler := handler.NewAPIKeyHandler(services.APIKeys())
		APIKeyRouter(v1.Group("/keys"), keyHandler)
	}
}
