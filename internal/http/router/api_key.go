package router

import (
	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/handler"
)

func APIKeyRouter(rg *gin.RouterGroup, h *handler.APIKeyHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.PATCH("/:id", h.SetActive)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/validate", h.Validate)
}
