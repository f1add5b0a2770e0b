package router

import (
	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/handler"
)

func ExpertRouter(rg *gin.RouterGroup, h *handler.ExpertHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
}
