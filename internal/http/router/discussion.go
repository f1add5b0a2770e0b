package router

import (
	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/handler"
)

func DiscussionRouter(rg *gin.RouterGroup, h *handler.DiscussionHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)

	rg.GET("/:id/messages", h.Messages)
	rg.POST("/:id/messages", h.SubmitTurn)

	rg.GET("/:id/turn-state", h.TurnState)
	rg.POST("/:id/advance-round", h.AdvanceRound)
}
