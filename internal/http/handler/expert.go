package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/http/dto"
)

type ExpertHandler struct {
	registry *expert.Registry
}

func NewExpertHandler(registry *expert.Registry) *ExpertHandler {
	return &ExpertHandler{registry: registry}
}

func (h *ExpertHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToExpertResponses(h.registry.ListAll()))
}

func (h *ExpertHandler) GetByID(c *gin.Context) {
	role, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpertResponse(role))
}
