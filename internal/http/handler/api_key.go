package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/dto"
	"symposium.app/api-server/internal/service"
)

type APIKeyHandler struct {
	keyService service.APIKeyService
}

func NewAPIKeyHandler(keyService service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keyService: keyService}
}

func (h *APIKeyHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.keyService.Create(ctx, req.Provider, req.Name, req.Key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAPIKeyResponse(key))
}

func (h *APIKeyHandler) List(c *gin.Context) {
	keys, err := h.keyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAPIKeyResponses(keys))
}

func (h *APIKeyHandler) SetActive(c *gin.Context) {
	ctx := c.Request.Context()
	keyID, ok := keyPathID(c)
	if !ok {
		return
	}

	var req dto.SetAPIKeyActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.keyService.SetActive(ctx, keyID, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAPIKeyResponse(key))
}

func (h *APIKeyHandler) Delete(c *gin.Context) {
	keyID, ok := keyPathID(c)
	if !ok {
		return
	}

	if err := h.keyService.Delete(c.Request.Context(), keyID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Validate probes a candidate key against its provider without storing
// anything. The result is always 200; validity rides in the body.
func (h *APIKeyHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.keyService.Validate(ctx, req.Provider, req.Key); err != nil {
		c.JSON(http.StatusOK, &dto.ValidateKeyResponse{Valid: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, &dto.ValidateKeyResponse{Valid: true})
}

func keyPathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return 0, false
	}
	return id, true
}
