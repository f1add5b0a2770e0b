package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"symposium.app/api-server/internal/http/dto"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/service"
)

type DiscussionHandler struct {
	discussionService service.DiscussionService
	turnService       service.TurnService
}

func NewDiscussionHandler(discussionService service.DiscussionService, turnService service.TurnService) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
		turnService:       turnService,
	}
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.discussionService.Create(ctx, req.Topic, req.Description, model.DiscussionMode(req.Mode), req.ExpertIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDiscussionResponse(d))
}

func (h *DiscussionHandler) List(c *gin.Context) {
	discussions, err := h.discussionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*dto.DiscussionResponse, 0, len(discussions))
	for i := range discussions {
		out = append(out, dto.ToDiscussionResponse(&discussions[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DiscussionHandler) GetByID(c *gin.Context) {
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.discussionService.Get(c.Request.Context(), discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiscussionResponse(d))
}

func (h *DiscussionHandler) Messages(c *gin.Context) {
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	msgs, err := h.discussionService.Messages(c.Request.Context(), discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageResponses(msgs))
}

// TurnState reports the current round, who may respond, and whether the
// round can advance.
func (h *DiscussionHandler) TurnState(c *gin.Context) {
	ctx := c.Request.Context()
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.discussionService.Get(ctx, discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	eligible, err := h.discussionService.Eligible(ctx, discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	canAdvance, err := h.discussionService.RoundComplete(ctx, discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, &dto.TurnStateResponse{
		Round:           d.CurrentRound,
		EligibleExperts: eligible,
		CanAdvance:      canAdvance,
	})
}

func (h *DiscussionHandler) SubmitTurn(c *gin.Context) {
	ctx := c.Request.Context()
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SubmitTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.turnService.Submit(ctx, discussionID, req.ExpertID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTurnResponse(result))
}

func (h *DiscussionHandler) AdvanceRound(c *gin.Context) {
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.discussionService.AdvanceRound(c.Request.Context(), discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiscussionResponse(d))
}

func (h *DiscussionHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateDiscussionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.discussionService.SetStatus(ctx, discussionID, model.DiscussionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiscussionResponse(d))
}

func (h *DiscussionHandler) Delete(c *gin.Context) {
	discussionID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.discussionService.Delete(c.Request.Context(), discussionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discussion id"})
		return 0, false
	}
	return id, true
}
