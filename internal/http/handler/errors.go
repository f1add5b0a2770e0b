package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"symposium.app/api-server/common/llm"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/service"
	"symposium.app/api-server/internal/store"
	"symposium.app/api-server/internal/synth"
	"symposium.app/api-server/internal/turn"
)

// respondError maps domain errors onto HTTP statuses. Policy rejections
// are precondition failures (409), validation problems are 400, and
// provider failures surface their message so the user can act on it.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, expert.ErrExpertNotFound),
		errors.Is(err, synth.ErrNoActiveKey):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrPanelSize),
		errors.Is(err, service.ErrDuplicateExpert),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidProvider),
		errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, turn.ErrDiscussionCompleted),
		errors.Is(err, turn.ErrNotParticipant),
		errors.Is(err, turn.ErrAlreadyResponded),
		errors.Is(err, turn.ErrNotExpertTurn),
		errors.Is(err, turn.ErrRoundIncomplete),
		errors.Is(err, service.ErrDiscussionNotCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, llm.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
