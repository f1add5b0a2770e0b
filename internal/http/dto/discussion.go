package dto

import (
	"time"

	"symposium.app/api-server/internal/model"
)

type CreateDiscussionRequest struct {
	Topic       string   `json:"topic" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"max=2000"`
	Mode        string   `json:"discussion_mode" binding:"required,oneof=sequential parallel"`
	ExpertIDs   []string `json:"expert_ids" binding:"required,min=2,max=3"`
}

type UpdateDiscussionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed"`
}

type DiscussionResponse struct {
	ID           int64     `json:"id,string"`
	Topic        string    `json:"topic"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Mode         string    `json:"discussion_mode"`
	ExpertIDs    []string  `json:"expert_ids"`
	CurrentRound int       `json:"current_round"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDiscussionResponse(d *model.Discussion) *DiscussionResponse {
	return &DiscussionResponse{
		ID:           d.ID,
		Topic:        d.Topic,
		Description:  d.Description,
		Status:       string(d.Status),
		Mode:         string(d.Mode),
		ExpertIDs:    d.ExpertIDs,
		CurrentRound: d.CurrentRound,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// TurnStateResponse tells the UI who may speak next.
type TurnStateResponse struct {
	Round           int      `json:"round"`
	EligibleExperts []string `json:"eligible_experts"`
	CanAdvance      bool     `json:"can_advance"`
}
