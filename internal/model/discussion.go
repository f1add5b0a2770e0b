package model

import (
	"encoding/json"
	"time"
)

// DiscussionStatus gates whether new turns may be taken.
type DiscussionStatus string

const (
	DiscussionActive    DiscussionStatus = "active"
	DiscussionCompleted DiscussionStatus = "completed"
)

// DiscussionMode controls turn ordering among the panel's experts.
type DiscussionMode string

const (
	// ModeSequential runs a declaration-order round-robin: each expert
	// answers once per round, in the order they were added to the panel.
	ModeSequential DiscussionMode = "sequential"

	// ModeParallel lets any participant respond at any time.
	ModeParallel DiscussionMode = "parallel"
)

// Discussion is a multi-expert panel session. The participant list is
// fixed at creation; only status and current_round mutate afterwards.
type Discussion struct {
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Topic        string           `json:"topic"`
	Description  string           `json:"description"`
	Status       DiscussionStatus `json:"status"`
	Mode         DiscussionMode   `json:"discussion_mode"`
	ExpertIDs    []string         `json:"expert_ids"`
	Metadata     json.RawMessage  `json:"metadata"`
	CurrentRound int              `json:"current_round"`
	ID           int64            `json:"id"`
}

// HasParticipant reports whether expertID is on the panel.
func (d *Discussion) HasParticipant(expertID string) bool {
	for _, id := range d.ExpertIDs {
		if id == expertID {
			return true
		}
	}
	return false
}
