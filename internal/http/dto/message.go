package dto

import (
	"time"

	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/service"
)

type SubmitTurnRequest struct {
	ExpertID string `json:"expert_id" binding:"required"`
	Content  string `json:"content" binding:"required,min=1,max=10000"`
}

type MessageRefResponse struct {
	MessageID int64  `json:"message_id,string"`
	ExpertID  string `json:"expert_id"`
	Quote     string `json:"quote"`
	Context   string `json:"context,omitempty"`
}

type MessageMetadataResponse struct {
	Confidence       float64 `json:"confidence"`
	AgreementLevel   float64 `json:"agreement_level"`
	ContributionType string  `json:"contribution_type"`
}

type MessageResponse struct {
	ID            int64                    `json:"id,string"`
	DiscussionID  int64                    `json:"discussion_id,string"`
	Author        string                   `json:"author"`
	Content       string                   `json:"content"`
	Round         int                      `json:"round"`
	ResponseOrder int                      `json:"response_order"`
	Refs          []MessageRefResponse     `json:"message_refs"`
	Metadata      *MessageMetadataResponse `json:"metadata,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

type TurnResponse struct {
	UserMessage   *MessageResponse `json:"user_message"`
	ExpertMessage *MessageResponse `json:"expert_message"`
	CanAdvance    bool             `json:"can_advance"`
}

func ToMessageResponse(m *model.Message) *MessageResponse {
	resp := &MessageResponse{
		ID:            m.ID,
		DiscussionID:  m.DiscussionID,
		Author:        m.Author,
		Content:       m.Content,
		Round:         m.Round,
		ResponseOrder: m.ResponseOrder,
		Refs:          make([]MessageRefResponse, 0, len(m.Refs)),
		CreatedAt:     m.CreatedAt,
	}
	for _, ref := range m.Refs {
		resp.Refs = append(resp.Refs, MessageRefResponse{
			MessageID: ref.MessageID,
			ExpertID:  ref.ExpertID,
			Quote:     ref.Quote,
			Context:   ref.Context,
		})
	}
	if m.Metadata != nil {
		resp.Metadata = &MessageMetadataResponse{
			Confidence:       m.Metadata.Confidence,
			AgreementLevel:   m.Metadata.AgreementLevel,
			ContributionType: string(m.Metadata.ContributionType),
		}
	}
	return resp
}

func ToMessageResponses(msgs []model.Message) []*MessageResponse {
	out := make([]*MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, ToMessageResponse(&msgs[i]))
	}
	return out
}

func ToTurnResponse(result *service.TurnResult) *TurnResponse {
	return &TurnResponse{
		UserMessage:   ToMessageResponse(result.UserMessage),
		ExpertMessage: ToMessageResponse(result.ExpertMessage),
		CanAdvance:    result.CanAdvance,
	}
}
