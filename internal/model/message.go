package model

import "time"

// AuthorUser is the author value for messages written by the human
// participant rather than an expert persona.
const AuthorUser = "user"

// ContributionType classifies how an expert turn relates to the
// discussion so far.
type ContributionType string

const (
	// ContributionPrimary is a standalone answer.
	ContributionPrimary ContributionType = "primary"
	// ContributionSupporting builds on earlier contributions.
	ContributionSupporting ContributionType = "supporting"
	// ContributionAlternative proposes a different approach.
	ContributionAlternative ContributionType = "alternative"
)

// MessageRef records a verbatim quote of an earlier message found in a
// new contribution.
type MessageRef struct {
	MessageID int64  `json:"message_id,string"`
	ExpertID  string `json:"expert_id"`
	Quote     string `json:"quote"`
	// Context is the quote with up to 50 characters of surrounding text
	// from the quoting message.
	Context string `json:"context,omitempty"`
}

// MessageMetadata holds the heuristic analysis of an expert contribution.
// Confidence and AgreementLevel are clamped to [0,1].
type MessageMetadata struct {
	Confidence       float64          `json:"confidence"`
	AgreementLevel   float64          `json:"agreement_level"`
	ContributionType ContributionType `json:"contribution_type"`
}

// DefaultMetadata is applied when a persisted message carries none.
func DefaultMetadata() MessageMetadata {
	return MessageMetadata{
		Confidence:       0.7,
		AgreementLevel:   0.5,
		ContributionType: ContributionPrimary,
	}
}

// Message is one entry in a discussion. Author is either AuthorUser or
// an expert id. ResponseOrder is strictly increasing within
// (discussion, round) and assigned at append time.
type Message struct {
	CreatedAt     time.Time        `json:"created_at"`
	Author        string           `json:"author"`
	Content       string           `json:"content"`
	Refs          []MessageRef     `json:"message_refs"`
	Metadata      *MessageMetadata `json:"metadata,omitempty"`
	ID            int64            `json:"id"`
	DiscussionID  int64            `json:"discussion_id"`
	Round         int              `json:"round"`
	ResponseOrder int              `json:"response_order"`
}

// FromExpert reports whether the message was authored by an expert persona.
func (m *Message) FromExpert() bool {
	return m.Author != AuthorUser
}
