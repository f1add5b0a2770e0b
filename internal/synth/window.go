package synth

import (
	"context"
	"fmt"

	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/store"
)

// DefaultWindowSize bounds how many recent messages feed the prompt.
const DefaultWindowSize = 5

// WindowBuilder loads the bounded recent history of a discussion,
// oldest first. Recency wins over round boundaries: the window is the
// last N messages of the whole discussion.
type WindowBuilder struct {
	messages store.MessageStore
	size     int
}

func NewWindowBuilder(messages store.MessageStore, size int) *WindowBuilder {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &WindowBuilder{messages: messages, size: size}
}

// Build re-reads the store on every call so the prompt always reflects
// the latest committed state.
func (b *WindowBuilder) Build(ctx context.Context, discussionID int64) ([]model.Message, error) {
	recent, err := b.messages.GetRecent(ctx, discussionID, b.size)
	if err != nil {
		return nil, fmt.Errorf("loading recent messages: %w", err)
	}

	// GetRecent returns newest first; the prompt wants oldest first.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}
