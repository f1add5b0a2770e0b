package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"symposium.app/api-server/common/id"
	"symposium.app/api-server/common/logger"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/store"
	"symposium.app/api-server/internal/synth"
	"symposium.app/api-server/internal/turn"
)

// ErrEmptyMessage rejects turns with no user text.
var ErrEmptyMessage = errors.New("message content is required")

// TurnResult is the outcome of one submitted turn: the user's message
// and the expert's contribution as persisted, plus whether the round is
// now complete enough to advance.
type TurnResult struct {
	UserMessage   *model.Message
	ExpertMessage *model.Message
	CanAdvance    bool
}

type TurnService interface {
	// Submit runs one turn: eligibility check, synthesis, then a single
	// transaction appending the user message and the expert response.
	// A failed completion stores nothing.
	Submit(ctx context.Context, discussionID int64, expertID, userText string) (*TurnResult, error)
}

type turnService struct {
	discussions store.DiscussionStore
	messages    store.MessageStore
	synthesizer synth.Synthesizer
	txRunner    TxRunner
}

func NewTurnService(discussions store.DiscussionStore, messages store.MessageStore, synthesizer synth.Synthesizer, txRunner TxRunner) TurnService {
	return &turnService{
		discussions: discussions,
		messages:    messages,
		synthesizer: synthesizer,
		txRunner:    txRunner,
	}
}

func (s *turnService) Submit(ctx context.Context, discussionID int64, expertID, userText string) (*TurnResult, error) {
	if userText == "" {
		return nil, ErrEmptyMessage
	}

	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	roundMessages, err := s.messages.ListByRound(ctx, discussionID, d.CurrentRound)
	if err != nil {
		return nil, fmt.Errorf("loading round messages: %w", err)
	}

	// Ineligible turns are rejected before any provider call is made.
	if err := turn.Check(d, expertID, roundMessages); err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DiscussionID: logger.Ptr(discussionID),
		ExpertID:     logger.Ptr(expertID),
		Round:        logger.Ptr(d.CurrentRound),
		Component:    "turn",
	})

	contribution, err := s.synthesizer.Respond(ctx, d, expertID, userText)
	if err != nil {
		slog.WarnContext(ctx, "turn synthesis failed", "error", err)
		return nil, err
	}

	result := &TurnResult{
		UserMessage: &model.Message{
			ID:           id.New(),
			DiscussionID: discussionID,
			Author:       model.AuthorUser,
			Content:      userText,
			Round:        d.CurrentRound,
		},
		ExpertMessage: &model.Message{
			ID:           id.New(),
			DiscussionID: discussionID,
			Author:       expertID,
			Content:      contribution.Content,
			Round:        d.CurrentRound,
			Refs:         contribution.Refs,
			Metadata:     &contribution.Metadata,
		},
	}

	// Both appends commit together so a failure cannot leave a user
	// message without its expert reply.
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Messages().Append(ctx, result.UserMessage); err != nil {
			return fmt.Errorf("appending user message: %w", err)
		}
		if err := stores.Messages().Append(ctx, result.ExpertMessage); err != nil {
			return fmt.Errorf("appending expert message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.messages.ListByRound(ctx, discussionID, d.CurrentRound)
	if err != nil {
		// The turn itself committed; advance state is advisory.
		slog.WarnContext(ctx, "failed to reload round messages", "error", err)
		return result, nil
	}
	result.CanAdvance = turn.CanAdvanceRound(d, updated)

	slog.InfoContext(ctx, "turn completed",
		"response_order", result.ExpertMessage.ResponseOrder,
		"can_advance", result.CanAdvance)
	return result, nil
}
