package service

import (
	"context"
	"errors"
	"fmt"

	"symposium.app/api-server/common/id"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/store"
	"symposium.app/api-server/internal/turn"
)

var (
	// ErrPanelSize rejects panels outside the 2..3 expert range. A panel
	// below two experts is not a discussion; enforcement happens at
	// creation because the participant list never changes afterwards.
	ErrPanelSize = errors.New("a discussion needs 2 to 3 experts")

	// ErrDuplicateExpert rejects the same expert appearing twice on a panel.
	ErrDuplicateExpert = errors.New("duplicate expert on panel")

	// ErrInvalidMode rejects unknown discussion modes.
	ErrInvalidMode = errors.New("invalid discussion mode")

	// ErrInvalidStatus rejects unknown discussion statuses.
	ErrInvalidStatus = errors.New("invalid discussion status")

	// ErrDiscussionNotCompleted guards deletion: only completed
	// discussions may be removed.
	ErrDiscussionNotCompleted = errors.New("only completed discussions can be deleted")
)

type DiscussionService interface {
	Create(ctx context.Context, topic, description string, mode model.DiscussionMode, expertIDs []string) (*model.Discussion, error)
	Get(ctx context.Context, discussionID int64) (*model.Discussion, error)
	List(ctx context.Context) ([]model.Discussion, error)
	Messages(ctx context.Context, discussionID int64) ([]model.Message, error)
	// Eligible returns the experts currently allowed to respond.
	Eligible(ctx context.Context, discussionID int64) ([]string, error)
	// RoundComplete reports whether every participant has spoken in the
	// current round, i.e. whether AdvanceRound would succeed.
	RoundComplete(ctx context.Context, discussionID int64) (bool, error)
	AdvanceRound(ctx context.Context, discussionID int64) (*model.Discussion, error)
	SetStatus(ctx context.Context, discussionID int64, status model.DiscussionStatus) (*model.Discussion, error)
	Delete(ctx context.Context, discussionID int64) error
}

type discussionService struct {
	discussions store.DiscussionStore
	messages    store.MessageStore
	registry    *expert.Registry
}

func NewDiscussionService(discussions store.DiscussionStore, messages store.MessageStore, registry *expert.Registry) DiscussionService {
	return &discussionService{
		discussions: discussions,
		messages:    messages,
		registry:    registry,
	}
}

func (s *discussionService) Create(ctx context.Context, topic, description string, mode model.DiscussionMode, expertIDs []string) (*model.Discussion, error) {
	if mode != model.ModeSequential && mode != model.ModeParallel {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if err := s.validatePanel(expertIDs); err != nil {
		return nil, err
	}

	d := &model.Discussion{
		ID:           id.New(),
		Topic:        topic,
		Description:  description,
		Status:       model.DiscussionActive,
		Mode:         mode,
		ExpertIDs:    expertIDs,
		CurrentRound: 1,
	}

	if err := s.discussions.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("creating discussion: %w", err)
	}
	return d, nil
}

// validatePanel enforces the immutable participant rules: 2 to 3
// experts, no duplicates, every id known to the catalog.
func (s *discussionService) validatePanel(expertIDs []string) error {
	if len(expertIDs) < 2 || len(expertIDs) > 3 {
		return ErrPanelSize
	}
	seen := make(map[string]bool, len(expertIDs))
	for _, eid := range expertIDs {
		if seen[eid] {
			return fmt.Errorf("%w: %s", ErrDuplicateExpert, eid)
		}
		seen[eid] = true
		if _, err := s.registry.Lookup(eid); err != nil {
			return err
		}
	}
	return nil
}

func (s *discussionService) Get(ctx context.Context, discussionID int64) (*model.Discussion, error) {
	return s.discussions.GetByID(ctx, discussionID)
}

func (s *discussionService) List(ctx context.Context) ([]model.Discussion, error) {
	return s.discussions.List(ctx)
}

func (s *discussionService) Messages(ctx context.Context, discussionID int64) ([]model.Message, error) {
	if _, err := s.discussions.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}
	return s.messages.ListByDiscussion(ctx, discussionID)
}

func (s *discussionService) Eligible(ctx context.Context, discussionID int64) ([]string, error) {
	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	roundMessages, err := s.messages.ListByRound(ctx, discussionID, d.CurrentRound)
	if err != nil {
		return nil, fmt.Errorf("loading round messages: %w", err)
	}
	return turn.Eligible(d, roundMessages), nil
}

func (s *discussionService) RoundComplete(ctx context.Context, discussionID int64) (bool, error) {
	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return false, err
	}
	roundMessages, err := s.messages.ListByRound(ctx, discussionID, d.CurrentRound)
	if err != nil {
		return false, fmt.Errorf("loading round messages: %w", err)
	}
	return turn.CanAdvanceRound(d, roundMessages), nil
}

// AdvanceRound increments current_round after every participant has
// spoken. Advancing is always an explicit caller action.
func (s *discussionService) AdvanceRound(ctx context.Context, discussionID int64) (*model.Discussion, error) {
	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	roundMessages, err := s.messages.ListByRound(ctx, discussionID, d.CurrentRound)
	if err != nil {
		return nil, fmt.Errorf("loading round messages: %w", err)
	}
	if err := turn.CheckAdvance(d, roundMessages); err != nil {
		return nil, err
	}

	d.CurrentRound++
	if err := s.discussions.UpdateRound(ctx, discussionID, d.CurrentRound); err != nil {
		return nil, fmt.Errorf("advancing round: %w", err)
	}
	return d, nil
}

func (s *discussionService) SetStatus(ctx context.Context, discussionID int64, status model.DiscussionStatus) (*model.Discussion, error) {
	if status != model.DiscussionActive && status != model.DiscussionCompleted {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if d.Status == status {
		return d, nil
	}

	if err := s.discussions.UpdateStatus(ctx, discussionID, status); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	d.Status = status
	return d, nil
}

func (s *discussionService) Delete(ctx context.Context, discussionID int64) error {
	d, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return err
	}
	if d.Status != model.DiscussionCompleted {
		return ErrDiscussionNotCompleted
	}
	if err := s.discussions.Delete(ctx, discussionID); err != nil {
		return fmt.Errorf("deleting discussion: %w", err)
	}
	return nil
}
