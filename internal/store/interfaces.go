package store

import (
	"context"
	"errors"

	"symposium.app/api-server/internal/model"
)

var ErrNotFound = errors.New("not found")

type DiscussionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Discussion, error)
	Create(ctx context.Context, d *model.Discussion) error
	List(ctx context.Context) ([]model.Discussion, error)
	UpdateRound(ctx context.Context, id int64, round int) error
	UpdateStatus(ctx context.Context, id int64, status model.DiscussionStatus) error
	Delete(ctx context.Context, id int64) error
}

type MessageStore interface {
	// GetRecent returns up to limit messages, newest first.
	GetRecent(ctx context.Context, discussionID int64, limit int) ([]model.Message, error)
	ListByDiscussion(ctx context.Context, discussionID int64) ([]model.Message, error)
	ListByRound(ctx context.Context, discussionID int64, round int) ([]model.Message, error)
	// Append inserts the message, assigning the next response_order for
	// its (discussion, round). The assigned order is written back to msg.
	Append(ctx context.Context, msg *model.Message) error
	NextResponseOrder(ctx context.Context, discussionID int64, round int) (int, error)
}

type APIKeyStore interface {
	// GetActive returns the first active key, oldest first.
	GetActive(ctx context.Context) (*model.APIKey, error)
	GetByID(ctx context.Context, id int64) (*model.APIKey, error)
	Create(ctx context.Context, key *model.APIKey) error
	List(ctx context.Context) ([]model.APIKey, error)
	SetActive(ctx context.Context, id int64, active bool) error
	TouchLastUsed(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
