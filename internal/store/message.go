package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"symposium.app/api-server/core/db"
	"symposium.app/api-server/internal/model"
)

type messageStore struct {
	q db.Querier
}

func newMessageStore(q db.Querier) MessageStore {
	return &messageStore{q: q}
}

const messageColumns = `id, discussion_id, author, content, round, response_order, message_refs, metadata, created_at`

func (s *messageStore) GetRecent(ctx context.Context, discussionID int64, limit int) ([]model.Message, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE discussion_id = $1
		 ORDER BY created_at DESC, response_order DESC
		 LIMIT $2`,
		discussionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows)
}

func (s *messageStore) ListByDiscussion(ctx context.Context, discussionID int64) ([]model.Message, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE discussion_id = $1
		 ORDER BY round, response_order`,
		discussionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows)
}

func (s *messageStore) ListByRound(ctx context.Context, discussionID int64, round int) ([]model.Message, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE discussion_id = $1 AND round = $2
		 ORDER BY response_order`,
		discussionID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows)
}

// Append assigns response_order inside the INSERT so concurrent appends
// for the same (discussion, round) are serialized by the unique
// constraint rather than a read-then-write race.
func (s *messageStore) Append(ctx context.Context, msg *model.Message) error {
	refs := msg.Refs
	if refs == nil {
		refs = []model.MessageRef{}
	}
	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if msg.Metadata != nil {
		metadataJSON, err = json.Marshal(msg.Metadata)
		if err != nil {
			return err
		}
	}

	row := s.q.QueryRow(ctx,
		`INSERT INTO messages (id, discussion_id, author, content, round, response_order, message_refs, metadata)
		 VALUES ($1, $2, $3, $4, $5,
		         (SELECT COALESCE(MAX(response_order), 0) + 1 FROM messages WHERE discussion_id = $2 AND round = $5),
		         $6, $7)
		 RETURNING response_order, created_at`,
		msg.ID, msg.DiscussionID, msg.Author, msg.Content, msg.Round, refsJSON, metadataJSON)

	return row.Scan(&msg.ResponseOrder, &msg.CreatedAt)
}

func (s *messageStore) NextResponseOrder(ctx context.Context, discussionID int64, round int) (int, error) {
	var next int
	err := s.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(response_order), 0) + 1 FROM messages
		 WHERE discussion_id = $1 AND round = $2`,
		discussionID, round).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func collectMessages(rows pgx.Rows) ([]model.Message, error) {
	var result []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func scanMessage(row pgx.Row) (*model.Message, error) {
	var msg model.Message
	var refsJSON, metadataJSON []byte

	err := row.Scan(&msg.ID, &msg.DiscussionID, &msg.Author, &msg.Content,
		&msg.Round, &msg.ResponseOrder, &refsJSON, &metadataJSON, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	msg.Refs = []model.MessageRef{}
	if len(refsJSON) > 0 {
		if err := json.Unmarshal(refsJSON, &msg.Refs); err != nil {
			return nil, err
		}
	}

	if len(metadataJSON) > 0 {
		var metadata model.MessageMetadata
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			return nil, err
		}
		msg.Metadata = &metadata
	} else if msg.FromExpert() {
		// Messages persisted before analysis existed read back with
		// baseline metadata.
		metadata := model.DefaultMetadata()
		msg.Metadata = &metadata
	}

	return &msg, nil
}
