package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"symposium.app/api-server/core/db"
	"symposium.app/api-server/internal/model"
)

type discussionStore struct {
	q db.Querier
}

func newDiscussionStore(q db.Querier) DiscussionStore {
	return &discussionStore{q: q}
}

const discussionColumns = `id, topic, description, status, expert_ids, discussion_mode, current_round, metadata, created_at, updated_at`

func (s *discussionStore) GetByID(ctx context.Context, id int64) (*model.Discussion, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+discussionColumns+` FROM discussions WHERE id = $1`, id)

	d, err := scanDiscussion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *discussionStore) Create(ctx context.Context, d *model.Discussion) error {
	metadata := d.Metadata
	if metadata == nil {
		metadata = []byte(`{}`)
	}

	row := s.q.QueryRow(ctx,
		`INSERT INTO discussions (id, topic, description, status, expert_ids, discussion_mode, current_round, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		d.ID, d.Topic, d.Description, string(d.Status), d.ExpertIDs, string(d.Mode), d.CurrentRound, metadata)

	return row.Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (s *discussionStore) List(ctx context.Context) ([]model.Discussion, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+discussionColumns+` FROM discussions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Discussion
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (s *discussionStore) UpdateRound(ctx context.Context, id int64, round int) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE discussions SET current_round = $2, updated_at = now() WHERE id = $1`, id, round)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *discussionStore) UpdateStatus(ctx context.Context, id int64, status model.DiscussionStatus) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE discussions SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *discussionStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDiscussion(row pgx.Row) (*model.Discussion, error) {
	var d model.Discussion
	var status, mode string

	err := row.Scan(&d.ID, &d.Topic, &d.Description, &status, &d.ExpertIDs,
		&mode, &d.CurrentRound, &d.Metadata, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.Status = model.DiscussionStatus(status)
	d.Mode = model.DiscussionMode(mode)
	return &d, nil
}
