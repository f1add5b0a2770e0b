package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"symposium.app/api-server/core/db"
	"symposium.app/api-server/internal/model"
)

type apiKeyStore struct {
	q db.Querier
}

func newAPIKeyStore(q db.Querier) APIKeyStore {
	return &apiKeyStore{q: q}
}

const apiKeyColumns = `id, provider, name, secret, is_active, last_used, created_at, updated_at`

func (s *apiKeyStore) GetActive(ctx context.Context) (*model.APIKey, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys
		 WHERE is_active = true
		 ORDER BY created_at
		 LIMIT 1`)

	key, err := scanAPIKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return key, nil
}

func (s *apiKeyStore) GetByID(ctx context.Context, id int64) (*model.APIKey, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`, id)

	key, err := scanAPIKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return key, nil
}

func (s *apiKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	row := s.q.QueryRow(ctx,
		`INSERT INTO api_keys (id, provider, name, secret, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		key.ID, key.Provider, key.Name, key.Secret, key.IsActive)

	return row.Scan(&key.CreatedAt, &key.UpdatedAt)
}

func (s *apiKeyStore) List(ctx context.Context) ([]model.APIKey, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *key)
	}
	return result, rows.Err()
}

func (s *apiKeyStore) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE api_keys SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *apiKeyStore) TouchLastUsed(ctx context.Context, id int64) error {
	_, err := s.q.Exec(ctx,
		`UPDATE api_keys SET last_used = now() WHERE id = $1`, id)
	return err
}

func (s *apiKeyStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAPIKey(row pgx.Row) (*model.APIKey, error) {
	var key model.APIKey
	err := row.Scan(&key.ID, &key.Provider, &key.Name, &key.Secret,
		&key.IsActive, &key.LastUsed, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
