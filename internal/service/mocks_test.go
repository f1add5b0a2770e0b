package service_test

import (
	"context"

	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/service"
	"symposium.app/api-server/internal/store"
	"symposium.app/api-server/internal/synth"
)

type mockDiscussionStore struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.Discussion, error)
	createFn       func(ctx context.Context, d *model.Discussion) error
	listFn         func(ctx context.Context) ([]model.Discussion, error)
	updateRoundFn  func(ctx context.Context, id int64, round int) error
	updateStatusFn func(ctx context.Context, id int64, status model.DiscussionStatus) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (m *mockDiscussionStore) GetByID(ctx context.Context, id int64) (*model.Discussion, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockDiscussionStore) Create(ctx context.Context, d *model.Discussion) error {
	if m.createFn != nil {
		return m.createFn(ctx, d)
	}
	return nil
}

func (m *mockDiscussionStore) List(ctx context.Context) ([]model.Discussion, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockDiscussionStore) UpdateRound(ctx context.Context, id int64, round int) error {
	if m.updateRoundFn != nil {
		return m.updateRoundFn(ctx, id, round)
	}
	return nil
}

func (m *mockDiscussionStore) UpdateStatus(ctx context.Context, id int64, status model.DiscussionStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockDiscussionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockMessageStore struct {
	getRecentFn        func(ctx context.Context, discussionID int64, limit int) ([]model.Message, error)
	listByDiscussionFn func(ctx context.Context, discussionID int64) ([]model.Message, error)
	listByRoundFn      func(ctx context.Context, discussionID int64, round int) ([]model.Message, error)
	appendFn           func(ctx context.Context, msg *model.Message) error
	nextOrderFn        func(ctx context.Context, discussionID int64, round int) (int, error)
}

func (m *mockMessageStore) GetRecent(ctx context.Context, discussionID int64, limit int) ([]model.Message, error) {
	if m.getRecentFn != nil {
		return m.getRecentFn(ctx, discussionID, limit)
	}
	return nil, nil
}

func (m *mockMessageStore) ListByDiscussion(ctx context.Context, discussionID int64) ([]model.Message, error) {
	if m.listByDiscussionFn != nil {
		return m.listByDiscussionFn(ctx, discussionID)
	}
	return nil, nil
}

func (m *mockMessageStore) ListByRound(ctx context.Context, discussionID int64, round int) ([]model.Message, error) {
	if m.listByRoundFn != nil {
		return m.listByRoundFn(ctx, discussionID, round)
	}
	return nil, nil
}

func (m *mockMessageStore) Append(ctx context.Context, msg *model.Message) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, msg)
	}
	return nil
}

func (m *mockMessageStore) NextResponseOrder(ctx context.Context, discussionID int64, round int) (int, error) {
	if m.nextOrderFn != nil {
		return m.nextOrderFn(ctx, discussionID, round)
	}
	return 1, nil
}

type mockAPIKeyStore struct {
	getActiveFn     func(ctx context.Context) (*model.APIKey, error)
	getByIDFn       func(ctx context.Context, id int64) (*model.APIKey, error)
	createFn        func(ctx context.Context, key *model.APIKey) error
	listFn          func(ctx context.Context) ([]model.APIKey, error)
	setActiveFn     func(ctx context.Context, id int64, active bool) error
	touchLastUsedFn func(ctx context.Context, id int64) error
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *mockAPIKeyStore) GetActive(ctx context.Context) (*model.APIKey, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) GetByID(ctx context.Context, id int64) (*model.APIKey, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	if m.createFn != nil {
		return m.createFn(ctx, key)
	}
	return nil
}

func (m *mockAPIKeyStore) List(ctx context.Context) ([]model.APIKey, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAPIKeyStore) SetActive(ctx context.Context, id int64, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return nil
}

func (m *mockAPIKeyStore) TouchLastUsed(ctx context.Context, id int64) error {
	if m.touchLastUsedFn != nil {
		return m.touchLastUsedFn(ctx, id)
	}
	return nil
}

func (m *mockAPIKeyStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockStoreProvider hands the same mocks back inside a "transaction".
type mockStoreProvider struct {
	discussions *mockDiscussionStore
	messages    *mockMessageStore
	apiKeys     *mockAPIKeyStore
}

func (m *mockStoreProvider) Discussions() store.DiscussionStore { return m.discussions }
func (m *mockStoreProvider) Messages() store.MessageStore       { return m.messages }
func (m *mockStoreProvider) APIKeys() store.APIKeyStore         { return m.apiKeys }

type mockTxRunner struct {
	provider *mockStoreProvider
	err      error
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.provider)
}

type mockSynthesizer struct {
	respondFn func(ctx context.Context, d *model.Discussion, expertID, userText string) (*synth.Contribution, error)
}

func (m *mockSynthesizer) Respond(ctx context.Context, d *model.Discussion, expertID, userText string) (*synth.Contribution, error) {
	if m.respondFn != nil {
		return m.respondFn(ctx, d, expertID, userText)
	}
	return &synth.Contribution{
		Content:  "a response",
		Metadata: model.DefaultMetadata(),
	}, nil
}
