package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"symposium.app/api-server/common/id"
	"symposium.app/api-server/common/llm"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/store"
)

// ErrInvalidProvider rejects credentials for providers we cannot call.
var ErrInvalidProvider = errors.New("invalid provider")

// CredentialChecker probes a provider with candidate key material.
// Defaults to llm.CheckCredential; injected so tests avoid the network.
type CredentialChecker func(ctx context.Context, cfg llm.Config) error

type APIKeyService interface {
	// Create validates the key against its provider before storing it.
	// A rejected key is never persisted.
	Create(ctx context.Context, provider, name, secret string) (*model.APIKey, error)
	List(ctx context.Context) ([]model.APIKey, error)
	SetActive(ctx context.Context, keyID int64, active bool) (*model.APIKey, error)
	Delete(ctx context.Context, keyID int64) error
	// Validate checks key material without storing anything.
	Validate(ctx context.Context, provider, secret string) error
}

type apiKeyService struct {
	keys    store.APIKeyStore
	checker CredentialChecker
}

func NewAPIKeyService(keys store.APIKeyStore, checker CredentialChecker) APIKeyService {
	if checker == nil {
		checker = llm.CheckCredential
	}
	return &apiKeyService{keys: keys, checker: checker}
}

func (s *apiKeyService) Create(ctx context.Context, provider, name, secret string) (*model.APIKey, error) {
	if err := s.Validate(ctx, provider, secret); err != nil {
		return nil, err
	}

	key := &model.APIKey{
		ID:       id.New(),
		Provider: provider,
		Name:     name,
		Secret:   secret,
		IsActive: true,
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("storing API key: %w", err)
	}

	slog.InfoContext(ctx, "API key created", "key_id", key.ID, "provider", provider)
	return key, nil
}

func (s *apiKeyService) List(ctx context.Context) ([]model.APIKey, error) {
	return s.keys.List(ctx)
}

func (s *apiKeyService) SetActive(ctx context.Context, keyID int64, active bool) (*model.APIKey, error) {
	if err := s.keys.SetActive(ctx, keyID, active); err != nil {
		return nil, err
	}
	return s.keys.GetByID(ctx, keyID)
}

func (s *apiKeyService) Delete(ctx context.Context, keyID int64) error {
	return s.keys.Delete(ctx, keyID)
}

func (s *apiKeyService) Validate(ctx context.Context, provider, secret string) error {
	if provider != llm.ProviderOpenAI && provider != llm.ProviderAnthropic {
		return fmt.Errorf("%w: %s", ErrInvalidProvider, provider)
	}
	if secret == "" {
		return fmt.Errorf("%w: empty key", llm.ErrInvalidCredential)
	}

	if err := s.checker(ctx, llm.Config{Provider: provider, APIKey: secret}); err != nil {
		return err
	}
	return nil
}
