// Package synth turns a user prompt into one expert contribution: it
// builds the bounded context window, issues a single provider
// completion, and runs the heuristic content analysis over the result.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"symposium.app/api-server/common/llm"
	"symposium.app/api-server/common/logger"
	"symposium.app/api-server/core/config"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/store"
)

// ErrNoActiveKey is returned when no active provider credential exists.
var ErrNoActiveKey = errors.New("no active API key found")

// Contribution is the structured result of one expert turn. The caller
// owns persistence; nothing is written here.
type Contribution struct {
	Content  string
	Refs     []model.MessageRef
	Metadata model.MessageMetadata
}

// KeyProvider supplies the provider credential for a completion call.
// Satisfied by store.APIKeyStore.
type KeyProvider interface {
	GetActive(ctx context.Context) (*model.APIKey, error)
	TouchLastUsed(ctx context.Context, id int64) error
}

// ClientFactory builds a provider client for a credential. Injected so
// tests can substitute a fake provider.
type ClientFactory func(cfg llm.Config) (llm.Client, error)

// Synthesizer produces expert contributions.
type Synthesizer interface {
	Respond(ctx context.Context, d *model.Discussion, expertID, userText string) (*Contribution, error)
}

type synthesizer struct {
	registry  *expert.Registry
	window    *WindowBuilder
	keys      KeyProvider
	analyzer  Analyzer
	newClient ClientFactory
	cfg       config.LLMConfig
}

func NewSynthesizer(
	registry *expert.Registry,
	window *WindowBuilder,
	keys KeyProvider,
	analyzer Analyzer,
	newClient ClientFactory,
	cfg config.LLMConfig,
) Synthesizer {
	if newClient == nil {
		newClient = llm.New
	}
	return &synthesizer{
		registry:  registry,
		window:    window,
		keys:      keys,
		analyzer:  analyzer,
		newClient: newClient,
		cfg:       cfg,
	}
}

// Respond runs the full synthesis chain. Any provider, network, or
// parse failure is wrapped and returned without retry; no state is
// committed on failure, and the credential's last-used timestamp only
// moves after a successful completion.
func (s *synthesizer) Respond(ctx context.Context, d *model.Discussion, expertID, userText string) (*Contribution, error) {
	role, err := s.registry.Lookup(expertID)
	if err != nil {
		return nil, err
	}

	history, err := s.window.Build(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	peers := s.peerRoster(d, expertID)

	key, err := s.keys.GetActive(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveKey
		}
		return nil, fmt.Errorf("loading credential: %w", err)
	}

	client, err := s.newClient(llm.Config{
		Provider: key.Provider,
		APIKey:   key.Secret,
		Model:    s.modelFor(key.Provider),
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider client: %w", err)
	}

	msgs := buildMessages(role, peers, history, s.displayName, userText)

	// The completion call is the only long-latency operation in a turn.
	sc := logger.StartSpan(ctx, "synth.complete", trace.WithSpanKind(trace.SpanKindClient))
	resp, err := client.Complete(sc.Context(), llm.Request{
		Messages:  msgs,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		sc.RecordError(err)
		sc.End()
		return nil, fmt.Errorf("completing response for expert %s: %w", expertID, err)
	}
	sc.End()

	slog.DebugContext(ctx, "completion received",
		"model", client.Model(),
		"content", logger.Truncate(resp.Content, 200))

	refs, meta := s.analyzer.Analyze(resp.Content, history)

	// Bookkeeping only; a failure here must not fail the turn.
	if err := s.keys.TouchLastUsed(ctx, key.ID); err != nil {
		slog.WarnContext(ctx, "failed to update key last-used timestamp",
			"key_id", key.ID, "error", err)
	}

	slog.InfoContext(logger.WithLogFields(ctx, logger.LogFields{
		DiscussionID: logger.Ptr(d.ID),
		ExpertID:     logger.Ptr(expertID),
		Round:        logger.Ptr(d.CurrentRound),
		Provider:     logger.Ptr(key.Provider),
		Component:    "synthesizer",
	}), "synthesized expert response",
		"refs", len(refs),
		"contribution_type", meta.ContributionType,
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens)

	return &Contribution{Content: resp.Content, Refs: refs, Metadata: meta}, nil
}

// peerRoster resolves the co-panelists' roles, skipping the responding
// expert and any id the catalog no longer knows.
func (s *synthesizer) peerRoster(d *model.Discussion, expertID string) []expert.Role {
	var peers []expert.Role
	for _, id := range d.ExpertIDs {
		if id == expertID {
			continue
		}
		role, err := s.registry.Lookup(id)
		if err != nil {
			continue
		}
		peers = append(peers, role)
	}
	return peers
}

func (s *synthesizer) displayName(expertID string) string {
	role, err := s.registry.Lookup(expertID)
	if err != nil {
		return expertID
	}
	return role.Name
}

func (s *synthesizer) modelFor(provider string) string {
	if provider == llm.ProviderAnthropic {
		return s.cfg.AnthropicModel
	}
	return s.cfg.OpenAIModel
}
