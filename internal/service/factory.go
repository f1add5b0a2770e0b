package service

import (
	"symposium.app/api-server/core/config"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/store"
	"symposium.app/api-server/internal/synth"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	registry *expert.Registry
	llmCfg   config.LLMConfig
}

func NewServices(stores *store.Stores, txRunner TxRunner, registry *expert.Registry, llmCfg config.LLMConfig) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		registry: registry,
		llmCfg:   llmCfg,
	}
}

func (s *Services) Registry() *expert.Registry {
	return s.registry
}

func (s *Services) Discussions() DiscussionService {
	return NewDiscussionService(s.stores.Discussions(), s.stores.Messages(), s.registry)
}

func (s *Services) Turns() TurnService {
	window := synth.NewWindowBuilder(s.stores.Messages(), s.llmCfg.ContextWindow)
	synthesizer := synth.NewSynthesizer(
		s.registry,
		window,
		s.stores.APIKeys(),
		synth.NewHeuristicAnalyzer(),
		nil,
		s.llmCfg,
	)
	return NewTurnService(s.stores.Discussions(), s.stores.Messages(), synthesizer, s.txRunner)
}

func (s *Services) APIKeys() APIKeyService {
	return NewAPIKeyService(s.stores.APIKeys(), nil)
}
