package store

import (
	"symposium.app/api-server/core/db"
)

// Stores provides typed store accessors over a shared Querier.
// Bind it to a pool for standalone operations or to a transaction
// through the service-layer TxRunner.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Discussions() DiscussionStore {
	return newDiscussionStore(s.q)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.q)
}

func (s *Stores) APIKeys() APIKeyStore {
	return newAPIKeyStore(s.q)
}
