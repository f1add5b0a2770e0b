package model

import "time"

// APIKey is a stored provider credential usable for completion requests.
// Exactly one active key is selected per response (first active found).
type APIKey struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	Provider  string     `json:"provider"` // "openai" or "anthropic"
	Name      string     `json:"name"`
	Secret    string     `json:"-"`
	ID        int64      `json:"id,string"`
	IsActive  bool       `json:"is_active"`
}
