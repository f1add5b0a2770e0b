package dto

import (
	"time"

	"symposium.app/api-server/internal/model"
)

type CreateAPIKeyRequest struct {
	Provider string `json:"provider" binding:"required,oneof=openai anthropic"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Key      string `json:"key" binding:"required,min=1"`
}

type SetAPIKeyActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type ValidateKeyRequest struct {
	Provider string `json:"provider" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

type ValidateKeyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// APIKeyResponse never echoes the stored secret.
type APIKeyResponse struct {
	ID        int64      `json:"id,string"`
	Provider  string     `json:"provider"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToAPIKeyResponse(key *model.APIKey) *APIKeyResponse {
	return &APIKeyResponse{
		ID:        key.ID,
		Provider:  key.Provider,
		Name:      key.Name,
		IsActive:  key.IsActive,
		LastUsed:  key.LastUsed,
		CreatedAt: key.CreatedAt,
	}
}

func ToAPIKeyResponses(keys []model.APIKey) []*APIKeyResponse {
	out := make([]*APIKeyResponse, 0, len(keys))
	for i := range keys {
		out = append(out, ToAPIKeyResponse(&keys[i]))
	}
	return out
}
