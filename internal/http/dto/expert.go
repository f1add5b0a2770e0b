package dto

import "symposium.app/api-server/internal/expert"

type ExpertResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Expertise   []string `json:"expertise"`
}

func ToExpertResponse(role expert.Role) *ExpertResponse {
	return &ExpertResponse{
		ID:          role.ID,
		Name:        role.Name,
		Title:       role.Title,
		Description: role.Description,
		Expertise:   role.Expertise,
	}
}

func ToExpertResponses(roles []expert.Role) []*ExpertResponse {
	out := make([]*ExpertResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, ToExpertResponse(role))
	}
	return out
}
