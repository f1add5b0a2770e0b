package expert

import (
	"errors"
	"fmt"
)

// ErrExpertNotFound is returned when an unknown expert id is requested.
// Absence is a hard error, never silently defaulted.
var ErrExpertNotFound = errors.New("expert not found")

// Role is a fixed expert persona: a system prompt plus display metadata.
// The catalog is immutable; entries are looked up by id.
type Role struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Expertise    []string `json:"expertise"`
	SystemPrompt string   `json:"-"`
}

// Registry is a static catalog of expert personas.
type Registry struct {
	order []string
	roles map[string]Role
}

// NewRegistry builds the default persona catalog.
func NewRegistry() *Registry {
	r := &Registry{roles: make(map[string]Role, len(defaultRoles))}
	for _, role := range defaultRoles {
		r.order = append(r.order, role.ID)
		r.roles[role.ID] = role
	}
	return r
}

// Lookup returns the role for id, or ErrExpertNotFound.
func (r *Registry) Lookup(id string) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, fmt.Errorf("%w: %s", ErrExpertNotFound, id)
	}
	return role, nil
}

// ListAll returns all roles in catalog declaration order.
func (r *Registry) ListAll() []Role {
	result := make([]Role, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.roles[id])
	}
	return result
}

var defaultRoles = []Role{
	{
		ID:          "architect",
		Name:        "Tech Architect",
		Title:       "Principal Solutions Architect",
		Description: "Expert in system design, architecture patterns, and technical strategy",
		Expertise:   []string{"System Design", "Cloud Architecture", "Scalability", "Enterprise Patterns"},
		SystemPrompt: `You are a Principal Solutions Architect with deep expertise in complex system design.
Focus on:
- Architectural patterns and best practices
- Scalable and maintainable solutions
- Performance and reliability
- Clear technical explanations with rationale`,
	},
	{
		ID:          "security",
		Name:        "Security Expert",
		Title:       "Chief Security Architect",
		Description: "Specialist in application security, cryptography, and threat modeling",
		Expertise:   []string{"AppSec", "Cryptography", "Threat Modeling", "Zero Trust"},
		SystemPrompt: `You are a Chief Security Architect specializing in application security.
Focus on:
- Security best practices and patterns
- Threat modeling and risk assessment
- Secure architecture design
- Practical security implementations`,
	},
	{
		ID:          "devops",
		Name:        "DevOps Expert",
		Title:       "DevOps Architect",
		Description: "Master of cloud infrastructure, CI/CD, and automation",
		Expertise:   []string{"Cloud Native", "CI/CD", "Infrastructure", "SRE"},
		SystemPrompt: `You are a DevOps Architect specializing in modern cloud practices.
Focus on:
- Cloud native architecture
- CI/CD and automation
- Infrastructure as Code
- Reliability engineering`,
	},
}
