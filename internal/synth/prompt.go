package synth

import (
	"strings"

	"symposium.app/api-server/common/llm"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/model"
)

// buildMessages assembles the provider conversation: one system message
// carrying the persona and peer roster, the prior transcript oldest
// first, and the new user message last.
func buildMessages(role expert.Role, peers []expert.Role, history []model.Message, names func(string) string, userText string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: personaPrompt(role, peers)})

	for _, m := range history {
		msgs = append(msgs, transcriptMessage(m, names))
	}

	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: userText})
	return msgs
}

// personaPrompt frames the expert's persona and tells it who else is on
// the panel so it can defer to or build on co-panelists.
func personaPrompt(role expert.Role, peers []expert.Role) string {
	var b strings.Builder
	b.WriteString(role.SystemPrompt)

	if len(peers) > 0 {
		b.WriteString("\n\nYou are on a discussion panel with:\n")
		for _, p := range peers {
			b.WriteString("- ")
			b.WriteString(p.Name)
			b.WriteString(" (")
			b.WriteString(p.Title)
			b.WriteString("): ")
			b.WriteString(strings.Join(p.Expertise, ", "))
			b.WriteString("\n")
		}
		b.WriteString("Respond as yourself; reference their points when relevant.")
	}
	return b.String()
}

// transcriptMessage maps a stored message to a provider turn. Every
// expert speaks through the assistant role, so expert turns carry a
// display-name attribution to keep multiple voices distinguishable.
func transcriptMessage(m model.Message, names func(string) string) llm.Message {
	if !m.FromExpert() {
		return llm.Message{Role: llm.RoleUser, Content: m.Content}
	}
	return llm.Message{
		Role:    llm.RoleAssistant,
		Content: names(m.Author) + ": " + m.Content,
	}
}
