package llm

import "strings"

// DefaultSystemPrompt frames every request as goal coaching.
const DefaultSystemPrompt = `You are a pragmatic goal coach.

Always return markdown with these sections:
1) Where you are
2) Next three actions (each small enough to finish this week)
3) Risks and how to handle them
4) One-line motivation

Keep answers short, specific and copy-pasteable into a goal's subtasks.`

// NoOutput is returned when the provider answers without any text.
const NoOutput = "No output returned."

var placeholderKeys = []string{"your_openai_key", "your_ope", "your_gemini_key", "changeme"}

// IsPlaceholderKey catches keys copied verbatim from an example .env.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	lower := strings.ToLower(key)
	for _, p := range placeholderKeys {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
