package llm

import (
	"strings"

	"github.com/ppiankov/lovewall/internal/model"
)

const instructionTemplate = `Analyze the following customer feedback items and provide a concise, 2-sentence summary of the overall community sentiment.
Focus on the key strengths mentioned by users.
Also provide exactly 3 short punchy highlight phrases (two to four words each).

Respond only with a JSON object of the form:
{"summary": "<2 sentences>", "highlights": ["<phrase>", "<phrase>", "<phrase>"]}

Feedback items:
`

// SystemPrompt is sent as the system message by providers that support one
const SystemPrompt = "You summarize customer feedback for a product wall. You always answer with a single JSON object and nothing else."

// BuildPrompt embeds every feedback body, one per line, under the instruction template
func BuildPrompt(bodies []string) string {
	var b strings.Builder
	b.WriteString(instructionTemplate)

	if len(bodies) == 0 {
		b.WriteString("(no feedback items)\n")
		return b.String()
	}

	for _, body := range bodies {
		b.WriteString("- ")
		b.WriteString(strings.Join(strings.Fields(body), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// BodiesOf collects item bodies in order
func BodiesOf(items []model.ProofItem) []string {
	bodies := make([]string, len(items))
	for i, item := range items {
		bodies[i] = item.Body
	}
	return bodies
}
