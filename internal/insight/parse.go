package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/lovewall/internal/model"
)

var errIncomplete = errors.New("insight payload incomplete")

type payload struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

// Parse decodes a provider response into an insight.
// Blank highlights are dropped and extras beyond model.HighlightCount are trimmed.
// Empty, non-JSON and incomplete payloads are all errors.
func Parse(text string) (model.Insight, error) {
	body := stripFences(text)
	if body == "" {
		return model.Insight{}, errIncomplete
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return model.Insight{}, fmt.Errorf("decode insight: %w", err)
	}

	highlights := make([]string, 0, model.HighlightCount)
	for _, h := range p.Highlights {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		highlights = append(highlights, h)
		if len(highlights) == model.HighlightCount {
			break
		}
	}

	result := model.Insight{
		Summary:    strings.TrimSpace(p.Summary),
		Highlights: highlights,
	}
	if !result.Valid() {
		return model.Insight{}, errIncomplete
	}
	return result, nil
}

// stripFences removes a surrounding markdown code fence some models add
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
