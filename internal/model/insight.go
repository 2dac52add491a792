package model

import "strings"

// HighlightCount is the number of highlight phrases an insight carries
const HighlightCount = 3

// Insight is the AI-generated sentiment summary shown above the wall
type Insight struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

// Valid reports whether the insight has a non-empty summary and exactly
// HighlightCount non-empty highlights
func (i Insight) Valid() bool {
	if strings.TrimSpace(i.Summary) == "" {
		return false
	}
	if len(i.Highlights) != HighlightCount {
		return false
	}
	for _, h := range i.Highlights {
		if strings.TrimSpace(h) == "" {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the highlights slice
func (i Insight) Clone() Insight {
	highlights := make([]string, len(i.Highlights))
	copy(highlights, i.Highlights)
	return Insight{Summary: i.Summary, Highlights: highlights}
}
