package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name is not part of the enumeration
var ErrUnknownCategory = errors.New("unknown category")

// Category classifies a proof item. The set is closed.
type Category string

const (
	CategoryTwitter     Category = "twitter"     // Short social post
	CategoryInstagram   Category = "instagram"   // Photo-first social post
	CategoryTestimonial Category = "testimonial" // Quote collected directly from a customer
	CategoryVideo       Category = "video"       // Video review or unboxing
	CategoryReview      Category = "review"      // Store review with a star rating
)

// Categories lists every category in display order
func Categories() []Category {
	return []Category{
		CategoryTwitter,
		CategoryInstagram,
		CategoryTestimonial,
		CategoryVideo,
		CategoryReview,
	}
}

// Valid reports whether c is a member of the enumeration
func (c Category) Valid() bool {
	switch c {
	case CategoryTwitter, CategoryInstagram, CategoryTestimonial, CategoryVideo, CategoryReview:
		return true
	default:
		return false
	}
}

// ParseCategory converts a user-supplied name into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// FilterAll selects every category
const FilterAll = "all"

// CategoryFilter is either FilterAll or a single Category
type CategoryFilter string

// ParseFilter accepts "all", the empty string (treated as "all"), or a category name
func ParseFilter(s string) (CategoryFilter, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" || trimmed == FilterAll {
		return CategoryFilter(FilterAll), nil
	}
	c, err := ParseCategory(trimmed)
	if err != nil {
		return "", err
	}
	return CategoryFilter(c), nil
}

// IsAll reports whether the filter selects every category
func (f CategoryFilter) IsAll() bool {
	return f == FilterAll || f == ""
}

// Matches reports whether c passes the filter
func (f CategoryFilter) Matches(c Category) bool {
	return f.IsAll() || Category(f) == c
}

// Author identifies who produced a proof item
type Author struct {
	Name     string `json:"name" yaml:"name"`
	Handle   string `json:"handle,omitempty" yaml:"handle,omitempty"`
	Avatar   string `json:"avatar" yaml:"avatar"`
	Verified bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
}

// ProofItem is one piece of user-generated content shown on the wall.
// Items are immutable once the catalog has been loaded.
type ProofItem struct {
	ID        string   `json:"id" yaml:"id"`
	Category  Category `json:"category" yaml:"category"`
	Author    Author   `json:"author" yaml:"author"`
	Body      string   `json:"body" yaml:"body"`
	Rating    int      `json:"rating,omitempty" yaml:"rating,omitempty"`       // 1-5, reviews only; 0 means absent
	ImageURL  string   `json:"image_url,omitempty" yaml:"image_url,omitempty"` // Optional media
	VideoURL  string   `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"` // Display string, never parsed
	SourceURL string   `json:"source_url" yaml:"source_url"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// HasRating reports whether the item carries a star rating
func (p ProofItem) HasRating() bool {
	return p.Rating > 0
}
