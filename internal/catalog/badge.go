package catalog

import (
	"strings"

	"github.com/ppiankov/lovewall/internal/model"
)

// Badge is how a category is presented on a proof card
type Badge struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Accent string `json:"accent"`
}

// BadgeFor returns the presentation of a category
func BadgeFor(c model.Category) Badge {
	switch c {
	case model.CategoryTwitter:
		return Badge{Label: "Twitter", Icon: "twitter", Accent: "sky"}
	case model.CategoryInstagram:
		return Badge{Label: "Instagram", Icon: "instagram", Accent: "pink"}
	case model.CategoryReview:
		return Badge{Label: "Review", Icon: "stars", Accent: "amber"}
	case model.CategoryVideo:
		return Badge{Label: "Video", Icon: "play", Accent: "slate"}
	case model.CategoryTestimonial:
		return Badge{Label: "Testimonial", Icon: "check-circle", Accent: "indigo"}
	default:
		return Badge{Label: "Verified", Icon: "check-circle", Accent: "indigo"}
	}
}

// Stars renders a five-star bar. Absent ratings display as five stars.
func Stars(rating int) string {
	if rating <= 0 || rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Byline is the handle when present, otherwise the category name
func Byline(item model.ProofItem) string {
	if item.Author.Handle != "" {
		return item.Author.Handle
	}
	return string(item.Category)
}
