package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lovewall/internal/model"
)

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 10, c.Len())

	item, ok := c.Get("rv-001")
	require.True(t, ok)
	assert.Equal(t, model.CategoryReview, item.Category)
	assert.Equal(t, 5, item.Rating)
	assert.Equal(t, []string{"size", "shipping"}, item.Tags)
}

func TestLoad_GeneratesMissingIDs(t *testing.T) {
	c, err := Load(strings.NewReader(`
items:
  - category: video
    author: {name: Sam}
    body: unboxing
  - category: video
    author: {name: Ana}
    body: wear test
`))
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	_, err := Load(strings.NewReader(`
items:
  - {id: a, category: review, body: one}
  - {id: a, category: video, body: two}
`))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoad_RejectsUnknownCategory(t *testing.T) {
	_, err := Load(strings.NewReader(`
items:
  - {id: a, category: podcast, body: one}
`))
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestLoad_RatingRules(t *testing.T) {
	_, err := Load(strings.NewReader(`
items:
  - {id: a, category: review, body: one, rating: 6}
`))
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = Load(strings.NewReader(`
items:
  - {id: a, category: video, body: one, rating: 4}
`))
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestLoad_NormalizesCategoryCase(t *testing.T) {
	c, err := Load(strings.NewReader(`
items:
  - {id: a, category: Review, body: one}
`))
	require.NoError(t, err)

	item, _ := c.Get("a")
	assert.Equal(t, model.CategoryReview, item.Category)
}

func TestLoad_StripsMarkup(t *testing.T) {
	c, err := Load(strings.NewReader(`
items:
  - id: a
    category: testimonial
    author: {name: "<b>Elena</b>"}
    body: "Fit & feel <script>alert(1)</script>are <em>great</em>"
    tags: ["<i>comfort</i>", "<br>"]
`))
	require.NoError(t, err)

	item, _ := c.Get("a")
	assert.Equal(t, "Elena", item.Author.Name)
	assert.Equal(t, "Fit & feel are great", item.Body)
	assert.Equal(t, []string{"comfort"}, item.Tags)
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Items())
}

func TestItems_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	items := c.Items()
	items[0].Body = "changed"

	again := c.Items()
	assert.NotEqual(t, "changed", again[0].Body)
}
