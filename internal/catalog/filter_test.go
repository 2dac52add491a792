package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lovewall/internal/model"
)

func scenarioItems() []model.ProofItem {
	return []model.ProofItem{
		{ID: "1", Category: model.CategoryReview, Author: model.Author{Name: "Priya"}, Body: "great fit", Tags: []string{"size"}},
		{ID: "2", Category: model.CategoryVideo, Author: model.Author{Name: "Sam"}, Body: "unboxing", Tags: []string{}},
	}
}

func TestFilter_CategoryOnly(t *testing.T) {
	got := Filter(scenarioItems(), model.CategoryFilter(model.CategoryReview), "")

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_TagMatchIsCaseInsensitive(t *testing.T) {
	got := Filter(scenarioItems(), model.FilterAll, "SIZE")

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_NoMatchIsEmptyNotNil(t *testing.T) {
	got := Filter(scenarioItems(), model.CategoryFilter(model.CategoryVideo), "missing")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, model.FilterAll, "anything")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Filter([]model.ProofItem{}, model.FilterAll, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_AuthorNameMatch(t *testing.T) {
	got := Filter(scenarioItems(), model.FilterAll, "sAm")

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilter_UnicodeQuery(t *testing.T) {
	items := []model.ProofItem{
		{ID: "a", Category: model.CategoryInstagram, Author: model.Author{Name: "Tomás Vidal"}, Body: "ÜBER bequem"},
		{ID: "b", Category: model.CategoryTwitter, Author: model.Author{Name: "Ana"}, Body: "plain"},
	}

	got := Filter(items, model.FilterAll, "über")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got = Filter(items, model.FilterAll, "TOMÁS")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilter_AllWithEmptyQueryReturnsEverythingInOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	items := c.Items()

	got := Filter(items, model.FilterAll, "")

	require.Len(t, got, len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, got[i].ID, "position %d", i)
	}
}

func TestFilter_CategoryResultsOnlyContainThatCategory(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, category := range model.Categories() {
		got := Filter(c.Items(), model.CategoryFilter(category), "")
		assert.NotEmpty(t, got, "built-in catalog should cover %s", category)
		for _, item := range got {
			assert.Equal(t, category, item.Category)
		}
	}
}

func TestFilter_QueryResultsContainQuery(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, q := range []string{"fit", "SHIPPING", "a", "Maya", "durab", "zzz"} {
		lower := strings.ToLower(q)
		for _, item := range Filter(c.Items(), model.FilterAll, q) {
			found := strings.Contains(strings.ToLower(item.Body), lower) ||
				strings.Contains(strings.ToLower(item.Author.Name), lower)
			for _, tag := range item.Tags {
				found = found || strings.Contains(strings.ToLower(tag), lower)
			}
			assert.True(t, found, "item %s returned for %q without a match", item.ID, q)
		}
	}
}

func TestFilter_PreservesRelativeOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	items := c.Items()

	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.ID] = i
	}

	got := Filter(items, model.FilterAll, "size")
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Less(t, position[got[i-1].ID], position[got[i].ID])
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := scenarioItems()
	_ = Filter(items, model.FilterAll, "fit")

	assert.Equal(t, scenarioItems(), items)
}
