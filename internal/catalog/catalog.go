package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lovewall/internal/model"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	// ErrDuplicateID is returned when two items share an id
	ErrDuplicateID = errors.New("duplicate proof id")

	// ErrInvalidRating is returned for ratings outside 1-5 or on non-review items
	ErrInvalidRating = errors.New("invalid rating")
)

// Catalog is the immutable proof collection loaded once per process
type Catalog struct {
	items []model.ProofItem
	byID  map[string]int
}

type catalogFile struct {
	Items []model.ProofItem `yaml:"items"`
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a YAML catalog.
// Text fields are reduced to plain text; items without an id receive a UUID.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return New(file.Items)
}

// New validates items and builds a catalog that owns a sanitized copy of them
func New(items []model.ProofItem) (*Catalog, error) {
	policy := bluemonday.StrictPolicy()
	c := &Catalog{
		items: make([]model.ProofItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}

	for i, item := range items {
		item = sanitizeItem(policy, item)

		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, exists := c.byID[item.ID]; exists {
			return nil, fmt.Errorf("item %d: %w: %s", i, ErrDuplicateID, item.ID)
		}

		category, err := model.ParseCategory(string(item.Category))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		item.Category = category

		if item.Rating != 0 {
			if item.Category != model.CategoryReview {
				return nil, fmt.Errorf("item %s: %w: rating on %s item", item.ID, ErrInvalidRating, item.Category)
			}
			if item.Rating < 1 || item.Rating > 5 {
				return nil, fmt.Errorf("item %s: %w: %d", item.ID, ErrInvalidRating, item.Rating)
			}
		}

		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Items returns a copy of the collection in catalog order
func (c *Catalog) Items() []model.ProofItem {
	out := make([]model.ProofItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get looks an item up by id
func (c *Catalog) Get(id string) (model.ProofItem, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.ProofItem{}, false
	}
	return c.items[idx], true
}

func sanitizeItem(policy *bluemonday.Policy, item model.ProofItem) model.ProofItem {
	item.ID = strings.TrimSpace(item.ID)
	item.Body = plainText(policy, item.Body)
	item.Author.Name = plainText(policy, item.Author.Name)
	item.Author.Handle = plainText(policy, item.Author.Handle)

	tags := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		if t := plainText(policy, tag); t != "" {
			tags = append(tags, t)
		}
	}
	item.Tags = tags

	return item
}

// plainText strips markup and undoes the entity escaping bluemonday applies
func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
