package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Card is a single bestiary entry. Cards are immutable; decks, hands and
// fields hold copies of catalog entries.
type Card struct {
	Name    string   `yaml:"name" json:"name"`
	Cost    int      `yaml:"cost" json:"cost"`
	Effects []string `yaml:"effects" json:"effects,omitempty"`
}

// Catalog is the static card lookup (the bestiary).
type Catalog struct {
	cards map[string]Card
}

type catalogFile struct {
	Cards []Card `yaml:"cards"`
}

// NewCatalog builds a catalog from a card list. Later duplicates win.
func NewCatalog(cards []Card) *Catalog {
	c := &Catalog{cards: make(map[string]Card, len(cards))}
	for _, card := range cards {
		c.cards[card.Name] = card
	}
	return c
}

// LoadCatalog parses a YAML bestiary file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse bestiary YAML: %w", err)
	}
	if len(cf.Cards) == 0 {
		return nil, fmt.Errorf("bestiary %s contains no cards", path)
	}

	return NewCatalog(cf.Cards), nil
}

// Resolve looks up a card definition by name.
func (c *Catalog) Resolve(name string) (Card, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// Size returns the number of distinct cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Names returns all card names (unordered).
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.cards))
	for name := range c.cards {
		names = append(names, name)
	}
	return names
}
