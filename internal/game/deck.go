package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/spycards/spycards-server/internal/card"
)

// Hand size targets for the draw rule: an empty hand draws three cards,
// otherwise the player draws up to two, topping up toward five.
const (
	openingDraw = 3
	handTarget  = 5
	maxTurnDraw = 2
)

// DeckService builds and shuffles card sequences against the catalog.
type DeckService struct {
	catalog *card.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDeckService creates a deck service. A zero seed picks a time-based
// one; tests pass a fixed seed for determinism.
func NewDeckService(catalog *card.Catalog, seed int64) *DeckService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DeckService{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// BuildDeck expands a name→count list into a flat card sequence, each name
// repeated count times, names in sorted order. The caller shuffles.
func (s *DeckService) BuildDeck(counts map[string]int) ([]card.Card, error) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var deck []card.Card
	for _, name := range names {
		n := counts[name]
		if n < 0 {
			return nil, fmt.Errorf("%w: negative count for %q", ErrDeckParse, name)
		}
		def, ok := s.catalog.Resolve(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
		}
		for i := 0; i < n; i++ {
			deck = append(deck, def)
		}
	}
	return deck, nil
}

// Shuffle permutes cards in place (Fisher–Yates).
func (s *DeckService) Shuffle(cards []card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw moves cards from the front of the player's deck into their hand:
// three on an empty hand, otherwise min(max(5-handSize,0),2). The
// remaining deck is reshuffled and the selection flags reset to the new
// hand length.
func (s *DeckService) Draw(p *Player) {
	n := openingDraw
	if len(p.Hand) > 0 {
		n = handTarget - len(p.Hand)
		if n < 0 {
			n = 0
		}
		if n > maxTurnDraw {
			n = maxTurnDraw
		}
	}
	if n > len(p.Deck) {
		n = len(p.Deck)
	}

	p.Hand = append(p.Hand, p.Deck[:n]...)
	p.Deck = append([]card.Card{}, p.Deck[n:]...)
	s.Shuffle(p.Deck)
	p.ResetSelected()
}
