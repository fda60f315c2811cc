package game

import "github.com/spycards/spycards-server/internal/card"

// StartingHP is the hit point total each player begins a match with.
const StartingHP = 5

// Stats is a player's aggregate combat record for the current turn.
// It is reset to the zero record at the end of every turn.
type Stats struct {
	Heal      int   `json:"heal"`
	Lifesteal int   `json:"lifesteal"`
	Numb      int   `json:"numb"`
	Atk       int   `json:"atk"`
	Def       int   `json:"def"`
	NumbDef   int   `json:"numb_def"`
	AtkOrDef  []int `json:"atk_or_def"`
}

// NewStats returns a blank stats record.
func NewStats() Stats {
	return Stats{AtkOrDef: []int{}}
}

// Player is one side of a match.
type Player struct {
	Name     string
	HP       int
	Field    []card.Card
	Summons  []card.Card
	Deck     []card.Card
	Hand     []card.Card
	Selected []bool
	Stats    Stats
}

// NewPlayer creates a fresh player with starting HP and empty zones.
func NewPlayer(name string) *Player {
	return &Player{
		Name:     name,
		HP:       StartingHP,
		Field:    []card.Card{},
		Summons:  []card.Card{},
		Deck:     []card.Card{},
		Hand:     []card.Card{},
		Selected: []bool{},
		Stats:    NewStats(),
	}
}

// CardCount returns the player's total cards across deck, hand and field.
// Draw, shuffle and reveal all conserve this total.
func (p *Player) CardCount() int {
	return len(p.Deck) + len(p.Hand) + len(p.Field)
}

// ResetSelected clears the selection flags, sized to the current hand.
func (p *Player) ResetSelected() {
	p.Selected = make([]bool, len(p.Hand))
}

// PlayerView is the snapshot of a player included in broadcast payloads.
// Deck contents are not exposed, only the remaining count.
type PlayerView struct {
	Name     string      `json:"name"`
	HP       int         `json:"hp"`
	Field    []card.Card `json:"field"`
	Summons  []card.Card `json:"summons"`
	DeckSize int         `json:"deck_size"`
	Hand     []card.Card `json:"hand"`
	Selected []bool      `json:"selected"`
	Stats    Stats       `json:"stats"`
}

// View captures a copy of the player for broadcasting.
func (p *Player) View() PlayerView {
	return PlayerView{
		Name:     p.Name,
		HP:       p.HP,
		Field:    append([]card.Card(nil), p.Field...),
		Summons:  append([]card.Card(nil), p.Summons...),
		DeckSize: len(p.Deck),
		Hand:     append([]card.Card(nil), p.Hand...),
		Selected: append([]bool(nil), p.Selected...),
		Stats:    p.Stats,
	}
}
