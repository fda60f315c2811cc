package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/spycards/spycards-server/internal/card"
	"github.com/spycards/spycards-server/internal/game"
)

func fieldPlayer(name string, cards ...card.Card) *game.Player {
	p := game.NewPlayer(name)
	p.Field = cards
	return p
}

func TestCalcIndependentStats(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p := fieldPlayer("alice",
		card.Card{Name: "Bruiser", Effects: []string{"atk:2", "def:1"}},
		card.Card{Name: "Leech", Effects: []string{"atk:1", "lifesteal:1"}},
		card.Card{Name: "Stinger", Effects: []string{"numb:1", "numb_def:1", "heal:2"}},
		card.Card{Name: "Shifter", Effects: []string{"atk_or_def:2"}},
	)
	r.CalcIndependentStats(p)

	assert.Equal(t, 3, p.Stats.Atk)
	assert.Equal(t, 1, p.Stats.Def)
	assert.Equal(t, 1, p.Stats.Lifesteal)
	assert.Equal(t, 1, p.Stats.Numb)
	assert.Equal(t, 1, p.Stats.NumbDef)
	assert.Equal(t, 2, p.Stats.Heal)
	assert.Equal(t, []int{2}, p.Stats.AtkOrDef)
}

func TestCalcIndependentStatsBareTagCountsAsOne(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p := fieldPlayer("alice", card.Card{Name: "Scout", Effects: []string{"atk"}})
	r.CalcIndependentStats(p)

	assert.Equal(t, 1, p.Stats.Atk)
}

func TestCalcIndependentStatsResetsPriorRecord(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p := fieldPlayer("alice")
	p.Stats.Atk = 9
	r.CalcIndependentStats(p)

	assert.Zero(t, p.Stats.Atk)
}

func TestAtkOrDefFavorsDefenseUnderPressure(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p := fieldPlayer("alice", card.Card{Effects: []string{"atk_or_def:2"}})
	opp := fieldPlayer("bob", card.Card{Effects: []string{"atk:3"}})
	r.CalcIndependentStats(p)
	r.CalcIndependentStats(opp)

	r.CalcEnemyDependentAbilities(p, opp)
	assert.Equal(t, 2, p.Stats.Def, "out-attacked: value becomes defense")
	assert.Zero(t, p.Stats.Atk)

	r.CalcEnemyDependentAbilities(opp, p)
	assert.Equal(t, 3, opp.Stats.Atk, "unthreatened: no flexible value to move")
	assert.Empty(t, p.Stats.AtkOrDef)
}

func TestDetermineTurnWinnerBasicDamage(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.Stats.Atk = 2
	p2 := game.NewPlayer("bob")
	p2.Stats.Def = 1

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, game.StartingHP-1, p2.HP, "attack over defense costs one HP")
	assert.Equal(t, game.StartingHP, p1.HP)
}

func TestDetermineTurnWinnerDefenseHolds(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.Stats.Atk = 2
	p2 := game.NewPlayer("bob")
	p2.Stats.Def = 2

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, game.StartingHP, p2.HP)
}

func TestDetermineTurnWinnerHealAndLifesteal(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.HP = 3
	p1.Stats.Atk = 2
	p1.Stats.Heal = 1
	p1.Stats.Lifesteal = 1
	p2 := game.NewPlayer("bob")

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, 5, p1.HP, "heal plus lifesteal on a connecting hit")
	assert.Equal(t, game.StartingHP-1, p2.HP)
}

func TestDetermineTurnWinnerLifestealNeedsDamage(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.HP = 3
	p1.Stats.Lifesteal = 2
	p2 := game.NewPlayer("bob")
	p2.Stats.Def = 5

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, 3, p1.HP, "no damage dealt, no lifesteal")
}

func TestNumbSuppressesAttack(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.Stats.Atk = 1
	p2 := game.NewPlayer("bob")
	p2.Stats.Numb = 1

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, game.StartingHP, p2.HP, "numbed attacker deals nothing")
}

func TestNumbDefCancelsNumb(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.Stats.Atk = 1
	p1.Stats.NumbDef = 1
	p2 := game.NewPlayer("bob")
	p2.Stats.Numb = 1

	r.DetermineTurnWinner(p1, p2)
	assert.Equal(t, game.StartingHP-1, p2.HP)
}

func TestHPClampsAtZero(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	p1 := game.NewPlayer("alice")
	p1.Stats.Atk = 4
	p2 := game.NewPlayer("bob")
	p2.HP = 0

	r.DetermineTurnWinner(p1, p2)
	assert.Zero(t, p2.HP)
}
