// Package combat is the reference CombatResolver. The match core only
// consumes the game.CombatResolver interface; this implementation covers
// the baseline effect tags so the server is runnable end to end.
package combat

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/game"
)

// Effect tags understood by the resolver. A tag is "name" or "name:N";
// a bare name counts as 1.
const (
	tagAtk       = "atk"
	tagDef       = "def"
	tagHeal      = "heal"
	tagLifesteal = "lifesteal"
	tagNumb      = "numb"
	tagNumbDef   = "numb_def"
	tagAtkOrDef  = "atk_or_def"
)

// Resolver applies card effect tags to player stat records and settles
// each turn's outcome.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// CalcIndependentStats folds the player's field into a fresh stats record.
func (r *Resolver) CalcIndependentStats(p *game.Player) {
	stats := game.NewStats()
	for _, c := range p.Field {
		for _, effect := range c.Effects {
			name, value := parseEffect(effect)
			switch name {
			case tagAtk:
				stats.Atk += value
			case tagDef:
				stats.Def += value
			case tagHeal:
				stats.Heal += value
			case tagLifesteal:
				stats.Lifesteal += value
			case tagNumb:
				stats.Numb += value
			case tagNumbDef:
				stats.NumbDef += value
			case tagAtkOrDef:
				stats.AtkOrDef = append(stats.AtkOrDef, value)
			default:
				r.logger.Debug("ignoring unknown effect tag",
					zap.String("card", c.Name),
					zap.String("effect", effect),
				)
			}
		}
	}
	p.Stats = stats
}

// CalcEnemyDependentAbilities settles flexible atk_or_def values: each
// counts as defense while the opponent out-attacks our defense, otherwise
// as attack.
func (r *Resolver) CalcEnemyDependentAbilities(p, opponent *game.Player) {
	for _, v := range p.Stats.AtkOrDef {
		if opponent.Stats.Atk > p.Stats.Def {
			p.Stats.Def += v
		} else {
			p.Stats.Atk += v
		}
	}
	p.Stats.AtkOrDef = []int{}
}

// DetermineTurnWinner compares effective attack against opposing defense.
// Out-attacking the opponent's defense costs them one HP; healing and
// lifesteal apply afterwards. Numb suppresses attack unless matched by
// numb defense.
func (r *Resolver) DetermineTurnWinner(p1, p2 *game.Player) {
	atk1 := effectiveAtk(p1, p2)
	atk2 := effectiveAtk(p2, p1)

	dmg1 := 0
	if atk1 > p2.Stats.Def {
		dmg1 = 1
	}
	dmg2 := 0
	if atk2 > p1.Stats.Def {
		dmg2 = 1
	}

	p2.HP -= dmg1
	p1.HP -= dmg2

	p1.HP += p1.Stats.Heal
	p2.HP += p2.Stats.Heal
	if dmg1 > 0 {
		p1.HP += p1.Stats.Lifesteal
	}
	if dmg2 > 0 {
		p2.HP += p2.Stats.Lifesteal
	}

	if p1.HP < 0 {
		p1.HP = 0
	}
	if p2.HP < 0 {
		p2.HP = 0
	}
}

// effectiveAtk reduces a player's attack by the opponent's unblocked numb.
func effectiveAtk(p, opponent *game.Player) int {
	numb := opponent.Stats.Numb - p.Stats.NumbDef
	if numb < 0 {
		numb = 0
	}
	atk := p.Stats.Atk - numb
	if atk < 0 {
		atk = 0
	}
	return atk
}

func parseEffect(effect string) (string, int) {
	name, raw, found := strings.Cut(effect, ":")
	if !found {
		return strings.TrimSpace(effect), 1
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(name), 1
	}
	return strings.TrimSpace(name), value
}
