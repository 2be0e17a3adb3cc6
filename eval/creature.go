package eval

import (
	"cardsim/game"
)

// evasionKeywords are the keywords that restrict which creatures can
// block the attacker carrying them.
var evasionKeywords = []game.Keyword{
	game.KeywordFlying,
	game.KeywordHorsemanship,
	game.KeywordShadow,
	game.KeywordFear,
	game.KeywordIntimidate,
}

// creatureEvaluator scores creatures: a power/toughness base plus
// keyword modifiers, adjusted by board context. Creature values are
// never cached because the context changes with every board state.
type creatureEvaluator struct{}

func (creatureEvaluator) evaluate(g game.Game, aiPlayer game.Player, c game.Card) int {
	power := c.NetPower()
	toughness := c.NetToughness()

	value := 100
	if c.HasKeyword(game.KeywordDoubleStrike) {
		value += 25 * power
	} else {
		value += 15 * power
	}
	value += 10 * toughness

	if c.HasKeyword(game.KeywordFirstStrike) && !c.HasKeyword(game.KeywordDoubleStrike) {
		value += 5 * power
	}
	if c.HasKeyword(game.KeywordTrample) && power >= 2 {
		value += 3 * power
	}
	if c.HasKeyword(game.KeywordVigilance) {
		value += 2 * power
	}
	if c.HasKeyword(game.KeywordLifelink) {
		value += 3 * power
	}
	if c.HasKeyword(game.KeywordHaste) {
		value += 10
	}
	if c.HasKeyword(game.KeywordIndestructible) {
		value += 30
	}
	if c.HasKeyword(game.KeywordHexproof) || c.HasKeyword(game.KeywordMenace) {
		value += 15
	}
	if c.HasKeyword(game.KeywordDefender) {
		value -= 10 * power
	}
	for _, kw := range evasionKeywords {
		if c.HasKeyword(kw) {
			value += 8 * power
			break
		}
	}

	return value + boardContextBonus(g, aiPlayer, c)
}

// boardContextBonus adjusts a creature's score by how it actually
// plays against the current board.
func boardContextBonus(g game.Game, aiPlayer game.Player, c game.Card) int {
	controller := c.Controller()
	var opposing []game.Card
	totalCreatures := 0
	for _, other := range g.CardsIn(game.ZoneBattlefield) {
		if !other.IsCreature() {
			continue
		}
		totalCreatures++
		if other.Controller() != controller {
			opposing = append(opposing, other)
		}
	}

	bonus := 0

	// Blocker availability: an evasive creature few opponents can
	// block is worth more.
	blockers := 0
	for _, blocker := range opposing {
		if canEverBlock(c, blocker) {
			blockers++
		}
	}
	switch {
	case blockers == 0 && c.NetPower() > 0:
		bonus += 20
	case blockers == 1:
		bonus += 10
	}

	// Sparse boards favor whoever has a creature at all.
	if totalCreatures <= 2 {
		bonus += 15
	}

	// Threat sizing: a creature that kills and survives every opposing
	// creature dominates combat.
	if len(opposing) > 0 {
		dominates := true
		for _, opp := range opposing {
			if c.NetPower() < opp.NetToughness() || c.NetToughness() <= opp.NetPower() {
				dominates = false
				break
			}
		}
		if dominates {
			bonus += 25
		}
		if c.HasKeyword(game.KeywordDeathtouch) {
			for _, opp := range opposing {
				if opp.NetToughness() > c.NetPower() {
					bonus += 10
					break
				}
			}
		}
	}

	return bonus
}

// canEverBlock applies the evasion keywords to decide whether blocker
// could legally block attacker, ignoring tap state.
func canEverBlock(attacker, blocker game.Card) bool {
	if attacker.HasKeyword(game.KeywordFlying) &&
		!blocker.HasKeyword(game.KeywordFlying) && !blocker.HasKeyword(game.KeywordReach) {
		return false
	}
	if attacker.HasKeyword(game.KeywordHorsemanship) && !blocker.HasKeyword(game.KeywordHorsemanship) {
		return false
	}
	if attacker.HasKeyword(game.KeywordShadow) && !blocker.HasKeyword(game.KeywordShadow) {
		return false
	}
	if attacker.HasKeyword(game.KeywordFear) &&
		!blocker.IsArtifact() && !blocker.Colors().HasBlack() {
		return false
	}
	if attacker.HasKeyword(game.KeywordIntimidate) &&
		!blocker.IsArtifact() && blocker.Colors()&attacker.Colors() == 0 {
		return false
	}
	return true
}
