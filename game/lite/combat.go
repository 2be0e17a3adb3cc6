package lite

import (
	"cardsim/game"
)

// Combat is the declare-attackers/declare-blockers surface for one
// combat of the lite engine.
type Combat struct {
	g           *Game
	attackerIdx int

	attackers []int         // card ids in declaration order
	targets   map[int]int   // attacker id -> defender entity id
	blockers  map[int][]int // attacker id -> blocker ids
}

// NewCombat opens combat for the current turn player.
func (g *Game) NewCombat() *Combat {
	return &Combat{
		g:           g,
		attackerIdx: g.turnPlayer,
		targets:     make(map[int]int),
		blockers:    make(map[int][]int),
	}
}

func (c *Combat) Defenders() []game.Entity {
	return []game.Entity{c.g.playerHandles[1-c.attackerIdx]}
}

func (c *Combat) Attackers() []game.Card {
	out := make([]game.Card, len(c.attackers))
	for i, id := range c.attackers {
		out[i] = c.g.handle(id)
	}
	return out
}

func (c *Combat) CanAttack(card game.Card, defender game.Entity) bool {
	state := c.g.card(card.EntityID())
	if state == nil || state.zone != game.ZoneBattlefield || !state.spec.Creature {
		return false
	}
	if state.controller != c.attackerIdx {
		return false
	}
	if state.tapped || state.sick {
		return false
	}
	return !card.HasKeyword(game.KeywordDefender)
}

func (c *Combat) CanBlock(attacker, blocker game.Card) bool {
	if !c.CanBlockAny(blocker) {
		return false
	}
	return canEverBlock(attacker, blocker)
}

func (c *Combat) CanBlockAny(blocker game.Card) bool {
	state := c.g.card(blocker.EntityID())
	if state == nil || state.zone != game.ZoneBattlefield || !state.spec.Creature {
		return false
	}
	if state.controller != 1-c.attackerIdx {
		return false
	}
	if state.tapped {
		return false
	}
	for _, assigned := range c.blockers {
		for _, id := range assigned {
			if id == blocker.EntityID() {
				return false
			}
		}
	}
	return true
}

func (c *Combat) AddAttacker(card game.Card, defender game.Entity) {
	for _, id := range c.attackers {
		if id == card.EntityID() {
			return
		}
	}
	c.attackers = append(c.attackers, card.EntityID())
	c.targets[card.EntityID()] = defender.EntityID()
}

func (c *Combat) AddBlocker(attacker, blocker game.Card) {
	c.blockers[attacker.EntityID()] = append(c.blockers[attacker.EntityID()], blocker.EntityID())
}

func (c *Combat) ClearAttackers() {
	c.attackers = nil
	c.targets = make(map[int]int)
	c.blockers = make(map[int][]int)
}

// ValidateAttackers re-checks every declared attacker; the lite engine
// has no attack requirements beyond legality.
func (c *Combat) ValidateAttackers() bool {
	for _, id := range c.attackers {
		if !c.CanAttack(c.g.handle(id), c.g.playerHandles[1-c.attackerIdx]) {
			return false
		}
	}
	return true
}

// ResolveCombat deals combat damage for the declared attack and
// advances past the damage step.
func (g *Game) ResolveCombat(c *Combat) {
	g.phase = game.PhaseCombatDamage
	for _, attackerID := range c.attackers {
		attacker := g.card(attackerID)
		if attacker == nil || attacker.zone != game.ZoneBattlefield {
			continue
		}
		if !attacker.spec.Creature {
			continue
		}
		if !cardHasKeyword(attacker, game.KeywordVigilance) {
			attacker.tapped = true
		}
		blockerIDs := c.blockers[attackerID]
		if len(blockerIDs) == 0 {
			g.players[1-c.attackerIdx].life -= g.power(attacker)
			continue
		}
		remaining := g.power(attacker)
		for _, blockerID := range blockerIDs {
			blocker := g.card(blockerID)
			if blocker == nil || blocker.zone != game.ZoneBattlefield {
				continue
			}
			dealt := min(remaining, g.toughness(blocker)-blocker.damage)
			if cardHasKeyword(attacker, game.KeywordDeathtouch) && remaining > 0 {
				dealt = g.toughness(blocker) - blocker.damage
			}
			blocker.damage += dealt
			remaining -= min(remaining, dealt)
			attacker.damage += g.power(blocker)
		}
		if remaining > 0 && cardHasKeyword(attacker, game.KeywordTrample) {
			g.players[1-c.attackerIdx].life -= remaining
		}
	}
	g.phase = game.PhaseCombatEnd
	g.checkStateBasedActions()
}

func cardHasKeyword(c *cardState, kw game.Keyword) bool {
	for _, k := range c.spec.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// resolveAutoCombat is the deterministic combat used when a position
// is fast-forwarded for evaluation: every able creature attacks, the
// defender blocks greedily where the block trades up or survives.
func (g *Game) resolveAutoCombat() {
	combat := g.NewCombat()
	defender := combat.Defenders()[0]

	for _, idx := range g.zoneCards(g.turnPlayer, game.ZoneBattlefield) {
		card := g.handle(g.cards[idx].id)
		if combat.CanAttack(card, defender) {
			combat.AddAttacker(card, defender)
		}
	}
	if len(combat.attackers) == 0 {
		return
	}

	// Greedy blocks: each untapped defender blocks the first attacker
	// it either kills or survives.
	for _, idx := range g.zoneCards(1-g.turnPlayer, game.ZoneBattlefield) {
		blocker := g.handle(g.cards[idx].id)
		if !combat.CanBlockAny(blocker) {
			continue
		}
		for _, attackerID := range combat.attackers {
			if len(combat.blockers[attackerID]) > 0 {
				continue
			}
			attacker := g.handle(attackerID)
			if !combat.CanBlock(attacker, blocker) {
				continue
			}
			kills := blocker.NetPower() >= attacker.NetToughness()
			survives := blocker.NetToughness() > attacker.NetPower()
			if kills || survives {
				combat.AddBlocker(attacker, blocker)
				break
			}
		}
	}

	g.ResolveCombat(combat)
}

// canEverBlock applies evasion keywords, mirroring the evaluator's
// blocker-availability rules.
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
