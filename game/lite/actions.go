package lite

import (
	"fmt"

	"cardsim/game"
)

// action is a lite candidate: playing a land, or casting a spell,
// optionally with a baked-in target. Targeted spells are enumerated as
// one candidate per legal target, so a candidate fully determines its
// effect.
type action struct {
	g        *Game
	cardID   int
	targetID int // 0 = untargeted
	desc     string
}

func (a *action) Description() string { return a.desc }
func (a *action) Host() game.Card     { return a.g.handle(a.cardID) }
func (a *action) IsLandPlay() bool    { return a.g.card(a.cardID).spec.Land }

func (a *action) API() game.APIKind {
	spec := a.g.card(a.cardID).spec
	if spec.Land {
		return game.APILandPlay
	}
	if spec.API != game.APINone {
		return spec.API
	}
	if spec.Creature {
		return game.APIPermanentCreature
	}
	if spec.isPermanent() {
		return game.APIPermanentNoncreature
	}
	return game.APINone
}

func (a *action) Target() game.Entity {
	if a.targetID == 0 {
		return nil
	}
	return lookupByID(a.g, a.targetID)
}

// CandidateActions enumerates the legal plays for p in the current
// priority window: a land drop, plus every castable spell in hand, one
// candidate per legal target for targeted spells. Only sorcery-speed
// windows on the player's own turn are modeled.
func (g *Game) CandidateActions(p game.Player) []game.Action {
	player, ok := p.(*Player)
	if !ok || player.g != g {
		return nil
	}
	if g.over {
		return nil
	}
	if g.turnPlayer != player.idx {
		return nil
	}
	if g.phase != game.PhaseMain1 && g.phase != game.PhaseMain2 {
		return nil
	}

	var out []game.Action
	available := g.untappedManaSources(player.idx)

	for _, idx := range g.zoneCards(player.idx, game.ZoneHand) {
		c := &g.cards[idx]
		if c.spec.Land {
			if !g.players[player.idx].landPlayed {
				out = append(out, &action{
					g: g, cardID: c.id,
					desc: fmt.Sprintf("Play %s", c.spec.Name),
				})
			}
			continue
		}
		if c.spec.CMC > available {
			continue
		}
		if c.spec.Targeted {
			out = append(out, g.targetedCandidates(player.idx, c)...)
			continue
		}
		out = append(out, &action{
			g: g, cardID: c.id,
			desc: fmt.Sprintf("Cast %s", c.spec.Name),
		})
	}
	return out
}

func (g *Game) untappedManaSources(playerIdx int) int {
	count := 0
	for _, idx := range g.zoneCards(playerIdx, game.ZoneBattlefield) {
		c := &g.cards[idx]
		if !c.tapped && len(c.spec.Produces) > 0 {
			count++
		}
	}
	return count
}

// targetedCandidates enumerates one candidate per legal target.
func (g *Game) targetedCandidates(playerIdx int, c *cardState) []game.Action {
	var out []game.Action
	cardID := c.id
	name := c.spec.Name
	switch c.spec.API {
	case game.APIDestroy, game.APIPump:
		friendly := c.spec.API == game.APIPump
		for _, idx := range g.zoneCards(-1, game.ZoneBattlefield) {
			t := &g.cards[idx]
			if !t.spec.Creature {
				continue
			}
			if friendly != (t.controller == playerIdx) {
				continue
			}
			out = append(out, &action{
				g: g, cardID: cardID, targetID: t.id,
				desc: fmt.Sprintf("Cast %s targeting %s", name, t.spec.Name),
			})
		}
	case game.APIDealDamage:
		for _, idx := range g.zoneCards(-1, game.ZoneBattlefield) {
			t := &g.cards[idx]
			if !t.spec.Creature || t.controller == playerIdx {
				continue
			}
			out = append(out, &action{
				g: g, cardID: cardID, targetID: t.id,
				desc: fmt.Sprintf("Cast %s targeting %s", name, t.spec.Name),
			})
		}
		opp := 1 - playerIdx
		out = append(out, &action{
			g: g, cardID: cardID, targetID: g.players[opp].id,
			desc: fmt.Sprintf("Cast %s targeting %s", name, g.players[opp].name),
		})
	}
	return out
}

// PlayAction pays the cost, applies the effect, and runs state-based
// actions. The action must come from this game's candidate list.
func (g *Game) PlayAction(p game.Player, a game.Action) error {
	player, ok := p.(*Player)
	if !ok || player.g != g {
		return fmt.Errorf("player does not belong to this game")
	}
	act, ok := a.(*action)
	if !ok || act.g != g {
		return fmt.Errorf("action does not belong to this game")
	}
	c := g.card(act.cardID)
	if c == nil || c.zone != game.ZoneHand || c.controller != player.idx {
		return fmt.Errorf("card %d is not playable", act.cardID)
	}

	if c.spec.Land {
		if g.players[player.idx].landPlayed {
			return fmt.Errorf("already played a land this turn")
		}
		g.players[player.idx].landPlayed = true
		g.moveToZone(c, game.ZoneBattlefield)
		return nil
	}

	if err := g.payMana(player.idx, c.spec.CMC); err != nil {
		return err
	}

	if c.spec.isPermanent() {
		g.moveToZone(c, game.ZoneBattlefield)
	} else {
		g.stackDepth++
		g.applyEffect(player.idx, c, act.targetID)
		g.stackDepth--
		// The card pointer may be stale after effects that grow the
		// arena; re-resolve before binning.
		if c = g.card(act.cardID); c != nil && c.zone == game.ZoneHand {
			g.moveToZone(c, game.ZoneGraveyard)
		}
	}
	g.checkStateBasedActions()
	return nil
}

// payMana taps mana sources for a cost. Lite mana is colorless: any
// source pays any pip.
func (g *Game) payMana(playerIdx, cost int) error {
	if cost == 0 {
		return nil
	}
	var sources []int
	for _, idx := range g.zoneCards(playerIdx, game.ZoneBattlefield) {
		c := &g.cards[idx]
		if !c.tapped && len(c.spec.Produces) > 0 {
			sources = append(sources, idx)
		}
	}
	if len(sources) < cost {
		return fmt.Errorf("not enough mana: need %d, have %d", cost, len(sources))
	}
	for i := 0; i < cost; i++ {
		g.cards[sources[i]].tapped = true
	}
	return nil
}

// applyEffect resolves a scripted spell effect.
func (g *Game) applyEffect(casterIdx int, c *cardState, targetID int) {
	opp := 1 - casterIdx
	amount := c.spec.Amount
	spec := c.spec

	switch spec.API {
	case game.APIDealDamage:
		if t := g.card(targetID); t != nil {
			t.damage += amount
		} else if targetID == g.players[opp].id {
			g.players[opp].life -= amount
		}
	case game.APIDestroy:
		if t := g.card(targetID); t != nil && t.zone == game.ZoneBattlefield {
			g.moveToZone(t, game.ZoneGraveyard)
		}
	case game.APIPump:
		if t := g.card(targetID); t != nil && t.zone == game.ZoneBattlefield {
			t.pumpPower += amount
			t.pumpToughness += amount
		}
	case game.APIDraw:
		for i := 0; i < amount && !g.over; i++ {
			g.draw(casterIdx)
		}
	case game.APIGainLife:
		g.players[casterIdx].life += amount
	case game.APILoseLife:
		g.players[opp].life -= amount
	case game.APIMill:
		lib := g.zoneCards(opp, game.ZoneLibrary)
		for i := 0; i < amount && i < len(lib); i++ {
			g.moveToZone(&g.cards[lib[i]], game.ZoneGraveyard)
		}
	case game.APIDiscard:
		hand := g.zoneCards(opp, game.ZoneHand)
		for i := 0; i < amount && i < len(hand); i++ {
			g.moveToZone(&g.cards[hand[i]], game.ZoneGraveyard)
		}
	case game.APIToken:
		tokenSpec := CardSpec{
			Name: spec.Name + " Token", Creature: true,
			Power: 1, Toughness: 1, Colors: spec.Colors,
		}
		for i := 0; i < amount; i++ {
			token := g.addCard(tokenSpec, casterIdx, game.ZoneBattlefield)
			token.sick = true
		}
	}
}

// AdvanceTo fast-forwards the current turn to the requested phase,
// applying turn-based actions along the way; combat resolves with the
// deterministic auto-combat used by position evaluation. onStackEmpty
// fires after each step (the lite stack is always empty by then).
func (g *Game) AdvanceTo(phase game.Phase, onStackEmpty func()) {
	for g.phase < phase && !g.over {
		g.phase++
		g.applyPhaseActions()
		if onStackEmpty != nil {
			onStackEmpty()
		}
	}
}

func (g *Game) applyPhaseActions() {
	switch g.phase {
	case game.PhaseCombatDamage:
		g.resolveAutoCombat()
	case game.PhaseCleanup:
		g.cleanup()
	}
	g.checkStateBasedActions()
}

func (g *Game) cleanup() {
	for i := range g.cards {
		c := &g.cards[i]
		if c.zone == game.ZoneBattlefield {
			c.damage = 0
			c.pumpPower = 0
			c.pumpToughness = 0
		}
	}
}

// BeginTurn starts the next turn: untap, clear sickness, draw. The
// first call begins the starting player's first turn rather than
// passing it.
func (g *Game) BeginTurn() {
	if g.started {
		g.turnPlayer = 1 - g.turnPlayer
		if g.turnPlayer == 0 {
			g.turn++
		}
	} else {
		g.started = true
	}
	g.phase = game.PhaseUntap
	g.players[g.turnPlayer].landPlayed = false
	for i := range g.cards {
		c := &g.cards[i]
		if c.zone == game.ZoneBattlefield && c.controller == g.turnPlayer {
			c.tapped = false
			c.sick = false
		}
	}
	g.phase = game.PhaseDraw
	// The starting player skips the first draw.
	if !(g.turn == 1 && g.turnPlayer == 0) {
		g.draw(g.turnPlayer)
	}
	g.phase = game.PhaseMain1
}

// SetPhase forces the phase; the match engine drives phases manually.
func (g *Game) SetPhase(phase game.Phase) { g.phase = phase }

// ReturnToLibrary puts cards from a player's hand on the bottom of
// their library and reshuffles (London mulligan tuck).
func (g *Game) ReturnToLibrary(p game.Player, cards []game.Card) {
	player, ok := p.(*Player)
	if !ok {
		return
	}
	for _, card := range cards {
		if c := g.card(card.EntityID()); c != nil && c.zone == game.ZoneHand {
			g.moveToZone(c, game.ZoneLibrary)
		}
	}
	g.shuffleLibrary(player.idx)
}

// Discard moves cards from hand to graveyard.
func (g *Game) Discard(p game.Player, cards []game.Card) {
	for _, card := range cards {
		if c := g.card(card.EntityID()); c != nil && c.zone == game.ZoneHand {
			g.moveToZone(c, game.ZoneGraveyard)
		}
	}
}
