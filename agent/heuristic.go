// Package agent provides the player controllers: a rule-based
// heuristic baseline and the search-backed agents layered on top of
// it. The neural-network controllers in the nn package wrap any of
// these as their fallback.
package agent

import (
	"sort"

	"cardsim/game"
)

// Heuristic is the rule-based baseline controller. Every decision has
// a cheap deterministic answer; the search and NN controllers override
// the decisions worth more thought.
type Heuristic struct {
	player game.Player
}

func NewHeuristic(player game.Player) *Heuristic {
	return &Heuristic{player: player}
}

// ChooseAction plays a land if possible, otherwise the biggest
// castable spell.
func (h *Heuristic) ChooseAction(candidates []game.Action) game.Action {
	var bestSpell game.Action
	bestCMC := -1
	for _, a := range candidates {
		if a.IsLandPlay() {
			return a
		}
		cmc := 0
		if a.Host() != nil {
			cmc = a.Host().CMC()
		}
		if cmc > bestCMC {
			bestCMC = cmc
			bestSpell = a
		}
	}
	return bestSpell
}

// MulliganKeep keeps any hand with a workable land count.
func (h *Heuristic) MulliganKeep(cardsToReturn int) bool {
	lands := 0
	hand := h.player.CardsIn(game.ZoneHand)
	for _, c := range hand {
		if c.IsLand() {
			lands++
		}
	}
	return lands >= 2 && lands <= len(hand)-2
}

// TuckCardsForMulligan puts back the most expensive spells.
func (h *Heuristic) TuckCardsForMulligan(cardsToReturn int) []game.Card {
	hand := append([]game.Card(nil), h.player.CardsIn(game.ZoneHand)...)
	sort.SliceStable(hand, func(i, j int) bool {
		return hand[i].CMC() > hand[j].CMC()
	})
	if cardsToReturn > len(hand) {
		cardsToReturn = len(hand)
	}
	return hand[:cardsToReturn]
}

func (h *Heuristic) ConfirmMulliganScry() bool { return true }

// DeclareAttackers attacks with every creature that cannot be blocked
// profitably by an untapped opposing creature.
func (h *Heuristic) DeclareAttackers(combat game.Combat) {
	defenders := combat.Defenders()
	if len(defenders) == 0 {
		return
	}
	defender := defenders[0]

	var oppCreatures []game.Card
	for _, opp := range h.player.Opponents() {
		oppCreatures = append(oppCreatures, opp.CreaturesInPlay()...)
	}

	for _, creature := range h.player.CreaturesInPlay() {
		if !combat.CanAttack(creature, defender) {
			continue
		}
		if h.attackIsSafe(creature, oppCreatures) {
			combat.AddAttacker(creature, defender)
		}
	}
	if !combat.ValidateAttackers() {
		combat.ClearAttackers()
	}
}

// attackIsSafe approves an attack when no untapped opposing creature
// both kills the attacker and survives it.
func (h *Heuristic) attackIsSafe(attacker game.Card, oppCreatures []game.Card) bool {
	for _, blocker := range oppCreatures {
		if blocker.IsTapped() {
			continue
		}
		kills := blocker.NetPower() >= attacker.NetToughness()
		survives := blocker.NetToughness() > attacker.NetPower()
		if kills && survives {
			return false
		}
	}
	return true
}

// DeclareBlockers blocks the biggest attackers with blockers that
// trade up or survive.
func (h *Heuristic) DeclareBlockers(combat game.Combat) {
	attackers := append([]game.Card(nil), combat.Attackers()...)
	sort.SliceStable(attackers, func(i, j int) bool {
		return attackers[i].NetPower() > attackers[j].NetPower()
	})

	available := h.player.CreaturesInPlay()
	for _, attacker := range attackers {
		for _, blocker := range available {
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
}

func (h *Heuristic) OrderBlockers(attacker game.Card, blockers []game.Card) []game.Card {
	return blockers
}

func (h *Heuristic) OrderAttackers(blocker game.Card, attackers []game.Card) []game.Card {
	return attackers
}

func (h *Heuristic) ExertAttackers(attackers []game.Card) []game.Card { return nil }

// ChooseSingleEntity prefers the card option with the largest
// power + toughness + CMC, whoever controls it; with no card options
// it returns the first option.
func (h *Heuristic) ChooseSingleEntity(options []game.Entity, optional bool, prompt string) game.Entity {
	if len(options) == 0 {
		return nil
	}
	var best game.Entity
	bestScore := -1
	for _, e := range options {
		c, ok := e.(game.Card)
		if !ok {
			continue
		}
		score := c.NetPower() + c.NetToughness() + c.CMC()
		if score > bestScore {
			bestScore = score
			best = e
		}
	}
	if best != nil {
		return best
	}
	return options[0]
}

func (h *Heuristic) ChooseEntities(options []game.Entity, minCount, maxCount int, prompt string) []game.Entity {
	if maxCount > len(options) {
		maxCount = len(options)
	}
	return options[:maxCount]
}

func (h *Heuristic) ChooseCards(options []game.Card, minCount, maxCount int, prompt string) []game.Card {
	if maxCount > len(options) {
		maxCount = len(options)
	}
	return options[:maxCount]
}

// ChooseCardsToDiscard pitches the most expensive cards.
func (h *Heuristic) ChooseCardsToDiscard(n int, hand []game.Card) []game.Card {
	sorted := append([]game.Card(nil), hand...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CMC() > sorted[j].CMC()
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ChoosePermanentsToSacrifice gives up the cheapest permanents.
func (h *Heuristic) ChoosePermanentsToSacrifice(options []game.Card, minCount, maxCount int) []game.Card {
	sorted := append([]game.Card(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CMC() < sorted[j].CMC()
	})
	if minCount > len(sorted) {
		minCount = len(sorted)
	}
	return sorted[:minCount]
}

// ChoosePermanentsToDestroy removes the most expensive permanents.
func (h *Heuristic) ChoosePermanentsToDestroy(options []game.Card, minCount, maxCount int) []game.Card {
	sorted := append([]game.Card(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CMC() > sorted[j].CMC()
	})
	if maxCount > len(sorted) {
		maxCount = len(sorted)
	}
	return sorted[:maxCount]
}

func (h *Heuristic) ChooseCardsToReveal(minCount, maxCount int, valid []game.Card) []game.Card {
	if minCount > len(valid) {
		minCount = len(valid)
	}
	return valid[:minCount]
}

func (h *Heuristic) ChooseSingleCardForZoneChange(dest game.Zone, options []game.Card, optional bool) game.Card {
	if len(options) == 0 {
		return nil
	}
	return options[0]
}

func (h *Heuristic) ChooseCardsForZoneChange(dest game.Zone, options []game.Card, minCount, maxCount int) []game.Card {
	if minCount > len(options) {
		minCount = len(options)
	}
	return options[:minCount]
}

func (h *Heuristic) OrderMoveToZoneList(cards []game.Card, dest game.Zone) []game.Card {
	return cards
}

func (h *Heuristic) ConfirmAction(prompt string) bool            { return true }
func (h *Heuristic) ConfirmTrigger(prompt string) bool           { return true }
func (h *Heuristic) ConfirmReplacementEffect(prompt string) bool { return true }
func (h *Heuristic) ChooseBoolean(question string) bool          { return true }
func (h *Heuristic) ChooseFlipResult(call bool) bool             { return call }
func (h *Heuristic) WillPutCardOnTop(c game.Card) bool           { return !c.IsLand() }

func (h *Heuristic) ChooseCardsPile(pile1, pile2 []game.Card) bool {
	return len(pile1) >= len(pile2)
}

func (h *Heuristic) ChooseNumber(minValue, maxValue int, prompt string) int {
	return maxValue
}

func (h *Heuristic) AnnounceX(a game.Action, minValue, maxValue int) int {
	return maxValue
}

func (h *Heuristic) ChooseColor(options game.ColorSet) game.Color {
	for _, c := range []game.Color{game.ColorWhite, game.ColorBlue, game.ColorBlack, game.ColorRed, game.ColorGreen} {
		if options.Has(c) {
			return c
		}
	}
	return game.ColorWhite
}

func (h *Heuristic) ChooseCardType(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

func (h *Heuristic) ChooseString(options []string, prompt string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// ArrangeForScry bottoms excess lands, keeps everything else.
func (h *Heuristic) ArrangeForScry(top []game.Card) (keep, bottom []game.Card) {
	for _, c := range top {
		if c.IsLand() && h.untappedLandCount() >= 4 {
			bottom = append(bottom, c)
		} else {
			keep = append(keep, c)
		}
	}
	return keep, bottom
}

func (h *Heuristic) ArrangeForSurveil(top []game.Card) (keep, graveyard []game.Card) {
	keep, graveyard = h.ArrangeForScry(top)
	return keep, graveyard
}

// ChooseStartingPlayer always plays first: the tempo is worth the
// card.
func (h *Heuristic) ChooseStartingPlayer(wonFlip bool) bool { return true }

func (h *Heuristic) FinishGame(won bool, turns int, reason string) {}

func (h *Heuristic) untappedLandCount() int {
	count := 0
	for _, c := range h.player.CardsIn(game.ZoneBattlefield) {
		if c.IsLand() && !c.IsTapped() {
			count++
		}
	}
	return count
}
