package nn

import (
	"cardsim/game"
)

// FullController routes the discrete choices the engine surfaces
// through the policy. Informational calls, mana payment, combat damage
// assignment, the opening hand, and sideboarding remain with the
// heuristic controller: those either carry no real decision or need
// cost bookkeeping the policy has no features for. Spell selection
// (ChooseAction, inherited from HybridController) and coin-flip calls
// also stay with the heuristic.
type FullController struct {
	*HybridController
}

func NewFullController(g game.Game, player game.Player, fallback game.Controller, policy Policy, recorder *Recorder) *FullController {
	return &FullController{
		HybridController: NewHybridController(g, player, fallback, policy, recorder),
	}
}

// --- Card selection family ---

// chooseCardSubset picks between min and max cards from options, one
// policy call per pick. The "none" row stops early once min is met.
func (c *FullController) chooseCardSubset(decision DecisionType, options []game.Card, minCount, maxCount int) ([]game.Card, bool) {
	if maxCount > len(options) {
		maxCount = len(options)
	}
	if minCount > maxCount {
		minCount = maxCount
	}
	if maxCount == 0 {
		return nil, true
	}

	var picked []game.Card
	remaining := make([]game.Card, len(options))
	copy(remaining, options)

	for len(picked) < maxCount && len(remaining) > 0 {
		optional := len(picked) >= minCount
		encoded := clampOptions(EncodeCardOptions(remaining), optional)
		chosen, ok := c.bridge.choose(decision, encoded, len(encoded))
		if !ok {
			return nil, false
		}
		selectable := min(len(remaining), MaxOptions)
		if optional {
			selectable = min(len(remaining), len(encoded)-1)
		}
		if chosen >= selectable {
			break // chose "none"
		}
		picked = append(picked, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return picked, true
}

func (c *FullController) ChooseCards(options []game.Card, minCount, maxCount int, prompt string) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, options, minCount, maxCount)
	if !ok {
		return c.Controller.ChooseCards(options, minCount, maxCount, prompt)
	}
	return picked
}

func (c *FullController) ChooseEntities(options []game.Entity, minCount, maxCount int, prompt string) []game.Entity {
	if maxCount > len(options) {
		maxCount = len(options)
	}
	var picked []game.Entity
	remaining := make([]game.Entity, len(options))
	copy(remaining, options)
	for len(picked) < maxCount && len(remaining) > 0 {
		optional := len(picked) >= minCount
		encoded := clampOptions(EncodeEntityOptions(remaining), optional)
		chosen, ok := c.bridge.choose(DecisionCardChoice, encoded, len(encoded))
		if !ok {
			return c.Controller.ChooseEntities(options, minCount, maxCount, prompt)
		}
		selectable := min(len(remaining), MaxOptions)
		if optional {
			selectable = min(len(remaining), len(encoded)-1)
		}
		if chosen >= selectable {
			break
		}
		picked = append(picked, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return picked
}

func (c *FullController) ChooseCardsToDiscard(n int, hand []game.Card) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, hand, n, n)
	if !ok {
		return c.Controller.ChooseCardsToDiscard(n, hand)
	}
	return picked
}

func (c *FullController) ChoosePermanentsToSacrifice(options []game.Card, minCount, maxCount int) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, options, minCount, maxCount)
	if !ok {
		return c.Controller.ChoosePermanentsToSacrifice(options, minCount, maxCount)
	}
	return picked
}

func (c *FullController) ChoosePermanentsToDestroy(options []game.Card, minCount, maxCount int) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, options, minCount, maxCount)
	if !ok {
		return c.Controller.ChoosePermanentsToDestroy(options, minCount, maxCount)
	}
	return picked
}

func (c *FullController) ChooseCardsToReveal(minCount, maxCount int, valid []game.Card) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, valid, minCount, maxCount)
	if !ok {
		return c.Controller.ChooseCardsToReveal(minCount, maxCount, valid)
	}
	return picked
}

func (c *FullController) ChooseSingleCardForZoneChange(dest game.Zone, options []game.Card, optional bool) game.Card {
	entity := c.ChooseSingleEntity(entityList(options), optional, "zone change")
	if entity == nil {
		return nil
	}
	return entity.(game.Card)
}

func (c *FullController) ChooseCardsForZoneChange(dest game.Zone, options []game.Card, minCount, maxCount int) []game.Card {
	picked, ok := c.chooseCardSubset(DecisionCardChoice, options, minCount, maxCount)
	if !ok {
		return c.Controller.ChooseCardsForZoneChange(dest, options, minCount, maxCount)
	}
	return picked
}

// OrderMoveToZoneList orders cards by repeatedly asking which goes
// next.
func (c *FullController) OrderMoveToZoneList(cards []game.Card, dest game.Zone) []game.Card {
	if len(cards) <= 1 {
		return cards
	}
	ordered := make([]game.Card, 0, len(cards))
	remaining := make([]game.Card, len(cards))
	copy(remaining, cards)
	for len(remaining) > 1 {
		encoded := clampOptions(EncodeCardOptions(remaining), false)
		chosen, ok := c.bridge.choose(DecisionCardChoice, encoded, len(encoded))
		if !ok {
			return c.Controller.OrderMoveToZoneList(cards, dest)
		}
		if chosen >= len(remaining) {
			chosen = len(remaining) - 1
		}
		ordered = append(ordered, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return append(ordered, remaining[0])
}

// --- Boolean family ---

func (c *FullController) chooseBool(fallback func() bool) bool {
	options := EncodeBooleanChoice()
	chosen, ok := c.bridge.choose(DecisionBoolean, options, 2)
	if !ok {
		return fallback()
	}
	return chosen == 0
}

func (c *FullController) ConfirmAction(prompt string) bool {
	return c.chooseBool(func() bool { return c.Controller.ConfirmAction(prompt) })
}

func (c *FullController) ConfirmTrigger(prompt string) bool {
	return c.chooseBool(func() bool { return c.Controller.ConfirmTrigger(prompt) })
}

func (c *FullController) ConfirmReplacementEffect(prompt string) bool {
	return c.chooseBool(func() bool { return c.Controller.ConfirmReplacementEffect(prompt) })
}

func (c *FullController) ConfirmMulliganScry() bool {
	return c.chooseBool(c.Controller.ConfirmMulliganScry)
}

func (c *FullController) ChooseBoolean(question string) bool {
	return c.chooseBool(func() bool { return c.Controller.ChooseBoolean(question) })
}

func (c *FullController) WillPutCardOnTop(card game.Card) bool {
	return c.chooseBool(func() bool { return c.Controller.WillPutCardOnTop(card) })
}

func (c *FullController) ChooseCardsPile(pile1, pile2 []game.Card) bool {
	return c.chooseBool(func() bool { return c.Controller.ChooseCardsPile(pile1, pile2) })
}

// ChooseFlipResult stays with the heuristic: a coin flip carries no
// learnable signal.
func (c *FullController) ChooseFlipResult(call bool) bool {
	return c.Controller.ChooseFlipResult(call)
}

// --- Number family ---

func (c *FullController) ChooseNumber(minValue, maxValue int, prompt string) int {
	if minValue >= maxValue {
		return minValue
	}
	options := EncodeNumberRange(minValue, maxValue)
	valid := len(options)
	if valid > MaxOptions {
		options = options[:MaxOptions]
		valid = MaxOptions
	}
	chosen, ok := c.bridge.choose(DecisionNumber, options, valid)
	if !ok {
		return c.Controller.ChooseNumber(minValue, maxValue, prompt)
	}
	return minValue + chosen
}

func (c *FullController) AnnounceX(a game.Action, minValue, maxValue int) int {
	if minValue >= maxValue {
		return minValue
	}
	options := EncodeNumberRange(minValue, maxValue)
	valid := len(options)
	if valid > MaxOptions {
		options = options[:MaxOptions]
		valid = MaxOptions
	}
	chosen, ok := c.bridge.choose(DecisionNumber, options, valid)
	if !ok {
		return c.Controller.AnnounceX(a, minValue, maxValue)
	}
	return minValue + chosen
}

// --- Misc pickers ---

func (c *FullController) ChooseColor(options game.ColorSet) game.Color {
	colors := colorSetToList(options)
	if len(colors) == 0 {
		return 0
	}
	if len(colors) == 1 {
		return colors[0]
	}
	rows := make([][]float32, len(colors))
	for i, color := range colors {
		row := make([]float32, CardFeatures)
		row[9+colorIndex(color)] = 1.0
		rows[i] = row
	}
	chosen, ok := c.bridge.choose(DecisionGeneric, rows, len(rows))
	if !ok {
		return c.Controller.ChooseColor(options)
	}
	return colors[chosen]
}

func (c *FullController) ChooseCardType(options []string) string {
	idx, ok := c.chooseFromStrings(options)
	if !ok {
		return c.Controller.ChooseCardType(options)
	}
	return options[idx]
}

func (c *FullController) ChooseString(options []string, prompt string) string {
	idx, ok := c.chooseFromStrings(options)
	if !ok {
		return c.Controller.ChooseString(options, prompt)
	}
	return options[idx]
}

// chooseFromStrings encodes opaque string options ordinally.
func (c *FullController) chooseFromStrings(options []string) (int, bool) {
	if len(options) == 0 {
		return 0, false
	}
	if len(options) == 1 {
		return 0, true
	}
	rows := make([][]float32, 0, min(len(options), MaxOptions))
	for i := range options {
		if i >= MaxOptions {
			break
		}
		row := make([]float32, CardFeatures)
		row[0] = float32(i+1) / float32(len(options))
		rows = append(rows, row)
	}
	return c.bridge.choose(DecisionGeneric, rows, len(rows))
}

// ArrangeForScry decides card by card: keep on top or bottom.
func (c *FullController) ArrangeForScry(top []game.Card) (keep, bottom []game.Card) {
	state := EncodeState(c.bridge.player, c.bridge.game)
	for _, card := range top {
		options := [][]float32{EncodeCard(card), noneRow()}
		chosen, ok := c.bridge.chooseWithState(DecisionCardChoice, state, options, 2)
		if !ok {
			return c.Controller.ArrangeForScry(top)
		}
		if chosen == 0 {
			keep = append(keep, card)
		} else {
			bottom = append(bottom, card)
		}
	}
	return keep, bottom
}

// ArrangeForSurveil decides card by card: keep on top or bin.
func (c *FullController) ArrangeForSurveil(top []game.Card) (keep, graveyard []game.Card) {
	state := EncodeState(c.bridge.player, c.bridge.game)
	for _, card := range top {
		options := [][]float32{EncodeCard(card), noneRow()}
		chosen, ok := c.bridge.chooseWithState(DecisionCardChoice, state, options, 2)
		if !ok {
			return c.Controller.ArrangeForSurveil(top)
		}
		if chosen == 0 {
			keep = append(keep, card)
		} else {
			graveyard = append(graveyard, card)
		}
	}
	return keep, graveyard
}

// --- Combat ordering ---

func (c *FullController) OrderBlockers(attacker game.Card, blockers []game.Card) []game.Card {
	return c.orderCards(blockers, func() []game.Card {
		return c.Controller.OrderBlockers(attacker, blockers)
	})
}

func (c *FullController) OrderAttackers(blocker game.Card, attackers []game.Card) []game.Card {
	return c.orderCards(attackers, func() []game.Card {
		return c.Controller.OrderAttackers(blocker, attackers)
	})
}

func (c *FullController) orderCards(cards []game.Card, fallback func() []game.Card) []game.Card {
	if len(cards) <= 1 {
		return cards
	}
	ordered := make([]game.Card, 0, len(cards))
	remaining := make([]game.Card, len(cards))
	copy(remaining, cards)
	for len(remaining) > 1 {
		encoded := clampOptions(EncodeCardOptions(remaining), false)
		chosen, ok := c.bridge.choose(DecisionCardChoice, encoded, len(encoded))
		if !ok {
			return fallback()
		}
		if chosen >= len(remaining) {
			chosen = len(remaining) - 1
		}
		ordered = append(ordered, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return append(ordered, remaining[0])
}

func (c *FullController) ExertAttackers(attackers []game.Card) []game.Card {
	var exerted []game.Card
	state := EncodeState(c.bridge.player, c.bridge.game)
	for _, attacker := range attackers {
		options := [][]float32{EncodeCard(attacker), noneRow()}
		chosen, ok := c.bridge.chooseWithState(DecisionAttack, state, options, 2)
		if !ok {
			return c.Controller.ExertAttackers(attackers)
		}
		if chosen == 0 {
			exerted = append(exerted, attacker)
		}
	}
	return exerted
}

// ChooseStartingPlayer honors the actual decision: option 0 plays
// first, option 1 draws first.
func (c *FullController) ChooseStartingPlayer(wonFlip bool) bool {
	return c.chooseBool(func() bool { return c.Controller.ChooseStartingPlayer(wonFlip) })
}
