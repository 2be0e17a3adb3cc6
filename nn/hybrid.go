package nn

import (
	"cardsim/game"
)

// HybridController routes only the six most impactful decisions
// through the policy and delegates everything else to the wrapped
// heuristic controller:
//
//  1. spell selection (placeholder: currently delegates to the
//     heuristic; see ChooseAction)
//  2. keep-or-mulligan
//  3. London mulligan tuck selection
//  4. declare attackers
//  5. declare blockers
//  6. single-entity targeting
type HybridController struct {
	game.Controller // heuristic fallback

	bridge bridge
}

// NewHybridController wraps the heuristic controller for one player of
// one game. recorder may be nil.
func NewHybridController(g game.Game, player game.Player, fallback game.Controller, policy Policy, recorder *Recorder) *HybridController {
	return &HybridController{
		Controller: fallback,
		bridge: bridge{
			player:   player,
			game:     g,
			policy:   policy,
			recorder: recorder,
		},
	}
}

// ChooseAction delegates to the heuristic. Full policy-driven spell
// selection needs the candidate enumeration's cost and payability
// checks, which live in the heuristic layer. FullController inherits
// this method, so spell selection stays with the heuristic there too.
func (c *HybridController) ChooseAction(candidates []game.Action) game.Action {
	return c.Controller.ChooseAction(candidates)
}

// MulliganKeep asks the policy keep (option 0) or mulligan (option 1).
func (c *HybridController) MulliganKeep(cardsToReturn int) bool {
	options := EncodeBooleanChoice()
	chosen, ok := c.bridge.choose(DecisionMulligan, options, 2)
	if !ok {
		return c.Controller.MulliganKeep(cardsToReturn)
	}
	return chosen == 0
}

// TuckCardsForMulligan picks the cards to put back one at a time.
func (c *HybridController) TuckCardsForMulligan(cardsToReturn int) []game.Card {
	hand := c.bridge.player.CardsIn(game.ZoneHand)
	if len(hand) <= cardsToReturn {
		return hand
	}

	var toReturn []game.Card
	remaining := make([]game.Card, len(hand))
	copy(remaining, hand)

	for i := 0; i < cardsToReturn; i++ {
		if len(remaining) == 1 {
			toReturn = append(toReturn, remaining[0])
			break
		}
		options := EncodeCardOptions(remaining)
		chosen, ok := c.bridge.choose(DecisionCardChoice, options, len(remaining))
		if !ok {
			return c.Controller.TuckCardsForMulligan(cardsToReturn)
		}
		toReturn = append(toReturn, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return toReturn
}

// DeclareAttackers makes a binary attack/don't-attack call per
// creature. An invalid declaration is cleared and handed back to the
// heuristic.
func (c *HybridController) DeclareAttackers(combat game.Combat) {
	defenders := combat.Defenders()
	if len(defenders) == 0 {
		return
	}
	defaultDefender := defenders[0]

	var canAttack []game.Card
	for _, creature := range c.bridge.player.CreaturesInPlay() {
		if combat.CanAttack(creature, defaultDefender) {
			canAttack = append(canAttack, creature)
		}
	}
	if len(canAttack) == 0 {
		return
	}

	state := EncodeState(c.bridge.player, c.bridge.game)
	for _, creature := range canAttack {
		options := [][]float32{EncodeCard(creature), noneRow()}
		chosen, ok := c.bridge.chooseWithState(DecisionAttack, state, options, 2)
		if !ok {
			combat.ClearAttackers()
			c.Controller.DeclareAttackers(combat)
			return
		}
		if chosen == 0 {
			combat.AddAttacker(creature, defaultDefender)
		}
	}

	if !combat.ValidateAttackers() {
		combat.ClearAttackers()
		c.Controller.DeclareAttackers(combat)
	}
}

// DeclareBlockers assigns, per attacker, one blocker or none.
func (c *HybridController) DeclareBlockers(combat game.Combat) {
	attackers := combat.Attackers()
	if len(attackers) == 0 {
		return
	}

	var available []game.Card
	for _, blocker := range c.bridge.player.CreaturesInPlay() {
		if combat.CanBlockAny(blocker) {
			available = append(available, blocker)
		}
	}
	if len(available) == 0 {
		return
	}

	state := EncodeState(c.bridge.player, c.bridge.game)
	for _, attacker := range attackers {
		var blockOptions []game.Card
		for _, blocker := range available {
			if combat.CanBlock(attacker, blocker) {
				blockOptions = append(blockOptions, blocker)
			}
		}
		if len(blockOptions) == 0 {
			continue
		}

		options := EncodeCardOptions(blockOptions)
		options = append(options, noneRow()) // last option = no block
		chosen, ok := c.bridge.chooseWithState(DecisionBlock, state, options, len(options))
		if !ok {
			c.Controller.DeclareBlockers(combat)
			return
		}
		if chosen < len(blockOptions) {
			blocker := blockOptions[chosen]
			combat.AddBlocker(attacker, blocker)
			available = removeCard(available, blocker)
		}
	}
}

// ChooseSingleEntity routes targeting through the policy. A single
// mandatory option short-circuits without an inference.
func (c *HybridController) ChooseSingleEntity(options []game.Entity, optional bool, prompt string) game.Entity {
	if len(options) == 0 {
		return nil
	}
	if len(options) == 1 {
		if optional {
			return nil
		}
		return options[0]
	}

	encoded := clampOptions(EncodeEntityOptions(options), optional)
	entityCount := min(len(options), len(encoded))
	if optional {
		entityCount = min(len(options), len(encoded)-1)
	}

	chosen, ok := c.bridge.choose(DecisionCardChoice, encoded, len(encoded))
	if !ok {
		return c.Controller.ChooseSingleEntity(options, optional, prompt)
	}
	if chosen >= entityCount {
		if optional {
			return nil
		}
		chosen = entityCount - 1
	}
	return options[chosen]
}

// FinishGame records the outcome before handing the game back.
func (c *HybridController) FinishGame(won bool, turns int, reason string) {
	if c.bridge.recorder != nil {
		c.bridge.recorder.FinishGame(won, turns, reason)
	}
	c.Controller.FinishGame(won, turns, reason)
}

func removeCard(cards []game.Card, target game.Card) []game.Card {
	for i, c := range cards {
		if c == target {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}
