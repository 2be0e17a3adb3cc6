package nn

import (
	"github.com/rs/zerolog/log"

	"cardsim/game"
)

// bridge is the shared plumbing of the NN controllers: encode the
// state and options, ask the policy, clamp the answer, and record the
// call for training.
type bridge struct {
	player   game.Player
	game     game.Game
	policy   Policy
	recorder *Recorder // nil disables recording
}

// choose runs one policy call. The returned bool is false when the
// policy failed, which the controllers treat as "fall back to the
// heuristic" per the error-handling contract.
func (b *bridge) choose(decision DecisionType, options [][]float32, validCount int) (int, bool) {
	state := EncodeState(b.player, b.game)
	return b.chooseWithState(decision, state, options, validCount)
}

func (b *bridge) chooseWithState(decision DecisionType, state []float32, options [][]float32, validCount int) (int, bool) {
	if validCount > MaxOptions {
		validCount = MaxOptions
	}
	chosen, err := b.policy.ChooseOption(state, decision, options, validCount)
	if err != nil {
		log.Error().Err(err).Stringer("decision", decision).Msg("policy inference failed")
		return 0, false
	}
	if chosen < 0 {
		chosen = 0
	}
	if chosen >= validCount {
		chosen = validCount - 1
	}

	if b.recorder != nil {
		b.recorder.RecordDecision(
			b.game.Turn(), b.game.Phase().String(), decision,
			state, options, validCount, chosen)
	}
	return chosen, true
}

// colorSetToList expands a color mask into WUBRG order.
func colorSetToList(cs game.ColorSet) []game.Color {
	all := []game.Color{game.ColorWhite, game.ColorBlue, game.ColorBlack, game.ColorRed, game.ColorGreen}
	var out []game.Color
	for _, c := range all {
		if cs.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// colorIndex maps a color to its WUBRG feature offset.
func colorIndex(c game.Color) int {
	switch c {
	case game.ColorWhite:
		return 0
	case game.ColorBlue:
		return 1
	case game.ColorBlack:
		return 2
	case game.ColorRed:
		return 3
	case game.ColorGreen:
		return 4
	}
	return 0
}

// entityList widens a card slice for the entity choosers.
func entityList(cards []game.Card) []game.Entity {
	entities := make([]game.Entity, len(cards))
	for i, c := range cards {
		entities[i] = c
	}
	return entities
}
