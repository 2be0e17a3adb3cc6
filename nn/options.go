package nn

import (
	"cardsim/game"
)

// Option encoders build the N x 16 option matrix for one decision.
// Every row reuses the card feature schema where the option is (or is
// hosted by) a card; synthetic options use the first feature only.

// EncodeCardOptions encodes each card with the card schema.
func EncodeCardOptions(cards []game.Card) [][]float32 {
	result := make([][]float32, len(cards))
	for i, c := range cards {
		result[i] = EncodeCard(c)
	}
	return result
}

// EncodeActionOptions encodes each action by its host card; hostless
// actions get an empty present-only row.
func EncodeActionOptions(actions []game.Action) [][]float32 {
	result := make([][]float32, len(actions))
	for i, a := range actions {
		if a.Host() != nil {
			result[i] = EncodeCard(a.Host())
		} else {
			row := make([]float32, CardFeatures)
			row[0] = 1.0
			result[i] = row
		}
	}
	return result
}

// EncodeEntityOptions encodes cards with the card schema; other
// entities (players, emblems) get an ordinal present value so the
// policy can still tell them apart.
func EncodeEntityOptions(entities []game.Entity) [][]float32 {
	n := len(entities)
	result := make([][]float32, n)
	for i, e := range entities {
		if c, ok := e.(game.Card); ok {
			result[i] = EncodeCard(c)
		} else {
			row := make([]float32, CardFeatures)
			row[0] = float32(i+1) / float32(n)
			result[i] = row
		}
	}
	return result
}

// EncodeBooleanChoice returns the fixed two-row yes/no encoding:
// row 0 (yes) = [1,0,...], row 1 (no) = [0,1,0,...].
func EncodeBooleanChoice() [][]float32 {
	result := make([][]float32, 2)
	result[0] = make([]float32, CardFeatures)
	result[1] = make([]float32, CardFeatures)
	result[0][0] = 1.0
	result[1][1] = 1.0
	return result
}

// EncodeNumberRange returns one row per integer in [min, max]; row i
// has first feature i/(max-min), or 1.0 when the range is a single
// value.
func EncodeNumberRange(min, max int) [][]float32 {
	count := max - min + 1
	result := make([][]float32, count)
	span := float32(max - min)
	for i := 0; i < count; i++ {
		row := make([]float32, CardFeatures)
		if span == 0 {
			row[0] = 1.0
		} else {
			row[0] = float32(i) / span
		}
		result[i] = row
	}
	return result
}

// noneRow is the all-zero "choose nothing" option row.
func noneRow() []float32 {
	return make([]float32, CardFeatures)
}

// clampOptions enforces the policy's 64-option limit. When the choice
// is optional and the matrix is full, the last slot is surrendered to
// the "none" row so declining stays expressible.
func clampOptions(options [][]float32, optional bool) [][]float32 {
	if len(options) > MaxOptions {
		options = options[:MaxOptions]
	}
	if optional {
		if len(options) == MaxOptions {
			options[MaxOptions-1] = noneRow()
		} else {
			options = append(options, noneRow())
		}
	}
	return options
}
