package nn

import (
	"sort"

	"cardsim/game"
)

// EncodeState builds the 664-float state vector from me's perspective.
//
// Layout:
//
//	[0..23]    global features (life, hand size, phase, mana, ...)
//	[24..279]  my battlefield (16 slots x 16 features)
//	[280..535] opponent battlefield (16 slots x 16 features)
//	[536..663] my hand (8 slots x 16 features)
func EncodeState(me game.Player, g game.Game) []float32 {
	state := make([]float32, StateSize)

	opp := findOpponent(me)

	state[globalOffset] = float32(me.Life()) / 20.0
	state[globalOffset+1] = float32(opp.Life()) / 20.0
	state[globalOffset+2] = float32(len(me.CardsIn(game.ZoneHand))) / 7.0
	state[globalOffset+3] = float32(len(opp.CardsIn(game.ZoneHand))) / 7.0
	state[globalOffset+4] = float32(len(me.CardsIn(game.ZoneGraveyard))) / 20.0
	state[globalOffset+5] = float32(len(opp.CardsIn(game.ZoneGraveyard))) / 20.0
	state[globalOffset+6] = float32(len(me.CardsIn(game.ZoneLibrary))) / 60.0
	state[globalOffset+7] = float32(len(opp.CardsIn(game.ZoneLibrary))) / 60.0
	state[globalOffset+8] = min32(float32(g.Turn())/20.0, 1.0)
	if g.IsPlayerTurn(me) {
		state[globalOffset+9] = 1.0
	}

	// Phase one-hot, indices 10..22.
	state[globalOffset+10+int(g.Phase())] = 1.0

	untappedLands := 0
	for _, c := range me.CardsIn(game.ZoneBattlefield) {
		if c.IsLand() && !c.IsTapped() {
			untappedLands++
		}
	}
	state[globalOffset+23] = float32(untappedLands) / 10.0

	encodeZoneSlots(state, myBattlefieldOffset, me.CardsIn(game.ZoneBattlefield), BattlefieldSlots)
	encodeZoneSlots(state, oppBattlefieldOffset, opp.CardsIn(game.ZoneBattlefield), BattlefieldSlots)
	encodeZoneSlots(state, myHandOffset, me.CardsIn(game.ZoneHand), HandSlots)

	return state
}

// EncodeCard builds the 16-float card feature vector:
//
//	[present, cmc/10, power/20, toughness/20, isCreature, isLand,
//	 isInstantOrSorcery, isEnchantment, isArtifact, W, U, B, R, G,
//	 tapped, sick]
//
// Non-creatures have zero power and toughness.
func EncodeCard(c game.Card) []float32 {
	features := make([]float32, CardFeatures)

	features[0] = 1.0
	features[1] = float32(c.CMC()) / 10.0
	if c.IsCreature() {
		features[2] = float32(c.NetPower()) / 20.0
		features[3] = float32(c.NetToughness()) / 20.0
		features[4] = 1.0
	}
	if c.IsLand() {
		features[5] = 1.0
	}
	if c.IsInstant() || c.IsSorcery() {
		features[6] = 1.0
	}
	if c.IsEnchantment() {
		features[7] = 1.0
	}
	if c.IsArtifact() {
		features[8] = 1.0
	}

	colors := c.Colors()
	if colors.HasWhite() {
		features[9] = 1.0
	}
	if colors.HasBlue() {
		features[10] = 1.0
	}
	if colors.HasBlack() {
		features[11] = 1.0
	}
	if colors.HasRed() {
		features[12] = 1.0
	}
	if colors.HasGreen() {
		features[13] = 1.0
	}

	if c.IsTapped() {
		features[14] = 1.0
	}
	if c.IsSick() {
		features[15] = 1.0
	}

	return features
}

// encodeZoneSlots sorts cards by importance (creatures first, then by
// converted cost descending) and encodes them into fixed slots.
// Overflow cards are dropped; unused slots stay zero.
func encodeZoneSlots(state []float32, offset int, cards []game.Card, maxSlots int) {
	sorted := make([]game.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		iCre, jCre := sorted[i].IsCreature(), sorted[j].IsCreature()
		if iCre != jCre {
			return iCre
		}
		return sorted[i].CMC() > sorted[j].CMC()
	})

	count := min(len(sorted), maxSlots)
	for i := 0; i < count; i++ {
		copy(state[offset+i*CardFeatures:], EncodeCard(sorted[i]))
	}
}

func findOpponent(me game.Player) game.Player {
	if opps := me.Opponents(); len(opps) > 0 {
		return opps[0]
	}
	// Degenerate single-player game; encode the player as its own
	// opponent rather than fail.
	return me
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
