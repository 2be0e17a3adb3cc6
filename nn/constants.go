package nn

// Feature-tensor dimensions. The byte layout is a bit-exact contract
// with external policies and the training pipeline; never change these
// without retraining every model.
const (
	MaxOptions       = 64
	CardFeatures     = 16 // features per card
	GlobalFeatures   = 24 // life, mana, phase, etc.
	BattlefieldSlots = 16 // per player
	HandSlots        = 8

	// StateSize = 24 + 256 + 256 + 128 = 664
	StateSize = GlobalFeatures +
		(BattlefieldSlots * CardFeatures * 2) + // my + opp battlefield
		(HandSlots * CardFeatures) // my hand

	// InputSize = 664 + 8 + 1024 + 64 = 1760
	InputSize = StateSize + NumDecisionTypes + MaxOptions*CardFeatures + MaxOptions
)

const (
	globalOffset         = 0
	myBattlefieldOffset  = GlobalFeatures
	oppBattlefieldOffset = myBattlefieldOffset + BattlefieldSlots*CardFeatures
	myHandOffset         = oppBattlefieldOffset + BattlefieldSlots*CardFeatures
)
