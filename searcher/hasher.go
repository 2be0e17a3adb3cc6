package searcher

import (
	"cardsim/game"
)

const defaultMaxSeenStates = 10000

// StateHasher hashes game states to detect infinite loops during
// simulation. The hash is deliberately lossy: only the fields below
// participate, so two states equal under that projection hash equal.
type StateHasher struct {
	seen    map[uint64]struct{}
	maxSeen int
}

func NewStateHasher() *StateHasher {
	return NewStateHasherWithCap(defaultMaxSeenStates)
}

func NewStateHasherWithCap(maxStates int) *StateHasher {
	return &StateHasher{
		seen:    make(map[uint64]struct{}),
		maxSeen: maxStates,
	}
}

// ComputeHash folds turn, phase, per-player zone counts, battlefield
// permanents, and stack depth into a 64-bit value.
func (h *StateHasher) ComputeHash(g game.Game) uint64 {
	const prime = 31
	hash := uint64(17)

	hash = hash*prime + uint64(g.Turn())
	hash = hash*prime + uint64(g.Phase())

	for _, p := range g.Players() {
		hash = hash*prime + uint64(int64(p.Life()))
		hash = hash*prime + uint64(len(p.CardsIn(game.ZoneHand)))
		hash = hash*prime + uint64(len(p.CardsIn(game.ZoneGraveyard)))
		hash = hash*prime + uint64(len(p.CardsIn(game.ZoneLibrary)))
		hash = hash*prime + uint64(p.PoisonCounters())
	}

	for _, c := range g.CardsIn(game.ZoneBattlefield) {
		hash = hash*prime + uint64(c.EntityID())
		hash = hash*prime + boolBit(c.IsTapped())
		if c.IsCreature() {
			hash = hash*prime + boolBit(c.IsSick())
			hash = hash*prime + uint64(int64(c.NetPower()))
			hash = hash*prime + uint64(int64(c.NetToughness()))
		}
	}

	hash = hash*prime + uint64(g.StackDepth())

	return hash
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// HasSeenState records the state's hash and reports whether it was
// already present, signalling a potential loop. The seen set clears
// itself when it reaches its cap.
func (h *StateHasher) HasSeenState(g game.Game) bool {
	if len(h.seen) >= h.maxSeen {
		h.seen = make(map[uint64]struct{})
	}
	hash := h.ComputeHash(g)
	if _, ok := h.seen[hash]; ok {
		return true
	}
	h.seen[hash] = struct{}{}
	return false
}

func (h *StateHasher) Clear() {
	h.seen = make(map[uint64]struct{})
}

func (h *StateHasher) SeenStateCount() int {
	return len(h.seen)
}
