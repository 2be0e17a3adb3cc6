package searcher

import (
	"sort"

	"cardsim/game"
)

const (
	maxKillerDepth    = 20
	killerSlots       = 2
	killerPriority    = 10000
	maxHistoryEntries = 10000
)

// MoveOrderer orders candidate actions so that likely-best moves are
// searched first, which maximizes pruning. Keys are cardName:apiKind
// strings because action identity does not survive game copies.
//
// One orderer per search thread; killer moves are cleared per search,
// history persists across searches within a game.
type MoveOrderer struct {
	killerMoves  map[int][killerSlots]string
	historyTable map[string]int
}

func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{
		killerMoves:  make(map[int][killerSlots]string),
		historyTable: make(map[string]int),
	}
}

// OrderMoves returns the indices of actions in descending priority.
// The permutation is deterministic for a given orderer state.
func (o *MoveOrderer) OrderMoves(actions []game.Action, depth int) []int {
	if len(actions) == 0 {
		return nil
	}

	priorities := make([]int, len(actions))
	for i, a := range actions {
		priorities[i] = o.priority(a, depth)
	}

	indices := make([]int, len(actions))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return priorities[indices[i]] > priorities[indices[j]]
	})
	return indices
}

func (o *MoveOrderer) priority(a game.Action, depth int) int {
	priority := 0
	key := moveKey(a)
	if o.isKillerMove(key, depth) {
		priority += killerPriority
	}
	priority += o.historyTable[key]
	priority += staticPriority(a)
	return priority
}

// staticPriority ranks actions by what they do: removal first, then
// card advantage, then board development.
func staticPriority(a game.Action) int {
	switch a.API() {
	case game.APIDestroy, game.APIDestroyAll, game.APISacrifice, game.APISacrificeAll,
		game.APIDealDamage, game.APIDamageAll, game.APILoseLife, game.APICounter:
		return 500
	case game.APIDraw, game.APIMill, game.APIDiscard, game.APIPump, game.APIPumpAll:
		return 400
	case game.APIToken, game.APICopyPermanent, game.APIPermanentCreature, game.APIPermanentNoncreature:
		return 300
	case game.APIMana, game.APIManaReflected, game.APIChangeZone, game.APILandPlay:
		return 250
	case game.APIAttach, game.APIAnimate, game.APIRegenerate, game.APIGainLife:
		return 200
	default:
		return 100
	}
}

func (o *MoveOrderer) isKillerMove(key string, depth int) bool {
	killers, ok := o.killerMoves[depth]
	if !ok {
		return false
	}
	for _, k := range killers {
		if k != "" && k == key {
			return true
		}
	}
	return false
}

// RecordKillerMove remembers an action that caused a cutoff at the
// given depth, shifting older killers back. Duplicates are ignored, as
// are depths beyond the tracked range.
func (o *MoveOrderer) RecordKillerMove(a game.Action, depth int) {
	if depth >= maxKillerDepth {
		return
	}
	key := moveKey(a)
	killers := o.killerMoves[depth]
	for _, k := range killers {
		if k == key {
			return
		}
	}
	copy(killers[1:], killers[:killerSlots-1])
	killers[0] = key
	o.killerMoves[depth] = killers
}

// UpdateHistory rewards an action on the best line with depth². When
// the table grows past its cap all scores are halved and zeros
// dropped, so old signals decay instead of overflowing.
func (o *MoveOrderer) UpdateHistory(a game.Action, depth int) {
	o.historyTable[moveKey(a)] += depth * depth
	if len(o.historyTable) > maxHistoryEntries {
		o.scaleDownHistory()
	}
}

func (o *MoveOrderer) scaleDownHistory() {
	for k, v := range o.historyTable {
		v /= 2
		if v == 0 {
			delete(o.historyTable, k)
		} else {
			o.historyTable[k] = v
		}
	}
}

// Clear resets killer moves for a new search. History persists.
func (o *MoveOrderer) Clear() {
	o.killerMoves = make(map[int][killerSlots]string)
}

// ClearAll resets killers and history for a new game.
func (o *MoveOrderer) ClearAll() {
	o.killerMoves = make(map[int][killerSlots]string)
	o.historyTable = make(map[string]int)
}

func moveKey(a game.Action) string {
	name := "unknown"
	if a.Host() != nil {
		name = a.Host().Name()
	}
	return name + ":" + a.API().String()
}
