package lite

import (
	"golang.org/x/exp/rand"

	"cardsim/game"
)

// snapshot carries a deep copy plus the id-based handle mapping.
type snapshot struct {
	original *Game
	copied   *Game
}

// Snapshot deep-copies the game. Entity ids are preserved, so handle
// mapping between the copy and the original is a lookup by id.
func (g *Game) Snapshot() game.Snapshot {
	copied := &Game{
		players:     append([]playerState(nil), g.players...),
		cards:       make([]cardState, len(g.cards)),
		turn:        g.turn,
		phase:       g.phase,
		turnPlayer:  g.turnPlayer,
		started:     g.started,
		stackDepth:  g.stackDepth,
		over:        g.over,
		nextID:      g.nextID,
		nextOrder:   g.nextOrder,
		rng:         rand.New(rand.NewSource(g.rng.Uint64())),
		cardHandles: make(map[int]*Card),
	}
	for i := range g.cards {
		copied.cards[i] = g.cards[i]
		copied.cards[i].counters = make(map[game.CounterKind]int, len(g.cards[i].counters))
		for k, v := range g.cards[i].counters {
			copied.cards[i].counters[k] = v
		}
	}
	if g.outcome != nil {
		outcome := *g.outcome
		copied.outcome = &outcome
	}
	copied.playerHandles = []*Player{{g: copied, idx: 0}, {g: copied, idx: 1}}
	return &snapshot{original: g, copied: copied}
}

func (s *snapshot) Game() game.Game { return s.copied }

// Find maps an entity of the original to its counterpart in the copy.
func (s *snapshot) Find(e game.Entity) game.Entity {
	if e == nil {
		return nil
	}
	return lookupByID(s.copied, e.EntityID())
}

// ReverseFind maps an entity of the copy back to its antecedent in the
// original, or nil for entities born after the snapshot.
func (s *snapshot) ReverseFind(e game.Entity) game.Entity {
	if e == nil {
		return nil
	}
	return lookupByID(s.original, e.EntityID())
}

func lookupByID(g *Game, id int) game.Entity {
	for _, h := range g.playerHandles {
		if h.EntityID() == id {
			return h
		}
	}
	if g.card(id) != nil {
		return g.handle(id)
	}
	return nil
}
