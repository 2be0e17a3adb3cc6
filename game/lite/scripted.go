package lite

import (
	"golang.org/x/exp/rand"

	"cardsim/game"
)

// PlayerSetup scripts one player's starting zones for a mid-game
// position, used by tests and benchmarks.
type PlayerSetup struct {
	Name        string
	Life        int
	Hand        []CardSpec
	Battlefield []CardSpec
	Library     []CardSpec
}

// NewScriptedGame builds a game in a known mid-game state: turn 3,
// first main phase, player one to act. Battlefield creatures arrive
// without summoning sickness.
func NewScriptedGame(p1, p2 PlayerSetup, seed uint64) *Game {
	g := &Game{
		turn:        3,
		phase:       game.PhaseMain1,
		turnPlayer:  0,
		started:     true,
		nextID:      10,
		rng:         rand.New(rand.NewSource(seed)),
		cardHandles: make(map[int]*Card),
	}
	g.players = []playerState{
		{id: 1, name: p1.Name, team: 0, life: p1.Life, deckStats: deckStatistics(append(p1.Hand, p1.Library...))},
		{id: 2, name: p2.Name, team: 1, life: p2.Life, deckStats: deckStatistics(append(p2.Hand, p2.Library...))},
	}
	g.playerHandles = []*Player{{g: g, idx: 0}, {g: g, idx: 1}}

	for idx, setup := range []PlayerSetup{p1, p2} {
		for _, spec := range setup.Hand {
			g.addCard(spec, idx, game.ZoneHand)
		}
		for _, spec := range setup.Battlefield {
			g.addCard(spec, idx, game.ZoneBattlefield)
		}
		for _, spec := range setup.Library {
			g.addCard(spec, idx, game.ZoneLibrary)
		}
	}
	return g
}
