package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"cardsim/eval"
	"cardsim/game"
)

// Simulator owns one game copy for one candidate action. The copy is
// created from the parent game at construction and released when the
// frame that created the simulator pops.
type Simulator struct {
	snapshot  game.Snapshot
	gameCopy  game.Game
	aiPlayer  game.Player
	evaluator *eval.Evaluator
}

// NewSimulator snapshots the parent game. Panics if the AI player has
// no counterpart in the copy, which would mean the snapshot is broken.
func NewSimulator(parent game.Game, aiPlayer game.Player, evaluator *eval.Evaluator) *Simulator {
	snap := parent.Snapshot()
	playerCopy, ok := snap.Find(aiPlayer).(game.Player)
	if !ok {
		panic(fmt.Sprintf("simulator: player %q has no counterpart in snapshot", aiPlayer.Name()))
	}
	return &Simulator{
		snapshot:  snap,
		gameCopy:  snap.Game(),
		aiPlayer:  playerCopy,
		evaluator: evaluator,
	}
}

func (s *Simulator) Game() game.Game          { return s.gameCopy }
func (s *Simulator) Player() game.Player      { return s.aiPlayer }
func (s *Simulator) Snapshot() game.Snapshot  { return s.snapshot }

// ResolveRef maps an ActionRef to this copy's candidate list.
func (s *Simulator) ResolveRef(ref ActionRef) game.Action {
	return ref.Resolve(s.gameCopy.CandidateActions(s.aiPlayer))
}

// Simulate plays the action on the copy and evaluates the resulting
// state. A rules-engine failure abandons the branch: the error is
// logged at diagnostic level and returned.
func (s *Simulator) Simulate(a game.Action) (eval.Score, error) {
	if err := s.playSafely(a); err != nil {
		log.Debug().Err(err).Str("action", a.Description()).Msg("simulation failed")
		return eval.Score{}, err
	}
	return s.evaluator.Evaluate(s.gameCopy, s.aiPlayer), nil
}

// playSafely converts a rules-engine panic during resolution into an
// error so one broken branch cannot take down the whole decision.
func (s *Simulator) playSafely(a game.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rules engine panicked: %v", r)
		}
	}()
	return s.gameCopy.PlayAction(s.aiPlayer, a)
}
