package agent

import (
	"cardsim/eval"
	"cardsim/game"
	"cardsim/searcher"
)

// SearchAgent is the minimax-backed controller: spell selection runs
// the bounded-depth search, everything else falls through to the
// heuristic.
type SearchAgent struct {
	*Heuristic

	g      game.Game
	picker *searcher.Picker
}

func NewSearchAgent(g game.Game, player game.Player, evaluator *eval.Evaluator, cfg searcher.Config) *SearchAgent {
	return &SearchAgent{
		Heuristic: NewHeuristic(player),
		g:         g,
		picker:    searcher.NewPicker(player, evaluator, cfg),
	}
}

// ChooseAction searches the candidates; nil means nothing beats
// passing.
func (a *SearchAgent) ChooseAction(candidates []game.Action) game.Action {
	action, _ := a.picker.ChooseBestAction(a.g, candidates)
	return action
}

// FinishGame clears per-game search state.
func (a *SearchAgent) FinishGame(won bool, turns int, reason string) {
	a.picker.Orderer().ClearAll()
	a.Heuristic.FinishGame(won, turns, reason)
}

// MCTSAgent is the Monte Carlo controller: spell selection runs MCTS
// with the shared evaluator, everything else is heuristic.
type MCTSAgent struct {
	*Heuristic

	g         game.Game
	player    game.Player
	evaluator *eval.Evaluator
	cfg       searcher.Config
}

func NewMCTSAgent(g game.Game, player game.Player, evaluator *eval.Evaluator, cfg searcher.Config) *MCTSAgent {
	return &MCTSAgent{
		Heuristic: NewHeuristic(player),
		g:         g,
		player:    player,
		evaluator: evaluator,
		cfg:       cfg,
	}
}

func (a *MCTSAgent) ChooseAction(candidates []game.Action) game.Action {
	origScore := a.evaluator.Evaluate(a.g, a.player)
	mcts := searcher.NewMCTS(a.g, a.player, origScore, a.evaluator, a.cfg)
	return mcts.FindBestAction(candidates)
}
