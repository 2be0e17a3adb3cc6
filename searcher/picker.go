package searcher

import (
	"github.com/rs/zerolog/log"

	"cardsim/eval"
	"cardsim/game"
)

// Picker drives the minimax variant of the search. The search is
// all-MAX from the AI's perspective: the opponent's responses are not
// modeled as a MIN layer but folded into the evaluator, which
// fast-forwards each position through the upcoming combat. Classical
// alpha-beta therefore does not apply; pruning is futility pruning
// plus the soft beta cutoff on the controller.
//
// One Picker per decision thread. The move orderer persists across
// decisions within a game so history accumulates.
type Picker struct {
	player    game.Player
	evaluator *eval.Evaluator
	orderer   *MoveOrderer
	cfg       Config

	controller *Controller
}

func NewPicker(player game.Player, evaluator *eval.Evaluator, cfg Config) *Picker {
	return &Picker{
		player:    player,
		evaluator: evaluator,
		orderer:   NewMoveOrderer(),
		cfg:       cfg,
	}
}

// Orderer exposes the move orderer, mainly so game-boundary callers
// can ClearAll.
func (p *Picker) Orderer() *MoveOrderer { return p.orderer }

// ChooseBestAction searches the candidate list and returns the best
// action to play now, with the plan that justified it. A nil action
// means no candidate improves on doing nothing.
func (p *Picker) ChooseBestAction(g game.Game, candidates []game.Action) (game.Action, *Plan) {
	if len(candidates) == 0 {
		return nil, nil
	}

	origScore := p.evaluator.Evaluate(g, p.player)
	p.orderer.Clear()
	p.controller = NewController(origScore, p.player, p.evaluator, p.cfg)

	p.searchDepth(g, p.player, candidates)

	plan := p.controller.BestPlan()
	best := p.controller.BestScore()
	if len(plan.Decisions) == 0 || best.Value <= origScore.Value {
		log.Debug().Stringer("score", origScore).Msg("search found no improving line")
		return nil, nil
	}

	action := plan.Decisions[0].Ref.Resolve(candidates)
	if action == nil {
		// The winning line refers to an action that no longer resolves
		// against the live game; play nothing rather than something
		// arbitrary.
		log.Warn().Str("ref", plan.Decisions[0].Ref.String()).Msg("best plan action did not resolve")
		return nil, nil
	}
	log.Debug().
		Stringer("score", best).
		Str("action", action.Description()).
		Int("depthBudget", p.cfg.MaxDepth).
		Msg("search picked action")
	return action, plan
}

// searchDepth evaluates every candidate at the controller's current
// depth, recursing where worthwhile, and returns the best score seen.
func (p *Picker) searchDepth(g game.Game, player game.Player, candidates []game.Action) eval.Score {
	ctrl := p.controller
	depth := ctrl.Depth()
	bestHere := ctrl.currentScore()
	var bestAction game.Action

	for _, idx := range p.orderer.OrderMoves(candidates, depth) {
		a := candidates[idx]

		sim := NewSimulator(g, player, p.evaluator)
		copied := sim.ResolveRef(NewActionRef(idx, a))
		if copied == nil {
			// The candidate has no equivalent in the snapshot; abandon
			// this branch.
			continue
		}

		ctrl.EvaluateAction(candidates, idx)
		if copied.Target() != nil {
			ctrl.EvaluateTargetChoices(&Targets{
				EntityIDs:   []int{copied.Target().EntityID()},
				Description: describeTarget(copied.Target()),
			})
		}

		score, pruned := p.evaluateCandidate(ctrl, sim, copied)
		if copied.Target() != nil {
			if !pruned {
				ctrl.PossiblyCacheResult(score, copied)
			}
			ctrl.DoneEvaluating(score) // close the target sub-decision
		}
		ctrl.DoneEvaluating(score)
		if pruned {
			continue
		}

		ctrl.UpdateAlpha(score.Value)
		if score.Value > bestHere.Value {
			bestHere = score
			bestAction = a
		}

		if score.Value == eval.ScoreWin {
			break
		}
		if ctrl.ShouldBetaCutoff() {
			p.orderer.RecordKillerMove(a, depth)
			break
		}
	}

	if bestAction != nil {
		p.orderer.UpdateHistory(bestAction, depth)
	}
	return bestHere
}

// evaluateCandidate simulates one candidate and descends when the
// gates allow it. The boolean result is true when the branch was
// abandoned without producing a usable score.
func (p *Picker) evaluateCandidate(ctrl *Controller, sim *Simulator, copied game.Action) (eval.Score, bool) {
	// Effect-cache shortcut: a known-worthless targeted action skips
	// simulation entirely.
	if cached := ctrl.ShouldSkipTarget(copied, sim); cached != nil {
		return *cached, false
	}
	ctrl.SetHostAndTarget(copied, sim)

	score, err := sim.Simulate(copied)
	if err != nil {
		// Treat a rules-engine failure like a timeout for this branch.
		return ctrl.currentScore(), true
	}

	if !ctrl.ShouldRecurse() || ctrl.ShouldSkipRecursion(score.Value) {
		return score, false
	}
	if ctrl.IsLoopDetected(sim.Game()) {
		return score, false
	}
	if entry := ctrl.ProbeTT(sim.Game()); entry != nil {
		return entry.Score, false
	}

	subCandidates := sim.Game().CandidateActions(sim.Player())
	if len(subCandidates) == 0 {
		ctrl.StoreTT(sim.Game(), score, BoundExact)
		return score, false
	}

	ctrl.Push(score, sim)
	deep := p.searchDepth(sim.Game(), sim.Player(), subCandidates)
	ctrl.Pop()

	bound := BoundExact
	if ctrl.cfg.AlphaBeta {
		// With pruning on, a subtree result can be a lower bound: a
		// cutoff may have hidden better lines.
		bound = BoundLower
	}
	ctrl.StoreTT(sim.Game(), deep, bound)
	return deep, false
}

func describeTarget(e game.Entity) string {
	if c, ok := e.(game.Card); ok {
		return c.Name()
	}
	if p, ok := e.(game.Player); ok {
		return p.Name()
	}
	return "target"
}
