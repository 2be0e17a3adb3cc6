package searcher

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"cardsim/eval"
	"cardsim/game"
)

// scoreScale controls the steepness of the reward sigmoid. Typical
// score differences between candidate actions are 50-300 points.
const scoreScale = 150.0

// Early termination: once one root child holds this share of visits
// after the minimum iteration count, more search will not change the
// answer.
const (
	earlyTerminationMinIterations = 50
	earlyTerminationThreshold     = 0.80
)

// Root selection: prefer playing over passing when the mean rewards
// are within passTiebreak; below minActionReward, passing wins.
const (
	passTiebreak    = 0.03
	minActionReward = 0.35
)

// MCTS runs Monte Carlo tree search over candidate actions, sharing
// the minimax variant's evaluator. Single-threaded per decision;
// thread safety comes from instance isolation.
//
// Each iteration: select by UCB1, expand by snapshotting the root game
// and replaying the action path, roll out a few half-turns with a
// cheap heuristic, and backpropagate the sigmoid-normalized reward.
type MCTS struct {
	rootGame  game.Game
	aiPlayer  game.Player
	origScore eval.Score
	evaluator *eval.Evaluator
	cfg       Config

	collector *Collector
}

func NewMCTS(rootGame game.Game, aiPlayer game.Player, origScore eval.Score, evaluator *eval.Evaluator, cfg Config) *MCTS {
	return &MCTS{
		rootGame:  rootGame,
		aiPlayer:  aiPlayer,
		origScore: origScore,
		evaluator: evaluator,
		cfg:       cfg,
		collector: NewCollector(),
	}
}

// Metrics returns the telemetry of the last FindBestAction call.
func (m *MCTS) Metrics() SearchMetrics { return m.collector.Complete() }

// FindBestAction returns the action to play, or nil when passing
// priority is at least as good as every candidate.
func (m *MCTS) FindBestAction(candidates []game.Action) game.Action {
	if len(candidates) == 0 {
		return nil
	}

	rootActions := make([]ActionRef, 0, len(candidates)+1)
	for i, a := range candidates {
		rootActions = append(rootActions, NewActionRef(i, a))
	}
	rootActions = append(rootActions, Pass)

	root := newMCTSNode(nil, Pass)
	root.setLegalActions(rootActions)

	m.collector.Start()
	start := time.Now()
	iterations := 0
	for iterations < m.cfg.MCTSIterations {
		if time.Since(start) > m.cfg.TimeLimit {
			break
		}
		m.runIteration(root)
		iterations++
		m.collector.AddIteration()

		if iterations >= earlyTerminationMinIterations && m.shouldTerminateEarly(root) {
			m.collector.SetEarlyStop(true)
			break
		}
	}

	best := root.bestChild()
	if best == nil {
		return nil
	}

	// If PASS won by visits, check whether any real action is close
	// enough on mean reward; the tiebreak favors playing.
	if best.action.IsPass() {
		var bestAction *mctsNode
		for _, child := range root.children {
			if child.action.IsPass() || child.visitCount == 0 {
				continue
			}
			if child.meanReward() >= best.meanReward()-passTiebreak {
				if bestAction == nil || child.meanReward() > bestAction.meanReward() {
					bestAction = child
				}
			}
		}
		if bestAction == nil {
			return nil
		}
		best = bestAction
	}

	if best.meanReward() < minActionReward {
		return nil
	}

	log.Debug().
		Int("iterations", iterations).
		Dur("elapsed", time.Since(start)).
		Str("action", best.action.String()).
		Float64("meanReward", best.meanReward()).
		Msg("mcts picked action")
	return best.action.Resolve(candidates)
}

// runIteration performs one select/expand/rollout/backpropagate pass.
// Failures abandon the branch with a neutral reward so the search
// keeps going.
func (m *MCTS) runIteration(root *mctsNode) {
	node := m.selectNode(root)

	expanded, sim := m.expand(node)
	if expanded == nil {
		node.backpropagate(0.5)
		return
	}

	var reward float64
	if expanded.terminal {
		reward = m.normalizeScore(expanded.terminalScore)
	} else {
		reward = m.rollout(sim)
	}
	expanded.backpropagate(reward)
}

// selectNode walks the tree by UCB1 until reaching a node that still
// has unexpanded actions or is terminal.
func (m *MCTS) selectNode(node *mctsNode) *mctsNode {
	for node.isFullyExpanded() && len(node.children) > 0 && !node.terminal {
		node = node.selectChild(m.cfg.MCTSExploration)
	}
	return node
}

// expand snapshots the root game, replays the path to the node, and
// expands one new child by executing its action on the copy.
func (m *MCTS) expand(node *mctsNode) (*mctsNode, *Simulator) {
	if node.terminal {
		return node, nil
	}

	sim := NewSimulator(m.rootGame, m.aiPlayer, m.evaluator)
	if !m.replayActions(sim, node.actionPath()) {
		return nil, nil
	}

	if sim.Game().IsOver() {
		next, ok := node.nextUnexpandedAction()
		if !ok {
			return nil, nil
		}
		child := node.expand(next)
		score := m.evaluator.Evaluate(sim.Game(), sim.Player())
		child.terminal = true
		child.terminalScore = score.Value
		return child, sim
	}

	if !node.hasLegal {
		candidates := sim.Game().CandidateActions(sim.Player())
		actions := make([]ActionRef, 0, len(candidates)+1)
		for i, a := range candidates {
			actions = append(actions, NewActionRef(i, a))
		}
		actions = append(actions, Pass)
		node.setLegalActions(actions)
	}

	next, ok := node.nextUnexpandedAction()
	if !ok {
		return nil, nil
	}
	child := node.expand(next)

	if next.IsPass() {
		// Passing is not terminal; the rollout evaluates what happens
		// next.
		return child, sim
	}

	a := sim.ResolveRef(next)
	if a == nil {
		// No equivalent action in this copy; score it neutral at the
		// original position.
		child.terminal = true
		child.terminalScore = m.origScore.Value
		return child, sim
	}
	if _, err := sim.Simulate(a); err != nil {
		child.terminal = true
		child.terminalScore = m.origScore.Value
		return child, sim
	}

	if sim.Game().IsOver() {
		score := m.evaluator.Evaluate(sim.Game(), sim.Player())
		child.terminal = true
		child.terminalScore = score.Value
	}
	return child, sim
}

// replayActions re-resolves and replays the path's refs against the
// copy, aborting when any step no longer applies.
func (m *MCTS) replayActions(sim *Simulator, path []ActionRef) bool {
	for _, ref := range path {
		if ref.IsPass() {
			continue
		}
		if sim.Game().IsOver() {
			return false
		}
		a := sim.ResolveRef(ref)
		if a == nil {
			return false
		}
		if _, err := sim.Simulate(a); err != nil {
			return false
		}
	}
	return true
}

// rollout plays up to the configured number of half-turns with a cheap
// heuristic (first land, else biggest spell, both sides), then
// evaluates.
func (m *MCTS) rollout(sim *Simulator) float64 {
	g := sim.Game()
	me := sim.Player()
	var opponent game.Player
	if opps := me.Opponents(); len(opps) > 0 {
		opponent = opps[0]
	}

	for i := 0; i < m.cfg.MCTSRolloutDepth && !g.IsOver(); i++ {
		played := m.tryPlayBestCandidate(g, me)
		if g.IsOver() {
			break
		}
		oppPlayed := false
		if opponent != nil {
			oppPlayed = m.tryPlayBestCandidate(g, opponent)
		}
		if !played && !oppPlayed {
			break
		}
	}
	m.collector.AddRollout()

	score := m.evaluator.Evaluate(g, me)
	return m.normalizeScore(score.Value)
}

func (m *MCTS) tryPlayBestCandidate(g game.Game, player game.Player) bool {
	candidates := g.CandidateActions(player)
	if len(candidates) == 0 {
		return false
	}
	best := selectRolloutAction(candidates)
	if err := g.PlayAction(player, best); err != nil {
		return false
	}
	return true
}

// selectRolloutAction prefers a land play (a free action), then the
// highest-cost spell as a proxy for impact.
func selectRolloutAction(candidates []game.Action) game.Action {
	var bestLand, bestSpell game.Action
	bestCMC := -1
	for _, a := range candidates {
		if a.IsLandPlay() {
			bestLand = a
			continue
		}
		cmc := 0
		if a.Host() != nil {
			cmc = a.Host().CMC()
		}
		if cmc > bestCMC {
			bestCMC = cmc
			bestSpell = a
		}
	}
	if bestLand != nil {
		return bestLand
	}
	if bestSpell != nil {
		return bestSpell
	}
	return candidates[0]
}

// normalizeScore maps an evaluator score to [0,1]: won games to 1,
// lost games to 0, everything else through a sigmoid centered on the
// score at the root.
func (m *MCTS) normalizeScore(scoreValue int) float64 {
	if scoreValue == eval.ScoreWin {
		return 1.0
	}
	if scoreValue == eval.ScoreLoss {
		return 0.0
	}
	relative := float64(scoreValue - m.origScore.Value)
	return 1.0 / (1.0 + math.Exp(-relative/scoreScale))
}

func (m *MCTS) shouldTerminateEarly(root *mctsNode) bool {
	if len(root.children) < 2 {
		return false
	}
	best := root.bestChild()
	if best == nil || root.visitCount == 0 {
		return false
	}
	return float64(best.visitCount)/float64(root.visitCount) >= earlyTerminationThreshold
}
