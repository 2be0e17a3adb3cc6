package searcher

import (
	"fmt"
	"math"
	"time"

	"cardsim/eval"
	"cardsim/game"
)

// Config carries the search settings read from the AI profile.
type Config struct {
	MaxDepth       int
	TimeLimit      time.Duration
	LoopDetection  bool
	UseTT          bool
	AlphaBeta      bool
	FutilityMargin int

	MCTSIterations  int
	MCTSExploration float64
	MCTSRolloutDepth int
}

// DefaultConfig matches the default AI profile's depth, time limit,
// futility margin and MCTS settings, but leaves loop detection, the
// transposition table and alpha-beta off; config.Default turns all
// three on.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         3,
		TimeLimit:        5 * time.Second,
		LoopDetection:    false,
		UseTT:            false,
		AlphaBeta:        false,
		FutilityMargin:   300,
		MCTSIterations:   200,
		MCTSExploration:  math.Sqrt2,
		MCTSRolloutDepth: 4,
	}
}

// Controller tracks the state of one minimax decision: the frame
// stacks, the decision path, the best line found, and the pruning
// machinery. One controller per decision, per thread.
type Controller struct {
	aiPlayer game.Player
	cfg      Config

	startTime time.Time

	scoreStack     []eval.Score
	simulatorStack []*Simulator
	currentStack   []*Decision
	// alphaStack[i] is the best score found so far at depth i.
	alphaStack []int

	bestScore    eval.Score
	bestSequence *Decision

	hasher *StateHasher
	tt     *TranspositionTable

	effectCache          []cachedEffect
	currentHostAndTarget *hostTarget
	evaluator            *eval.Evaluator
}

// cachedEffect remembers that an action from a host against a target
// produced a non-positive score delta, so equivalent later lines can
// skip re-simulation. Only negative effects are cached: they can only
// ever tell the search "don't bother".
type cachedEffect struct {
	host        game.Entity
	description string
	target      game.Entity
	targetScore int
	scoreDelta  int
}

// hostTarget is an action's host and target reverse-mapped to the
// root game, plus the target as seen by the simulated copy.
type hostTarget struct {
	host           game.Entity
	target         game.Entity
	simulatedTarget game.Card
}

// NewController starts a decision clock at the given base score.
func NewController(score eval.Score, aiPlayer game.Player, evaluator *eval.Evaluator, cfg Config) *Controller {
	c := &Controller{
		aiPlayer:   aiPlayer,
		cfg:        cfg,
		startTime:  time.Now(),
		scoreStack: []eval.Score{score},
		alphaStack: []int{score.Value},
		bestScore:  score,
		evaluator:  evaluator,
	}
	if cfg.LoopDetection {
		c.hasher = NewStateHasher()
	}
	if cfg.UseTT {
		c.tt = NewTranspositionTable()
	}
	return c
}

// Depth is the current recursion depth; the root is depth 0.
func (c *Controller) Depth() int {
	return len(c.scoreStack) - 1
}

// ShouldRecurse reports whether the search may descend further: no
// winning line found yet, depth budget left, and time budget left.
func (c *Controller) ShouldRecurse() bool {
	if c.bestScore.Value == eval.ScoreWin {
		return false
	}
	if c.Depth() >= c.cfg.MaxDepth {
		return false
	}
	if time.Since(c.startTime) > c.cfg.TimeLimit {
		return false
	}
	return true
}

// IsLoopDetected reports whether this state was already visited during
// the current decision.
func (c *Controller) IsLoopDetected(g game.Game) bool {
	if c.hasher == nil {
		return false
	}
	return c.hasher.HasSeenState(g)
}

// ProbeTT returns a cached entry usable at the current depth, or nil.
func (c *Controller) ProbeTT(g game.Game) *TTEntry {
	if c.tt == nil || c.hasher == nil {
		return nil
	}
	return c.tt.ProbeForDepth(c.hasher.ComputeHash(g), c.Depth())
}

// StoreTT caches a score for the state at the current depth.
func (c *Controller) StoreTT(g game.Game, score eval.Score, bound Bound) {
	if c.tt == nil || c.hasher == nil {
		return
	}
	c.tt.Store(c.hasher.ComputeHash(g), score, c.Depth(), bound)
}

// TT exposes the table for telemetry; nil when disabled.
func (c *Controller) TT() *TranspositionTable { return c.tt }

// Alpha is the best score found so far at the current depth.
func (c *Controller) Alpha() int {
	return c.alphaStack[len(c.alphaStack)-1]
}

// ParentAlpha is the parent depth's best score, or ScoreWin at root.
func (c *Controller) ParentAlpha() int {
	if len(c.alphaStack) < 2 {
		return eval.ScoreWin
	}
	return c.alphaStack[len(c.alphaStack)-2]
}

func (c *Controller) UpdateAlpha(scoreValue int) {
	idx := len(c.alphaStack) - 1
	if scoreValue > c.alphaStack[idx] {
		c.alphaStack[idx] = scoreValue
	}
}

// ShouldSkipRecursion is futility pruning: when a move's immediate
// score is more than the margin below the best at this depth, deeper
// search will not make it competitive.
func (c *Controller) ShouldSkipRecursion(baseScoreValue int) bool {
	if !c.cfg.AlphaBeta {
		return false
	}
	return baseScoreValue+c.cfg.FutilityMargin < c.Alpha()
}

// ShouldBetaCutoff is the soft beta cutoff: at depth >= 2, once this
// depth beats the parent's best, the branch is proven competitive and
// remaining siblings can be skipped. Not applied near the root where
// accuracy feeds the final decision directly.
func (c *Controller) ShouldBetaCutoff() bool {
	if !c.cfg.AlphaBeta {
		return false
	}
	if c.Depth() < 2 {
		return false
	}
	return c.Alpha() >= c.ParentAlpha()
}

func (c *Controller) lastDecision() *Decision {
	if len(c.currentStack) == 0 {
		return nil
	}
	return c.currentStack[len(c.currentStack)-1]
}

func (c *Controller) currentScore() eval.Score {
	return c.scoreStack[len(c.scoreStack)-1]
}

// EvaluateAction records descending into candidates[index].
func (c *Controller) EvaluateAction(candidates []game.Action, index int) {
	ref := NewActionRef(index, candidates[index])
	c.currentStack = append(c.currentStack, &Decision{
		InitialScore: c.currentScore(),
		Prev:         c.lastDecision(),
		Ref:          &ref,
	})
}

// EvaluateCardChoice records an ancillary chosen-card sub-decision.
func (c *Controller) EvaluateCardChoice(choice game.Card) {
	c.currentStack = append(c.currentStack, &Decision{
		InitialScore: c.currentScore(),
		Prev:         c.lastDecision(),
		Choices:      []string{choice.Name()},
	})
}

// EvaluateChosenModes records an ancillary mode-mask sub-decision.
func (c *Controller) EvaluateChosenModes(modes []int, modesStr string) {
	c.currentStack = append(c.currentStack, &Decision{
		InitialScore: c.currentScore(),
		Prev:         c.lastDecision(),
		Modes:        modes,
		ModesStr:     modesStr,
	})
}

// EvaluateTargetChoices records an ancillary target-set sub-decision.
func (c *Controller) EvaluateTargetChoices(targets *Targets) {
	c.currentStack = append(c.currentStack, &Decision{
		InitialScore: c.currentScore(),
		Prev:         c.lastDecision(),
		Targets:      targets,
	})
}

// EvaluateX records an announced X value.
func (c *Controller) EvaluateX(x int) {
	c.currentStack = append(c.currentStack, &Decision{
		InitialScore: c.currentScore(),
		Prev:         c.lastDecision(),
		XMana:        x,
		HasX:         true,
	})
}

// DoneEvaluating closes the decision opened by the latest Evaluate*
// call. The decision becomes the best line when it improved on its
// entry score and on the global best.
func (c *Controller) DoneEvaluating(score eval.Score) {
	last := c.lastDecision()
	if last == nil {
		panic("DoneEvaluating without a matching Evaluate call")
	}
	if last.InitialScore.Value < score.Value && score.Value > c.bestScore.Value {
		c.bestScore = score
		c.bestSequence = last
	}
	c.currentStack = c.currentStack[:len(c.currentStack)-1]
}

func (c *Controller) BestScore() eval.Score {
	return c.bestScore
}

// BestPlan materializes the best root-to-leaf line. Must be called
// after the search fully unwinds.
func (c *Controller) BestPlan() *Plan {
	if len(c.currentStack) != 0 {
		panic("BestPlan expects the decision stack to be empty")
	}
	if c.bestSequence == nil {
		return &Plan{FinalScore: c.bestScore}
	}
	return materializePlan(c.bestSequence, c.bestScore)
}

// Push enters a recursion frame after simulating an action.
func (c *Controller) Push(score eval.Score, simulator *Simulator) {
	c.scoreStack = append(c.scoreStack, score)
	c.simulatorStack = append(c.simulatorStack, simulator)
	// The child's alpha starts at the base score: doing nothing more.
	c.alphaStack = append(c.alphaStack, score.Value)
}

// Pop leaves a recursion frame, releasing its game copy.
func (c *Controller) Pop() {
	c.scoreStack = c.scoreStack[:len(c.scoreStack)-1]
	c.simulatorStack = c.simulatorStack[:len(c.simulatorStack)-1]
	c.alphaStack = c.alphaStack[:len(c.alphaStack)-1]
}

// Elapsed is the wall-clock time spent on this decision so far.
func (c *Controller) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// originalHostAndTarget reverse-maps an action's host and single card
// target through every live simulator frame back to the root game.
// Returns nil when the action has no single card target or when either
// handle has no antecedent (e.g. a token born inside the simulation).
func (c *Controller) originalHostAndTarget(a game.Action) *hostTarget {
	target, ok := a.Target().(game.Card)
	if !ok {
		return nil
	}
	if a.Host() == nil {
		return nil
	}
	host := game.Entity(a.Host())
	simulatedTarget := target

	mappedHost := host
	mappedTarget := game.Entity(target)
	for i := len(c.simulatorStack) - 1; i >= 0; i-- {
		if mappedHost == nil || mappedTarget == nil {
			return nil
		}
		snap := c.simulatorStack[i].Snapshot()
		if hostCard, ok := mappedHost.(game.Card); ok && hostCard.Game() != c.simulatorStack[i].Game() {
			panic(fmt.Sprintf("expected host card and simulator game to match (host %q)", hostCard.Name()))
		}
		mappedHost = snap.ReverseFind(mappedHost)
		mappedTarget = snap.ReverseFind(mappedTarget)
	}
	if mappedHost == nil || mappedTarget == nil {
		return nil
	}
	return &hostTarget{host: mappedHost, target: mappedTarget, simulatedTarget: simulatedTarget}
}

// SetHostAndTarget captures the host/target identity for the action
// about to be simulated, so a non-positive result can be cached when
// the evaluation completes.
func (c *Controller) SetHostAndTarget(a game.Action, simulator *Simulator) {
	c.simulatorStack = append(c.simulatorStack, simulator)
	c.currentHostAndTarget = c.originalHostAndTarget(a)
	c.simulatorStack = c.simulatorStack[:len(c.simulatorStack)-1]
}

// ShouldSkipTarget consults the effect cache: when this action against
// this target is known to be worthless and the target's card score is
// unchanged, the cached delta substitutes for a full simulation.
func (c *Controller) ShouldSkipTarget(a game.Action, simulator *Simulator) *eval.Score {
	c.simulatorStack = append(c.simulatorStack, simulator)
	ht := c.originalHostAndTarget(a)
	c.simulatorStack = c.simulatorStack[:len(c.simulatorStack)-1]
	if ht == nil {
		return nil
	}

	desc := a.Description()
	for _, effect := range c.effectCache {
		if effect.host == ht.host && effect.target == ht.target && effect.description == desc {
			// The comparison uses the target as the simulation sees it
			// now: if the card changed since the effect was cached, the
			// scores differ and the cache entry is ignored.
			target := ht.simulatedTarget
			cardScore := c.evaluator.EvalCard(target.Game(), c.aiPlayer, target)
			if cardScore == effect.targetScore {
				current := c.currentScore()
				return &eval.Score{
					Value:           current.Value + effect.scoreDelta,
					SummonSickValue: current.SummonSickValue,
				}
			}
		}
	}
	return nil
}

// PossiblyCacheResult caches a completed target evaluation when its
// score delta was non-positive.
func (c *Controller) PossiblyCacheResult(score eval.Score, a game.Action) {
	defer func() { c.currentHostAndTarget = nil }()

	if len(c.currentStack) == 0 || c.currentHostAndTarget == nil {
		return
	}
	d := c.currentStack[len(c.currentStack)-1]
	scoreDelta := score.Value - d.InitialScore.Value
	if scoreDelta > 0 {
		return
	}
	ht := c.currentHostAndTarget
	target := ht.simulatedTarget
	cardScore := c.evaluator.EvalCard(target.Game(), c.aiPlayer, target)
	c.effectCache = append(c.effectCache, cachedEffect{
		host:        ht.host,
		description: a.Description(),
		target:      ht.target,
		targetScore: cardScore,
		scoreDelta:  scoreDelta,
	})
}
