package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/eval"
)

func TestMCTSFindsLethal(t *testing.T) {
	g := lethalPosition()
	player := g.Players()[0]
	evaluator := eval.New()
	origScore := evaluator.Evaluate(g, player)

	cfg := testConfig()
	cfg.MCTSIterations = 200

	mcts := NewMCTS(g, player, origScore, evaluator, cfg)
	action := mcts.FindBestAction(g.CandidateActions(player))

	require.NotNil(t, action)
	require.Contains(t, action.Description(), "Lightning Strike")
	require.Greater(t, mcts.Metrics().Iterations, 0)
}

func TestMCTSPassesWhenNothingHelps(t *testing.T) {
	require.Nil(t, NewMCTS(nil, nil, eval.NewScore(0), eval.New(), testConfig()).FindBestAction(nil),
		"no candidates means pass")
}

func TestMCTSDoesNotMutateRootGame(t *testing.T) {
	g := lethalPosition()
	player := g.Players()[0]
	evaluator := eval.New()
	origScore := evaluator.Evaluate(g, player)
	hasher := NewStateHasher()
	before := hasher.ComputeHash(g)

	cfg := testConfig()
	cfg.MCTSIterations = 100
	NewMCTS(g, player, origScore, evaluator, cfg).FindBestAction(g.CandidateActions(player))

	require.Equal(t, before, hasher.ComputeHash(g))
	require.False(t, g.IsOver())
}

func TestNormalizeScore(t *testing.T) {
	m := &MCTS{origScore: eval.NewScore(100)}

	require.Equal(t, 1.0, m.normalizeScore(eval.ScoreWin), "win maps to 1")
	require.Equal(t, 0.0, m.normalizeScore(eval.ScoreLoss), "loss maps to 0")
	require.InDelta(t, 0.5, m.normalizeScore(100), 1e-9, "unchanged score maps to 1/2")
	require.Greater(t, m.normalizeScore(250), 0.5)
	require.Less(t, m.normalizeScore(-50), 0.5)

	// The sigmoid scale: one scale unit above the origin lands at
	// sigma(1).
	require.InDelta(t, 1.0/(1.0+1.0/2.718281828459045), m.normalizeScore(250), 1e-9)
}

func TestMCTSNodeMechanics(t *testing.T) {
	t.Run("unvisited children are selected first", func(t *testing.T) {
		root := newMCTSNode(nil, Pass)
		root.visitCount = 10
		a := root.expand(ActionRef{CandidateIndex: 0, Description: "a"})
		b := root.expand(ActionRef{CandidateIndex: 1, Description: "b"})
		a.visitCount = 5
		a.totalReward = 4

		require.Equal(t, b, root.selectChild(1.4), "unvisited child has infinite UCB")
	})

	t.Run("backpropagate walks to the root", func(t *testing.T) {
		root := newMCTSNode(nil, Pass)
		child := root.expand(ActionRef{CandidateIndex: 0, Description: "a"})
		grandchild := child.expand(ActionRef{CandidateIndex: 1, Description: "b"})

		grandchild.backpropagate(0.75)

		for _, n := range []*mctsNode{root, child, grandchild} {
			require.Equal(t, 1, n.visitCount)
			require.InDelta(t, 0.75, n.totalReward, 1e-9)
		}
	})

	t.Run("best child is the most visited", func(t *testing.T) {
		root := newMCTSNode(nil, Pass)
		a := root.expand(ActionRef{CandidateIndex: 0, Description: "a"})
		b := root.expand(ActionRef{CandidateIndex: 1, Description: "b"})
		a.visitCount = 3
		b.visitCount = 9

		require.Equal(t, b, root.bestChild())
	})

	t.Run("action path reads root to leaf", func(t *testing.T) {
		root := newMCTSNode(nil, Pass)
		refA := ActionRef{CandidateIndex: 0, Description: "a"}
		refB := ActionRef{CandidateIndex: 1, Description: "b"}
		leaf := root.expand(refA).expand(refB)

		path := leaf.actionPath()
		require.Equal(t, []ActionRef{refA, refB}, path)
	})

	t.Run("fully expanded only after every action has a child", func(t *testing.T) {
		n := newMCTSNode(nil, Pass)
		require.False(t, n.isFullyExpanded(), "no legal actions discovered yet")

		n.setLegalActions([]ActionRef{{CandidateIndex: 0, Description: "a"}, Pass})
		require.False(t, n.isFullyExpanded())

		next, ok := n.nextUnexpandedAction()
		require.True(t, ok)
		n.expand(next)
		next, ok = n.nextUnexpandedAction()
		require.True(t, ok)
		require.True(t, next.IsPass(), "pass is appended as the last option")
		n.expand(next)

		require.True(t, n.isFullyExpanded())
	})
}
