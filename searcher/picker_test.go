package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cardsim/eval"
	"cardsim/game"
	"cardsim/game/lite"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	cfg.TimeLimit = 2 * time.Second
	cfg.UseTT = true
	cfg.LoopDetection = true
	cfg.AlphaBeta = true
	return cfg
}

// lethalPosition: two untapped mountains, a burn spell in hand, and
// the opponent at three life.
func lethalPosition() *lite.Game {
	return lite.NewScriptedGame(
		lite.PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []lite.CardSpec{lite.LightningStrike()},
			Battlefield: []lite.CardSpec{lite.Mountain(), lite.Mountain()},
			Library:     []lite.CardSpec{lite.Mountain(), lite.Mountain()},
		},
		lite.PlayerSetup{
			Name: "Thicket", Life: 3,
			Library: []lite.CardSpec{lite.Forest(), lite.Forest()},
		},
		1,
	)
}

func TestPickerFindsLethal(t *testing.T) {
	g := lethalPosition()
	player := g.Players()[0]
	picker := NewPicker(player, eval.New(), testConfig())

	candidates := g.CandidateActions(player)
	require.NotEmpty(t, candidates)

	action, plan := picker.ChooseBestAction(g, candidates)
	require.NotNil(t, action, "a lethal line exists")
	require.Contains(t, action.Description(), "Lightning Strike")
	require.Contains(t, action.Description(), "Thicket", "the burn must go at the player")
	require.NotNil(t, plan)
	require.Equal(t, eval.ScoreWin, plan.FinalScore.Value)
}

func TestPickerDeclinesLosingMoves(t *testing.T) {
	// The only castable spell trades a card for milling two: strictly
	// worse than doing nothing.
	memoryDrain := lite.CardSpec{
		Name: "Memory Drain", Sorcery: true, CMC: 1,
		API: game.APIMill, Amount: 2,
	}
	g := lite.NewScriptedGame(
		lite.PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []lite.CardSpec{memoryDrain},
			Battlefield: []lite.CardSpec{lite.Mountain()},
			Library:     []lite.CardSpec{lite.Mountain()},
		},
		lite.PlayerSetup{
			Name: "Thicket", Life: 20,
			Library: []lite.CardSpec{lite.Forest(), lite.Forest(), lite.Forest()},
		},
		1,
	)
	player := g.Players()[0]
	picker := NewPicker(player, eval.New(), testConfig())

	action, _ := picker.ChooseBestAction(g, g.CandidateActions(player))
	require.Nil(t, action, "no candidate improves on passing")
}

func TestPickerPrefersRemovalOfBiggestThreat(t *testing.T) {
	// Destroying the colossus swings the board far more than
	// destroying the boar.
	edict := lite.CardSpec{
		Name: "Dismember", Instant: true, CMC: 1,
		API: game.APIDestroy, Targeted: true,
	}
	g := lite.NewScriptedGame(
		lite.PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []lite.CardSpec{edict},
			Battlefield: []lite.CardSpec{lite.Mountain(), lite.Mountain()},
			Library:     []lite.CardSpec{lite.Mountain()},
		},
		lite.PlayerSetup{
			Name: "Thicket", Life: 20,
			Battlefield: []lite.CardSpec{lite.BristlebackBoar(), lite.CanopyColossus()},
			Library:     []lite.CardSpec{lite.Forest()},
		},
		1,
	)
	player := g.Players()[0]
	picker := NewPicker(player, eval.New(), testConfig())

	action, _ := picker.ChooseBestAction(g, g.CandidateActions(player))
	require.NotNil(t, action)
	require.Contains(t, action.Description(), "Canopy Colossus")
}

func TestPickerDoesNotMutateRootGame(t *testing.T) {
	g := lethalPosition()
	player := g.Players()[0]
	hasher := NewStateHasher()
	before := hasher.ComputeHash(g)

	picker := NewPicker(player, eval.New(), testConfig())
	picker.ChooseBestAction(g, g.CandidateActions(player))

	require.Equal(t, before, hasher.ComputeHash(g),
		"the search must only ever touch snapshots")
	require.False(t, g.IsOver())
}

func TestControllerGates(t *testing.T) {
	player := lethalPosition().Players()[0]

	t.Run("shouldRecurse false at depth cap", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxDepth = 1
		ctrl := NewController(eval.NewScore(0), player, eval.New(), cfg)
		require.True(t, ctrl.ShouldRecurse())
		ctrl.Push(eval.NewScore(10), nil)
		require.False(t, ctrl.ShouldRecurse())
	})

	t.Run("shouldRecurse false once winning", func(t *testing.T) {
		ctrl := NewController(eval.NewScore(0), player, eval.New(), testConfig())
		ctrl.EvaluateAction([]game.Action{mockAction{desc: "win"}}, 0)
		ctrl.DoneEvaluating(eval.NewScore(eval.ScoreWin))
		require.False(t, ctrl.ShouldRecurse())
	})

	t.Run("shouldRecurse false past the time limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.TimeLimit = 0
		ctrl := NewController(eval.NewScore(0), player, eval.New(), cfg)
		time.Sleep(time.Millisecond)
		require.False(t, ctrl.ShouldRecurse())
	})

	t.Run("futility pruning respects the margin", func(t *testing.T) {
		cfg := testConfig()
		cfg.FutilityMargin = 300
		ctrl := NewController(eval.NewScore(0), player, eval.New(), cfg)
		ctrl.UpdateAlpha(1000)
		require.True(t, ctrl.ShouldSkipRecursion(699))
		require.False(t, ctrl.ShouldSkipRecursion(700))
	})

	t.Run("soft beta cutoff only below depth two", func(t *testing.T) {
		ctrl := NewController(eval.NewScore(0), player, eval.New(), testConfig())
		ctrl.Push(eval.NewScore(100), nil) // depth 1
		ctrl.UpdateAlpha(500)
		require.False(t, ctrl.ShouldBetaCutoff(), "not applied near the root")

		ctrl.Push(eval.NewScore(200), nil) // depth 2
		require.False(t, ctrl.ShouldBetaCutoff(), "child has not beaten parent yet")
		ctrl.UpdateAlpha(500)
		require.True(t, ctrl.ShouldBetaCutoff(), "child matched parent's best")
	})

	t.Run("best plan tracks the improving line", func(t *testing.T) {
		ctrl := NewController(eval.NewScore(0), player, eval.New(), testConfig())
		actions := []game.Action{
			mockAction{desc: "weak", hostName: "Weak"},
			mockAction{desc: "strong", hostName: "Strong"},
		}
		ctrl.EvaluateAction(actions, 0)
		ctrl.DoneEvaluating(eval.NewScore(50))
		ctrl.EvaluateAction(actions, 1)
		ctrl.DoneEvaluating(eval.NewScore(200))

		plan := ctrl.BestPlan()
		require.Len(t, plan.Decisions, 1)
		require.Equal(t, "strong", plan.Decisions[0].Ref.Description)
		require.Equal(t, 200, ctrl.BestScore().Value)
	})
}
