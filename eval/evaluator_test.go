package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/game"
	"cardsim/game/lite"
)

func emptyBoards(life1, life2 int) *lite.Game {
	return lite.NewScriptedGame(
		lite.PlayerSetup{Name: "Ember", Life: life1, Library: []lite.CardSpec{lite.Mountain()}},
		lite.PlayerSetup{Name: "Thicket", Life: life2, Library: []lite.CardSpec{lite.Forest()}},
		1,
	)
}

func TestEvaluateTerminalStates(t *testing.T) {
	t.Run("winning team scores positive infinity", func(t *testing.T) {
		// Burn the opponent out through the rules engine, then score.
		gWin := lite.NewScriptedGame(
			lite.PlayerSetup{
				Name: "Ember", Life: 20,
				Hand:        []lite.CardSpec{lite.LightningStrike()},
				Battlefield: []lite.CardSpec{lite.Mountain(), lite.Mountain()},
				Library:     []lite.CardSpec{lite.Mountain()},
			},
			lite.PlayerSetup{Name: "Thicket", Life: 3, Library: []lite.CardSpec{lite.Forest()}},
			1,
		)
		me := gWin.Players()[0]
		opp := gWin.Players()[1]
		candidates := gWin.CandidateActions(me)
		require.NotEmpty(t, candidates)
		var atPlayer game.Action
		for _, a := range candidates {
			if a.Target() != nil && a.Target().EntityID() == opp.EntityID() {
				atPlayer = a
			}
		}
		require.NotNil(t, atPlayer)
		require.NoError(t, gWin.PlayAction(me, atPlayer))
		require.True(t, gWin.IsOver())

		e := New()
		require.Equal(t, Score{ScoreWin, ScoreWin}, e.Evaluate(gWin, me))
		require.Equal(t, Score{ScoreLoss, ScoreLoss}, e.Evaluate(gWin, opp))
	})

	t.Run("non-terminal scores are finite", func(t *testing.T) {
		g := emptyBoards(20, 20)
		e := New()
		score := e.Evaluate(g, g.Players()[0])
		require.NotEqual(t, ScoreWin, score.Value)
		require.NotEqual(t, ScoreLoss, score.Value)
	})
}

func TestEvaluatePositionArithmetic(t *testing.T) {
	t.Run("life differences count double", func(t *testing.T) {
		e := New()
		gAhead := emptyBoards(25, 20)
		gEven := emptyBoards(20, 20)
		ahead := e.Evaluate(gAhead, gAhead.Players()[0])
		even := e.Evaluate(gEven, gEven.Players()[0])
		require.Equal(t, 10, ahead.Value-even.Value, "2 x (my life - opp life)")
	})

	t.Run("cards in hand are worth five, opponent's cost four", func(t *testing.T) {
		e := New()
		gMine := lite.NewScriptedGame(
			lite.PlayerSetup{Name: "Ember", Life: 20, Hand: []lite.CardSpec{lite.GoblinRaider()}, Library: []lite.CardSpec{lite.Mountain()}},
			lite.PlayerSetup{Name: "Thicket", Life: 20, Library: []lite.CardSpec{lite.Forest()}},
			1,
		)
		gTheirs := lite.NewScriptedGame(
			lite.PlayerSetup{Name: "Ember", Life: 20, Library: []lite.CardSpec{lite.Mountain()}},
			lite.PlayerSetup{Name: "Thicket", Life: 20, Hand: []lite.CardSpec{lite.Forest()}, Library: []lite.CardSpec{lite.Forest()}},
			1,
		)
		gBase := emptyBoards(20, 20)
		base := e.Evaluate(gBase, gBase.Players()[0]).Value
		require.Equal(t, 5, e.Evaluate(gMine, gMine.Players()[0]).Value-base)
		require.Equal(t, -4, e.Evaluate(gTheirs, gTheirs.Players()[0]).Value-base)
	})

	t.Run("summoning-sick creatures discount the secondary score before second main", func(t *testing.T) {
		g := lite.NewScriptedGame(
			lite.PlayerSetup{Name: "Ember", Life: 20, Battlefield: []lite.CardSpec{lite.Mountain(), lite.Mountain()}, Hand: []lite.CardSpec{lite.GoblinRaider()}, Library: []lite.CardSpec{lite.Mountain()}},
			lite.PlayerSetup{Name: "Thicket", Life: 20, Library: []lite.CardSpec{lite.Forest()}},
			1,
		)
		me := g.Players()[0]
		candidates := g.CandidateActions(me)
		require.NotEmpty(t, candidates)
		require.NoError(t, g.PlayAction(me, candidates[0]))

		e := New()
		score := e.Evaluate(g, me)
		require.Less(t, score.SummonSickValue, score.Value,
			"a sick creature is worth zero in the secondary score before MAIN2")
	})
}

func TestEvaluateLand(t *testing.T) {
	g := lite.NewScriptedGame(
		lite.PlayerSetup{Name: "Ember", Life: 20, Battlefield: []lite.CardSpec{lite.Mountain()}, Library: []lite.CardSpec{lite.Mountain()}},
		lite.PlayerSetup{Name: "Thicket", Life: 20, Library: []lite.CardSpec{lite.Forest()}},
		1,
	)
	land := g.Players()[0].CardsIn(game.ZoneBattlefield)[0]
	// 3 base + 100 per mana produced + 3 per distinct color.
	require.Equal(t, 106, EvaluateLand(land))
}

func TestEvalCardShapes(t *testing.T) {
	colossus := lite.CanopyColossus()
	boar := lite.BristlebackBoar()
	g := lite.NewScriptedGame(
		lite.PlayerSetup{Name: "Ember", Life: 20, Library: []lite.CardSpec{lite.Mountain()}},
		lite.PlayerSetup{Name: "Thicket", Life: 20, Battlefield: []lite.CardSpec{boar, colossus}, Library: []lite.CardSpec{lite.Forest()}},
		1,
	)
	me := g.Players()[0]
	opp := g.Players()[1]
	e := New()

	creatures := opp.CreaturesInPlay()
	require.Len(t, creatures, 2)
	var small, big int
	for _, c := range creatures {
		v := e.EvalCard(g, me, c)
		if c.Name() == colossus.Name {
			big = v
		} else {
			small = v
		}
	}
	require.Greater(t, big, small, "bigger creatures score higher")
}

func TestComboBonus(t *testing.T) {
	setup := func() *lite.Game {
		return lite.NewScriptedGame(
			lite.PlayerSetup{Name: "Ember", Life: 20, Library: []lite.CardSpec{lite.Mountain()}},
			lite.PlayerSetup{Name: "Thicket", Life: 3, Library: []lite.CardSpec{lite.Forest()}},
			1,
		)
	}

	withBonus := NewWithCombo(100, DefaultComboConfig())
	without := New()

	g1, g2 := setup(), setup()
	scoreWith := withBonus.Evaluate(g1, g1.Players()[0])
	scoreWithout := without.Evaluate(g2, g2.Players()[0])

	// Opponent at three life trips both low-life signals: 100/2 + 100.
	require.Equal(t, 150, scoreWith.Value-scoreWithout.Value)

	t.Run("zero bonus disables synergy scoring entirely", func(t *testing.T) {
		e := NewWithCombo(0, DefaultComboConfig())
		g := setup()
		require.Equal(t, scoreWithout.Value, e.Evaluate(g, g.Players()[0]).Value)
	})
}
