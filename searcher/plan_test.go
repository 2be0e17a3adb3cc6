package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/eval"
)

func TestMaterializePlan(t *testing.T) {
	t.Run("sub-decisions merge into their owning action", func(t *testing.T) {
		ref1 := ActionRef{CandidateIndex: 0, Description: "Cast Edict"}
		ref2 := ActionRef{CandidateIndex: 1, Description: "Cast Bolt"}

		action1 := &Decision{InitialScore: eval.NewScore(0), Ref: &ref1}
		choice := &Decision{Prev: action1, Choices: []string{"Goblin Raider"}}
		action2 := &Decision{Prev: choice, Ref: &ref2}
		targets := &Decision{Prev: action2, Targets: &Targets{EntityIDs: []int{7}, Description: "Boar"}}
		x := &Decision{Prev: targets, XMana: 3, HasX: true}

		plan := materializePlan(x, eval.NewScore(150))

		require.Len(t, plan.Decisions, 2)
		require.Equal(t, "Cast Edict", plan.Decisions[0].Ref.Description)
		require.Equal(t, []string{"Goblin Raider"}, plan.Decisions[0].Choices,
			"card choice folds into the preceding action")
		require.Equal(t, "Cast Bolt", plan.Decisions[1].Ref.Description)
		require.NotNil(t, plan.Decisions[1].Targets)
		require.Equal(t, []int{7}, plan.Decisions[1].Targets.EntityIDs)
		require.True(t, plan.Decisions[1].HasX)
		require.Equal(t, 3, plan.Decisions[1].XMana)
		require.Equal(t, 150, plan.FinalScore.Value)
	})

	t.Run("modes merge like targets", func(t *testing.T) {
		ref := ActionRef{CandidateIndex: 0, Description: "Cast Charm"}
		action := &Decision{Ref: &ref}
		modes := &Decision{Prev: action, Modes: []int{0, 2}, ModesStr: "draw;bolt"}

		plan := materializePlan(modes, eval.NewScore(10))

		require.Len(t, plan.Decisions, 1)
		require.Equal(t, []int{0, 2}, plan.Decisions[0].Modes)
		require.Equal(t, "draw;bolt", plan.Decisions[0].ModesStr)
	})

	t.Run("single action plan is itself", func(t *testing.T) {
		ref := ActionRef{CandidateIndex: 0, Description: "Play Mountain"}
		action := &Decision{Ref: &ref}

		plan := materializePlan(action, eval.NewScore(5))
		require.Len(t, plan.Decisions, 1)
		require.Equal(t, "Play Mountain", plan.Decisions[0].Ref.Description)
	})
}
