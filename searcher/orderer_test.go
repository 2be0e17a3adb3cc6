package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/game"
)

// mockCard and mockAction are the minimal fakes the orderer and
// ActionRef need.
type mockCard struct {
	game.Card
	name string
	cmc  int
}

func (m mockCard) Name() string { return m.name }
func (m mockCard) CMC() int     { return m.cmc }

type mockAction struct {
	desc     string
	hostName string
	api      game.APIKind
	landPlay bool
}

func (m mockAction) Description() string { return m.desc }
func (m mockAction) API() game.APIKind   { return m.api }
func (m mockAction) IsLandPlay() bool    { return m.landPlay }
func (m mockAction) Target() game.Entity { return nil }

func (m mockAction) Host() game.Card {
	if m.hostName == "" {
		return nil
	}
	return mockCard{name: m.hostName}
}

func TestOrderMovesStaticPriority(t *testing.T) {
	actions := []game.Action{
		mockAction{desc: "gain", hostName: "Chaplain", api: game.APIGainLife},
		mockAction{desc: "destroy", hostName: "Doom Blade", api: game.APIDestroy},
		mockAction{desc: "draw", hostName: "Divination", api: game.APIDraw},
		mockAction{desc: "token", hostName: "Muster", api: game.APIToken},
	}

	o := NewMoveOrderer()
	order := o.OrderMoves(actions, 0)

	require.Equal(t, []int{1, 2, 3, 0}, order,
		"removal > card advantage > tokens > utility")
}

func TestOrderMovesDeterminism(t *testing.T) {
	actions := []game.Action{
		mockAction{desc: "a", hostName: "Alpha", api: game.APIDraw},
		mockAction{desc: "b", hostName: "Beta", api: game.APIDraw},
		mockAction{desc: "c", hostName: "Gamma", api: game.APIDraw},
	}

	o := NewMoveOrderer()
	o.UpdateHistory(actions[2], 3)
	first := o.OrderMoves(actions, 1)

	// Clearing killers must not disturb history; the permutation
	// reproduces exactly.
	o.Clear()
	second := o.OrderMoves(actions, 1)
	require.Equal(t, first, second)
	require.Equal(t, 2, first[0], "history winner sorts first")
}

func TestKillerMoves(t *testing.T) {
	t.Run("killer move jumps the ordering at its depth", func(t *testing.T) {
		weak := mockAction{desc: "gain", hostName: "Chaplain", api: game.APIGainLife}
		strong := mockAction{desc: "kill", hostName: "Doom Blade", api: game.APIDestroy}
		actions := []game.Action{weak, strong}

		o := NewMoveOrderer()
		o.RecordKillerMove(weak, 3)

		require.Equal(t, []int{0, 1}, o.OrderMoves(actions, 3),
			"killer outranks static priority at its depth")
		require.Equal(t, []int{1, 0}, o.OrderMoves(actions, 2),
			"killer is depth-local")
	})

	t.Run("slots shift and de-duplicate", func(t *testing.T) {
		a := mockAction{desc: "a", hostName: "Alpha", api: game.APIDraw}
		b := mockAction{desc: "b", hostName: "Beta", api: game.APIDraw}

		o := NewMoveOrderer()
		o.RecordKillerMove(a, 1)
		o.RecordKillerMove(b, 1)
		o.RecordKillerMove(b, 1) // duplicate, ignored
		o.RecordKillerMove(a, 1) // duplicate, ignored

		actions := []game.Action{
			mockAction{desc: "c", hostName: "Gamma", api: game.APIDraw},
			a, b,
		}
		order := o.OrderMoves(actions, 1)
		require.Equal(t, 0, order[2], "non-killer sorts last")
	})

	t.Run("ignored at or beyond the depth cap", func(t *testing.T) {
		a := mockAction{desc: "a", hostName: "Alpha", api: game.APIDraw}
		o := NewMoveOrderer()
		o.RecordKillerMove(a, 20)
		require.Equal(t, []int{0, 1}, o.OrderMoves([]game.Action{
			mockAction{desc: "b", hostName: "Beta", api: game.APIDraw}, a,
		}, 20))
	})
}

func TestHistoryTable(t *testing.T) {
	t.Run("bonus grows with depth squared", func(t *testing.T) {
		a := mockAction{desc: "a", hostName: "Alpha", api: game.APIDraw}
		b := mockAction{desc: "b", hostName: "Beta", api: game.APIDraw}

		o := NewMoveOrderer()
		o.UpdateHistory(a, 2) // +4
		o.UpdateHistory(b, 3) // +9

		order := o.OrderMoves([]game.Action{a, b}, 0)
		require.Equal(t, []int{1, 0}, order)
	})

	t.Run("clearAll resets history, clear does not", func(t *testing.T) {
		a := mockAction{desc: "a", hostName: "Alpha", api: game.APIDraw}
		b := mockAction{desc: "b", hostName: "Beta", api: game.APIDraw}
		actions := []game.Action{a, b}

		o := NewMoveOrderer()
		o.UpdateHistory(b, 5)
		o.Clear()
		require.Equal(t, []int{1, 0}, o.OrderMoves(actions, 0))

		o.ClearAll()
		require.Equal(t, []int{0, 1}, o.OrderMoves(actions, 0))
	})

	t.Run("halves and drops zeros past the cap", func(t *testing.T) {
		o := NewMoveOrderer()
		big := mockAction{desc: "big", hostName: "Big", api: game.APIDraw}
		o.UpdateHistory(big, 10) // 100

		// Flood the table past its cap with single-point entries.
		for i := 0; i <= maxHistoryEntries; i++ {
			o.historyTable[string(rune(i))+"filler"] = 1
		}
		o.UpdateHistory(big, 0) // triggers the scale-down

		require.Equal(t, 50, o.historyTable[moveKey(big)], "scores halve")
		require.LessOrEqual(t, len(o.historyTable), 2,
			"entries that became zero are dropped")
	})
}
