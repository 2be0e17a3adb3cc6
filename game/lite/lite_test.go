package lite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/game"
)

func TestNewGameSetup(t *testing.T) {
	g := NewGame("Ember", RedAggroDeck(), "Thicket", GreenMidrangeDeck(), 1)

	require.Len(t, g.Players(), 2)
	for _, p := range g.Players() {
		require.Equal(t, 20, p.Life())
		require.Len(t, p.CardsIn(game.ZoneHand), 7)
		require.Len(t, p.CardsIn(game.ZoneLibrary), 33)
		require.Empty(t, p.CardsIn(game.ZoneBattlefield))
	}
	require.Equal(t, 1, g.Turn())
	require.Equal(t, game.PhaseUntap, g.Phase())
	require.True(t, g.IsPlayerTurn(g.Players()[0]))
	require.False(t, g.IsOver())
	require.Nil(t, g.Outcome())
}

func TestSnapshotIndependence(t *testing.T) {
	g := NewScriptedGame(
		PlayerSetup{Name: "Ember", Life: 20, Hand: []CardSpec{Mountain(), GoblinRaider()}, Library: []CardSpec{Mountain()}},
		PlayerSetup{Name: "Thicket", Life: 20, Library: []CardSpec{Forest()}},
		2,
	)

	snap := g.Snapshot()
	copied := snap.Game().(*Game)

	handBefore := len(g.Players()[0].CardsIn(game.ZoneHand))

	player := copied.Players()[0]
	candidates := copied.CandidateActions(player)
	require.NotEmpty(t, candidates)
	require.NoError(t, copied.PlayAction(player, candidates[0]))

	require.Equal(t, handBefore, len(g.Players()[0].CardsIn(game.ZoneHand)),
		"mutating the copy must not touch the original")
	require.NotEqual(t, handBefore, len(copied.Players()[0].CardsIn(game.ZoneHand)))
}

func TestSnapshotHandleMapping(t *testing.T) {
	g := NewGame("Ember", RedAggroDeck(), "Thicket", GreenMidrangeDeck(), 3)
	snap := g.Snapshot()
	copied := snap.Game()

	t.Run("find maps original entities into the copy", func(t *testing.T) {
		original := g.Players()[0].CardsIn(game.ZoneHand)[0]
		found := snap.Find(original)
		require.NotNil(t, found)
		require.Equal(t, original.EntityID(), found.EntityID())
		require.Equal(t, original.(*Card).Name(), found.(game.Card).Name())
	})

	t.Run("reverse-find maps copies back", func(t *testing.T) {
		copyCard := copied.Players()[0].CardsIn(game.ZoneHand)[0]
		back := snap.ReverseFind(copyCard)
		require.NotNil(t, back)
		require.Equal(t, copyCard.EntityID(), back.EntityID())
	})

	t.Run("players map both ways", func(t *testing.T) {
		copyPlayer := snap.Find(g.Players()[1])
		require.NotNil(t, copyPlayer)
		require.Equal(t, g.Players()[1], snap.ReverseFind(copyPlayer))
	})
}

func TestReverseFindTokenHasNoAntecedent(t *testing.T) {
	muster := MusterTheClans()
	g := NewScriptedGame(
		PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []CardSpec{muster},
			Battlefield: []CardSpec{Plains(), Plains(), Plains(), Plains()},
			Library:     []CardSpec{Plains()},
		},
		PlayerSetup{Name: "Thicket", Life: 20, Library: []CardSpec{Forest()}},
		1,
	)
	snap := g.Snapshot()
	copied := snap.Game().(*Game)
	player := copied.Players()[0]

	candidates := copied.CandidateActions(player)
	require.NotEmpty(t, candidates)
	require.NoError(t, copied.PlayAction(player, candidates[0]))

	tokens := player.CreaturesInPlay()
	require.Len(t, tokens, 2, "the ritual makes two tokens")
	for _, token := range tokens {
		require.Nil(t, snap.ReverseFind(token),
			"entities born after the snapshot have no antecedent")
	}
}

func TestCandidateActions(t *testing.T) {
	g := NewScriptedGame(
		PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []CardSpec{Mountain(), GoblinRaider(), CanopyColossus()},
			Battlefield: []CardSpec{Mountain(), Mountain()},
			Library:     []CardSpec{Mountain()},
		},
		PlayerSetup{Name: "Thicket", Life: 20, Library: []CardSpec{Forest()}},
		1,
	)
	player := g.Players()[0]

	t.Run("land plus affordable spells", func(t *testing.T) {
		candidates := g.CandidateActions(player)
		descs := make([]string, len(candidates))
		for i, a := range candidates {
			descs[i] = a.Description()
		}
		require.Contains(t, descs, "Play Mountain")
		require.Contains(t, descs, "Cast Goblin Raider")
		require.NotContains(t, descs, "Cast Canopy Colossus", "five drop with two lands")
	})

	t.Run("one land per turn", func(t *testing.T) {
		candidates := g.CandidateActions(player)
		var land game.Action
		for _, a := range candidates {
			if a.IsLandPlay() {
				land = a
			}
		}
		require.NotNil(t, land)
		require.NoError(t, g.PlayAction(player, land))

		for _, a := range g.CandidateActions(player) {
			require.False(t, a.IsLandPlay(), "second land play must not be offered")
		}
	})

	t.Run("opponent has no priority on our turn", func(t *testing.T) {
		require.Empty(t, g.CandidateActions(g.Players()[1]))
	})
}

func TestPlayActionPaysMana(t *testing.T) {
	g := NewScriptedGame(
		PlayerSetup{
			Name: "Ember", Life: 20,
			Hand:        []CardSpec{GoblinRaider()},
			Battlefield: []CardSpec{Mountain(), Mountain()},
			Library:     []CardSpec{Mountain()},
		},
		PlayerSetup{Name: "Thicket", Life: 20, Library: []CardSpec{Forest()}},
		1,
	)
	player := g.Players()[0]
	candidates := g.CandidateActions(player)
	require.Len(t, candidates, 1)
	require.NoError(t, g.PlayAction(player, candidates[0]))

	tappedLands := 0
	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		if c.IsLand() && c.IsTapped() {
			tappedLands++
		}
	}
	require.Equal(t, 2, tappedLands, "both mountains tapped for the two drop")

	creatures := player.CreaturesInPlay()
	require.Len(t, creatures, 1)
	require.True(t, creatures[0].IsSick(), "fresh creatures are summoning sick")
}

func TestStateBasedActions(t *testing.T) {
	t.Run("lethal damage buries the creature", func(t *testing.T) {
		g := NewScriptedGame(
			PlayerSetup{
				Name: "Ember", Life: 20,
				Hand:        []CardSpec{LightningStrike()},
				Battlefield: []CardSpec{Mountain(), Mountain()},
				Library:     []CardSpec{Mountain()},
			},
			PlayerSetup{
				Name: "Thicket", Life: 20,
				Battlefield: []CardSpec{BristlebackBoar()},
				Library:     []CardSpec{Forest()},
			},
			1,
		)
		player := g.Players()[0]
		opp := g.Players()[1]

		var atBoar game.Action
		for _, a := range g.CandidateActions(player) {
			if target, ok := a.Target().(game.Card); ok && target.Name() == "Bristleback Boar" {
				atBoar = a
			}
		}
		require.NotNil(t, atBoar)
		require.NoError(t, g.PlayAction(player, atBoar))

		require.Empty(t, opp.CreaturesInPlay())
		require.Len(t, opp.CardsIn(game.ZoneGraveyard), 1)
	})

	t.Run("zero life ends the game", func(t *testing.T) {
		g := NewScriptedGame(
			PlayerSetup{
				Name: "Ember", Life: 20,
				Hand:        []CardSpec{LightningStrike()},
				Battlefield: []CardSpec{Mountain(), Mountain()},
				Library:     []CardSpec{Mountain()},
			},
			PlayerSetup{Name: "Thicket", Life: 2, Library: []CardSpec{Forest()}},
			1,
		)
		player := g.Players()[0]
		candidates := g.CandidateActions(player)
		require.NotEmpty(t, candidates)
		require.NoError(t, g.PlayAction(player, candidates[0]))

		require.True(t, g.IsOver())
		outcome := g.Outcome()
		require.NotNil(t, outcome)
		require.False(t, outcome.IsDraw)
		require.Equal(t, "Ember", outcome.WinningPlayer)
		require.True(t, outcome.IsWinner(player))
		require.False(t, outcome.IsWinner(g.Players()[1]))
	})
}

func TestAutoCombatFastForward(t *testing.T) {
	g := NewScriptedGame(
		PlayerSetup{
			Name: "Ember", Life: 20,
			Battlefield: []CardSpec{GoblinChampion()},
			Library:     []CardSpec{Mountain()},
		},
		PlayerSetup{Name: "Thicket", Life: 20, Library: []CardSpec{Forest()}},
		1,
	)
	g.AdvanceTo(game.PhaseCombatDamage, nil)

	require.Equal(t, 17, g.Players()[1].Life(),
		"an unblocked three-power attacker connects during the fast-forward")
}
