// Package lite is a minimal in-memory rules engine implementing the
// game interfaces. It exists so the decision core can be driven and
// tested end to end without the full rules engine: simplified mana
// (any land taps for the cost), scripted spell effects by API kind,
// and deterministic auto-combat for phase fast-forwarding.
//
// Entities live in an arena and are addressed by stable integer ids
// stamped at creation and preserved across snapshots, so handle
// mapping between copies is a table lookup.
package lite

import (
	"fmt"

	"golang.org/x/exp/rand"

	"cardsim/game"
)

// CardSpec is the immutable definition of a card.
type CardSpec struct {
	Name          string
	Creature      bool
	Land          bool
	Instant       bool
	Sorcery       bool
	Enchantment   bool
	Artifact      bool
	Planeswalker  bool
	CMC           int
	Power         int
	Toughness     int
	Colors        game.ColorSet
	Keywords      []game.Keyword
	CreatureTypes []string
	Text          string
	// Pips is the colored-pip count of the cost, WUBRGC order.
	Pips [6]int
	// Produces lists mana symbols a permanent's mana ability can make;
	// non-empty means the card taps for mana.
	Produces []string
	// API and Amount script what the spell does on resolution.
	API      game.APIKind
	Amount   int
	Targeted bool
}

func (s CardSpec) isPermanent() bool {
	return s.Creature || s.Land || s.Enchantment || s.Artifact || s.Planeswalker
}

// cardState is the mutable state of one card in the arena.
type cardState struct {
	id   int
	spec CardSpec

	zone       game.Zone
	controller int // player index
	zoneOrder  int // insertion order within the zone

	tapped bool
	sick   bool
	damage int

	// Until-end-of-turn power/toughness adjustments.
	pumpPower     int
	pumpToughness int

	counters map[game.CounterKind]int
}

type playerState struct {
	id     int
	name   string
	team   int
	life   int
	poison int

	landPlayed bool
	deckStats  game.DeckStatistics
}

// Game is the lite engine's concrete game.
type Game struct {
	players []playerState
	cards   []cardState

	turn       int
	phase      game.Phase
	turnPlayer int // player index
	started    bool
	stackDepth int

	over    bool
	outcome *game.Outcome

	nextID    int
	nextOrder int

	rng *rand.Rand

	// Canonical handles: one per entity so interface equality works.
	playerHandles []*Player
	cardHandles   map[int]*Card
}

// NewGame builds a two-player game from two decks, shuffles with the
// seed, and draws opening hands of seven.
func NewGame(name1 string, deck1 []CardSpec, name2 string, deck2 []CardSpec, seed uint64) *Game {
	g := &Game{
		turn:        1,
		phase:       game.PhaseUntap,
		turnPlayer:  0,
		nextID:      10,
		rng:         rand.New(rand.NewSource(seed)),
		cardHandles: make(map[int]*Card),
	}
	g.players = []playerState{
		{id: 1, name: name1, team: 0, life: 20, deckStats: deckStatistics(deck1)},
		{id: 2, name: name2, team: 1, life: 20, deckStats: deckStatistics(deck2)},
	}
	g.playerHandles = []*Player{{g: g, idx: 0}, {g: g, idx: 1}}

	g.addDeck(0, deck1)
	g.addDeck(1, deck2)
	g.shuffleLibrary(0)
	g.shuffleLibrary(1)
	for i := 0; i < 7; i++ {
		g.draw(0)
		g.draw(1)
	}
	return g
}

func deckStatistics(deck []CardSpec) game.DeckStatistics {
	var stats game.DeckStatistics
	for _, spec := range deck {
		for i, pips := range spec.Pips {
			if pips > stats.MaxPips[i] {
				stats.MaxPips[i] = pips
			}
		}
		if !spec.Land && spec.CMC > stats.MaxCost {
			stats.MaxCost = spec.CMC
		}
	}
	return stats
}

func (g *Game) addDeck(playerIdx int, deck []CardSpec) {
	for _, spec := range deck {
		g.addCard(spec, playerIdx, game.ZoneLibrary)
	}
}

func (g *Game) addCard(spec CardSpec, controller int, zone game.Zone) *cardState {
	g.cards = append(g.cards, cardState{
		id:         g.nextID,
		spec:       spec,
		zone:       zone,
		controller: controller,
		zoneOrder:  g.nextOrder,
		counters:   make(map[game.CounterKind]int),
	})
	g.nextID++
	g.nextOrder++
	return &g.cards[len(g.cards)-1]
}

func (g *Game) shuffleLibrary(playerIdx int) {
	var indices []int
	for i := range g.cards {
		if g.cards[i].controller == playerIdx && g.cards[i].zone == game.ZoneLibrary {
			indices = append(indices, i)
		}
	}
	orders := make([]int, len(indices))
	for i, idx := range indices {
		orders[i] = g.cards[idx].zoneOrder
	}
	g.rng.Shuffle(len(orders), func(i, j int) { orders[i], orders[j] = orders[j], orders[i] })
	for i, idx := range indices {
		g.cards[idx].zoneOrder = orders[i]
	}
}

// state lookups

func (g *Game) card(id int) *cardState {
	for i := range g.cards {
		if g.cards[i].id == id {
			return &g.cards[i]
		}
	}
	return nil
}

// zoneCards returns the arena indices of a zone's cards in zone order.
// playerIdx < 0 means all players.
func (g *Game) zoneCards(playerIdx int, zone game.Zone) []int {
	var out []int
	for i := range g.cards {
		c := &g.cards[i]
		if c.zone == zone && (playerIdx < 0 || c.controller == playerIdx) {
			out = append(out, i)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && g.cards[out[j]].zoneOrder < g.cards[out[j-1]].zoneOrder; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (g *Game) handlesFor(indices []int) []game.Card {
	out := make([]game.Card, len(indices))
	for i, idx := range indices {
		out[i] = g.handle(g.cards[idx].id)
	}
	return out
}

func (g *Game) handle(id int) *Card {
	if h, ok := g.cardHandles[id]; ok {
		return h
	}
	h := &Card{g: g, id: id}
	g.cardHandles[id] = h
	return h
}

// draw moves the top library card to hand; drawing from an empty
// library loses the game.
func (g *Game) draw(playerIdx int) {
	lib := g.zoneCards(playerIdx, game.ZoneLibrary)
	if len(lib) == 0 {
		g.loseGame(playerIdx, "drew from an empty library")
		return
	}
	g.moveToZone(&g.cards[lib[0]], game.ZoneHand)
}

func (g *Game) moveToZone(c *cardState, zone game.Zone) {
	c.zone = zone
	c.zoneOrder = g.nextOrder
	g.nextOrder++
	c.tapped = false
	c.damage = 0
	c.pumpPower = 0
	c.pumpToughness = 0
	if zone == game.ZoneBattlefield && c.spec.Creature {
		c.sick = true
	} else {
		c.sick = false
	}
}

func (g *Game) loseGame(loserIdx int, reason string) {
	if g.over {
		return
	}
	winner := 1 - loserIdx
	g.over = true
	g.outcome = &game.Outcome{
		WinningTeam:   g.players[winner].team,
		WinningPlayer: g.players[winner].name,
		WinCondition:  reason,
	}
}

// EndInDraw finishes the game without a winner, e.g. on a match-level
// timeout.
func (g *Game) EndInDraw(reason string) {
	if g.over {
		return
	}
	g.over = true
	g.outcome = &game.Outcome{IsDraw: true, WinningTeam: -1, WinCondition: reason}
}

// checkStateBasedActions buries dead creatures and ends the game on
// life or poison.
func (g *Game) checkStateBasedActions() {
	for i := range g.cards {
		c := &g.cards[i]
		if c.zone != game.ZoneBattlefield || !c.spec.Creature {
			continue
		}
		if g.toughness(c) <= 0 || c.damage >= g.toughness(c) {
			g.moveToZone(c, game.ZoneGraveyard)
		}
	}
	for i := range g.players {
		if g.players[i].life <= 0 {
			g.loseGame(i, "life total reached zero")
		} else if g.players[i].poison >= 10 {
			g.loseGame(i, "ten poison counters")
		}
	}
}

func (g *Game) power(c *cardState) int {
	return c.spec.Power + c.pumpPower + c.counters[game.CounterP1P1]
}

func (g *Game) toughness(c *cardState) int {
	return c.spec.Toughness + c.pumpToughness + c.counters[game.CounterP1P1]
}

// --- game.Game interface ---

func (g *Game) Players() []game.Player {
	return []game.Player{g.playerHandles[0], g.playerHandles[1]}
}

func (g *Game) PlayerByID(id int) game.Player {
	for _, h := range g.playerHandles {
		if h.EntityID() == id {
			return h
		}
	}
	return nil
}

func (g *Game) Turn() int              { return g.turn }
func (g *Game) Phase() game.Phase      { return g.phase }
func (g *Game) TurnPlayer() game.Player { return g.playerHandles[g.turnPlayer] }
func (g *Game) StackDepth() int        { return g.stackDepth }
func (g *Game) IsOver() bool           { return g.over }
func (g *Game) Outcome() *game.Outcome { return g.outcome }

func (g *Game) IsPlayerTurn(p game.Player) bool {
	return g.playerHandles[g.turnPlayer] == p
}

func (g *Game) CardsIn(zone game.Zone) []game.Card {
	return g.handlesFor(g.zoneCards(-1, zone))
}

func (g *Game) String() string {
	return fmt.Sprintf("turn %d %s, %s %d life vs %s %d life",
		g.turn, g.phase, g.players[0].name, g.players[0].life,
		g.players[1].name, g.players[1].life)
}
