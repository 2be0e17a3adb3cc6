package lite

import (
	"cardsim/game"
)

// Player is the canonical handle for one player. Handles are unique
// per game, so interface equality is pointer equality.
type Player struct {
	g   *Game
	idx int
}

func (p *Player) state() *playerState { return &p.g.players[p.idx] }

func (p *Player) EntityID() int           { return p.state().id }
func (p *Player) Name() string            { return p.state().name }
func (p *Player) Team() int               { return p.state().team }
func (p *Player) Life() int               { return p.state().life }
func (p *Player) PoisonCounters() int     { return p.state().poison }
func (p *Player) MaxHandSize() int        { return 7 }
func (p *Player) UnlimitedHandSize() bool { return false }
func (p *Player) Game() game.Game         { return p.g }

func (p *Player) CardsIn(zone game.Zone) []game.Card {
	return p.g.handlesFor(p.g.zoneCards(p.idx, zone))
}

func (p *Player) CreaturesInPlay() []game.Card {
	var out []game.Card
	for _, idx := range p.g.zoneCards(p.idx, game.ZoneBattlefield) {
		if p.g.cards[idx].spec.Creature {
			out = append(out, p.g.handle(p.g.cards[idx].id))
		}
	}
	return out
}

func (p *Player) Opponents() []game.Player {
	return []game.Player{p.g.playerHandles[1-p.idx]}
}

func (p *Player) DeckStatistics() game.DeckStatistics {
	return p.state().deckStats
}

// Card is the canonical handle for one card.
type Card struct {
	g  *Game
	id int
}

func (c *Card) state() *cardState { return c.g.card(c.id) }

func (c *Card) EntityID() int   { return c.id }
func (c *Card) Name() string    { return c.state().spec.Name }
func (c *Card) Game() game.Game { return c.g }

func (c *Card) Controller() game.Player {
	return c.g.playerHandles[c.state().controller]
}

func (c *Card) IsCreature() bool     { return c.state().spec.Creature }
func (c *Card) IsLand() bool         { return c.state().spec.Land }
func (c *Card) IsInstant() bool      { return c.state().spec.Instant }
func (c *Card) IsSorcery() bool      { return c.state().spec.Sorcery }
func (c *Card) IsEnchantment() bool  { return c.state().spec.Enchantment }
func (c *Card) IsArtifact() bool     { return c.state().spec.Artifact }
func (c *Card) IsPlaneswalker() bool { return c.state().spec.Planeswalker }
func (c *Card) IsEnchanting() bool   { return false }

func (c *Card) CMC() int          { return c.state().spec.CMC }
func (c *Card) NetPower() int     { return c.g.power(c.state()) }
func (c *Card) NetToughness() int { return c.g.toughness(c.state()) }
func (c *Card) IsTapped() bool    { return c.state().tapped }
func (c *Card) IsSick() bool      { return c.state().sick }

func (c *Card) Colors() game.ColorSet { return c.state().spec.Colors }
func (c *Card) Text() string          { return c.state().spec.Text }

func (c *Card) HasKeyword(kw game.Keyword) bool {
	for _, k := range c.state().spec.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

func (c *Card) HasCreatureType(name string) bool {
	for _, t := range c.state().spec.CreatureTypes {
		if t == name {
			return true
		}
	}
	return false
}

func (c *Card) Counters(kind game.CounterKind) int {
	return c.state().counters[kind]
}

func (c *Card) ManaAbilities() []game.ManaAbility {
	spec := c.state().spec
	if len(spec.Produces) == 0 {
		return nil
	}
	return []game.ManaAbility{manaAbility{produces: spec.Produces}}
}

func (c *Card) NonManaAbilities() []game.ActivatedAbility { return nil }
func (c *Card) StaticAbilityCount() int                   { return 0 }

type manaAbility struct {
	produces []string
}

func (m manaAbility) Produced() []string { return m.produces }
func (m manaAbility) Amount() int        { return 1 }
func (m manaAbility) CostMana() int      { return 0 }
