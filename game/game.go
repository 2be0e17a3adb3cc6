package game

// Game is the rules engine's view of a match at a moment in time. The
// decision core never mutates game state directly; every mutation goes
// through PlayAction or AdvanceTo. Implementations must support deep
// snapshots whose mutation leaves the original untouched.
type Game interface {
	Players() []Player
	PlayerByID(id int) Player

	Turn() int
	Phase() Phase
	TurnPlayer() Player
	IsPlayerTurn(p Player) bool
	StackDepth() int

	// CardsIn returns all cards in the given zone across all players,
	// in a stable order.
	CardsIn(zone Zone) []Card

	IsOver() bool
	// Outcome returns nil while the game is still running.
	Outcome() *Outcome

	// Snapshot deep-copies the game. The returned Snapshot carries the
	// copy plus the entity mapping between original and copy.
	Snapshot() Snapshot

	// AdvanceTo deterministically fast-forwards to the given phase of
	// the current turn. onStackEmpty is invoked whenever the stack
	// empties during the advance; it may be nil.
	AdvanceTo(phase Phase, onStackEmpty func())

	// CandidateActions returns the legal spell/ability activations for
	// the player in the current priority window.
	CandidateActions(p Player) []Action

	// PlayAction applies a chosen action and resolves the stack.
	PlayAction(p Player, a Action) error
}

// Snapshot is a deep copy of a Game together with the handle mapping
// between the original and the copy.
type Snapshot interface {
	Game() Game
	// Find maps an entity of the original game to its copy, or nil.
	Find(e Entity) Entity
	// ReverseFind maps an entity of the copy back to its antecedent in
	// the original game, or nil if it has none (e.g. a token created
	// after the snapshot).
	ReverseFind(e Entity) Entity
}

// Entity is anything with a stable identity within a game: cards and
// players. IDs are stamped at creation and preserved across snapshots.
type Entity interface {
	EntityID() int
}

// Player is an identity within a Game.
type Player interface {
	Entity
	Name() string
	Team() int
	Life() int
	PoisonCounters() int
	MaxHandSize() int
	UnlimitedHandSize() bool
	CardsIn(zone Zone) []Card
	CreaturesInPlay() []Card
	Opponents() []Player
	DeckStatistics() DeckStatistics
	Game() Game
}

// Card is a card or permanent entity.
type Card interface {
	Entity
	Name() string
	Controller() Player
	Game() Game

	IsCreature() bool
	IsLand() bool
	IsInstant() bool
	IsSorcery() bool
	IsEnchantment() bool
	IsArtifact() bool
	IsPlaneswalker() bool
	// IsEnchanting reports whether this card is an aura attached to
	// something.
	IsEnchanting() bool

	CMC() int
	NetPower() int
	NetToughness() int
	IsTapped() bool
	// IsSick reports summoning sickness.
	IsSick() bool
	Colors() ColorSet
	HasKeyword(kw Keyword) bool
	HasCreatureType(name string) bool
	Counters(kind CounterKind) int
	Text() string

	ManaAbilities() []ManaAbility
	NonManaAbilities() []ActivatedAbility
	StaticAbilityCount() int
}

// ManaAbility describes one mana-producing activation of a permanent.
type ManaAbility interface {
	// Produced returns the mana symbols the ability can generate, e.g.
	// "W", "U", "B", "R", "G", "C" or "Any".
	Produced() []string
	// Amount is the number of mana generated per activation.
	Amount() int
	// CostMana is the mana part of the activation cost.
	CostMana() int
}

// ActivatedAbility describes a non-mana activation of a permanent, as
// far as the evaluator cares: its cost shape.
type ActivatedAbility interface {
	IsLandAbility() bool
	HasTapCost() bool
	HasSacrificeCost() bool
}

// Action is a candidate move in the current priority window. The core
// treats it as opaque beyond these accessors; Description is stable
// within a single Game.
type Action interface {
	Description() string
	// Host returns the card the action originates from, or nil.
	Host() Card
	API() APIKind
	IsLandPlay() bool
	// Target returns the target baked into this candidate, or nil.
	// Engines enumerate targeted spells as one candidate per legal
	// target, so a candidate fully determines its target.
	Target() Entity
}

// DeckStatistics summarizes deck-level mana requirements, used by the
// evaluator's mana-base score.
type DeckStatistics struct {
	// MaxPips is the maximum number of pips of each color appearing in
	// any single cost in the deck, in WUBRGC order.
	MaxPips [6]int
	// MaxCost is the largest converted cost in the deck.
	MaxCost int
}

// Outcome describes a finished game.
type Outcome struct {
	IsDraw        bool
	WinningTeam   int
	WinningPlayer string
	WinCondition  string
}

// IsWinner reports whether p won. Team identity is authoritative; the
// name comparison is a compatibility shim for engines that only report
// the winning lobby player.
func (o *Outcome) IsWinner(p Player) bool {
	if o == nil || o.IsDraw {
		return false
	}
	if o.WinningTeam == p.Team() {
		return true
	}
	return o.WinningPlayer != "" && o.WinningPlayer == p.Name()
}
