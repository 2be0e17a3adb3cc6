package eval

import (
	"cardsim/game"
)

// Evaluator assigns a Score to a game state from one player's
// perspective. It is deterministic; the only internal state is a cache
// of non-creature card scores (creature scores depend on the board and
// are never cached).
//
// Not safe for concurrent use; each search owns its own Evaluator.
type Evaluator struct {
	creature creatureEvaluator

	// Combo/synergy bonus magnitude; 0 disables synergy scoring.
	comboBonus int
	combo      ComboConfig

	cardCache map[cardCacheKey]int
}

type cardCacheKey struct {
	name     string
	tapped   bool
	counters int
}

// New returns an Evaluator with synergy scoring disabled.
func New() *Evaluator {
	return &Evaluator{cardCache: make(map[cardCacheKey]int)}
}

// NewWithCombo returns an Evaluator with the given synergy bonus and
// signal tables. A zero bonus disables synergy scoring regardless of
// the tables.
func NewWithCombo(bonus int, cfg ComboConfig) *Evaluator {
	e := New()
	e.comboBonus = bonus
	e.combo = cfg
	return e
}

// Evaluate scores the game for aiPlayer. Terminal states map to the
// ScoreWin/ScoreLoss sentinels; everything else is finite.
func (e *Evaluator) Evaluate(g game.Game, aiPlayer game.Player) Score {
	if g.IsOver() {
		return scoreForGameOver(g, aiPlayer)
	}

	// Fold the upcoming combat into the position: copy the game and
	// fast-forward to combat damage before scoring.
	if snap, player := e.simulateUpcomingCombat(g, aiPlayer); snap != nil {
		if snap.Game().IsOver() {
			return scoreForGameOver(snap.Game(), player)
		}
		return e.evaluatePosition(snap.Game(), player)
	}
	return e.evaluatePosition(g, aiPlayer)
}

func scoreForGameOver(g game.Game, aiPlayer game.Player) Score {
	if g.Outcome().IsWinner(aiPlayer) {
		return NewScore(ScoreWin)
	}
	return NewScore(ScoreLoss)
}

// simulateUpcomingCombat returns a snapshot advanced to the combat
// damage step, or nil when there is no combat left to fold in. The
// copy is skipped entirely when the turn player has no creatures,
// which avoids an expensive game copy.
func (e *Evaluator) simulateUpcomingCombat(g game.Game, aiPlayer game.Player) (game.Snapshot, game.Player) {
	if g.Phase().IsAfter(game.PhaseCombatDamage) || g.IsOver() {
		return nil, nil
	}
	if len(g.TurnPlayer().CreaturesInPlay()) == 0 {
		return nil, nil
	}

	snap := g.Snapshot()
	copied := snap.Game()
	playerCopy, ok := snap.Find(aiPlayer).(game.Player)
	if !ok {
		return nil, nil
	}
	copied.AdvanceTo(game.PhaseCombatDamage, nil)
	return snap, playerCopy
}

func (e *Evaluator) evaluatePosition(g game.Game, aiPlayer game.Player) Score {
	score := 0

	myCards := 0
	theirCards := 0
	for _, c := range g.CardsIn(game.ZoneHand) {
		if c.Controller() == aiPlayer {
			myCards++
		} else {
			theirCards++
		}
	}
	if !aiPlayer.UnlimitedHandSize() && myCards > aiPlayer.MaxHandSize() {
		// Excess cards over the maximum hand size count only 1x.
		score += myCards - aiPlayer.MaxHandSize()
		myCards = aiPlayer.MaxHandSize()
	}
	score += 5*myCards - 4*theirCards

	score += 2 * aiPlayer.Life()
	opponents := aiPlayer.Opponents()
	opponentLife := 0
	for _, opp := range opponents {
		opponentLife += opp.Life()
	}
	if len(opponents) > 0 {
		score -= 2 * opponentLife / len(opponents)
	}

	if combo := e.evaluateComboState(aiPlayer); combo > 0 {
		score += combo
	}

	score += e.evalManaBase(aiPlayer, aiPlayer.DeckStatistics())

	summonSickScore := score
	phase := g.Phase()
	for _, c := range g.CardsIn(game.ZoneBattlefield) {
		value := e.EvalCard(g, aiPlayer, c)
		summonSickValue := value
		if phase.IsBefore(game.PhaseMain2) && c.IsSick() && c.Controller() == aiPlayer {
			summonSickValue = 0
		}
		if c.Controller() == aiPlayer {
			score += value
			summonSickScore += summonSickValue
		} else {
			score -= value
			summonSickScore -= summonSickValue
		}
	}

	return Score{Value: score, SummonSickValue: summonSickScore}
}

// evalManaBase scores the player's ability to produce the mana the deck
// wants, per color pip and in total.
func (e *Evaluator) evalManaBase(player game.Player, stats game.DeckStatistics) int {
	value := 0
	maxTotal := 0
	var counts [6]int // WUBRGC

	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		maxProduced := 0
		for _, m := range c.ManaAbilities() {
			net := m.Amount() - m.CostMana()
			if net > maxProduced {
				maxProduced = net
			}
			for _, part := range m.Produced() {
				if idx := manaSymbolIndex(part); idx >= 0 {
					counts[idx]++
				}
			}
		}
		maxTotal += maxProduced
	}

	for i := range counts {
		value += 100 * min(counts[i], stats.MaxPips[i])
	}
	value += 100 * min(maxTotal, stats.MaxCost)
	// Excess mana is worth far less than enough mana.
	value += 5 * max(0, maxTotal-stats.MaxCost)

	return value
}

func manaSymbolIndex(symbol string) int {
	switch symbol {
	case "W":
		return 0
	case "U":
		return 1
	case "B":
		return 2
	case "R":
		return 3
	case "G":
		return 4
	case "C":
		return 5
	}
	return -1
}

// EvalCard scores a single permanent for aiPlayer's perspective. The
// sign convention is positive; callers negate for opposing permanents.
func (e *Evaluator) EvalCard(g game.Game, aiPlayer game.Player, c game.Card) int {
	if c.IsCreature() {
		return e.creature.evaluate(g, aiPlayer, c)
	}
	if c.IsEnchanting() {
		// An aura's value is already reflected in what it enchants;
		// counting it again would make the search double-dip.
		return 0
	}

	key := cardCacheKey{name: c.Name(), tapped: c.IsTapped(), counters: c.Counters(game.CounterP1P1) + c.Counters(game.CounterLoyalty)}
	if v, ok := e.cardCache[key]; ok {
		return v
	}

	var value int
	if c.IsLand() {
		value = EvaluateLand(c)
	} else {
		value = 50 + 30*c.CMC()
		if c.IsPlaneswalker() {
			value += 2 * c.Counters(game.CounterLoyalty)
		}
	}
	e.cardCache[key] = value
	return value
}

// EvaluateLand scores a land by its mana production, color fixing, and
// non-mana abilities.
func EvaluateLand(c game.Card) int {
	value := 3
	maxProduced := 0
	colors := make(map[string]struct{})
	anyColor := false
	for _, m := range c.ManaAbilities() {
		net := m.Amount() - m.CostMana()
		if net > maxProduced {
			maxProduced = net
		}
		for _, part := range m.Produced() {
			if part == "Any" {
				anyColor = true
			}
			colors[part] = struct{}{}
		}
	}
	value += 100 * maxProduced
	size := len(colors)
	if anyColor && size < 5 {
		size = 5
	}
	value += size * 3

	for _, a := range c.NonManaAbilities() {
		switch {
		case a.IsLandAbility():
			// Plain land plays score nothing extra.
		case !a.HasTapCost():
			// Probably a manland; better than a rainbow land.
			value += 25
		case a.HasSacrificeCost():
			// One-shot ability, less good than a repeatable one.
			value += 10
		default:
			// Repeatable utility land that gets you ahead over time.
			value += 50
		}
	}

	// A static ability is worth a bit more than a card in hand so that
	// such lands still get played.
	value += 6 * c.StaticAbilityCount()

	return value
}
