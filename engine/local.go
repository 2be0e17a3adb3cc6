// Package engine runs local matches between two controllers on the
// lite rules engine.
package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"cardsim/game"
	"cardsim/game/lite"
)

const (
	maxTurns = 100
	// maxActionsPerPriority guards against controllers that keep
	// finding "actions" without advancing the game.
	maxActionsPerPriority = 30
)

// ControllerFactory builds one player's controller for one game.
type ControllerFactory func(g game.Game, p game.Player) game.Controller

// MatchConfig describes a local match.
type MatchConfig struct {
	Name1, Name2 string
	Deck1, Deck2 []lite.CardSpec
	Factory1     ControllerFactory
	Factory2     ControllerFactory
	Games        int
	Seed         uint64
}

// GameResult is the outcome of one game.
type GameResult struct {
	Winner   string // empty on a draw
	Turns    int
	Reason   string
	Duration time.Duration
}

// Engine runs the games of one match.
type Engine struct {
	cfg MatchConfig
}

func LocalEngine(cfg MatchConfig) *Engine {
	if cfg.Games <= 0 {
		cfg.Games = 1
	}
	return &Engine{cfg: cfg}
}

// Run plays every game of the match and returns the results.
func (e *Engine) Run() []GameResult {
	results := make([]GameResult, 0, e.cfg.Games)
	for i := 0; i < e.cfg.Games; i++ {
		result := e.runGame(e.cfg.Seed + uint64(i))
		log.Info().
			Int("game", i+1).
			Str("winner", result.Winner).
			Int("turns", result.Turns).
			Str("reason", result.Reason).
			Msg("game finished")
		results = append(results, result)
	}
	return results
}

// runGame plays a single game to completion.
func (e *Engine) runGame(seed uint64) GameResult {
	start := time.Now()
	g := lite.NewGame(e.cfg.Name1, e.cfg.Deck1, e.cfg.Name2, e.cfg.Deck2, seed)
	players := g.Players()
	controllers := []game.Controller{
		e.cfg.Factory1(g, players[0]),
		e.cfg.Factory2(g, players[1]),
	}

	e.runMulligans(g, players, controllers)

	for turn := 0; turn < maxTurns && !g.IsOver(); turn++ {
		e.runTurn(g, players, controllers)
	}
	if !g.IsOver() {
		g.EndInDraw("turn limit reached")
	}

	outcome := g.Outcome()
	for i, ctrl := range controllers {
		ctrl.FinishGame(outcome.IsWinner(players[i]), g.Turn(), outcome.WinCondition)
	}

	result := GameResult{
		Turns:    g.Turn(),
		Reason:   outcome.WinCondition,
		Duration: time.Since(start),
	}
	if !outcome.IsDraw {
		result.Winner = outcome.WinningPlayer
	}
	return result
}

// runMulligans applies a single London mulligan round per player:
// a player who mulligans tucks one card.
func (e *Engine) runMulligans(g *lite.Game, players []game.Player, controllers []game.Controller) {
	for i, ctrl := range controllers {
		if ctrl.MulliganKeep(0) {
			continue
		}
		tucked := ctrl.TuckCardsForMulligan(1)
		g.ReturnToLibrary(players[i], tucked)
		log.Debug().Str("player", players[i].Name()).Int("tucked", len(tucked)).Msg("mulligan")
	}
}

// runTurn drives one turn: main one, combat, main two, discard.
func (e *Engine) runTurn(g *lite.Game, players []game.Player, controllers []game.Controller) {
	g.BeginTurn()
	if g.IsOver() {
		return
	}
	active := 0
	if g.IsPlayerTurn(players[1]) {
		active = 1
	}

	e.runPriority(g, players[active], controllers[active])
	if g.IsOver() {
		return
	}

	// Combat.
	g.SetPhase(game.PhaseCombatDeclareAttackers)
	combat := g.NewCombat()
	controllers[active].DeclareAttackers(combat)
	if len(combat.Attackers()) > 0 {
		g.SetPhase(game.PhaseCombatDeclareBlockers)
		controllers[1-active].DeclareBlockers(combat)
		g.ResolveCombat(combat)
	}
	if g.IsOver() {
		return
	}

	g.SetPhase(game.PhaseMain2)
	e.runPriority(g, players[active], controllers[active])
	if g.IsOver() {
		return
	}

	g.SetPhase(game.PhaseEndOfTurn)
	hand := players[active].CardsIn(game.ZoneHand)
	if excess := len(hand) - players[active].MaxHandSize(); excess > 0 {
		discard := controllers[active].ChooseCardsToDiscard(excess, hand)
		g.Discard(players[active], discard)
	}
	g.AdvanceTo(game.PhaseCleanup, nil)
}

// runPriority lets the active player act until it passes.
func (e *Engine) runPriority(g *lite.Game, p game.Player, ctrl game.Controller) {
	for i := 0; i < maxActionsPerPriority && !g.IsOver(); i++ {
		candidates := g.CandidateActions(p)
		if len(candidates) == 0 {
			return
		}
		a := ctrl.ChooseAction(candidates)
		if a == nil {
			return
		}
		if err := g.PlayAction(p, a); err != nil {
			log.Warn().Err(err).Str("action", a.Description()).Msg("action failed, passing priority")
			return
		}
	}
}
