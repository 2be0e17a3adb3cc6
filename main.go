package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cardsim/agent"
	"cardsim/config"
	"cardsim/engine"
	"cardsim/eval"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/game/lite"
	"cardsim/nn"
)

func main() {
	games := flag.Int("games", 10, "Number of games to play")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Match seed")
	p1Kind := flag.String("p1", "search", "Player 1 controller: heuristic|search|mcts|nn-hybrid|nn-full")
	p2Kind := flag.String("p2", "heuristic", "Player 2 controller: heuristic|search|mcts|nn-hybrid|nn-full")
	profilePath := flag.String("profile", "", "AI profile YAML (defaults when empty)")
	modelPath := flag.String("model", "", "Policy model JSON for the nn controllers (random policy when empty)")
	epsilon := flag.Float64("epsilon", 0, "Epsilon-greedy exploration for the nn controllers")
	exportDir := flag.String("export", "", "Training-data output directory (disabled when empty)")
	metricsDir := flag.String("metrics", "", "Match metrics CSV output directory (disabled when empty)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	profile := config.Default()
	if *profilePath != "" {
		var err error
		if profile, err = config.Load(*profilePath); err != nil {
			log.Fatal().Err(err).Msg("failed to load profile")
		}
	}

	policy, err := buildPolicy(*modelPath, *epsilon)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load model")
	}

	cfg := engine.MatchConfig{
		Name1:    "Ember",
		Name2:    "Thicket",
		Deck1:    lite.RedAggroDeck(),
		Deck2:    lite.GreenMidrangeDeck(),
		Factory1: buildFactory(*p1Kind, profile, policy, *exportDir),
		Factory2: buildFactory(*p2Kind, profile, policy, *exportDir),
		Games:    *games,
		Seed:     *seed,
	}

	log.Info().
		Str("p1", *p1Kind).Str("p2", *p2Kind).
		Int("games", *games).Uint64("seed", *seed).
		Msg("starting match")

	results := engine.LocalEngine(cfg).Run()

	records := make([]metrics.GameRecord, len(results))
	for i, r := range results {
		records[i] = metrics.GameRecord{
			ID: i + 1, Winner: r.Winner, Turns: r.Turns,
			Reason: r.Reason, Duration: r.Duration,
		}
	}
	printResults(cfg, records)

	if *metricsDir != "" {
		writer, err := metrics.NewWriter(*metricsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create metrics writer")
		}
		summaries := []metrics.Summary{
			metrics.Summarize(cfg.Name1, records),
			metrics.Summarize(cfg.Name2, records),
		}
		if err := writer.WriteGameRecords(records); err != nil {
			log.Fatal().Err(err).Msg("failed to write game records")
		}
		if err := writer.WriteSummaries(summaries); err != nil {
			log.Fatal().Err(err).Msg("failed to write summaries")
		}
		log.Info().Str("dir", writer.BaseDir()).Msg("metrics written")
	}
}

func buildPolicy(modelPath string, epsilon float64) (nn.Policy, error) {
	var policy nn.Policy = nn.RandomPolicy{}
	if modelPath != "" {
		model, err := nn.NewModelPolicy(modelPath)
		if err != nil {
			return nil, err
		}
		policy = model
	}
	if epsilon > 0 {
		policy = nn.EpsilonGreedy{Inner: policy, Epsilon: epsilon}
	}
	return policy, nil
}

// buildFactory maps a controller kind to a per-game factory. The
// evaluator and search state are built per game so parallel matches
// never share mutable search state; only the policy is shared.
func buildFactory(kind string, profile config.Profile, policy nn.Policy, exportDir string) engine.ControllerFactory {
	searchCfg := profile.SearchConfig()
	newEvaluator := func() *eval.Evaluator { return profile.NewEvaluator() }

	switch kind {
	case "heuristic":
		return func(g game.Game, p game.Player) game.Controller {
			return agent.NewHeuristic(p)
		}
	case "search":
		return func(g game.Game, p game.Player) game.Controller {
			return agent.NewSearchAgent(g, p, newEvaluator(), searchCfg)
		}
	case "mcts":
		return func(g game.Game, p game.Player) game.Controller {
			return agent.NewMCTSAgent(g, p, newEvaluator(), searchCfg)
		}
	case "nn-hybrid":
		return func(g game.Game, p game.Player) game.Controller {
			return nn.NewHybridController(g, p, agent.NewHeuristic(p), policy, newRecorder(exportDir))
		}
	case "nn-full":
		return func(g game.Game, p game.Player) game.Controller {
			return nn.NewFullController(g, p, agent.NewHeuristic(p), policy, newRecorder(exportDir))
		}
	default:
		log.Fatal().Str("kind", kind).Msg("unknown controller kind")
		return nil
	}
}

func newRecorder(exportDir string) *nn.Recorder {
	if exportDir == "" {
		return nil
	}
	return nn.NewRecorder(exportDir)
}

func printResults(cfg engine.MatchConfig, records []metrics.GameRecord) {
	out := termenv.NewOutput(os.Stdout)
	s1 := metrics.Summarize(cfg.Name1, records)
	s2 := metrics.Summarize(cfg.Name2, records)

	fmt.Println()
	fmt.Println(out.String("Match results").Bold())
	for _, s := range []metrics.Summary{s1, s2} {
		line := fmt.Sprintf("  %-8s %2d/%d wins (%.0f%%, 95%% CI %.0f%%-%.0f%%) avg %.1f turns",
			s.Player, s.Wins, s.Games, s.WinRate*100, s.Lower95*100, s.Upper95*100, s.AvgTurns)
		styled := out.String(line)
		switch {
		case s.WinRate > 0.5:
			styled = styled.Foreground(out.Color("2")) // green
		case s.WinRate < 0.5:
			styled = styled.Foreground(out.Color("1")) // red
		}
		fmt.Println(styled)
	}
	if s1.Draws > 0 {
		fmt.Println(out.String(fmt.Sprintf("  %d draw(s)", s1.Draws)).Faint())
	}
}
