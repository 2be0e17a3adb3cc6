package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cardsim/eval"
	"cardsim/searcher"
)

// Profile is the tunable AI configuration, loadable from YAML. Every
// field has a default; a profile file only needs the overrides.
type Profile struct {
	SimulationMaxDepth      int     `yaml:"simulation_max_depth"`
	SimulationTimeLimitMS   int     `yaml:"simulation_time_limit_ms"`
	UseTranspositionTable   bool    `yaml:"use_transposition_table"`
	LoopDetectionEnabled    bool    `yaml:"loop_detection_enabled"`
	AlphaBetaPruning        bool    `yaml:"alpha_beta_pruning"`
	FutilityMargin          int     `yaml:"futility_margin"`
	ComboStateBonus         int     `yaml:"combo_state_bonus"`
	MCTSIterations          int     `yaml:"mcts_iterations"`
	MCTSExplorationConstant float64 `yaml:"mcts_exploration_constant"`
	MCTSRolloutDepth        int     `yaml:"mcts_rollout_depth"`

	// Combo holds the synergy card-name tables; empty lists fall back
	// to the built-in defaults.
	Combo eval.ComboConfig `yaml:"combo"`
}

// Default returns the built-in profile.
func Default() Profile {
	return Profile{
		SimulationMaxDepth:      3,
		SimulationTimeLimitMS:   5000,
		UseTranspositionTable:   true,
		LoopDetectionEnabled:    true,
		AlphaBetaPruning:        true,
		FutilityMargin:          300,
		ComboStateBonus:         0,
		MCTSIterations:          200,
		MCTSExplorationConstant: math.Sqrt2,
		MCTSRolloutDepth:        4,
		Combo:                   eval.DefaultComboConfig(),
	}
}

// Load reads a YAML profile over the defaults.
func Load(path string) (Profile, error) {
	profile := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return profile, nil
}

// SearchConfig converts the profile into search settings.
func (p Profile) SearchConfig() searcher.Config {
	return searcher.Config{
		MaxDepth:         p.SimulationMaxDepth,
		TimeLimit:        time.Duration(p.SimulationTimeLimitMS) * time.Millisecond,
		LoopDetection:    p.LoopDetectionEnabled,
		UseTT:            p.UseTranspositionTable,
		AlphaBeta:        p.AlphaBetaPruning,
		FutilityMargin:   p.FutilityMargin,
		MCTSIterations:   p.MCTSIterations,
		MCTSExploration:  p.MCTSExplorationConstant,
		MCTSRolloutDepth: p.MCTSRolloutDepth,
	}
}

// NewEvaluator builds an evaluator honoring the profile's synergy
// settings.
func (p Profile) NewEvaluator() *eval.Evaluator {
	return eval.NewWithCombo(p.ComboStateBonus, p.Combo)
}
