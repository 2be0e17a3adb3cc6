package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()

	require.Equal(t, 3, p.SimulationMaxDepth)
	require.Equal(t, 5000, p.SimulationTimeLimitMS)
	require.True(t, p.UseTranspositionTable)
	require.True(t, p.LoopDetectionEnabled)
	require.True(t, p.AlphaBetaPruning)
	require.Equal(t, 300, p.FutilityMargin)
	require.Zero(t, p.ComboStateBonus, "synergy scoring is opt-in")
	require.NotEmpty(t, p.Combo.ManaDoublers)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
simulation_max_depth: 5
combo_state_bonus: 150
mcts_iterations: 400
combo:
  tribes: ["Elf", "Sliver"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 5, p.SimulationMaxDepth, "overridden")
	require.Equal(t, 150, p.ComboStateBonus, "overridden")
	require.Equal(t, 400, p.MCTSIterations, "overridden")
	require.Equal(t, []string{"Elf", "Sliver"}, p.Combo.Tribes, "nested override")
	require.Equal(t, 5000, p.SimulationTimeLimitMS, "default preserved")
	require.True(t, p.AlphaBetaPruning, "default preserved")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSearchConfigConversion(t *testing.T) {
	p := Default()
	p.SimulationTimeLimitMS = 250
	cfg := p.SearchConfig()

	require.Equal(t, p.SimulationMaxDepth, cfg.MaxDepth)
	require.Equal(t, 250*time.Millisecond, cfg.TimeLimit)
	require.Equal(t, p.FutilityMargin, cfg.FutilityMargin)
	require.Equal(t, p.MCTSIterations, cfg.MCTSIterations)
}
