package nn

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, cfg ModelConfig) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func smallModelConfig() ModelConfig {
	cfg := DefaultModelConfig()
	cfg.HiddenLayers = []int{4}
	return cfg
}

func TestModelPolicyChoosesLegalIndex(t *testing.T) {
	policy, err := NewModelPolicy(writeModelFile(t, smallModelConfig()))
	require.NoError(t, err)

	state := make([]float32, StateSize)
	options := EncodeNumberRange(0, 9)
	for trial := 0; trial < 5; trial++ {
		idx, err := policy.ChooseOption(state, DecisionNumber, options, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 10)
	}
}

func TestModelPolicyRejectsWrongInputSize(t *testing.T) {
	cfg := smallModelConfig()
	cfg.InputSize = 42
	_, err := NewModelPolicy(writeModelFile(t, cfg))
	require.Error(t, err)
}

func TestModelPolicyHotReload(t *testing.T) {
	path := writeModelFile(t, smallModelConfig())
	policy, err := NewModelPolicy(path)
	require.NoError(t, err)

	t.Run("successful reload swaps the network", func(t *testing.T) {
		require.NoError(t, policy.LoadModel(path))
		_, err := policy.ChooseOption(make([]float32, StateSize), DecisionGeneric, EncodeBooleanChoice(), 2)
		require.NoError(t, err)
	})

	t.Run("failed reload keeps the previous network", func(t *testing.T) {
		require.Error(t, policy.LoadModel(filepath.Join(t.TempDir(), "missing.json")))
		_, err := policy.ChooseOption(make([]float32, StateSize), DecisionGeneric, EncodeBooleanChoice(), 2)
		require.NoError(t, err, "old session must stay usable")
	})
}

func TestModelPolicyDeterministicForSameInput(t *testing.T) {
	policy, err := NewModelPolicy(writeModelFile(t, smallModelConfig()))
	require.NoError(t, err)

	state := make([]float32, StateSize)
	state[0] = 0.9
	options := EncodeNumberRange(1, 6)

	first, err := policy.ChooseOption(state, DecisionNumber, options, 6)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := policy.ChooseOption(state, DecisionNumber, options, 6)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
