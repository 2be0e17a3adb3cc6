package nn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedPolicy always answers with a fixed index and counts calls.
type scriptedPolicy struct {
	answer int
	calls  int
}

func (p *scriptedPolicy) ChooseOption(_ []float32, _ DecisionType, _ [][]float32, _ int) (int, error) {
	p.calls++
	return p.answer, nil
}

func TestRandomPolicyUniformity(t *testing.T) {
	// A boolean mulligan choice over 10000 calls must be close to
	// uniform: each side within 5% of the expected count.
	const trials = 10000
	state := make([]float32, StateSize)
	options := EncodeBooleanChoice()

	var policy RandomPolicy
	counts := [2]int{}
	for i := 0; i < trials; i++ {
		idx, err := policy.ChooseOption(state, DecisionMulligan, options, 2)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 2)
		counts[idx]++
	}

	expected := trials / 2
	tolerance := expected / 20
	for side, count := range counts {
		require.InDelta(t, expected, count, float64(tolerance),
			"side %d drawn %d times", side, count)
	}
}

func TestRandomPolicyStaysLegal(t *testing.T) {
	var policy RandomPolicy
	for valid := 1; valid <= 5; valid++ {
		for i := 0; i < 100; i++ {
			idx, err := policy.ChooseOption(nil, DecisionGeneric, nil, valid)
			require.NoError(t, err)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, valid)
		}
	}
}

func TestEpsilonGreedy(t *testing.T) {
	t.Run("epsilon zero always delegates", func(t *testing.T) {
		inner := &scriptedPolicy{answer: 3}
		wrapped := EpsilonGreedy{Inner: inner, Epsilon: 0}
		for i := 0; i < 50; i++ {
			idx, err := wrapped.ChooseOption(nil, DecisionGeneric, nil, 5)
			require.NoError(t, err)
			require.Equal(t, 3, idx)
		}
		require.Equal(t, 50, inner.calls)
	})

	t.Run("epsilon one never delegates", func(t *testing.T) {
		inner := &scriptedPolicy{answer: 3}
		wrapped := EpsilonGreedy{Inner: inner, Epsilon: 1}
		for i := 0; i < 50; i++ {
			idx, err := wrapped.ChooseOption(nil, DecisionGeneric, nil, 2)
			require.NoError(t, err)
			require.Less(t, idx, 2)
		}
		require.Zero(t, inner.calls)
	})
}
