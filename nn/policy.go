package nn

import (
	"math/rand/v2"
)

// Policy resolves one discrete in-game choice. Implementations must be
// safe for concurrent calls: parallel games share one policy.
type Policy interface {
	// ChooseOption picks an index in [0, validCount). state is the
	// 664-float state vector, options the per-option feature rows.
	// An error is fatal to the decision; callers fall back to the
	// heuristic controller.
	ChooseOption(state []float32, decision DecisionType, options [][]float32, validCount int) (int, error)
}

// StateEvaluator is the optional value head of a policy.
type StateEvaluator interface {
	// EvaluateState estimates the position value in [-1, 1].
	EvaluateState(state []float32) float32
}

// RandomPolicy picks uniformly among the legal options. Used as the
// exploration baseline and for bootstrap data generation.
type RandomPolicy struct{}

func (RandomPolicy) ChooseOption(_ []float32, _ DecisionType, _ [][]float32, validCount int) (int, error) {
	return rand.IntN(validCount), nil
}

// EpsilonGreedy wraps a policy with epsilon-greedy exploration: with
// probability Epsilon it returns a uniformly random legal index,
// otherwise it delegates.
type EpsilonGreedy struct {
	Inner   Policy
	Epsilon float64
}

func (e EpsilonGreedy) ChooseOption(state []float32, decision DecisionType, options [][]float32, validCount int) (int, error) {
	if rand.Float64() < e.Epsilon {
		return rand.IntN(validCount), nil
	}
	return e.Inner.ChooseOption(state, decision, options, validCount)
}
