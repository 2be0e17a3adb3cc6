package nn

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"

	deep "github.com/patrikeh/go-deep"
)

// ModelConfig describes a trained policy network: its architecture
// plus the weight tensor, stored as JSON next to the training run.
type ModelConfig struct {
	Name         string        `json:"name"`
	InputSize    int           `json:"inputSize"`
	HiddenLayers []int         `json:"hiddenLayers"`
	Weights      [][][]float64 `json:"weights"`
}

// DefaultModelConfig is the architecture the trainer produces: the
// 1760-float decision tensor in, 64 policy logits plus one value
// output.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Name:         "default",
		InputSize:    InputSize,
		HiddenLayers: []int{256, 128},
	}
}

// ModelPolicy runs the trained network over the flattened decision
// tensor and picks the highest-scoring legal option.
//
// Hot-swapping is supported: LoadModel builds the replacement network
// before the old one is dropped, and the swap is atomic under the
// lock, so in-flight inferences always see a complete network.
type ModelPolicy struct {
	mu  sync.RWMutex
	net *deep.Neural
}

// NewModelPolicy loads a model from its JSON config file.
func NewModelPolicy(path string) (*ModelPolicy, error) {
	p := &ModelPolicy{}
	if err := p.LoadModel(path); err != nil {
		return nil, err
	}
	return p, nil
}

// buildNetwork constructs the network described by cfg.
func buildNetwork(cfg ModelConfig) (*deep.Neural, error) {
	if cfg.InputSize != InputSize {
		return nil, fmt.Errorf("model input size %d does not match tensor size %d", cfg.InputSize, InputSize)
	}
	layout := append([]int{}, cfg.HiddenLayers...)
	layout = append(layout, MaxOptions+1) // 64 policy logits + value

	net := deep.NewNeural(&deep.Config{
		Inputs:     cfg.InputSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	if cfg.Weights != nil {
		net.ApplyWeights(cfg.Weights)
	}
	return net, nil
}

// LoadModel reads a model config and swaps it in. On any failure the
// previous network stays in place.
func (p *ModelPolicy) LoadModel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model %s: %w", path, err)
	}
	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse model %s: %w", path, err)
	}
	net, err := buildNetwork(cfg)
	if err != nil {
		return fmt.Errorf("failed to build model %s: %w", path, err)
	}

	p.mu.Lock()
	p.net = net
	p.mu.Unlock()
	return nil
}

// ChooseOption flattens state + decision one-hot + options + legality
// mask into the 1760-float tensor, runs one inference, and returns the
// argmax over legal policy logits.
func (p *ModelPolicy) ChooseOption(state []float32, decision DecisionType, options [][]float32, validCount int) (int, error) {
	p.mu.RLock()
	net := p.net
	p.mu.RUnlock()
	if net == nil {
		return 0, fmt.Errorf("no model loaded")
	}

	input := FlattenDecisionTensor(state, decision, options, validCount)

	in := make([]float64, len(input))
	for i, v := range input {
		in[i] = float64(v)
	}
	out := net.Predict(in)
	if len(out) < MaxOptions {
		return 0, fmt.Errorf("model produced %d outputs, want at least %d", len(out), MaxOptions)
	}

	bestIdx := 0
	bestVal := math.Inf(-1)
	for i := 0; i < validCount && i < MaxOptions; i++ {
		if out[i] > bestVal {
			bestVal = out[i]
			bestIdx = i
		}
	}
	return bestIdx, nil
}

// EvaluateState returns the value head clamped into [-1, 1], or 0
// when no model is loaded.
func (p *ModelPolicy) EvaluateState(state []float32) float32 {
	p.mu.RLock()
	net := p.net
	p.mu.RUnlock()
	if net == nil {
		return 0
	}
	input := FlattenDecisionTensor(state, DecisionGeneric, nil, 0)
	in := make([]float64, len(input))
	for i, v := range input {
		in[i] = float64(v)
	}
	out := net.Predict(in)
	if len(out) <= MaxOptions {
		return 0
	}
	v := out[MaxOptions]
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return float32(v)
}

// FlattenDecisionTensor lays out one decision as the fixed 1760-float
// input tensor:
//
//	state[664] | decision one-hot[8] | options[64*16] | mask[64]
//
// Options beyond MaxOptions are dropped; the mask marks indices below
// validCount as legal.
func FlattenDecisionTensor(state []float32, decision DecisionType, options [][]float32, validCount int) []float32 {
	input := make([]float32, InputSize)
	copy(input, state)

	dtOffset := StateSize
	input[dtOffset+int(decision)] = 1.0

	optOffset := dtOffset + NumDecisionTypes
	for i := 0; i < len(options) && i < MaxOptions; i++ {
		copy(input[optOffset+i*CardFeatures:], options[i])
	}

	maskOffset := optOffset + MaxOptions*CardFeatures
	for i := 0; i < validCount && i < MaxOptions; i++ {
		input[maskOffset+i] = 1.0
	}
	return input
}
