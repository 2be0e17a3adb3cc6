// Command train fits the policy network on recorded game files.
//
// It reads every game_*.jsonl file in the input directory, turns each
// decision into one training example (the flattened 1760-float
// decision tensor in, a 64-wide outcome-weighted one-hot of the chosen
// index plus a value target out), and runs SGD over the batch.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"cardsim/nn"
)

func main() {
	inputDir := flag.String("in", "training-data", "Directory of game_*.jsonl files")
	outputPath := flag.String("out", "policy.json", "Output model file")
	iterations := flag.Int("iterations", 50, "Training iterations over the data")
	learningRate := flag.Float64("lr", 0.01, "SGD learning rate")
	seed := flag.Uint64("seed", 1, "Shuffle seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	examples, games, err := loadExamples(*inputDir, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load training data")
	}
	if len(examples) == 0 {
		log.Fatal().Str("dir", *inputDir).Msg("no training examples found")
	}
	log.Info().Int("games", games).Int("examples", len(examples)).Msg("loaded training data")

	cfg := nn.DefaultModelConfig()
	layout := append([]int{}, cfg.HiddenLayers...)
	layout = append(layout, nn.MaxOptions+1)
	network := deep.NewNeural(&deep.Config{
		Inputs:     cfg.InputSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})

	trainer := training.NewTrainer(training.NewSGD(*learningRate, 0.5, 0.0, false), 1)
	trainer.Train(network, examples, nil, *iterations)

	cfg.Weights = network.Dump().Weights
	if err := saveModel(*outputPath, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to save model")
	}
	log.Info().Str("path", *outputPath).Msg("model saved")
}

// loadExamples converts every recorded decision into a training
// example. Games without an outcome record are skipped: there is no
// reward to learn from.
func loadExamples(dir string, seed uint64) (training.Examples, int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "game_*.jsonl"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var examples training.Examples
	games := 0
	for _, path := range paths {
		decisions, outcome, err := nn.ReadRecords(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping unreadable game file")
			continue
		}
		if outcome == nil {
			log.Warn().Str("file", path).Msg("skipping game without outcome record")
			continue
		}
		games++
		for _, d := range decisions {
			examples = append(examples, decisionExample(d, outcome.Result))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
	return examples, games, nil
}

// decisionExample builds the (input, response) pair for one decision.
// The policy target is the chosen index weighted by the game result,
// so choices from winning games are reinforced; the final output is
// the value target in [-1, 1].
func decisionExample(d nn.DecisionRecord, result float32) training.Example {
	decision := decisionTypeFromName(d.DecisionType)
	input32 := nn.FlattenDecisionTensor(d.State, decision, d.Options, d.NumOptions)
	input := make([]float64, len(input32))
	for i, v := range input32 {
		input[i] = float64(v)
	}

	response := make([]float64, nn.MaxOptions+1)
	if d.ChosenIndex >= 0 && d.ChosenIndex < nn.MaxOptions {
		response[d.ChosenIndex] = float64(result)
	}
	response[nn.MaxOptions] = 2*float64(result) - 1

	return training.Example{Input: input, Response: response}
}

func decisionTypeFromName(name string) nn.DecisionType {
	for d := nn.DecisionSpellSelection; int(d) < nn.NumDecisionTypes; d++ {
		if d.String() == name {
			return d
		}
	}
	return nn.DecisionGeneric
}

func saveModel(path string, cfg nn.ModelConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}
