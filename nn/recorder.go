package nn

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DecisionRecord is one recorded choice, newline-delimited JSON.
type DecisionRecord struct {
	Type         string      `json:"type"` // always "decision"
	Turn         int         `json:"turn"`
	Phase        string      `json:"phase"`
	DecisionType string      `json:"decisionType"`
	State        []float32   `json:"state"`
	Options      [][]float32 `json:"options"`
	NumOptions   int         `json:"numOptions"`
	ChosenIndex  int         `json:"chosenIndex"`
}

// OutcomeRecord is the final record of a game file.
type OutcomeRecord struct {
	Type   string  `json:"type"` // always "outcome"
	Result float32 `json:"result"`
	Turns  int     `json:"turns"`
	Reason string  `json:"reason"`
}

// Recorder appends one game's decisions and outcome to a JSONL file.
//
// File creation is lazy: no file exists until the first decision is
// recorded, which avoids thousands of empty files from short-lived
// scratch controllers. All writes are mutually exclusive because the
// surrounding engine may call through the same controller from
// multiple game threads. An IO error closes the recorder; the game
// continues without training data.
type Recorder struct {
	outputDir string

	mu     sync.Mutex
	writer *bufio.Writer
	file   *os.File
	closed bool
}

func NewRecorder(outputDir string) *Recorder {
	return &Recorder{outputDir: outputDir}
}

// ensureOpen creates the output file on first use. Callers hold mu.
func (r *Recorder) ensureOpen() error {
	if r.writer != nil || r.closed {
		return nil
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	name := fmt.Sprintf("game_%s_%d.jsonl", uuid.New(), time.Now().UnixMilli())
	f, err := os.Create(filepath.Join(r.outputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create record file: %w", err)
	}
	r.file = f
	r.writer = bufio.NewWriter(f)
	return nil
}

// RecordDecision appends one decision record. Dropped silently after
// close.
func (r *Recorder) RecordDecision(turn int, phase string, decision DecisionType,
	state []float32, options [][]float32, numOptions, chosenIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	record := DecisionRecord{
		Type:         "decision",
		Turn:         turn,
		Phase:        phase,
		DecisionType: decision.String(),
		State:        state,
		Options:      options[:numOptions],
		NumOptions:   numOptions,
		ChosenIndex:  chosenIndex,
	}
	r.writeRecord(record)
}

// RecordOutcome appends the outcome record. The caller should Close
// right after; FinishGame does both.
func (r *Recorder) RecordOutcome(result float32, turns int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.writeRecord(OutcomeRecord{Type: "outcome", Result: result, Turns: turns, Reason: reason})
}

// writeRecord marshals and appends one line. Callers hold mu. An IO
// failure is logged once and permanently closes the recorder: losing
// one game's data must never crash the game.
func (r *Recorder) writeRecord(record any) {
	if err := r.ensureOpen(); err != nil {
		log.Error().Err(err).Msg("recorder: open failed, dropping training data for this game")
		r.closed = true
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Msg("recorder: marshal failed")
		return
	}
	if _, err := r.writer.Write(append(data, '\n')); err != nil {
		log.Error().Err(err).Msg("recorder: write failed, closing")
		r.closeLocked()
		return
	}
	if err := r.writer.Flush(); err != nil {
		log.Error().Err(err).Msg("recorder: flush failed, closing")
		r.closeLocked()
	}
}

// FinishGame writes the outcome record and closes the file.
func (r *Recorder) FinishGame(won bool, turns int, reason string) {
	result := float32(0.0)
	if won {
		result = 1.0
	}
	r.RecordOutcome(result, turns, reason)
	r.Close()
}

func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

func (r *Recorder) closeLocked() {
	if r.closed {
		return
	}
	r.closed = true
	if r.writer != nil {
		if err := r.writer.Flush(); err != nil {
			log.Error().Err(err).Msg("recorder: flush on close failed")
		}
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			log.Error().Err(err).Msg("recorder: close failed")
		}
	}
}

// ReadRecords loads every record from a JSONL file, for the trainer
// and for tests. Decision and outcome records come back in file order.
func ReadRecords(path string) ([]DecisionRecord, *OutcomeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	var decisions []DecisionRecord
	var outcome *OutcomeRecord

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		var header struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &header); err != nil {
			return nil, nil, fmt.Errorf("malformed record: %w", err)
		}
		switch header.Type {
		case "decision":
			var d DecisionRecord
			if err := json.Unmarshal(line, &d); err != nil {
				return nil, nil, fmt.Errorf("malformed decision record: %w", err)
			}
			decisions = append(decisions, d)
		case "outcome":
			var o OutcomeRecord
			if err := json.Unmarshal(line, &o); err != nil {
				return nil, nil, fmt.Errorf("malformed outcome record: %w", err)
			}
			outcome = &o
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read records: %w", err)
	}
	return decisions, outcome, nil
}
