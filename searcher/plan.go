package searcher

import (
	"fmt"
	"strings"

	"cardsim/eval"
)

// Targets is the set of targets chosen for one action, identified by
// stable entity ids in the game the decision was made for.
type Targets struct {
	EntityIDs   []int
	Description string
}

func (t *Targets) String() string { return t.Description }

// Decision is one node of the search's decision tree: either an action
// choice, or an ancillary sub-choice (targets, modes, cards, X) that
// belongs to the nearest action above it. The final plan merges the
// ancillary kinds into their owning action entry.
type Decision struct {
	InitialScore eval.Score
	Prev         *Decision

	Ref      *ActionRef
	Targets  *Targets
	Modes    []int
	ModesStr string
	Choices  []string
	XMana    int
	HasX     bool
}

func (d *Decision) String() string {
	var sb strings.Builder
	if d.Ref != nil {
		sb.WriteString(d.Ref.String())
	}
	if d.Targets != nil {
		fmt.Fprintf(&sb, " targets=%s", d.Targets)
	}
	if d.ModesStr != "" {
		fmt.Fprintf(&sb, " modes=%s", d.ModesStr)
	}
	if len(d.Choices) > 0 {
		fmt.Fprintf(&sb, " choices=%v", d.Choices)
	}
	if d.HasX {
		fmt.Fprintf(&sb, " X=%d", d.XMana)
	}
	return sb.String()
}

// Plan is the best line the search found: a linear sequence of action
// decisions with their sub-choices folded in.
type Plan struct {
	Decisions  []*Decision
	FinalScore eval.Score
}

// materializePlan walks the terminal decision's parent links to the
// root, then merges ancillary decisions forward into their owning
// action entries.
func materializePlan(terminal *Decision, finalScore eval.Score) *Plan {
	var sequence []*Decision
	for d := terminal; d != nil; d = d.Prev {
		sequence = append(sequence, d)
	}
	for i, j := 0, len(sequence)-1; i < j; i, j = i+1, j-1 {
		sequence[i], sequence[j] = sequence[j], sequence[i]
	}

	writeIndex := 0
	for _, d := range sequence {
		switch {
		case d.Ref != nil:
			sequence[writeIndex] = d
			writeIndex++
		case writeIndex == 0:
			// An ancillary decision before any action: nothing to merge
			// into; drop it.
		case d.Targets != nil:
			sequence[writeIndex-1].Targets = d.Targets
		case len(d.Choices) > 0:
			owner := sequence[writeIndex-1]
			owner.Choices = append(owner.Choices, d.Choices...)
		case d.Modes != nil:
			sequence[writeIndex-1].Modes = d.Modes
			sequence[writeIndex-1].ModesStr = d.ModesStr
		case d.HasX:
			sequence[writeIndex-1].XMana = d.XMana
			sequence[writeIndex-1].HasX = true
		}
	}
	return &Plan{Decisions: sequence[:writeIndex], FinalScore: finalScore}
}
