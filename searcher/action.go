package searcher

import (
	"cardsim/game"
)

// ActionRef identifies an action across game copies. Action values do
// not survive snapshots, so the search stores refs and re-resolves
// them against each copy's candidate list.
type ActionRef struct {
	CandidateIndex int
	Description    string
	HostName       string
}

// Pass is the pseudo-action of passing priority.
var Pass = ActionRef{CandidateIndex: -1, Description: "PASS"}

// NewActionRef captures the identity of candidates[index].
func NewActionRef(index int, a game.Action) ActionRef {
	hostName := ""
	if a.Host() != nil {
		hostName = a.Host().Name()
	}
	return ActionRef{
		CandidateIndex: index,
		Description:    a.Description(),
		HostName:       hostName,
	}
}

func (r ActionRef) IsPass() bool {
	return r.CandidateIndex == -1
}

// Resolve finds the matching action in a candidate list from a copied
// game. The index is tried first and verified by description; on
// mismatch the first candidate with a matching description wins.
// Returns nil when the action has no equivalent in the copy.
func (r ActionRef) Resolve(candidates []game.Action) game.Action {
	if r.IsPass() {
		return nil
	}
	if r.CandidateIndex >= 0 && r.CandidateIndex < len(candidates) {
		if a := candidates[r.CandidateIndex]; a.Description() == r.Description {
			return a
		}
	}
	for _, a := range candidates {
		if a.Description() == r.Description {
			return a
		}
	}
	return nil
}

func (r ActionRef) String() string {
	if r.IsPass() {
		return "PASS"
	}
	if r.HostName == "" {
		return r.Description
	}
	return r.HostName + ": " + r.Description
}
