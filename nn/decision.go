package nn

// DecisionType classifies a discrete choice for the policy's one-hot
// input. Ordinal values are part of the tensor layout; do not reorder.
type DecisionType int

const (
	// DecisionSpellSelection picks a spell from the candidate list.
	DecisionSpellSelection DecisionType = iota
	// DecisionMulligan covers keep-or-mulligan and tuck selection.
	DecisionMulligan
	// DecisionAttack is a per-creature binary: attack or not.
	DecisionAttack
	// DecisionBlock picks a blocker (or none) per attacker.
	DecisionBlock
	// DecisionCardChoice is a generic pick-from-list.
	DecisionCardChoice
	// DecisionBoolean is any yes/no confirmation.
	DecisionBoolean
	// DecisionNumber picks a number from a range.
	DecisionNumber
	// DecisionGeneric is the fallback for anything else.
	DecisionGeneric

	NumDecisionTypes = int(DecisionGeneric) + 1
)

func (d DecisionType) String() string {
	names := [...]string{
		"SPELL_SELECTION", "MULLIGAN", "ATTACK", "BLOCK",
		"CARD_CHOICE", "BOOLEAN", "NUMBER", "GENERIC",
	}
	if d < 0 || int(d) >= len(names) {
		return "GENERIC"
	}
	return names[d]
}
