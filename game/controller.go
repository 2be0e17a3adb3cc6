package game

// Controller is the decision surface the surrounding engine drives. One
// controller instance serves one player for one game; the engine calls
// it strictly in game order from a single game thread.
//
// Implementations: the heuristic agent, the search-backed agents, and
// the neural-network hybrid/full controllers that wrap them.
type Controller interface {
	// ChooseAction picks the next spell or ability to play from the
	// candidate list, or nil to pass priority.
	ChooseAction(candidates []Action) Action

	// Mulligan.
	MulliganKeep(cardsToReturn int) bool
	TuckCardsForMulligan(cardsToReturn int) []Card
	ConfirmMulliganScry() bool

	// Combat.
	DeclareAttackers(combat Combat)
	DeclareBlockers(combat Combat)
	OrderBlockers(attacker Card, blockers []Card) []Card
	OrderAttackers(blocker Card, attackers []Card) []Card
	ExertAttackers(attackers []Card) []Card

	// Entity and card choices.
	ChooseSingleEntity(options []Entity, optional bool, prompt string) Entity
	ChooseEntities(options []Entity, min, max int, prompt string) []Entity
	ChooseCards(options []Card, min, max int, prompt string) []Card
	ChooseCardsToDiscard(n int, hand []Card) []Card
	ChoosePermanentsToSacrifice(options []Card, min, max int) []Card
	ChoosePermanentsToDestroy(options []Card, min, max int) []Card
	ChooseCardsToReveal(min, max int, valid []Card) []Card
	ChooseSingleCardForZoneChange(dest Zone, options []Card, optional bool) Card
	ChooseCardsForZoneChange(dest Zone, options []Card, min, max int) []Card
	OrderMoveToZoneList(cards []Card, dest Zone) []Card

	// Yes/no family.
	ConfirmAction(prompt string) bool
	ConfirmTrigger(prompt string) bool
	ConfirmReplacementEffect(prompt string) bool
	ChooseBoolean(question string) bool
	ChooseFlipResult(call bool) bool
	WillPutCardOnTop(c Card) bool
	// ChooseCardsPile returns true for the first pile.
	ChooseCardsPile(pile1, pile2 []Card) bool

	// Numbers.
	ChooseNumber(min, max int, prompt string) int
	AnnounceX(a Action, min, max int) int

	// Misc pickers.
	ChooseColor(options ColorSet) Color
	ChooseCardType(options []string) string
	ChooseString(options []string, prompt string) string
	ArrangeForScry(top []Card) (keep, bottom []Card)
	ArrangeForSurveil(top []Card) (keep, graveyard []Card)

	// ChooseStartingPlayer is asked of the winner of the opening flip;
	// true means play first.
	ChooseStartingPlayer(wonFlip bool) bool

	// FinishGame is invoked exactly once when the game ends.
	FinishGame(won bool, turns int, reason string)
}
