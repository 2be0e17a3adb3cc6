package lite

import (
	"cardsim/game"
)

// Sample card pool for demo matches and tests.

func Mountain() CardSpec {
	return CardSpec{Name: "Mountain", Land: true, Produces: []string{"R"}}
}

func Forest() CardSpec {
	return CardSpec{Name: "Forest", Land: true, Produces: []string{"G"}}
}

func Plains() CardSpec {
	return CardSpec{Name: "Plains", Land: true, Produces: []string{"W"}}
}

func GoblinRaider() CardSpec {
	return CardSpec{
		Name: "Goblin Raider", Creature: true, CMC: 2, Power: 2, Toughness: 2,
		Colors: game.ColorSet(game.ColorRed), Pips: [6]int{0, 0, 0, 1, 0, 0},
		CreatureTypes: []string{"Goblin"},
	}
}

func GoblinChampion() CardSpec {
	return CardSpec{
		Name: "Goblin Champion", Creature: true, CMC: 3, Power: 3, Toughness: 2,
		Colors: game.ColorSet(game.ColorRed), Pips: [6]int{0, 0, 0, 2, 0, 0},
		Keywords:      []game.Keyword{game.KeywordHaste},
		CreatureTypes: []string{"Goblin"},
	}
}

func LightningStrike() CardSpec {
	return CardSpec{
		Name: "Lightning Strike", Instant: true, CMC: 2,
		Colors: game.ColorSet(game.ColorRed), Pips: [6]int{0, 0, 0, 1, 0, 0},
		API: game.APIDealDamage, Amount: 3, Targeted: true,
	}
}

func SkyScreecher() CardSpec {
	return CardSpec{
		Name: "Sky Screecher", Creature: true, CMC: 2, Power: 2, Toughness: 1,
		Colors: game.ColorSet(game.ColorRed), Pips: [6]int{0, 0, 0, 1, 0, 0},
		Keywords:      []game.Keyword{game.KeywordFlying},
		CreatureTypes: []string{"Drake"},
	}
}

func BristlebackBoar() CardSpec {
	return CardSpec{
		Name: "Bristleback Boar", Creature: true, CMC: 3, Power: 3, Toughness: 3,
		Colors: game.ColorSet(game.ColorGreen), Pips: [6]int{0, 0, 0, 0, 1, 0},
		CreatureTypes: []string{"Boar"},
	}
}

func CanopyColossus() CardSpec {
	return CardSpec{
		Name: "Canopy Colossus", Creature: true, CMC: 5, Power: 5, Toughness: 5,
		Colors: game.ColorSet(game.ColorGreen), Pips: [6]int{0, 0, 0, 0, 2, 0},
		Keywords:      []game.Keyword{game.KeywordTrample, game.KeywordReach},
		CreatureTypes: []string{"Elemental"},
	}
}

func GiantGrowth() CardSpec {
	return CardSpec{
		Name: "Giant Growth", Instant: true, CMC: 1,
		Colors: game.ColorSet(game.ColorGreen), Pips: [6]int{0, 0, 0, 0, 1, 0},
		API: game.APIPump, Amount: 3, Targeted: true,
	}
}

func SylvanBounty() CardSpec {
	return CardSpec{
		Name: "Sylvan Bounty", Sorcery: true, CMC: 3,
		Colors: game.ColorSet(game.ColorGreen), Pips: [6]int{0, 0, 0, 0, 1, 0},
		API: game.APIDraw, Amount: 2,
	}
}

func MusterTheClans() CardSpec {
	return CardSpec{
		Name: "Muster the Clans", Sorcery: true, CMC: 4,
		Colors: game.ColorSet(game.ColorWhite), Pips: [6]int{1, 0, 0, 0, 0, 0},
		API: game.APIToken, Amount: 2,
	}
}

// RedAggroDeck is a 40-card burn deck.
func RedAggroDeck() []CardSpec {
	var deck []CardSpec
	for i := 0; i < 16; i++ {
		deck = append(deck, Mountain())
	}
	for i := 0; i < 8; i++ {
		deck = append(deck, GoblinRaider())
	}
	for i := 0; i < 6; i++ {
		deck = append(deck, GoblinChampion())
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, SkyScreecher())
	}
	for i := 0; i < 6; i++ {
		deck = append(deck, LightningStrike())
	}
	return deck
}

// GreenMidrangeDeck is a 40-card creature deck.
func GreenMidrangeDeck() []CardSpec {
	var deck []CardSpec
	for i := 0; i < 17; i++ {
		deck = append(deck, Forest())
	}
	for i := 0; i < 8; i++ {
		deck = append(deck, BristlebackBoar())
	}
	for i := 0; i < 5; i++ {
		deck = append(deck, CanopyColossus())
	}
	for i := 0; i < 6; i++ {
		deck = append(deck, GiantGrowth())
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, SylvanBounty())
	}
	return deck
}
