package eval

import (
	"strings"

	"cardsim/game"
)

// ComboConfig holds the card-name substring tables the synergy scorer
// matches against. The tables are data, not code: profiles may extend
// or replace them.
type ComboConfig struct {
	ManaDoublers     []string `yaml:"mana_doublers"`
	SacrificeOutlets []string `yaml:"sacrifice_outlets"`
	DeathTriggers    []string `yaml:"death_triggers"`
	CounterSynergy   []string `yaml:"counter_synergy"`
	Tribes           []string `yaml:"tribes"`
}

// DefaultComboConfig returns the built-in signal tables.
func DefaultComboConfig() ComboConfig {
	return ComboConfig{
		ManaDoublers: []string{
			"mana reflection", "vorinclex", "nyxbloom", "mirari's wake",
			"zendikar resurgent", "caged sun", "gauntlet of power",
			"mana flare", "dictate of karametra", "heartbeat of spring",
			"regal behemoth", "sasaya", "wilderness reclamation",
			"seedborn muse", "prophet of kruphix",
			"sword of feast and famine", "bear umbra", "nature's will",
			"patron of the orochi",
		},
		SacrificeOutlets: []string{
			"viscera seer", "carrion feeder", "yahenni", "woe strider",
			"phyrexian altar", "ashnod's altar", "goblin bombardment",
			"altar of dementia", "blasting station",
		},
		DeathTriggers: []string{
			"blood artist", "zulaport cutthroat", "cruel celebrant",
			"bastion of remembrance", "judith", "mayhem devil",
			"vindictive vampire", "falkenrath noble", "syr konrad",
		},
		CounterSynergy: []string{
			"hardened scales", "winding constrictor", "branching evolution",
			"doubling season", "corpsejack menace", "vorinclex, monstrous",
			"cathars' crusade", "ozolith", "conclave mentor", "rishkar",
		},
		Tribes: []string{
			"Elf", "Goblin", "Zombie", "Vampire", "Merfolk", "Soldier",
			"Wizard", "Dragon", "Human", "Cleric", "Knight", "Elemental",
			"Spirit", "Angel", "Demon",
		},
	}
}

// evaluateComboState returns a bonus for positions that look one step
// from going off: low opponent life, lots of mana or cards, or known
// engine pieces on the battlefield.
func (e *Evaluator) evaluateComboState(aiPlayer game.Player) int {
	if e.comboBonus == 0 {
		return 0
	}

	bonus := 0

	for _, opp := range aiPlayer.Opponents() {
		if opp.Life() <= 5 {
			bonus += e.comboBonus / 2
		}
		if opp.Life() <= 3 {
			bonus += e.comboBonus
		}
	}

	if countUntappedManaProducers(aiPlayer) >= 7 {
		bonus += e.comboBonus / 4
	}

	if len(aiPlayer.CardsIn(game.ZoneHand)) >= 7 {
		bonus += e.comboBonus / 4
	}

	for _, c := range aiPlayer.CardsIn(game.ZoneBattlefield) {
		if !c.IsCreature() {
			continue
		}
		if c.HasKeyword(game.KeywordVigilance) && c.NetPower() >= 3 {
			bonus += e.comboBonus / 8
		}
		if c.HasKeyword(game.KeywordHaste) && c.HasKeyword(game.KeywordLifelink) {
			bonus += e.comboBonus / 8
		}
	}

	if e.countByName(aiPlayer, game.ZoneBattlefield, e.combo.ManaDoublers) >= 2 {
		bonus += e.comboBonus
	}

	bonus += e.evaluateGraveyardSynergy(aiPlayer)
	bonus += e.evaluateSacrificeSynergy(aiPlayer)
	bonus += e.evaluateCounterSynergy(aiPlayer)
	bonus += e.evaluateTribalSynergy(aiPlayer)

	return bonus
}

func countUntappedManaProducers(player game.Player) int {
	count := 0
	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		if !c.IsTapped() && len(c.ManaAbilities()) > 0 {
			count++
		}
	}
	return count
}

// countByName counts cards in the zone whose lowercased name contains
// any of the listed substrings.
func (e *Evaluator) countByName(player game.Player, zone game.Zone, names []string) int {
	count := 0
	for _, c := range player.CardsIn(zone) {
		if matchesAny(strings.ToLower(c.Name()), names) {
			count++
		}
	}
	return count
}

func matchesAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// evaluateGraveyardSynergy rewards stocked graveyards for reanimator
// and dredge strategies.
func (e *Evaluator) evaluateGraveyardSynergy(player game.Player) int {
	bonus := 0
	creatureCount := 0
	totalCMC := 0
	grave := player.CardsIn(game.ZoneGraveyard)
	for _, c := range grave {
		if c.IsCreature() {
			creatureCount++
			totalCMC += c.CMC()
		}
	}
	if creatureCount >= 2 && totalCMC >= 10 {
		bonus += e.comboBonus / 4
	}
	if len(grave) >= 10 {
		bonus += e.comboBonus / 8
	}
	if len(grave) >= 15 {
		bonus += e.comboBonus / 8
	}
	return bonus
}

// evaluateSacrificeSynergy detects sacrifice outlets paired with death
// triggers (aristocrats).
func (e *Evaluator) evaluateSacrificeSynergy(player game.Player) int {
	bonus := 0
	outlets := 0
	triggers := 0
	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		name := strings.ToLower(c.Name())
		text := strings.ToLower(c.Text())

		if matchesAny(name, e.combo.SacrificeOutlets) {
			outlets++
		} else if strings.Contains(text, "sacrifice a creature") || strings.Contains(text, "sacrifice another") {
			outlets++
		}

		if matchesAny(name, e.combo.DeathTriggers) {
			triggers += 2
		} else if strings.Contains(text, "when") &&
			(strings.Contains(text, "dies") || strings.Contains(text, "put into a graveyard from the battlefield")) {
			if c.IsCreature() || c.IsEnchantment() {
				triggers++
			}
		}
	}
	if outlets >= 1 && triggers >= 1 {
		bonus += e.comboBonus / 4
	}
	if outlets >= 2 && triggers >= 2 {
		bonus += e.comboBonus / 2
	}
	return bonus
}

func (e *Evaluator) evaluateCounterSynergy(player game.Player) int {
	bonus := 0
	creaturesWithCounters := 0
	synergyCards := 0
	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		if c.IsCreature() && c.Counters(game.CounterP1P1) > 0 {
			creaturesWithCounters++
		}
		if matchesAny(strings.ToLower(c.Name()), e.combo.CounterSynergy) ||
			c.HasKeyword(game.KeywordModular) || c.HasKeyword(game.KeywordEvolve) {
			synergyCards++
		}
	}
	if creaturesWithCounters >= 3 && synergyCards >= 1 {
		bonus += e.comboBonus / 4
	}
	if creaturesWithCounters >= 5 && synergyCards >= 2 {
		bonus += e.comboBonus / 4
	}
	return bonus
}

func (e *Evaluator) evaluateTribalSynergy(player game.Player) int {
	bonus := 0
	typeCounts := make(map[string]int)
	for _, c := range player.CardsIn(game.ZoneBattlefield) {
		if !c.IsCreature() {
			continue
		}
		for _, tribe := range e.combo.Tribes {
			if c.HasCreatureType(tribe) {
				typeCounts[tribe]++
			}
		}
	}
	for _, count := range typeCounts {
		if count >= 4 {
			bonus += e.comboBonus / 8
		}
		if count >= 6 {
			bonus += e.comboBonus / 4
		}
	}
	return bonus
}
