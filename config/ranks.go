package config

// Actor kinds known to the rank table.
const (
	KindPlayer        = "Player"
	KindMonster       = "Monster"
	KindSeniorMonster = "SeniorMonster"
	KindBoss          = "Boss"
)

// RankUnknown is reported for kinds that are not combatants.
const RankUnknown = -1

var ranks = map[string]int{
	KindPlayer:        0,
	KindMonster:       1,
	KindSeniorMonster: 2,
	KindBoss:          3,
}

// RankOf returns the rank of kind, or RankUnknown.
func RankOf(kind string) int {
	if r, ok := ranks[kind]; ok {
		return r
	}
	return RankUnknown
}

// IsCombatant reports whether kind appears in the rank table.
func IsCombatant(kind string) bool {
	_, ok := ranks[kind]
	return ok
}

// Outranks reports whether a hunter of rank hunter may prey on rank target.
// Lower ranks are weaker; equal ranks never prey on each other.
func Outranks(hunter, target int) bool {
	if hunter == RankUnknown || target == RankUnknown {
		return false
	}
	return target < hunter
}
