package tables

import "github.com/aiwuxian/project-delve/internal/dice"

// Race 种族（d6），人类占三格
var Race = map[int]string{
	1: "Human", 2: "Human", 3: "Human",
	4: "Halfling", 5: "Elf", 6: "Dwarf",
}

// CharacterType 出身（d6）
var CharacterType = map[int]string{
	1: "Magic User", 2: "Adventurer", 3: "Merchant",
	4: "Soldier", 5: "Noble", 6: "Commoner",
}

// Financial 财务状况（d6）
var Financial = map[int]string{
	1: "Very poor", 2: "Poor", 3: "Modest",
	4: "Modest", 5: "Rich", 6: "Very rich",
}

// Traits1 / Traits2 角色特征，各投一次 d6
var Traits1 = map[int]string{
	1: "Scarred", 2: "Stutters", 3: "Tattooed",
	4: "Dirty", 5: "Florid", 6: "Haughty",
}

var Traits2 = map[int]string{
	1: "Cruel", 2: "Humble", 3: "Heroic",
	4: "Daring", 5: "Friendly", 6: "Greedy",
}

// SpecialSkills 创建时六选一的专长
var SpecialSkills = []string{
	"Forestry", "Thieving", "Brutalism",
	"Alchemy", "Arcanism", "Mentalism",
}

// RollSpecialSkill 随机抽一个专长
func RollSpecialSkill(src dice.Source) string {
	return SpecialSkills[dice.D6(src)-1]
}
