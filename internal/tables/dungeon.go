// Package tables 收录所有随机生成查询表。
// 表内容照搬规则书原文，键是投掷结果。
package tables

import "github.com/aiwuxian/project-delve/internal/dice"

// Theme 地城主题（d6）
var Theme = map[int]string{
	1: "Criminal", 2: "Haunted", 3: "Infested",
	4: "Unnatural", 5: "Occult", 6: "Monster",
}

// DungeonType 地城类型（d6）
var DungeonType = map[int]string{
	1: "Cave", 2: "Crypt", 3: "Temple",
	4: "Ruin", 5: "Lair", 6: "Hideout",
}

// Adjective1 / Adjective2 地城名形容词，d6 结果 1-3 查表一，4-6 查表二
var Adjective1 = map[int]string{
	1: "Forgotten", 2: "Hidden", 3: "Haunted",
	4: "Shattered", 5: "Dark", 6: "Cursed",
}

var Adjective2 = map[int]string{
	1: "Many", 2: "Desperate", 3: "Shallow",
	4: "Frozen", 5: "Infested", 6: "Dying",
}

// Noun1 / Noun2 地城名名词，选表规则同形容词
var Noun1 = map[int]string{
	1: "Gods", 2: "Veils", 3: "Ravens",
	4: "Omens", 5: "Portals", 6: "Shadows",
}

var Noun2 = map[int]string{
	1: "Stars", 2: "Truths", 3: "Deaths",
	4: "Depths", 5: "Spirits", 6: "Doom",
}

// Size 地城规模（d6），值是房间数的骰子表达式
var Size = map[int]string{
	1: "1d6+1", 2: "1d6+1",
	3: "2d6+2", 4: "2d6+2",
	5: "3d6+3", 6: "3d6+3",
}

// SpecialRoomsCount 特殊房间数量（d6）
var SpecialRoomsCount = map[int]int{
	1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3,
}

// Room 房间内容（d6）
var Room = map[int]string{
	1: "Empty", 2: "Spoor", 3: "Discovery",
	4: "Discovery", 5: "Danger", 6: "Danger",
}

// Corridor 走廊内容（d6），比房间更常为空
var Corridor = map[int]string{
	1: "Empty", 2: "Empty", 3: "Empty",
	4: "Spoor", 5: "Danger", 6: "Danger",
}

// Spoor 踪迹（d6）
var Spoor = map[int]string{
	1: "Blood", 2: "Tracks", 3: "Voices",
	4: "Odor", 5: "Corpse", 6: "Knocking",
}

// Door 门的状态（d6）
var Door = map[int]string{
	1: "Unlocked", 2: "Stuck", 3: "Stuck",
	4: "Locked", 5: "Locked", 6: "Trapped",
}

// Discovery 发现类别（d6）
var Discovery = map[int]string{
	1: "Special Room", 2: "Special Room", 3: "Feature",
	4: "Item", 5: "Treasure A", 6: "Treasure B",
}

var SpecialRoom1 = map[int]string{
	1: "Shrine", 2: "Library", 3: "Crypt",
	4: "Trophy", 5: "Workshop", 6: "Laboratory",
}

var SpecialRoom2 = map[int]string{
	1: "Archive", 2: "Weapon", 3: "Ritual",
	4: "Torture", 5: "Kitchen", 6: "Throne",
}

var Feature = map[int]string{
	1: "Pool", 2: "Garden", 3: "River",
	4: "Obelisk", 5: "Lever", 6: "Mist",
}

var FoundItem = map[int]string{
	1: "Key", 2: "Torch", 3: "Junk",
	4: "Tools", 5: "Weapon", 6: "Food",
}

// TreasureA / TreasureB 宝藏表（d6），值可能含骰子表达式如 "3d6 Gold"
var TreasureA = map[int]string{
	1: "Weapon", 2: "3d6 Gold", 3: "d6 Gems",
	4: "Potion", 5: "Artifact", 6: "Scroll",
}

var TreasureB = map[int]string{
	1: "Artifact", 2: "d100 Silver", 3: "3d6x100 Gold",
	4: "d20 Gems", 5: "Ring", 6: "Potion",
}

// Danger 危险类别（d6）
var Danger = map[int]string{
	1: "Hazard", 2: "Trap", 3: "Encounter",
	4: "Monster (T1)", 5: "Monster (T1)", 6: "Monster (T2)",
}

var Hazard = map[int]string{
	1: "Debris", 2: "Collapse", 3: "Vapor",
	4: "Resources", 5: "Toxin", 6: "Darkness",
}

var Trap = map[int]string{
	1: "Pit", 2: "Dart", 3: "Spike",
	4: "Pendulum", 5: "Boulder", 6: "Acid",
}

// DressingNatural / DressingManMade 房间陈设（d6）
var DressingNatural = map[int]string{
	1: "Dung", 2: "Moss", 3: "Dust",
	4: "Crystal", 5: "Oil", 6: "Mold",
}

var DressingManMade = map[int]string{
	1: "Tapestry", 2: "Graffiti", 3: "Furniture",
	4: "Mirror", 5: "Statue", 6: "Fireplace",
}

// Builder / Purpose / Destruction 地城来历（d6）
var Builder = map[int]string{
	1: "Wizard", 2: "Cult", 3: "Man",
	4: "Humanoid", 5: "Monster", 6: "God",
}

var Purpose = map[int]string{
	1: "Mine", 2: "Portal", 3: "Crypt",
	4: "Hideout", 5: "Prison", 6: "Temple",
}

var Destruction = map[int]string{
	1: "Curse", 2: "Invasion", 3: "Lich",
	4: "Environment", 5: "Infestation", 6: "Plague",
}

// MonsterEntry 怪物表条目。HD 保留原文，由 monster 服务解析投 HP。
type MonsterEntry struct {
	Name    string
	HD      string
	AC      int
	Attack  string
	Special string
}

// DenizenTier1Range12 一阶怪物，地城前段（2d6）
var DenizenTier1Range12 = map[int]MonsterEntry{
	2:  {Name: "Acolyte", HD: "1", AC: 16, Attack: "Wpn"},
	3:  {Name: "Centipede", HD: "1d2HP", AC: 10, Attack: "Bite, Poison"},
	4:  {Name: "Giant Rat", HD: "1-1", AC: 12, Attack: "Bite, Disease"},
	5:  {Name: "Giant Rat", HD: "1-1", AC: 12, Attack: "Bite, Disease"},
	6:  {Name: "Spider", HD: "2+2", AC: 13, Attack: "Bite, Poison, Web"},
	7:  {Name: "Kobold", HD: "1/2", AC: 13, Attack: "Weapon"},
	8:  {Name: "Skeleton", HD: "1/2", AC: 11, Attack: "Wpn"},
	9:  {Name: "Skeleton", HD: "1/2", AC: 11, Attack: "Wpn"},
	10: {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
	11: {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
	12: {Name: "Giant Rat", HD: "1-1", AC: 12, Attack: "Bite, Disease"},
}

// DenizenTier1Range34 一阶怪物，地城中段（2d6）
var DenizenTier1Range34 = map[int]MonsterEntry{
	2:  {Name: "Giant Bat", HD: "4", AC: 12, Attack: "Bite, Disease(50%)"},
	3:  {Name: "Ghoul", HD: "2", AC: 13, Attack: "Claw, Paralyze"},
	4:  {Name: "Carrion Creeper", HD: "3", AC: 14, Attack: "Bite(1), Paralyze"},
	5:  {Name: "Spider", HD: "2+2", AC: 13, Attack: "Bite, Poison, Web"},
	6:  {Name: "Spider", HD: "2+2", AC: 13, Attack: "Bite, Poison, Web"},
	7:  {Name: "Zombie", HD: "1", AC: 12, Attack: "Wpn & Shield"},
	8:  {Name: "Giant Bat", HD: "4", AC: 12, Attack: "Bite, Disease(50%)"},
	9:  {Name: "Lizardman", HD: "2+1", AC: 14, Attack: "Sword"},
	10: {Name: "Lizardman", HD: "2+1", AC: 14, Attack: "Sword"},
	11: {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
	12: {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
}

// DenizenTier1Range56 一阶怪物，地城深处（2d6）
var DenizenTier1Range56 = map[int]MonsterEntry{
	2:  {Name: "Ghoul", HD: "2", AC: 13, Attack: "Claw, Paralyze"},
	3:  {Name: "Demon", HD: "3", AC: 16, Attack: "Tail Sting, Immune Wpn"},
	4:  {Name: "Bugbear", HD: "3+1", AC: 14, Attack: "Wpn or Bite"},
	5:  {Name: "Grey Ooze", HD: "3", AC: 11, Attack: "Strike, Imn. Magic/Steel"},
	6:  {Name: "Demon", HD: "3", AC: 16, Attack: "Tail Sting, Imn. Wpn"},
	7:  {Name: "Giant Centipede", HD: "4", AC: 19, Attack: "Bite, Poison"},
	8:  {Name: "Gargoyle", HD: "4", AC: 14, Attack: "Claw, Fly"},
	9:  {Name: "Giant Skeleton", HD: "2", AC: 12, Attack: "Wpn"},
	10: {Name: "Minotaur", HD: "6+4", AC: 13, Attack: "Wpn(+1)"},
	11: {Name: "Troll", HD: "6+3", AC: 15, Attack: "Claw(+2), Regeneration"},
	12: {Name: "Hell Hound", HD: "5", AC: 15, Attack: "Bite, Fire(2HP/Rnd.)"},
}

// DenizenTier2Range12 二阶怪物，前段（2d6）
var DenizenTier2Range12 = map[int]MonsterEntry{
	2:  {Name: "Lizardman", HD: "2+1", AC: 14, Attack: "Sword"},
	3:  {Name: "Lizardman", HD: "2+1", AC: 14, Attack: "Sword"},
	4:  {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
	5:  {Name: "Bandit", HD: "1", AC: 12, Attack: "Wpn"},
	6:  {Name: "Ghoul", HD: "2", AC: 13, Attack: "Claw, Paralyze"},
	7:  {Name: "Demon", HD: "3", AC: 16, Attack: "Tail Sting, Immune Wpn"},
	8:  {Name: "Bugbear", HD: "3+1", AC: 14, Attack: "Wpn or Bite"},
	9:  {Name: "Grey Ooze", HD: "3", AC: 11, Attack: "Strike, Imn. Magic/Steel"},
	10: {Name: "Demon", HD: "3", AC: 16, Attack: "Tail Sting, Imn. Wpn"},
	11: {Name: "Giant Centipede", HD: "4", AC: 19, Attack: "Bite, Poison"},
	12: {Name: "Gargoyle", HD: "4", AC: 14, Attack: "Claw, Fly"},
}

// DenizenTier2Range35 二阶怪物，深处（2d6）
var DenizenTier2Range35 = map[int]MonsterEntry{
	2:  {Name: "Giant Skeleton", HD: "2", AC: 12, Attack: "Wpn"},
	3:  {Name: "Minotaur", HD: "6+4", AC: 13, Attack: "Wpn(+1)"},
	4:  {Name: "Troll", HD: "6+3", AC: 15, Attack: "Claw(+2), Regeneration"},
	5:  {Name: "Hell Hound", HD: "5", AC: 15, Attack: "Bite, Fire(2HP/Rnd.)"},
	6:  {Name: "Vampire", HD: "7-9", AC: 17, Attack: "Bite, Imn. Wpn, Regen."},
	7:  {Name: "Vampire", HD: "7-9", AC: 17, Attack: "Bite, Imn. Wpn, Regen."},
	8:  {Name: "Death Knight", HD: "10", AC: 20, Attack: "Sword(+3), Imn. Wpn"},
	9:  {Name: "Minotaur", HD: "6+4", AC: 13, Attack: "Wpn(+1)"},
	10: {Name: "Troll", HD: "6+3", AC: 15, Attack: "Claw(+2), Regeneration"},
	11: {Name: "Hell Hound", HD: "5", AC: 15, Attack: "Bite, Fire(2HP/Rnd.)"},
	12: {Name: "Vampire", HD: "7-9", AC: 17, Attack: "Bite, Imn. Wpn, Regen."},
}

// RollDenizen 按阶层抽一个怪物条目：先 d6 选深度段，再 2d6 查表
func RollDenizen(src dice.Source, tier int) MonsterEntry {
	depth := dice.D6(src)
	roll := dice.Sum2D6(src)
	if tier >= 2 {
		if depth <= 2 {
			return dice.Lookup("denizen_t2_12", DenizenTier2Range12, roll)
		}
		return dice.Lookup("denizen_t2_35", DenizenTier2Range35, roll)
	}
	switch {
	case depth <= 2:
		return dice.Lookup("denizen_t1_12", DenizenTier1Range12, roll)
	case depth <= 4:
		return dice.Lookup("denizen_t1_34", DenizenTier1Range34, roll)
	default:
		return dice.Lookup("denizen_t1_56", DenizenTier1Range56, roll)
	}
}

// CorpseLoot 搜刮尸体：六张 d6 表，先 d6 选表再 d6 选条目
var CorpseLoot = [6]map[int]string{
	{1: "Bone dice", 2: "Gold piece", 3: "Lint", 4: "Twine", 5: "Key", 6: "Cloak"},
	{1: "Matches", 2: "Bandanna", 3: "Kite", 4: "Potion", 5: "Soft pillow", 6: "Oil portrait"},
	{1: "Lute", 2: "d6 Silver", 3: "Belt buckle", 4: "Worn shield", 5: "Wrench", 6: "Scroll"},
	{1: "Wand", 2: "Trowel", 3: "Shovel", 4: "Hammer", 5: "Pot of soup", 6: "Ring"},
	{1: "Mug", 2: "Nail hook", 3: "Rubber ball", 4: "Banner", 5: "Awl", 6: "Gem"},
	{1: "Paring knife", 2: "Scrimshaw", 3: "Hat", 4: "Egg", 5: "Empty wallet", 6: "Manacles"},
}

// RollCorpseLoot 投两次 d6 得到一件尸体战利品原文
func RollCorpseLoot(src dice.Source) string {
	table := CorpseLoot[dice.D6(src)-1]
	return dice.Lookup("corpse_loot", table, dice.D6(src))
}
