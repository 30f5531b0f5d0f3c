package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
)

// ItemService 程序化装备与宝藏生成
type ItemService struct {
	src dice.Source
}

func NewItemService(src dice.Source) *ItemService {
	return &ItemService{src: src}
}

var weaponPrefixes = []string{"Rusty", "Crude", "Steel", "Sharp", "Gleaming", "Mighty", "Ancient", "Legendary"}
var armorPrefixes = []string{"Tattered", "Worn", "Sturdy", "Reinforced", "Gleaming", "Enchanted", "Ancient", "Legendary"}

var weaponTypes = []string{
	"Dagger", "Short Sword", "Long Sword", "Great Sword", "Axe", "Battle Axe",
	"Mace", "Warhammer", "Spear", "Bow", "Crossbow",
}

var armorTypes = []string{"Leather Armor", "Hide Armor", "Chain Mail", "Scale Mail", "Plate Mail"}
var helmetTypes = []string{"Leather Cap", "Iron Helm", "Steel Helm", "Full Helm"}
var shieldTypes = []string{"Buckler", "Round Shield", "Kite Shield", "Tower Shield"}

var itemSuffixes = []string{
	"of Fire", "of Ice", "of Lightning", "of the Bear", "of the Wolf",
	"of Protection", "of Power", "of Swiftness", "of the Titan", "of the Phoenix",
}

var weaponModifiers = []string{
	"fire_damage", "ice_damage", "lightning_damage", "lifesteal",
	"critical_hit", "armor_pierce", "durability", "luck",
}

var armorModifiers = []string{"durability", "armor_pierce_resist", "luck"}

// weaponDamage 武器基础伤害骰
var weaponDamage = map[string]string{
	"Dagger":      "1d6",
	"Short Sword": "1d6",
	"Long Sword":  "1d8",
	"Great Sword": "2d6",
	"Axe":         "1d6",
	"Battle Axe":  "2d6",
	"Mace":        "1d8",
	"Warhammer":   "2d6",
	"Spear":       "1d8",
	"Bow":         "1d8",
	"Crossbow":    "2d6",
}

var bulkyWeapons = map[string]bool{
	"Great Sword": true, "Warhammer": true, "Battle Axe": true, "Crossbow": true,
}

var rangedWeapons = map[string]bool{"Bow": true, "Crossbow": true}

var bulkyArmor = map[string]bool{
	"Chain Mail": true, "Scale Mail": true, "Plate Mail": true,
}

// damageUpgrades 伤害骰升级链
var damageUpgrades = map[string]string{
	"1d4": "1d6", "1d6": "1d8", "1d8": "1d10",
	"1d10": "1d12", "1d12": "2d6", "2d6": "2d8", "2d8": "2d10",
}

type consumableSpec struct {
	name       string
	effectType string
	heal       int
	duration   int
}

var consumableSpecs = []consumableSpec{
	{"Healing Potion", "heal", 20, 0},
	{"Greater Healing Potion", "heal", 40, 0},
	{"Antidote", "cure_poison", 0, 0},
	{"Strength Potion", "buff_attack", 0, 3},
	{"Defense Potion", "buff_defense", 0, 3},
}

type scrollSpec struct {
	name        string
	effectType  string
	description string
}

var scrollSpecs = []scrollSpec{
	{"Fireball Scroll", "spell_damage", "Hurls a ball of fire dealing 2d6 damage to target"},
	{"Lightning Bolt Scroll", "spell_damage", "Strikes target with lightning for 2d6 damage"},
	{"Ice Shard Scroll", "spell_damage", "Launches ice shards dealing 1d8 damage"},
	{"Healing Light Scroll", "spell_heal", "Restores 2d6 HP to the caster"},
	{"Shield Scroll", "spell_buff", "Grants +2 AC for 3 turns"},
	{"Haste Scroll", "spell_buff", "Grants advantage on next 2 attacks"},
	{"Sleep Scroll", "spell_debuff", "Target must make WIL save or be paralyzed for 2 turns"},
	{"Web Scroll", "spell_debuff", "Target movement reduced, disadvantage on attacks for 2 turns"},
}

// pick 从列表里等概率抽一项
func pick[T any](src dice.Source, list []T) T {
	return list[src.Roll(len(list))-1]
}

// GenerateWeapon 生成武器：类型定基础伤害骰，阶层升级骰子，
// 稀有度定攻击加值与词缀数量。
func (is *ItemService) GenerateWeapon(tier int) models.Item {
	rarity := is.rollRarity(tier)
	weaponType := pick(is.src, weaponTypes)

	damage := weaponDamage[weaponType]
	if tier >= 2 {
		damage = upgradeDamageDie(damage)
	}
	if tier >= 4 {
		damage = upgradeDamageDie(damage)
	}

	bonus := is.bonusByRarity(rarity)

	var modifiers []string
	if rarity >= models.RarityRare {
		modifiers = append(modifiers, pick(is.src, weaponModifiers))
	}
	if rarity >= models.RarityLegendary {
		modifiers = append(modifiers, pick(is.src, weaponModifiers))
	}
	if rangedWeapons[weaponType] {
		modifiers = append(modifiers, "ranged")
	}

	return models.Item{
		Name:        is.buildName(weaponType, weaponPrefixes, rarity, bonus, modifiers),
		Type:        models.ItemWeapon,
		Slot:        models.SlotWeapon,
		Rarity:      rarity,
		Value:       (10 + tier*5) * (int(rarity) + 1),
		DamageDie:   damage,
		AttackBonus: bonus,
		Modifiers:   modifiers,
		Bulky:       bulkyWeapons[weaponType],
		Description: fmt.Sprintf("A %s weapon. Damage: %s+%d", rarity, damage, bonus),
	}
}

// GenerateArmor 生成护甲/头盔/盾牌
func (is *ItemService) GenerateArmor(tier int, slot models.Slot) models.Item {
	rarity := is.rollRarity(tier)

	var armorType string
	var itemType models.ItemType
	baseAC := 1
	switch slot {
	case models.SlotHelmet:
		armorType = pick(is.src, helmetTypes)
		itemType = models.ItemHelmet
	case models.SlotShield:
		armorType = pick(is.src, shieldTypes)
		itemType = models.ItemShield
	default:
		slot = models.SlotArmor
		armorType = pick(is.src, armorTypes)
		itemType = models.ItemArmor
		baseAC = 2
	}

	acBonus := baseAC + (tier - 1) + is.bonusByRarity(rarity)

	var modifiers []string
	if rarity >= models.RarityRare {
		modifiers = append(modifiers, pick(is.src, armorModifiers))
	}

	return models.Item{
		Name:        is.buildName(armorType, armorPrefixes, rarity, acBonus, modifiers),
		Type:        itemType,
		Slot:        slot,
		Rarity:      rarity,
		Value:       (8 + tier*4) * (int(rarity) + 1),
		ACBonus:     acBonus,
		Modifiers:   modifiers,
		Bulky:       bulkyArmor[armorType],
		Description: fmt.Sprintf("A %s piece of protective gear. AC +%d", rarity, acBonus),
	}
}

// GenerateConsumable 生成消耗品，治疗量随阶层提升
func (is *ItemService) GenerateConsumable(tier int) models.Item {
	spec := pick(is.src, consumableSpecs)
	heal := spec.heal
	if heal > 0 {
		heal += (tier - 1) * 10
	}
	return models.Item{
		Name:           spec.name,
		Type:           models.ItemConsumable,
		Rarity:         models.RarityCommon,
		Value:          10 + tier*5,
		HealAmount:     heal,
		EffectType:     spec.effectType,
		EffectDuration: spec.duration,
	}
}

// GenerateScroll 生成法术卷轴。谁都能试着施放，
// 检定规则见角色服务的 CastScroll。
func (is *ItemService) GenerateScroll(tier int) models.Item {
	spec := pick(is.src, scrollSpecs)
	rarity := models.RarityUncommon
	if tier > 2 {
		rarity = models.RarityRare
	}
	return models.Item{
		Name:        spec.name,
		Type:        models.ItemScroll,
		Rarity:      rarity,
		Value:       15 + tier*10,
		EffectType:  spec.effectType,
		Description: spec.description,
	}
}

// GenerateLoot 按阶层生成随机战利品：
// 35% 武器，25% 护甲，20% 消耗品，20% 卷轴。
func (is *ItemService) GenerateLoot(tier int) models.Item {
	roll := dice.D100(is.src)
	switch {
	case roll <= 35:
		return is.GenerateWeapon(tier)
	case roll <= 60:
		slot := pick(is.src, []models.Slot{models.SlotArmor, models.SlotHelmet, models.SlotShield})
		return is.GenerateArmor(tier, slot)
	case roll <= 80:
		return is.GenerateConsumable(tier)
	default:
		return is.GenerateScroll(tier)
	}
}

// rollRarity 按阶层投稀有度，高阶地城更容易出好货
func (is *ItemService) rollRarity(tier int) models.Rarity {
	roll := dice.D100(is.src)
	switch {
	case tier <= 1:
		switch {
		case roll <= 60:
			return models.RarityCommon
		case roll <= 90:
			return models.RarityUncommon
		default:
			return models.RarityRare
		}
	case tier == 2:
		switch {
		case roll <= 30:
			return models.RarityCommon
		case roll <= 60:
			return models.RarityUncommon
		case roll <= 90:
			return models.RarityRare
		default:
			return models.RarityEpic
		}
	case tier == 3:
		switch {
		case roll <= 20:
			return models.RarityUncommon
		case roll <= 50:
			return models.RarityRare
		case roll <= 90:
			return models.RarityEpic
		default:
			return models.RarityLegendary
		}
	default:
		switch {
		case roll <= 30:
			return models.RarityRare
		case roll <= 60:
			return models.RarityEpic
		default:
			return models.RarityLegendary
		}
	}
}

// bonusByRarity 稀有度对应的加值区间
func (is *ItemService) bonusByRarity(r models.Rarity) int {
	rollBetween := func(lo, hi int) int {
		return lo + is.src.Roll(hi-lo+1) - 1
	}
	switch r {
	case models.RarityCommon:
		return rollBetween(0, 1)
	case models.RarityUncommon:
		return rollBetween(1, 2)
	case models.RarityRare:
		return rollBetween(2, 4)
	case models.RarityEpic:
		return rollBetween(4, 6)
	default:
		return rollBetween(6, 10)
	}
}

// buildName 拼装道具名：稀有度够高加前缀，带词缀的再加后缀
func (is *ItemService) buildName(base string, prefixes []string, rarity models.Rarity, bonus int, modifiers []string) string {
	parts := []string{}
	if rarity >= models.RarityUncommon {
		parts = append(parts, pick(is.src, prefixes))
	}
	parts = append(parts, base)
	if bonus > 0 {
		parts = append(parts, fmt.Sprintf("+%d", bonus))
	}
	hasRealModifier := false
	for _, m := range modifiers {
		if m != "ranged" {
			hasRealModifier = true
			break
		}
	}
	if rarity >= models.RarityRare && hasRealModifier {
		parts = append(parts, pick(is.src, itemSuffixes))
	}
	return strings.Join(parts, " ")
}

// upgradeDamageDie 伤害骰升一级，已到顶则不变
func upgradeDamageDie(damage string) string {
	if next, ok := damageUpgrades[damage]; ok {
		return next
	}
	return damage
}

// TreasureResult 宝藏表条目解析结果
type TreasureResult struct {
	Items  []models.Item `json:"items"`
	Silver int           `json:"silver"`
	Gold   int           `json:"gold"`
}

var treasureDicePattern = regexp.MustCompile(`(\d*)d(\d+)(?:x(\d+))?`)

// ResolveTreasure 把宝藏表原文变成实际战利品。
// 条目可能是钱（"3d6 Gold"、"d100 Silver"、"3d6x100 Gold"）、
// 数量骰的宝石（"d6 Gems"），或具名物品类别。
func (is *ItemService) ResolveTreasure(text string, tier int) TreasureResult {
	var result TreasureResult
	lower := strings.ToLower(text)

	rollAmount := func() int {
		m := treasureDicePattern.FindStringSubmatch(lower)
		if m == nil {
			return 1
		}
		count := 1
		if m[1] != "" {
			count = atoiOr(m[1], 1)
		}
		amount := dice.Sum(is.src, count, atoiOr(m[2], 6))
		if m[3] != "" {
			amount *= atoiOr(m[3], 1)
		}
		return amount
	}

	switch {
	case strings.Contains(lower, "gold"):
		result.Gold = rollAmount()
	case strings.Contains(lower, "silver"):
		result.Silver = rollAmount()
	case strings.Contains(lower, "gems"):
		count := rollAmount()
		for i := 0; i < count; i++ {
			result.Items = append(result.Items, models.Item{
				Name: "Gem", Type: models.ItemMisc, Value: 10,
			})
		}
	case strings.Contains(lower, "weapon"):
		result.Items = append(result.Items, is.GenerateWeapon(tier))
	case strings.Contains(lower, "potion"):
		result.Items = append(result.Items, is.GenerateConsumable(tier))
	case strings.Contains(lower, "scroll"):
		result.Items = append(result.Items, is.GenerateScroll(tier))
	case strings.Contains(lower, "artifact"):
		// 神器：至少稀有级的随机战利品
		item := is.GenerateLoot(tier + 2)
		result.Items = append(result.Items, item)
	case strings.Contains(lower, "ring"):
		result.Items = append(result.Items, models.Item{
			Name: "Ring", Type: models.ItemMisc, Rarity: models.RarityUncommon, Value: 25,
		})
	default:
		result.Items = append(result.Items, models.Item{
			Name: text, Type: models.ItemMisc, Value: 1,
		})
	}
	return result
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return fallback
	}
	return n
}
