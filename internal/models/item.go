package models

// ItemType 道具类型
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemHelmet     ItemType = "helmet"
	ItemShield     ItemType = "shield"
	ItemConsumable ItemType = "consumable"
	ItemScroll     ItemType = "scroll"
	ItemMisc       ItemType = "misc"
)

// Slot 装备槽位
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotHelmet Slot = "helmet"
	SlotShield Slot = "shield"
	SlotNone   Slot = ""
)

// Rarity 稀有度
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}

// Item 道具
type Item struct {
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Slot        Slot     `json:"slot,omitempty"`
	Rarity      Rarity   `json:"rarity"`
	Value       int      `json:"value"` // 金币价值

	DamageDie   string   `json:"damage_die,omitempty"`
	AttackBonus int      `json:"attack_bonus,omitempty"`
	ACBonus     int      `json:"ac_bonus,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"` // ranged、finesse、fire_damage 等

	Bulky bool `json:"bulky,omitempty"` // 笨重道具占 2 格

	// 消耗品属性
	HealAmount     int    `json:"heal_amount,omitempty"`
	EffectType     string `json:"effect_type,omitempty"` // heal、cure_poison、buff_attack 等
	EffectDuration int    `json:"effect_duration,omitempty"`

	Description string `json:"description,omitempty"`
}

// SlotSize 占用背包格数：笨重 2 格，其余 1 格
func (i Item) SlotSize() int {
	if i.Bulky {
		return 2
	}
	return 1
}

// HasModifier 检查道具是否带指定修饰
func (i Item) HasModifier(mod string) bool {
	for _, m := range i.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// IsRanged 远程武器用 DEX 加值而非 STR
func (i Item) IsRanged() bool {
	return i.HasModifier("ranged") || i.HasModifier("finesse")
}
