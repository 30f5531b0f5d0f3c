package models

import (
	"fmt"
	"time"
)

// Equipment 装备槽：盾与头盔可牺牲以抵消一次攻击
type Equipment struct {
	Weapon *Item `json:"weapon,omitempty"`
	Armor  *Item `json:"armor,omitempty"`
	Shield *Item `json:"shield,omitempty"`
	Helmet *Item `json:"helmet,omitempty"`
}

// XPPerLevel 升级所需经验：level * 20
const XPPerLevel = 20

// DefaultInventorySlots 背包上限
const DefaultInventorySlots = 10

// Character 队伍成员
type Character struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`

	// 四项属性，范围 [3,18]
	Strength  int `json:"strength"`
	Dexterity int `json:"dexterity"`
	Willpower int `json:"willpower"`
	Toughness int `json:"toughness"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	HPMax     int    `json:"hp_max"`
	HPCurrent int    `json:"hp_current"`
	DamageDie string `json:"damage_die"` // 无武器时的基础伤害

	Inventory []Item    `json:"inventory"`
	MaxSlots  int       `json:"max_slots"`
	Equipment Equipment `json:"equipment"`

	Silver int `json:"silver"`
	Gold   int `json:"gold"`

	Fatigued   bool `json:"fatigued"`    // 施法后疲劳，所有检定劣势
	Dying      bool `json:"dying"`       // 死亡豁免失败
	DeathTimer int  `json:"death_timer"` // 剩余大地图回合数，倒数到 0 死亡
	Dead       bool `json:"dead"`

	SpecialSkill    string         `json:"special_skill,omitempty"`
	Traits          []string       `json:"traits,omitempty"`
	FinancialStatus string         `json:"financial_status,omitempty"`
	StatusEffects   []StatusEffect `json:"status_effects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttrValue 按标识取属性值
func (c *Character) AttrValue(a Attr) int {
	switch a {
	case AttrStrength:
		return c.Strength
	case AttrDexterity:
		return c.Dexterity
	case AttrWillpower:
		return c.Willpower
	case AttrToughness:
		return c.Toughness
	}
	return 10
}

// MeleeAttackBonus 近战加值来自 STR 阈值
func (c *Character) MeleeAttackBonus() int { return StepBonus(c.Strength) }

// RangedAttackBonus 远程加值来自 DEX 阈值
func (c *Character) RangedAttackBonus() int { return StepBonus(c.Dexterity) }

// HPBonus WIL 阈值给 +1 最大 HP
func (c *Character) HPBonus() int { return StepBonus(c.Willpower) }

// AC 护甲等级 = 10 + TOU 加值 + 护甲/盾/头盔加成
func (c *Character) AC() int {
	ac := 10 + StepBonus(c.Toughness)
	for _, it := range []*Item{c.Equipment.Armor, c.Equipment.Shield, c.Equipment.Helmet} {
		if it != nil {
			ac += it.ACBonus
		}
	}
	return ac
}

// AttackBonus 总攻击加值：按武器类型选 STR/DEX 阈值加值，再加武器加成
func (c *Character) AttackBonus() int {
	bonus := c.MeleeAttackBonus()
	if w := c.Equipment.Weapon; w != nil {
		if w.IsRanged() {
			bonus = c.RangedAttackBonus()
		}
		bonus += w.AttackBonus
	}
	return bonus
}

// DamageNotation 伤害骰：装备武器优先，否则用基础伤害骰
func (c *Character) DamageNotation() string {
	if w := c.Equipment.Weapon; w != nil && w.DamageDie != "" {
		return w.DamageDie
	}
	if c.DamageDie != "" {
		return c.DamageDie
	}
	return "1d6"
}

// CanAct 能否行动：活着、未濒死、未麻痹
func (c *Character) CanAct() bool {
	return !c.Dead && !c.Dying && c.HPCurrent > 0 && !c.HasStatusEffect(EffectParalyzed)
}

// TakeDamage 扣减 HP，下限 0。返回实际伤害与是否归零。
// 归零时不直接判死，由战斗引擎触发死亡豁免。
func (c *Character) TakeDamage(amount int) (int, bool) {
	if amount < 0 {
		amount = 0
	}
	c.HPCurrent -= amount
	if c.HPCurrent < 0 {
		c.HPCurrent = 0
	}
	c.touch()
	return amount, c.HPCurrent == 0
}

// Heal 恢复 HP，上限为最大值。返回实际恢复量。
func (c *Character) Heal(amount int) int {
	old := c.HPCurrent
	c.HPCurrent += amount
	if c.HPCurrent > c.HPMax {
		c.HPCurrent = c.HPMax
	}
	c.touch()
	return c.HPCurrent - old
}

// SlotsUsed 当前占用格数
func (c *Character) SlotsUsed() int {
	used := 0
	for _, it := range c.Inventory {
		used += it.SlotSize()
	}
	return used
}

// AvailableSlots 剩余格数
func (c *Character) AvailableSlots() int {
	max := c.MaxSlots
	if max <= 0 {
		max = DefaultInventorySlots
	}
	return max - c.SlotsUsed()
}

// CanAddToInventory 检查背包是否放得下
func (c *Character) CanAddToInventory(item Item) bool {
	return item.SlotSize() <= c.AvailableSlots()
}

// AddToInventory 放入背包，超出容量时拒绝而非截断
func (c *Character) AddToInventory(item Item) error {
	if !c.CanAddToInventory(item) {
		return fmt.Errorf("背包空间不足: 需要 %d 格，剩余 %d 格", item.SlotSize(), c.AvailableSlots())
	}
	c.Inventory = append(c.Inventory, item)
	c.touch()
	return nil
}

// RemoveFromInventory 按名称移除第一个匹配的道具
func (c *Character) RemoveFromInventory(name string) bool {
	for i, it := range c.Inventory {
		if it.Name == name {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// FindItem 按名称查找背包道具
func (c *Character) FindItem(name string) *Item {
	for i := range c.Inventory {
		if c.Inventory[i].Name == name {
			return &c.Inventory[i]
		}
	}
	return nil
}

// Equip 装备道具：换下的旧装备回背包，新装备从背包移除
func (c *Character) Equip(item Item) error {
	var target **Item
	switch item.Slot {
	case SlotWeapon:
		target = &c.Equipment.Weapon
	case SlotArmor:
		target = &c.Equipment.Armor
	case SlotHelmet:
		target = &c.Equipment.Helmet
	case SlotShield:
		target = &c.Equipment.Shield
	default:
		return fmt.Errorf("道具 %s 不可装备", item.Name)
	}

	if *target != nil {
		old := **target
		c.Inventory = append(c.Inventory, old)
	}
	c.RemoveFromInventory(item.Name)
	equipped := item
	*target = &equipped
	c.touch()
	return nil
}

// SacrificeEquipment 牺牲盾或头盔抵消一次攻击。
// 槽位为空或不可牺牲时返回 false。
func (c *Character) SacrificeEquipment(slot Slot) (string, bool) {
	var target **Item
	switch slot {
	case SlotShield:
		target = &c.Equipment.Shield
	case SlotHelmet:
		target = &c.Equipment.Helmet
	default:
		return "", false
	}
	if *target == nil {
		return "", false
	}
	name := (*target).Name
	*target = nil
	c.touch()
	return name, true
}

// AddCurrency 加钱并自动换算：10 银 = 1 金
func (c *Character) AddCurrency(silver, gold int) {
	c.Silver += silver
	c.Gold += gold
	if c.Silver >= 10 {
		c.Gold += c.Silver / 10
		c.Silver = c.Silver % 10
	}
	c.touch()
}

// SpendCurrency 扣钱，余额不足返回 false 且不变动
func (c *Character) SpendCurrency(silver, gold int) bool {
	need := silver + gold*10
	have := c.TotalSilver()
	if have < need {
		return false
	}
	remaining := have - need
	c.Gold = remaining / 10
	c.Silver = remaining % 10
	c.touch()
	return true
}

// TotalSilver 总财产折算为银币
func (c *Character) TotalSilver() int {
	return c.Silver + c.Gold*10
}

// AddStatusEffect 添加状态效果。同名效果重置持续时间而非叠加。
func (c *Character) AddStatusEffect(effect StatusEffect) {
	for i := range c.StatusEffects {
		if c.StatusEffects[i].Name == effect.Name {
			c.StatusEffects[i] = effect
			c.touch()
			return
		}
	}
	c.StatusEffects = append(c.StatusEffects, effect)
	c.touch()
}

// RemoveStatusEffect 按名称移除状态效果
func (c *Character) RemoveStatusEffect(name string) bool {
	for i := range c.StatusEffects {
		if c.StatusEffects[i].Name == name {
			c.StatusEffects = append(c.StatusEffects[:i], c.StatusEffects[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// HasStatusEffect 检查是否带指定状态
func (c *Character) HasStatusEffect(name string) bool {
	for _, e := range c.StatusEffects {
		if e.Name == name {
			return true
		}
	}
	return false
}

// TickStatusEffects 回合结束递减持续时间，返回到期移除的效果。
// Duration 为 -1 的永久效果不递减。
func (c *Character) TickStatusEffects() []StatusEffect {
	var expired []StatusEffect
	kept := c.StatusEffects[:0]
	for _, e := range c.StatusEffects {
		if e.Duration > 0 {
			e.Duration--
			if e.Duration == 0 {
				expired = append(expired, e)
				continue
			}
		}
		kept = append(kept, e)
	}
	c.StatusEffects = kept
	if len(expired) > 0 {
		c.touch()
	}
	return expired
}

func (c *Character) touch() {
	c.UpdatedAt = time.Now()
}
