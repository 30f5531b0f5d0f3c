package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/tables"
)

const (
	attrMin = 3
	attrMax = 18
)

// CharacterService 角色创建与成长
type CharacterService struct {
	src    dice.Source
	engine *RuleEngine
	cfg    models.GameConfig
}

func NewCharacterService(src dice.Source, cfg models.GameConfig) *CharacterService {
	return &CharacterService{
		src:    src,
		engine: NewRuleEngine(src),
		cfg:    cfg,
	}
}

// CreateRandom 随机生成角色：属性 4d6 去最低，
// 种族、出身、特征、专长逐项查表。
func (cs *CharacterService) CreateRandom(name string) *models.Character {
	c := cs.newCharacter(name,
		dice.AbilityScore(cs.src),
		dice.AbilityScore(cs.src),
		dice.AbilityScore(cs.src),
		dice.AbilityScore(cs.src),
	)
	c.Race = dice.Lookup("race", tables.Race, dice.D6(cs.src))
	c.Class = dice.Lookup("character_type", tables.CharacterType, dice.D6(cs.src))
	c.FinancialStatus = dice.Lookup("financial", tables.Financial, dice.D6(cs.src))
	c.Traits = []string{
		dice.Lookup("traits1", tables.Traits1, dice.D6(cs.src)),
		dice.Lookup("traits2", tables.Traits2, dice.D6(cs.src)),
	}
	c.SpecialSkill = tables.RollSpecialSkill(cs.src)
	return c
}

// CreateCustom 用玩家指定的属性创建角色，越界时返回错误
func (cs *CharacterService) CreateCustom(name string, str, dex, wil, tou int) (*models.Character, error) {
	for _, v := range []int{str, dex, wil, tou} {
		if v < attrMin || v > attrMax {
			return nil, fmt.Errorf("属性值 %d 超出范围 [%d, %d]", v, attrMin, attrMax)
		}
	}
	return cs.newCharacter(name, str, dex, wil, tou), nil
}

// newCharacter 按规则补完角色：HP 1d6+1（WIL 14+ 再 +1），
// 起始 3d6 银币，外袍加三份干粮。
func (cs *CharacterService) newCharacter(name string, str, dex, wil, tou int) *models.Character {
	now := time.Now()
	c := &models.Character{
		ID:        uuid.New().String(),
		Name:      name,
		Strength:  str,
		Dexterity: dex,
		Willpower: wil,
		Toughness: tou,
		Level:     1,
		DamageDie: "1d4", // 徒手
		MaxSlots:  cs.cfg.InventorySlots,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.MaxSlots <= 0 {
		c.MaxSlots = models.DefaultInventorySlots
	}

	c.HPMax = dice.D6(cs.src) + 1 + c.HPBonus()
	c.HPCurrent = c.HPMax

	c.AddCurrency(dice.Sum3D6(cs.src), 0)

	c.Inventory = []models.Item{
		{Name: "Cloak", Type: models.ItemMisc},
		{Name: "Rations", Type: models.ItemConsumable, EffectType: "food"},
		{Name: "Rations", Type: models.ItemConsumable, EffectType: "food"},
		{Name: "Rations", Type: models.ItemConsumable, EffectType: "food"},
	}
	return c
}

// XPForNextLevel 升到下一级所需的累计总经验
func XPForNextLevel(level int) int {
	return level * models.XPPerLevel
}

// GainXP 获得经验，返回升到的等级列表（一次可能连升）。
// 经验累计不清零，升级门槛按当前等级换算成总量。
func (cs *CharacterService) GainXP(c *models.Character, amount int) []int {
	if amount <= 0 || c.Dead {
		return nil
	}
	c.XP += amount
	var gained []int
	for c.XP >= XPForNextLevel(c.Level) {
		cs.LevelUp(c)
		gained = append(gained, c.Level)
	}
	return gained
}

// LevelUp 升一级：最大 HP +1d6，每项属性投 3d6，
// 超过当前值则该属性 +1。
func (cs *CharacterService) LevelUp(c *models.Character) {
	c.Level++

	gain := dice.D6(cs.src)
	c.HPMax += gain
	c.HPCurrent += gain

	improve := func(value *int) {
		if dice.Sum3D6(cs.src) > *value {
			*value++
		}
	}
	improve(&c.Strength)
	improve(&c.Dexterity)
	improve(&c.Willpower)
	improve(&c.Toughness)
}

// RestOvernight 过夜休息：恢复 1d6 HP 并清除疲劳。
// 濒死角色休息即脱离濒死。
func (cs *CharacterService) RestOvernight(c *models.Character) int {
	healed := c.Heal(dice.D6(cs.src))
	c.Fatigued = false
	if c.Dying {
		c.Dying = false
		c.DeathTimer = 0
		if c.HPCurrent < 1 {
			c.HPCurrent = 1
		}
	}
	return healed
}

// ScrollCastResult 施法结果
type ScrollCastResult struct {
	Roll        int    `json:"roll"`
	Success     bool   `json:"success"`
	DamageTaken int    `json:"damage_taken"`
	Message     string `json:"message"`
}

// CastScroll 从卷轴施法：WIL roll-under 检定，无论成败卷轴烧毁。
// 成功进入疲劳，失败受 1d6 反噬伤害。
func (cs *CharacterService) CastScroll(c *models.Character, scrollName string) (*ScrollCastResult, error) {
	scroll := c.FindItem(scrollName)
	if scroll == nil {
		return nil, fmt.Errorf("背包中没有卷轴: %s", scrollName)
	}
	if scroll.Type != models.ItemScroll {
		return nil, fmt.Errorf("道具 %s 不是卷轴", scrollName)
	}

	// 卷轴无论成败都消耗
	c.RemoveFromInventory(scrollName)

	roll, success := cs.engine.SavingThrow(c, models.AttrWillpower, false, false)
	result := &ScrollCastResult{Roll: roll, Success: success}
	if success {
		c.Fatigued = true
		result.Message = fmt.Sprintf("%s casts %s and is now fatigued", c.Name, scrollName)
	} else {
		dmg := dice.D6(cs.src)
		c.TakeDamage(dmg)
		result.DamageTaken = dmg
		result.Message = fmt.Sprintf("%s fails to cast %s and takes %d backlash damage", c.Name, scrollName, dmg)
	}
	return result, nil
}
