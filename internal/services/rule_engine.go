package services

import (
	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
)

// RuleEngine 核心检定规则。所有 d20 检定走 roll-under：
// 投 d20，结果小于等于属性值即成功。
type RuleEngine struct {
	src dice.Source
}

func NewRuleEngine(src dice.Source) *RuleEngine {
	return &RuleEngine{src: src}
}

// Roll 直通底层骰子
func (re *RuleEngine) Roll(sides int) int {
	return re.src.Roll(sides)
}

// rollD20 按优劣势投 d20。roll-under 体系里小即是好：
// 优势取两骰较小值，劣势取较大值。
func (re *RuleEngine) rollD20(advantage, disadvantage bool) int {
	if advantage == disadvantage {
		return dice.D20(re.src)
	}
	a, b := dice.D20(re.src), dice.D20(re.src)
	if advantage {
		if a < b {
			return a
		}
		return b
	}
	if a > b {
		return a
	}
	return b
}

// SavingThrow 属性豁免。疲劳状态强制劣势。
func (re *RuleEngine) SavingThrow(c *models.Character, attr models.Attr, advantage, disadvantage bool) (int, bool) {
	if c.Fatigued {
		disadvantage = true
		advantage = false
	}
	roll := re.rollD20(advantage, disadvantage)
	return roll, roll <= c.AttrValue(attr)
}

// DeathSave HP 归零时的 WIL 豁免。
// 成功回到 1 HP 继续行动，失败进入濒死倒计时。
func (re *RuleEngine) DeathSave(c *models.Character, dyingCountdown int) (int, bool) {
	roll, success := re.SavingThrow(c, models.AttrWillpower, false, false)
	if success {
		c.HPCurrent = 1
		c.Dying = false
		c.DeathTimer = 0
	} else {
		c.HPCurrent = 0
		c.Dying = true
		c.DeathTimer = dyingCountdown
	}
	return roll, success
}

// AttackRoll 投 d20 加攻击加值与 AC 比较。
// 自然 20 必中（暴击），自然 1 必失手。
func (re *RuleEngine) AttackRoll(bonus, targetAC int, disadvantage bool) (roll int, hit, critical, fumble bool) {
	roll = re.rollD20(false, disadvantage)
	critical = roll == 20
	fumble = roll == 1
	hit = critical || (!fumble && roll+bonus >= targetAC)
	return roll, hit, critical, fumble
}

// RollDamage 按骰子表达式投伤害，表达式非法时按 1d6 处理
func (re *RuleEngine) RollDamage(notation string) int {
	n, err := dice.ParseNotation(notation)
	if err != nil {
		n = dice.Notation{Count: 1, Sides: 6}
	}
	return n.Roll(re.src)
}
