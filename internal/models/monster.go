package models

import (
	"regexp"
	"strings"
)

// Ability 怪物特殊能力，从攻击/特性描述文本解析得出
type Ability string

const (
	AbilityPoison       Ability = "poison"
	AbilityParalyze     Ability = "paralyze"
	AbilityDisease      Ability = "disease"
	AbilityLevelDrain   Ability = "level_drain"
	AbilityRegeneration Ability = "regeneration"
	AbilityImmuneWeapon Ability = "immune_wpn"
	AbilityImmuneMagic  Ability = "immune_magic"
	AbilityWeb          Ability = "web"
	AbilityFly          Ability = "fly"
	AbilityGaze         Ability = "gaze"
	AbilityBreath       Ability = "breath_weapon"
	AbilityCharm        Ability = "charm"
	AbilityBerserk      Ability = "berserk"
	AbilitySpell        Ability = "spell"
	AbilityTeleport     Ability = "teleport"
)

// Monster 地城怪物。HP 在生成时由 HD 投定，存档读取后不再重投。
type Monster struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HD        string    `json:"hd"` // 原始生命骰文本，仅展示用
	AC        int       `json:"ac"`
	Attack    string    `json:"attack"`
	Special   string    `json:"special,omitempty"`
	HPMax     int       `json:"hp_max"`
	HPCurrent int       `json:"hp_current"`
	XPValue   int       `json:"xp_value"`
	Tier      int       `json:"tier"`
	Abilities []Ability `json:"abilities,omitempty"`
	Alive     bool      `json:"alive"`

	StatusEffects []StatusEffect `json:"status_effects,omitempty"`
}

// TakeDamage 扣减 HP。归零时直接死亡，怪物没有死亡豁免。
func (m *Monster) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	m.HPCurrent -= amount
	if m.HPCurrent <= 0 {
		m.HPCurrent = 0
		m.Alive = false
	}
	return amount
}

// Heal 恢复 HP，上限为最大值（再生能力用）
func (m *Monster) Heal(amount int) int {
	if !m.Alive {
		return 0
	}
	old := m.HPCurrent
	m.HPCurrent += amount
	if m.HPCurrent > m.HPMax {
		m.HPCurrent = m.HPMax
	}
	return m.HPCurrent - old
}

// HasAbility 检查怪物是否具有指定能力
func (m *Monster) HasAbility(a Ability) bool {
	for _, have := range m.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// abilityKeywords 描述文本关键字到能力的映射，匹配不区分大小写
var abilityKeywords = []struct {
	keyword string
	ability Ability
}{
	{"poison", AbilityPoison},
	{"paralyze", AbilityParalyze},
	{"paralysis", AbilityParalyze},
	{"disease", AbilityDisease},
	{"level drain", AbilityLevelDrain},
	{"drain", AbilityLevelDrain},
	{"regen", AbilityRegeneration},
	{"imn. wpn", AbilityImmuneWeapon},
	{"immune wpn", AbilityImmuneWeapon},
	{"imn. magic", AbilityImmuneMagic},
	{"immune magic", AbilityImmuneMagic},
	{"web", AbilityWeb},
	{"fly", AbilityFly},
	{"gaze", AbilityGaze},
	{"breath", AbilityBreath},
	{"charm", AbilityCharm},
	{"berserk", AbilityBerserk},
	{"spell", AbilitySpell},
	{"teleport", AbilityTeleport},
}

// ParseAbilities 从攻击与特性文本解析能力列表
func ParseAbilities(attack, special string) []Ability {
	text := strings.ToLower(attack + " " + special)
	var abilities []Ability
	seen := make(map[Ability]bool)
	for _, kw := range abilityKeywords {
		if strings.Contains(text, kw.keyword) && !seen[kw.ability] {
			abilities = append(abilities, kw.ability)
			seen[kw.ability] = true
		}
	}
	return abilities
}

var (
	parenBonusPattern = regexp.MustCompile(`\(\+(\d+)\)`)
	plainBonusPattern = regexp.MustCompile(`\+(\d+)`)
	damageDiePattern  = regexp.MustCompile(`(\d*d\d+)`)
)

// AttackBonus 从攻击文本解析攻击加值，如 "Wpn(+1)" 或 "Sword(+3)"
func (m *Monster) AttackBonus() int {
	if g := parenBonusPattern.FindStringSubmatch(m.Attack); g != nil {
		return atoiOrZero(g[1])
	}
	if g := plainBonusPattern.FindStringSubmatch(m.Attack); g != nil {
		return atoiOrZero(g[1])
	}
	return 0
}

// DamageNotation 从攻击文本解析伤害骰。
// 文本带骰子表达式时用它，带 "(N)" 的固定伤害翻译为 NdN 下界，
// 其余一律按武器攻击算 1d6。
func (m *Monster) DamageNotation() string {
	lower := strings.ToLower(m.Attack)
	if g := damageDiePattern.FindStringSubmatch(lower); g != nil {
		expr := g[1]
		if !strings.HasPrefix(expr, "d") {
			return expr
		}
		return "1" + expr
	}
	return "1d6"
}

// AddStatusEffect 添加状态效果，同名重置持续时间
func (m *Monster) AddStatusEffect(effect StatusEffect) {
	for i := range m.StatusEffects {
		if m.StatusEffects[i].Name == effect.Name {
			m.StatusEffects[i] = effect
			return
		}
	}
	m.StatusEffects = append(m.StatusEffects, effect)
}

// HasStatusEffect 检查指定状态
func (m *Monster) HasStatusEffect(name string) bool {
	for _, e := range m.StatusEffects {
		if e.Name == name {
			return true
		}
	}
	return false
}

// TickStatusEffects 递减持续时间并返回到期的效果
func (m *Monster) TickStatusEffects() []StatusEffect {
	var expired []StatusEffect
	kept := m.StatusEffects[:0]
	for _, e := range m.StatusEffects {
		if e.Duration > 0 {
			e.Duration--
			if e.Duration == 0 {
				expired = append(expired, e)
				continue
			}
		}
		kept = append(kept, e)
	}
	m.StatusEffects = kept
	return expired
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
