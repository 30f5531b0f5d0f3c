package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/tables"
)

var (
	ErrCombatEnded   = errors.New("战斗已结束")
	ErrNotPlayerTurn = errors.New("当前不是玩家回合")
	ErrInvalidTarget = errors.New("无效的目标")
	ErrItemNotUsable = errors.New("该道具无法在战斗中使用")
)

// CombatService 回合制战斗引擎。
// 玩家动作与怪物回合交替推进，直到分出胜负或逃跑成功。
type CombatService struct {
	src    dice.Source
	engine *RuleEngine
	items  *ItemService
	chars  *CharacterService
	cfg    models.GameConfig
}

func NewCombatService(src dice.Source, items *ItemService, chars *CharacterService, cfg models.GameConfig) *CombatService {
	return &CombatService{
		src:    src,
		engine: NewRuleEngine(src),
		items:  items,
		chars:  chars,
		cfg:    cfg,
	}
}

// StartEncounter 开始一场遭遇战
func (cs *CombatService) StartEncounter(party []*models.Character, monsters []*models.Monster) *models.Encounter {
	e := &models.Encounter{
		ID:         uuid.New().String(),
		Party:      party,
		Monsters:   monsters,
		Turn:       1,
		PlayerTurn: true,
		Result:     models.CombatInProgress,
	}
	cs.ensureActive(e)

	names := make([]string, len(monsters))
	for i, m := range monsters {
		names[i] = m.Name
	}
	e.AddLog(models.LogInfo, fmt.Sprintf("Combat begins! Enemies: %s", strings.Join(names, ", ")))
	return e
}

// ensureActive 把行动位指向第一个还能打的队员
func (cs *CombatService) ensureActive(e *models.Encounter) {
	if a := e.Active(); a != nil && a.CanAct() {
		return
	}
	for i, c := range e.Party {
		if c.CanAct() {
			e.ActiveIndex = i
			return
		}
	}
}

// AttackResult 玩家攻击结果
type AttackResult struct {
	Attacker     string `json:"attacker"`
	Target       string `json:"target"`
	Roll         int    `json:"roll"`
	AttackBonus  int    `json:"attack_bonus"`
	TargetAC     int    `json:"target_ac"`
	Hit          bool   `json:"hit"`
	Critical     bool   `json:"critical"`
	Fumble       bool   `json:"fumble"`
	Damage       int    `json:"damage"`
	TargetKilled bool   `json:"target_killed"`
}

// Attack 当前行动角色攻击指定怪物。targetID 为空时打第一个活着的。
// 自然 20 必中且伤害骰翻倍，自然 1 必失手。
func (cs *CombatService) Attack(e *models.Encounter, targetID string) (*AttackResult, error) {
	if e.Over() {
		return nil, ErrCombatEnded
	}
	if !e.PlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	cs.ensureActive(e)
	attacker := e.Active()
	if attacker == nil || !attacker.CanAct() {
		return nil, ErrNotPlayerTurn
	}

	target := cs.resolveTarget(e, targetID)
	if target == nil {
		return nil, ErrInvalidTarget
	}

	bonus := attacker.AttackBonus()
	roll, hit, critical, fumble := cs.engine.AttackRoll(bonus, target.AC, attacker.Fatigued)
	result := &AttackResult{
		Attacker:    attacker.Name,
		Target:      target.Name,
		Roll:        roll,
		AttackBonus: bonus,
		TargetAC:    target.AC,
		Hit:         hit,
		Critical:    critical,
		Fumble:      fumble,
	}

	switch {
	case fumble:
		e.AddLog(models.LogAttack, fmt.Sprintf("%s fumbles the attack! (rolled 1)", attacker.Name))
	case critical:
		damage := cs.engine.RollDamage(attacker.DamageNotation()) * 2
		target.TakeDamage(damage)
		result.Damage = damage
		result.TargetKilled = !target.Alive
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s scores a CRITICAL HIT on %s, dealing %d damage!", attacker.Name, target.Name, damage))
	case hit:
		damage := cs.engine.RollDamage(attacker.DamageNotation())
		target.TakeDamage(damage)
		result.Damage = damage
		result.TargetKilled = !target.Alive
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s hits %s! Rolls %d+%d=%d vs AC %d, deals %d damage (%d/%d HP remaining)",
			attacker.Name, target.Name, roll, bonus, roll+bonus, target.AC,
			damage, target.HPCurrent, target.HPMax))
	default:
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s attacks %s but misses! Rolls %d+%d=%d vs AC %d",
			attacker.Name, target.Name, roll, bonus, roll+bonus, target.AC))
	}

	if result.TargetKilled {
		e.AddLog(models.LogResult, fmt.Sprintf("%s has been slain!", target.Name))
	}

	cs.checkEnd(e)
	e.PlayerTurn = false
	return result, nil
}

// resolveTarget 按 ID 找目标，空 ID 取第一个活着的怪物
func (cs *CombatService) resolveTarget(e *models.Encounter, targetID string) *models.Monster {
	if targetID == "" {
		alive := e.AliveMonsters()
		if len(alive) == 0 {
			return nil
		}
		return alive[0]
	}
	m := e.FindMonster(targetID)
	if m == nil || !m.Alive {
		return nil
	}
	return m
}

// UseItemResult 战斗中使用道具的结果
type UseItemResult struct {
	Item    string `json:"item"`
	Healed  int    `json:"healed,omitempty"`
	Damage  int    `json:"damage,omitempty"`
	Cured   string `json:"cured,omitempty"`
	Roll    int    `json:"roll,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UseItem 当前行动角色使用背包道具，消耗一个玩家回合。
// 支持治疗药水、解毒剂和法术卷轴。
func (cs *CombatService) UseItem(e *models.Encounter, itemName string) (*UseItemResult, error) {
	if e.Over() {
		return nil, ErrCombatEnded
	}
	if !e.PlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	cs.ensureActive(e)
	user := e.Active()
	if user == nil {
		return nil, ErrNotPlayerTurn
	}

	item := user.FindItem(itemName)
	if item == nil {
		return nil, fmt.Errorf("背包中没有道具: %s", itemName)
	}

	if item.Type == models.ItemScroll {
		return cs.castScrollInCombat(e, user, *item)
	}
	if item.Type != models.ItemConsumable {
		return nil, ErrItemNotUsable
	}

	result := &UseItemResult{Item: item.Name, Success: true}
	switch item.EffectType {
	case "heal":
		healed := user.Heal(item.HealAmount)
		result.Healed = healed
		result.Message = fmt.Sprintf("%s drinks %s and recovers %d HP (%d/%d)",
			user.Name, item.Name, healed, user.HPCurrent, user.HPMax)
		e.AddLog(models.LogHeal, result.Message)
	case "cure_poison":
		if user.RemoveStatusEffect(models.EffectPoisoned) {
			result.Cured = models.EffectPoisoned
			result.Message = fmt.Sprintf("%s uses %s and is cured of poison", user.Name, item.Name)
		} else {
			result.Message = fmt.Sprintf("%s uses %s but was not poisoned", user.Name, item.Name)
		}
		e.AddLog(models.LogHeal, result.Message)
	default:
		return nil, ErrItemNotUsable
	}

	user.RemoveFromInventory(item.Name)
	e.PlayerTurn = false
	return result, nil
}

// castScrollInCombat 战斗中施放卷轴：规则与野外施法相同，
// 成功时法术立即生效。只接受战斗内有即时效果的卷轴，
// 其余类型不消耗卷轴也不消耗回合。
func (cs *CombatService) castScrollInCombat(e *models.Encounter, caster *models.Character, scroll models.Item) (*UseItemResult, error) {
	switch scroll.EffectType {
	case "spell_damage", "spell_heal":
	default:
		return nil, ErrItemNotUsable
	}

	caster.RemoveFromInventory(scroll.Name)

	roll, success := cs.engine.SavingThrow(caster, models.AttrWillpower, false, false)
	result := &UseItemResult{Item: scroll.Name, Roll: roll, Success: success}

	if !success {
		dmg := dice.D6(cs.src)
		caster.TakeDamage(dmg)
		result.Damage = dmg
		result.Message = fmt.Sprintf("%s fails to cast %s and takes %d backlash damage", caster.Name, scroll.Name, dmg)
		e.AddLog(models.LogSpecial, result.Message)
		cs.handleDroppedCharacter(e, caster)
		cs.checkEnd(e)
		e.PlayerTurn = false
		return result, nil
	}

	caster.Fatigued = true
	switch scroll.EffectType {
	case "spell_damage":
		notation := "2d6"
		if strings.Contains(scroll.Name, "Ice Shard") {
			notation = "1d8"
		}
		damage := cs.engine.RollDamage(notation)
		alive := e.AliveMonsters()
		if len(alive) > 0 {
			target := alive[0]
			target.TakeDamage(damage)
			result.Damage = damage
			result.Message = fmt.Sprintf("%s casts %s at %s for %d damage!", caster.Name, scroll.Name, target.Name, damage)
			e.AddLog(models.LogSpecial, result.Message)
			if !target.Alive {
				e.AddLog(models.LogResult, fmt.Sprintf("%s has been slain!", target.Name))
			}
		}
	case "spell_heal":
		healed := caster.Heal(cs.engine.RollDamage("2d6"))
		result.Healed = healed
		result.Message = fmt.Sprintf("%s casts %s and recovers %d HP", caster.Name, scroll.Name, healed)
		e.AddLog(models.LogHeal, result.Message)
	}

	cs.checkEnd(e)
	e.PlayerTurn = false
	return result, nil
}

// FleeResult 逃跑结果
type FleeResult struct {
	Fled   bool `json:"fled"`
	Roll   int  `json:"roll"`
	Chance int  `json:"chance"`
}

// Flee 尝试逃跑：基础 50%，HP 低于一半再 +10%，d100 roll-under。
// 失败则玩家回合结束，怪物照常进攻。
func (cs *CombatService) Flee(e *models.Encounter) (*FleeResult, error) {
	if e.Over() {
		return nil, ErrCombatEnded
	}
	if !e.PlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	cs.ensureActive(e)
	runner := e.Active()
	if runner == nil {
		return nil, ErrNotPlayerTurn
	}

	chance := 50
	if runner.HPCurrent < runner.HPMax/2 {
		chance += 10
	}

	roll := dice.D100(cs.src)
	result := &FleeResult{Roll: roll, Chance: chance, Fled: roll <= chance}

	if result.Fled {
		e.Result = models.CombatFled
		e.AddLog(models.LogResult, fmt.Sprintf(
			"%s successfully flees from combat! (rolled %d vs %d%%)", runner.Name, roll, chance))
	} else {
		e.AddLog(models.LogInfo, fmt.Sprintf(
			"%s tries to flee but fails! (rolled %d vs %d%%)", runner.Name, roll, chance))
		e.PlayerTurn = false
	}
	return result, nil
}

// MonsterTurn 执行全部怪物的行动。任何一次攻击把角色打到 0 HP
// 并触发死亡豁免后，本轮立即中止，把行动权还给玩家。
func (cs *CombatService) MonsterTurn(e *models.Encounter) error {
	if e.Over() {
		return ErrCombatEnded
	}
	if e.PlayerTurn {
		return errors.New("玩家尚未行动")
	}

	for _, monster := range e.AliveMonsters() {
		monster.TickStatusEffects()
		if monster.HasStatusEffect(models.EffectParalyzed) {
			e.AddLog(models.LogSpecial, fmt.Sprintf("%s is paralyzed and cannot act!", monster.Name))
			continue
		}

		if monster.HasAbility(models.AbilityRegeneration) {
			if healed := monster.Heal(1); healed > 0 {
				e.AddLog(models.LogHeal, fmt.Sprintf(
					"%s regenerates %d HP (%d/%d)", monster.Name, healed, monster.HPCurrent, monster.HPMax))
			}
		}

		cs.ensureActive(e)
		target := e.Active()
		if target == nil {
			break
		}

		deathSaveMade := cs.monsterAttack(e, monster, target)

		cs.checkEnd(e)
		if e.Over() {
			break
		}
		if deathSaveMade {
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s narrowly survives! Monster attacks end for this turn.", target.Name))
			break
		}
	}

	e.Turn++
	e.PlayerTurn = true
	cs.tickPartyEffects(e)
	cs.checkEnd(e)
	return nil
}

// monsterAttack 单只怪物攻击目标，返回是否触发了死亡豁免
func (cs *CombatService) monsterAttack(e *models.Encounter, monster *models.Monster, target *models.Character) bool {
	bonus := monster.AttackBonus()
	roll, hit, critical, _ := cs.engine.AttackRoll(bonus, target.AC(), false)

	if !hit {
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s attacks %s but misses! Rolls %d+%d=%d vs AC %d",
			monster.Name, target.Name, roll, bonus, roll+bonus, target.AC()))
		return false
	}

	damage := cs.engine.RollDamage(monster.DamageNotation())
	if critical {
		damage *= 2
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s scores a CRITICAL HIT on %s, dealing %d damage!", monster.Name, target.Name, damage))
	} else {
		e.AddLog(models.LogAttack, fmt.Sprintf(
			"%s hits %s! Rolls %d+%d=%d vs AC %d, deals %d damage",
			monster.Name, target.Name, roll, bonus, roll+bonus, target.AC(), damage))
	}

	// 这一击会把角色打倒时，牺牲盾或头盔完全抵消攻击
	if damage >= target.HPCurrent {
		for _, slot := range []models.Slot{models.SlotShield, models.SlotHelmet} {
			if name, ok := target.SacrificeEquipment(slot); ok {
				e.AddLog(models.LogSpecial, fmt.Sprintf(
					"%s's %s shatters, absorbing the blow!", target.Name, name))
				return false
			}
		}
	}

	_, atZero := target.TakeDamage(damage)

	cs.applyOnHitEffects(e, monster, target)

	if atZero && !target.Dying && !target.Dead {
		return cs.resolveDeathSave(e, target)
	}
	return false
}

// applyOnHitEffects 命中后的怪物特殊能力：毒、麻痹、疾病各做
// TOU 豁免，吸级直接削减最大 HP。
func (cs *CombatService) applyOnHitEffects(e *models.Encounter, monster *models.Monster, target *models.Character) {
	if monster.HasAbility(models.AbilityPoison) {
		roll, success := cs.engine.SavingThrow(target, models.AttrToughness, false, false)
		if success {
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s resists the poison! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		} else {
			target.AddStatusEffect(models.StatusEffect{Name: models.EffectPoisoned, Duration: 6, DamagePerTurn: 1})
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s is POISONED! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		}
	}

	if monster.HasAbility(models.AbilityParalyze) {
		roll, success := cs.engine.SavingThrow(target, models.AttrToughness, false, false)
		if success {
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s resists the paralysis! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		} else {
			target.AddStatusEffect(models.StatusEffect{Name: models.EffectParalyzed, Duration: 3})
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s is PARALYZED! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		}
	}

	if monster.HasAbility(models.AbilityDisease) {
		roll, success := cs.engine.SavingThrow(target, models.AttrToughness, false, false)
		if success {
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s resists the disease! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		} else {
			target.AddStatusEffect(models.StatusEffect{Name: models.EffectDiseased, Duration: -1})
			e.AddLog(models.LogSpecial, fmt.Sprintf(
				"%s contracts a DISEASE! (rolled %d, needed %d or less)", target.Name, roll, target.Toughness))
		}
	}

	if monster.HasAbility(models.AbilityLevelDrain) {
		target.HPMax -= 2
		if target.HPMax < 1 {
			target.HPMax = 1
		}
		if target.HPCurrent > target.HPMax {
			target.HPCurrent = target.HPMax
		}
		e.AddLog(models.LogSpecial, fmt.Sprintf(
			"%s feels their life essence draining away! (-2 max HP)", target.Name))
	}
}

// resolveDeathSave 角色归零时的死亡豁免，返回 true 表示发生过豁免
func (cs *CombatService) resolveDeathSave(e *models.Encounter, c *models.Character) bool {
	roll, success := cs.engine.DeathSave(c, cs.cfg.DyingCountdown)
	if success {
		e.AddLog(models.LogResult, fmt.Sprintf(
			"Death save SUCCESS! %s clings to life with 1 HP! (rolled %d, needed %d or less)",
			c.Name, roll, c.Willpower))
	} else {
		e.AddLog(models.LogResult, fmt.Sprintf(
			"Death save FAILED! %s is dying and will perish if not treated! (rolled %d, needed %d or less)",
			c.Name, roll, c.Willpower))
	}
	return true
}

// handleDroppedCharacter 非攻击来源（反噬、毒）打到 0 HP 时补做死亡豁免
func (cs *CombatService) handleDroppedCharacter(e *models.Encounter, c *models.Character) {
	if c.HPCurrent == 0 && !c.Dying && !c.Dead {
		cs.resolveDeathSave(e, c)
	}
}

// tickPartyEffects 回合末结算队伍状态效果：先吃持续伤害再递减时长
func (cs *CombatService) tickPartyEffects(e *models.Encounter) {
	for _, c := range e.Party {
		if c.Dead {
			continue
		}
		for _, effect := range c.StatusEffects {
			if effect.DamagePerTurn > 0 && c.HPCurrent > 0 {
				c.TakeDamage(effect.DamagePerTurn)
				e.AddLog(models.LogDamage, fmt.Sprintf(
					"%s suffers %d damage from %s (%d/%d HP)",
					c.Name, effect.DamagePerTurn, effect.Name, c.HPCurrent, c.HPMax))
				cs.handleDroppedCharacter(e, c)
			}
		}
		for _, expired := range c.TickStatusEffects() {
			e.AddLog(models.LogInfo, fmt.Sprintf("%s is no longer %s", c.Name, expired.Name))
		}
	}
}

// checkEnd 判定战斗是否结束。怪物全灭即胜利并结算经验与战利品，
// 队伍全员倒下即失败。
func (cs *CombatService) checkEnd(e *models.Encounter) {
	if e.Over() {
		return
	}

	if len(e.AliveMonsters()) == 0 {
		e.Result = models.CombatVictory
		e.AddLog(models.LogResult, "Victory! All enemies have been defeated!")
		cs.awardXP(e)
		cs.rollLoot(e)
		return
	}

	anyStanding := false
	for _, c := range e.Party {
		if !c.Dead && !c.Dying && c.HPCurrent > 0 {
			anyStanding = true
			break
		}
	}
	if !anyStanding {
		e.Result = models.CombatDefeat
		e.AddLog(models.LogResult, "The party has been defeated...")
	}
}

// awardXP 每击杀一只怪物给每名存活队员 1 点经验
func (cs *CombatService) awardXP(e *models.Encounter) {
	killed := 0
	for _, m := range e.Monsters {
		if !m.Alive {
			killed++
		}
	}
	if killed == 0 {
		return
	}
	for _, c := range e.Party {
		if c.Dead {
			continue
		}
		gained := cs.chars.GainXP(c, killed)
		if len(gained) > 0 {
			e.AddLog(models.LogResult, fmt.Sprintf(
				"%s gained %d XP and reached LEVEL %d!", c.Name, killed, c.Level))
		} else {
			e.AddLog(models.LogResult, fmt.Sprintf("%s gained %d XP!", c.Name, killed))
		}
	}
}

// rollLoot 结算战利品：每具尸体搜一次尸（d6 选表再 d6 选条目，
// 无价值的结果丢弃），再按 60% 概率掉一件阶层装备，钱必掉。
func (cs *CombatService) rollLoot(e *models.Encounter) {
	for _, m := range e.Monsters {
		if m.Alive {
			continue
		}

		if corpse := tables.RollCorpseLoot(cs.src); !isWorthlessLoot(corpse) {
			e.Loot = append(e.Loot, cs.corpseLootItem(corpse))
		}

		if dice.D100(cs.src) <= 60 {
			e.Loot = append(e.Loot, cs.items.GenerateLoot(m.Tier))
		}

		tier := m.Tier
		if tier < 1 {
			tier = 1
		}
		amount := (cs.src.Roll(16) + 4) * tier
		e.LootGold += amount / 10
		e.LootSilver += amount % 10
	}

	if len(e.Loot) > 0 {
		names := make([]string, len(e.Loot))
		for i, item := range e.Loot {
			names[i] = item.Name
		}
		e.AddLog(models.LogResult, fmt.Sprintf("Loot found: %s", strings.Join(names, ", ")))
	}
	if e.LootGold > 0 || e.LootSilver > 0 {
		e.AddLog(models.LogResult, fmt.Sprintf("Currency found: %d gold, %d silver", e.LootGold, e.LootSilver))
	}
}

// isWorthlessLoot 搜尸结果里一文不值的条目直接丢掉
func isWorthlessLoot(name string) bool {
	lower := strings.ToLower(name)
	return lower == "nothing" || lower == "lint"
}

// corpseLootItem 把搜尸表原文变成道具，个别条目有实际效果
func (cs *CombatService) corpseLootItem(name string) models.Item {
	switch name {
	case "Gold piece":
		return models.Item{Name: name, Type: models.ItemMisc, Value: 10, EffectType: "currency"}
	case "d6 Silver":
		return models.Item{Name: name, Type: models.ItemMisc, Value: dice.D6(cs.src), EffectType: "currency"}
	case "Potion":
		return cs.items.GenerateConsumable(1)
	case "Scroll":
		return cs.items.GenerateScroll(1)
	case "Gem":
		return models.Item{Name: name, Type: models.ItemMisc, Value: 10}
	case "Worn shield":
		return models.Item{Name: name, Type: models.ItemShield, Slot: models.SlotShield, ACBonus: 1, Value: 5}
	default:
		return models.Item{Name: name, Type: models.ItemMisc, Value: 1}
	}
}
