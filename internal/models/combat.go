package models

// CombatResult 战斗结局
type CombatResult string

const (
	CombatInProgress CombatResult = "in_progress"
	CombatVictory    CombatResult = "victory"
	CombatDefeat     CombatResult = "defeat"
	CombatFled       CombatResult = "fled"
)

// LogType 战斗日志条目类型
type LogType string

const (
	LogInfo    LogType = "info"
	LogAttack  LogType = "attack"
	LogDamage  LogType = "damage"
	LogHeal    LogType = "heal"
	LogSpecial LogType = "special"
	LogResult  LogType = "result"
)

// LogEntry 一条战斗日志
type LogEntry struct {
	Turn    int     `json:"turn"`
	Type    LogType `json:"type"`
	Message string  `json:"message"`
}

// Encounter 一场进行中的遭遇战。归属会话持有，不存在全局单例。
type Encounter struct {
	ID       string       `json:"id"`
	Party    []*Character `json:"party"`
	Monsters []*Monster   `json:"monsters"`
	Turn     int          `json:"turn"`
	// PlayerTurn 为 true 时等待玩家指令，false 时轮到怪物行动
	PlayerTurn  bool         `json:"player_turn"`
	ActiveIndex int          `json:"active_index"` // 当前行动的队伍成员下标
	Result      CombatResult `json:"result"`
	Log         []LogEntry   `json:"log"`
	Loot        []Item       `json:"loot,omitempty"`
	LootSilver  int          `json:"loot_silver,omitempty"`
	LootGold    int          `json:"loot_gold,omitempty"`
}

// Over 战斗是否已结束
func (e *Encounter) Over() bool {
	return e.Result != CombatInProgress
}

// AliveMonsters 存活怪物列表
func (e *Encounter) AliveMonsters() []*Monster {
	var alive []*Monster
	for _, m := range e.Monsters {
		if m.Alive {
			alive = append(alive, m)
		}
	}
	return alive
}

// LivingParty 可参战的队伍成员（未死亡）
func (e *Encounter) LivingParty() []*Character {
	var living []*Character
	for _, c := range e.Party {
		if !c.Dead {
			living = append(living, c)
		}
	}
	return living
}

// Active 当前行动的队伍成员
func (e *Encounter) Active() *Character {
	if e.ActiveIndex < 0 || e.ActiveIndex >= len(e.Party) {
		return nil
	}
	return e.Party[e.ActiveIndex]
}

// FindMonster 按 ID 查找遭遇中的怪物
func (e *Encounter) FindMonster(id string) *Monster {
	for _, m := range e.Monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AddLog 追加一条战斗日志
func (e *Encounter) AddLog(t LogType, message string) {
	e.Log = append(e.Log, LogEntry{Turn: e.Turn, Type: t, Message: message})
}
