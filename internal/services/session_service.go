package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/models"
)

var (
	ErrEncounterActive = errors.New("已有进行中的遭遇战")
	ErrNoEncounter     = errors.New("没有进行中的遭遇战")
	ErrNoDungeon       = errors.New("尚未进入地城")
	ErrGameOver        = errors.New("游戏已结束")
)

// SessionService 游戏会话编排：把地城探索、遭遇战、
// 大地图时间推进串成一条流程。
type SessionService struct {
	chars    *CharacterService
	dungeons *DungeonService
	combat   *CombatService
	engine   *RuleEngine
	cfg      models.GameConfig
}

func NewSessionService(chars *CharacterService, dungeons *DungeonService, combat *CombatService, engine *RuleEngine, cfg models.GameConfig) *SessionService {
	return &SessionService{
		chars:    chars,
		dungeons: dungeons,
		combat:   combat,
		engine:   engine,
		cfg:      cfg,
	}
}

// Create 新建会话
func (ss *SessionService) Create(name string) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddCharacter 角色入队
func (ss *SessionService) AddCharacter(s *models.Session, c *models.Character) {
	s.Party = append(s.Party, c)
	s.UpdatedAt = time.Now()
}

// EnterDungeon 生成并进入一座指定阶层的地城
func (ss *SessionService) EnterDungeon(s *models.Session, tier int) (*models.Dungeon, error) {
	if s.GameOver {
		return nil, ErrGameOver
	}
	if s.InCombat() {
		return nil, ErrEncounterActive
	}
	if len(s.LivingParty()) == 0 {
		return nil, errors.New("队伍中没有可行动的角色")
	}
	if tier < 1 {
		tier = 1
	}

	d, err := ss.dungeons.Generate(tier)
	if err != nil {
		return nil, err
	}
	d.Entered = true
	s.Dungeon = d
	s.UpdatedAt = time.Now()
	return d, nil
}

// RoomReport 进入新房间的结算
type RoomReport struct {
	Room          *models.Room    `json:"room"`
	TrapResults   []TrapSaveResult `json:"trap_results,omitempty"`
	CombatStarted bool            `json:"combat_started"`
	DungeonDone   bool            `json:"dungeon_done"`
}

// AdvanceRoom 前进到下一个房间。触发陷阱豁免，
// 房间里有活怪则开一场遭遇战。
func (ss *SessionService) AdvanceRoom(s *models.Session) (*RoomReport, error) {
	if s.GameOver {
		return nil, ErrGameOver
	}
	if s.Dungeon == nil || !s.Dungeon.Entered {
		return nil, ErrNoDungeon
	}
	if s.InCombat() {
		return nil, ErrEncounterActive
	}

	if !s.Dungeon.Advance() {
		return &RoomReport{DungeonDone: true}, nil
	}
	s.OverworldTurn++
	ss.tickDeathTimers(s, 1)

	room := s.Dungeon.CurrentRoom()
	report := &RoomReport{Room: room}

	// 陷阱对带队角色结算
	if danger := room.Contents.Danger; danger != nil && danger.Trap != nil {
		living := s.LivingParty()
		if len(living) > 0 {
			result := ss.dungeons.ResolveTrap(ss.engine, living[0], danger.Trap)
			report.TrapResults = append(report.TrapResults, result)
		}
	}

	if room.HasLiveMonsters() {
		s.ActiveEncounter = ss.combat.StartEncounter(s.LivingParty(), room.Monsters)
		report.CombatStarted = true
	} else {
		room.Cleared = true
	}

	s.UpdatedAt = time.Now()
	return report, nil
}

// StartEncounter 手动对当前房间的怪物开战（例如逃跑后再进攻）。
// 同一会话只允许一场进行中的遭遇战。
func (ss *SessionService) StartEncounter(s *models.Session) (*models.Encounter, error) {
	if s.GameOver {
		return nil, ErrGameOver
	}
	if s.InCombat() {
		return nil, ErrEncounterActive
	}
	if s.Dungeon == nil {
		return nil, ErrNoDungeon
	}
	room := s.Dungeon.CurrentRoom()
	if room == nil || !room.HasLiveMonsters() {
		return nil, errors.New("当前房间没有可战斗的怪物")
	}

	s.ActiveEncounter = ss.combat.StartEncounter(s.LivingParty(), room.Monsters)
	s.UpdatedAt = time.Now()
	return s.ActiveEncounter, nil
}

// LootReport 战利品入包结果
type LootReport struct {
	Taken    []string        `json:"taken"`
	Overflow []OverflowEntry `json:"overflow,omitempty"`
	Silver   int             `json:"silver"`
	Gold     int             `json:"gold"`
}

// OverflowEntry 装不下的战利品：道具占几格、最宽裕的背包还剩几格
type OverflowEntry struct {
	Item           string `json:"item"`
	RequiredSlots  int    `json:"required_slots"`
	AvailableSlots int    `json:"available_slots"`
}

// ResolveEncounter 遭遇战收尾。胜利时清空房间并把战利品
// 搬进队伍背包，装不下的如实上报；逃跑时怪物留在房间里；
// 全灭则游戏结束。
func (ss *SessionService) ResolveEncounter(s *models.Session) (*LootReport, error) {
	e := s.ActiveEncounter
	if e == nil {
		return nil, ErrNoEncounter
	}
	if !e.Over() {
		return nil, errors.New("遭遇战尚未结束")
	}

	report := &LootReport{}
	switch e.Result {
	case models.CombatVictory:
		if room := ss.currentRoom(s); room != nil {
			room.Cleared = true
		}
		report.Silver = e.LootSilver
		report.Gold = e.LootGold
		ss.transferLoot(s, e, report)
	case models.CombatFled:
		// 怪物存活，房间未清理，玩家可以再次尝试或撤退
	case models.CombatDefeat:
		s.GameOver = true
	}

	s.ActiveEncounter = nil
	s.UpdatedAt = time.Now()
	return report, nil
}

func (ss *SessionService) currentRoom(s *models.Session) *models.Room {
	if s.Dungeon == nil {
		return nil
	}
	return s.Dungeon.CurrentRoom()
}

// transferLoot 把战利品分给还活着的队员，背包满了就报溢出
func (ss *SessionService) transferLoot(s *models.Session, e *models.Encounter, report *LootReport) {
	living := s.LivingParty()
	if len(living) == 0 {
		return
	}

	carrier := living[0]
	carrier.AddCurrency(e.LootSilver, e.LootGold)

	for _, item := range e.Loot {
		if item.EffectType == "currency" {
			carrier.AddCurrency(item.Value, 0)
			report.Taken = append(report.Taken, fmt.Sprintf("%s (%d silver)", item.Name, item.Value))
			continue
		}
		placed := false
		for _, c := range living {
			if err := c.AddToInventory(item); err == nil {
				report.Taken = append(report.Taken, item.Name)
				placed = true
				break
			}
		}
		if !placed {
			best := 0
			for _, c := range living {
				if free := c.AvailableSlots(); free > best {
					best = free
				}
			}
			report.Overflow = append(report.Overflow, OverflowEntry{
				Item:           item.Name,
				RequiredSlots:  item.SlotSize(),
				AvailableSlots: best,
			})
		}
	}
}

// PickUpTreasure 拾取当前房间的宝藏
func (ss *SessionService) PickUpTreasure(s *models.Session, characterID string) (*LootReport, error) {
	if s.InCombat() {
		return nil, ErrEncounterActive
	}
	room := ss.currentRoom(s)
	if room == nil || len(room.Treasure) == 0 {
		return nil, errors.New("当前房间没有宝藏")
	}
	c := s.FindCharacter(characterID)
	if c == nil {
		return nil, fmt.Errorf("队伍中没有角色: %s", characterID)
	}

	report := &LootReport{}
	var remaining []models.Item
	for _, item := range room.Treasure {
		if item.EffectType == "currency" {
			c.AddCurrency(item.Value, 0)
			report.Silver += item.Value
			report.Taken = append(report.Taken, item.Name)
			continue
		}
		if err := c.AddToInventory(item); err != nil {
			report.Overflow = append(report.Overflow, OverflowEntry{
				Item:           item.Name,
				RequiredSlots:  item.SlotSize(),
				AvailableSlots: c.AvailableSlots(),
			})
			remaining = append(remaining, item)
			continue
		}
		report.Taken = append(report.Taken, item.Name)
	}
	room.Treasure = remaining
	s.UpdatedAt = time.Now()
	return report, nil
}

// RestParty 全队过夜休息：恢复 HP、清疲劳、濒死脱离。
// 休息消耗大地图时间。
func (ss *SessionService) RestParty(s *models.Session) (map[string]int, error) {
	if s.InCombat() {
		return nil, ErrEncounterActive
	}
	healed := make(map[string]int)
	for _, c := range s.Party {
		if c.Dead {
			continue
		}
		healed[c.Name] = ss.chars.RestOvernight(c)
	}
	s.OverworldTurn += 8
	s.UpdatedAt = time.Now()
	return healed, nil
}

// TickOverworld 推进大地图时间，濒死倒计时归零即永久死亡
func (ss *SessionService) TickOverworld(s *models.Session, turns int) {
	s.OverworldTurn += turns
	ss.tickDeathTimers(s, turns)
	s.UpdatedAt = time.Now()
}

func (ss *SessionService) tickDeathTimers(s *models.Session, turns int) {
	for _, c := range s.Party {
		if !c.Dying || c.Dead {
			continue
		}
		c.DeathTimer -= turns
		if c.DeathTimer <= 0 {
			c.DeathTimer = 0
			c.Dying = false
			c.Dead = true
		}
	}
	if len(s.LivingParty()) == 0 && len(s.Party) > 0 {
		s.GameOver = true
	}
}
