package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/tables"
)

// MonsterService 怪物实例化：解析生命骰、算经验值、成群生成
type MonsterService struct {
	src dice.Source
	cfg models.GameConfig
}

func NewMonsterService(src dice.Source, cfg models.GameConfig) *MonsterService {
	return &MonsterService{src: src, cfg: cfg}
}

var (
	hdDicePattern     = regexp.MustCompile(`^(\d+)d(\d+)`)
	hdStandardPattern = regexp.MustCompile(`^(\d+)([+-]\d+)?$`)
)

// RollHP 按生命骰文本投 HP。支持的格式：
//
//	"1d2HP"  直接投 1d2
//	"2d6"    普通骰子表达式，可带 +K/-K
//	"1/2"    半 HD，投 1d4
//	"2+2"    2d8+2
//	"1-1"    1d8-1
//	"7-9"    7d8-9
//
// 结果不低于 1。无法识别的格式返回错误，绝不静默给默认值。
func (ms *MonsterService) RollHP(hd string) (int, error) {
	hd = strings.TrimSpace(hd)

	if strings.Contains(strings.ToUpper(hd), "HP") {
		m := hdDicePattern.FindStringSubmatch(hd)
		if m == nil {
			return 0, fmt.Errorf("无法解析生命骰: %q", hd)
		}
		count, _ := strconv.Atoi(m[1])
		sides, _ := strconv.Atoi(m[2])
		return atLeastOne(dice.Sum(ms.src, count, sides)), nil
	}

	if strings.Contains(hd, "/") {
		return atLeastOne(dice.D4(ms.src)), nil
	}

	// 裸骰子表达式，如 "2d6"、"1d8+1"
	if strings.ContainsAny(hd, "dD") {
		notation, err := dice.ParseNotation(hd)
		if err != nil {
			return 0, fmt.Errorf("无法解析生命骰: %q", hd)
		}
		return notation.Roll(ms.src), nil
	}

	m := hdStandardPattern.FindStringSubmatch(hd)
	if m == nil {
		return 0, fmt.Errorf("无法解析生命骰: %q", hd)
	}
	count, _ := strconv.Atoi(m[1])
	modifier := 0
	if m[2] != "" {
		modifier, _ = strconv.Atoi(m[2])
	}
	return atLeastOne(dice.Sum(ms.src, count, 8) + modifier), nil
}

// XPFromHD 按生命骰估算经验值，半 HD 起步
func XPFromHD(hd string) int {
	hd = strings.TrimSpace(hd)

	var value float64 = 1
	switch {
	case strings.Contains(hd, "/"):
		value = 0.5
	case strings.Contains(strings.ToUpper(hd), "HP"):
		if m := hdDicePattern.FindStringSubmatch(hd); m != nil {
			count, _ := strconv.Atoi(m[1])
			value = float64(count) / 2
			if value < 0.5 {
				value = 0.5
			}
		}
	default:
		if m := regexp.MustCompile(`^(\d+)`).FindStringSubmatch(hd); m != nil {
			n, _ := strconv.Atoi(m[1])
			value = float64(n)
		}
	}

	thresholds := []struct {
		hd int
		xp int
	}{
		{1, 50}, {2, 100}, {3, 200}, {4, 450}, {5, 700},
		{6, 1100}, {7, 1800}, {8, 2300}, {9, 2900}, {10, 3900},
	}
	if value <= 0.5 {
		return 10
	}
	for _, t := range thresholds {
		if value <= float64(t.hd) {
			return t.xp
		}
	}
	return 3900 + (int(value)-10)*1000
}

// FromTableEntry 按怪物表条目实例化：投 HP、解析能力、算经验
func (ms *MonsterService) FromTableEntry(entry tables.MonsterEntry, tier int) (*models.Monster, error) {
	hp, err := ms.RollHP(entry.HD)
	if err != nil {
		return nil, fmt.Errorf("生成怪物 %s 失败: %w", entry.Name, err)
	}
	return &models.Monster{
		ID:        uuid.New().String(),
		Name:      entry.Name,
		HD:        entry.HD,
		AC:        entry.AC,
		Attack:    entry.Attack,
		Special:   entry.Special,
		HPMax:     hp,
		HPCurrent: hp,
		XPValue:   XPFromHD(entry.HD),
		Tier:      tier,
		Abilities: models.ParseAbilities(entry.Attack, entry.Special),
		Alive:     true,
	}, nil
}

// NumberAppearing 出现数量。单人模式下调：一阶 1d2，二阶恒 1；
// 队伍模式 1d4。
func (ms *MonsterService) NumberAppearing(tier int) int {
	if ms.cfg.SoloBalance {
		if tier >= 2 {
			return 1
		}
		return ms.src.Roll(2)
	}
	return dice.D4(ms.src)
}

// SpawnGroup 生成一组同种怪物，多只时名字加编号区分
func (ms *MonsterService) SpawnGroup(entry tables.MonsterEntry, tier, count int) ([]*models.Monster, error) {
	if count <= 0 {
		count = ms.NumberAppearing(tier)
	}
	monsters := make([]*models.Monster, 0, count)
	for i := 0; i < count; i++ {
		m, err := ms.FromTableEntry(entry, tier)
		if err != nil {
			return nil, err
		}
		if count > 1 {
			m.Name = fmt.Sprintf("%s #%d", entry.Name, i+1)
		}
		monsters = append(monsters, m)
	}
	return monsters, nil
}

// SpawnRandom 按阶层查表抽怪并成群生成
func (ms *MonsterService) SpawnRandom(tier int) ([]*models.Monster, error) {
	entry := tables.RollDenizen(ms.src, tier)
	return ms.SpawnGroup(entry, tier, 0)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
