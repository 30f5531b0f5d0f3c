package models

import "time"

// Config 配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Game     GameConfig     `yaml:"game"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type GameConfig struct {
	SoloBalance    bool  `yaml:"solo_balance"`    // 单人模式：减少怪物出现数量
	DyingCountdown int   `yaml:"dying_countdown"` // 濒死倒计时（大地图回合数）
	InventorySlots int   `yaml:"inventory_slots"` // 背包格数
	Seed           int64 `yaml:"seed"`            // 0 表示用时间种子
}

// DefaultGameConfig 游戏默认参数
func DefaultGameConfig() GameConfig {
	return GameConfig{
		SoloBalance:    true,
		DyingCountdown: 60,
		InventorySlots: 10,
	}
}

// SaveGame 存档元信息
type SaveGame struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SessionID   string    `json:"session_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Attr 属性标识
type Attr string

const (
	AttrStrength  Attr = "str"
	AttrDexterity Attr = "dex"
	AttrWillpower Attr = "wil"
	AttrToughness Attr = "tou"
)

// StepBonus 属性加值是阶跃函数：14 及以上 +1，否则 +0
func StepBonus(value int) int {
	if value >= 14 {
		return 1
	}
	return 0
}

// StatusEffect 状态效果（中毒、麻痹等）
type StatusEffect struct {
	Name          string `json:"name"`
	Duration      int    `json:"duration"` // 剩余回合数，-1 表示永久（需外部治疗）
	DamagePerTurn int    `json:"damage_per_turn,omitempty"`
}

const (
	EffectPoisoned  = "poisoned"
	EffectParalyzed = "paralyzed"
	EffectDiseased  = "diseased"
)
