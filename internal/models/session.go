package models

import "time"

// Session 一局游戏：队伍、当前地城、进行中的遭遇战。
// 遭遇战归会话所有，同一会话同时只允许一场。
type Session struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Party           []*Character `json:"party"`
	Dungeon         *Dungeon     `json:"dungeon,omitempty"`
	ActiveEncounter *Encounter   `json:"active_encounter,omitempty"`
	OverworldTurn   int          `json:"overworld_turn"`
	GameOver        bool         `json:"game_over"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// LivingParty 未死亡的队伍成员
func (s *Session) LivingParty() []*Character {
	var living []*Character
	for _, c := range s.Party {
		if !c.Dead {
			living = append(living, c)
		}
	}
	return living
}

// InCombat 是否有进行中的遭遇战
func (s *Session) InCombat() bool {
	return s.ActiveEncounter != nil && !s.ActiveEncounter.Over()
}

// FindCharacter 按 ID 查找队伍成员
func (s *Session) FindCharacter(id string) *Character {
	for _, c := range s.Party {
		if c.ID == id {
			return c
		}
	}
	return nil
}
