package models

// ContentsKind 房间内容变体标签
type ContentsKind string

const (
	ContentsEmpty           ContentsKind = "empty"
	ContentsSpoor           ContentsKind = "spoor"
	ContentsDiscovery       ContentsKind = "discovery"
	ContentsDanger          ContentsKind = "danger"
	ContentsDiscoveryDanger ContentsKind = "discovery_danger"
)

// Discovery 发现类内容
type Discovery struct {
	Category string `json:"category"` // Special Room / Feature / Item / Treasure A / Treasure B
	Detail   string `json:"detail"`
}

// Danger 危险类内容
type Danger struct {
	Category string `json:"category"` // Hazard / Trap / Encounter / Monster
	Detail   string `json:"detail"`
	Trap     *Trap  `json:"trap,omitempty"`
}

// Trap 陷阱：指定豁免属性与伤害骰
type Trap struct {
	Name   string `json:"name"`
	Save   Attr   `json:"save"`
	Damage string `json:"damage"`
}

// RoomContents 带标签的房间内容。Kind 决定哪个指针有效，
// 不存在同时为空或互相矛盾的组合。
type RoomContents struct {
	Kind      ContentsKind `json:"kind"`
	Spoor     string       `json:"spoor,omitempty"`
	Discovery *Discovery   `json:"discovery,omitempty"`
	Danger    *Danger      `json:"danger,omitempty"`
}

// Room 地城房间。线性序列中的一格，可能是房间或走廊。
type Room struct {
	Index    int          `json:"index"`
	Corridor bool         `json:"corridor"`
	Door     string       `json:"door,omitempty"`
	Special  bool         `json:"special,omitempty"` // 特殊房间标记，叙事用
	Contents RoomContents `json:"contents"`
	Monsters []*Monster   `json:"monsters,omitempty"`
	Treasure []Item       `json:"treasure,omitempty"`
	Dressing string       `json:"dressing,omitempty"`
	Explored bool         `json:"explored"`
	Cleared  bool         `json:"cleared"`
}

// HasLiveMonsters 房间内是否还有存活怪物
func (r *Room) HasLiveMonsters() bool {
	for _, m := range r.Monsters {
		if m.Alive {
			return true
		}
	}
	return false
}

// Dungeon 地城：固定长度的线性房间序列
type Dungeon struct {
	ID        string `json:"id"`
	Theme     string `json:"theme"`
	Type      string `json:"type"`
	Adjective string `json:"adjective"`
	Noun      string `json:"noun"`

	// 来历三件套，纯叙事用
	Builder     string `json:"builder,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	Destruction string `json:"destruction,omitempty"`

	Tier      int `json:"tier"`
	TotalRoom int `json:"total_rooms"`

	// SpecialRoomCount 特殊房间预算，生成时逐间消耗
	SpecialRoomCount int `json:"special_room_count"`

	Rooms     []*Room `json:"rooms"`
	Current   int     `json:"current"` // 当前房间下标
	Entered   bool    `json:"entered"`
	Completed bool    `json:"completed"`
}

// Name 地城全名，如 "Haunted Crypt of Forgotten Gods"
func (d *Dungeon) Name() string {
	return d.Theme + " " + d.Type + " of " + d.Adjective + " " + d.Noun
}

// CurrentRoom 当前所在房间
func (d *Dungeon) CurrentRoom() *Room {
	if d.Current < 0 || d.Current >= len(d.Rooms) {
		return nil
	}
	return d.Rooms[d.Current]
}

// Advance 前进到下一个房间。已在最后一间时返回 false，
// 走完全部房间即完成地城。
func (d *Dungeon) Advance() bool {
	if d.Current+1 >= len(d.Rooms) {
		d.Completed = true
		return false
	}
	d.Current++
	d.Rooms[d.Current].Explored = true
	return true
}
