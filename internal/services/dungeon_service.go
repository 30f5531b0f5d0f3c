package services

import (
	"github.com/google/uuid"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/tables"
)

// DungeonService 地城生成：命名、定长线性房间序列、逐间填充内容
type DungeonService struct {
	src      dice.Source
	monsters *MonsterService
	items    *ItemService
}

func NewDungeonService(src dice.Source, monsters *MonsterService, items *ItemService) *DungeonService {
	return &DungeonService{src: src, monsters: monsters, items: items}
}

// trapSpecs 陷阱的豁免属性与伤害骰
var trapSpecs = map[string]models.Trap{
	"Pit":      {Name: "Pit", Save: models.AttrDexterity, Damage: "1d6"},
	"Dart":     {Name: "Dart", Save: models.AttrDexterity, Damage: "1d4"},
	"Spike":    {Name: "Spike", Save: models.AttrDexterity, Damage: "1d6"},
	"Pendulum": {Name: "Pendulum", Save: models.AttrDexterity, Damage: "1d8"},
	"Boulder":  {Name: "Boulder", Save: models.AttrStrength, Damage: "2d6"},
	"Acid":     {Name: "Acid", Save: models.AttrToughness, Damage: "1d6"},
}

// Generate 生成一座地城。名字四段查表拼成，
// 规模先 d6 查表得骰子表达式，再投出房间总数。
func (ds *DungeonService) Generate(tier int) (*models.Dungeon, error) {
	d := &models.Dungeon{
		ID:    uuid.New().String(),
		Theme: dice.Lookup("theme", tables.Theme, dice.D6(ds.src)),
		Type:  dice.Lookup("dungeon_type", tables.DungeonType, dice.D6(ds.src)),
		Tier:  tier,
	}

	// 形容词与名词：d6 结果 1-3 查表一，4-6 查表二
	if dice.D6(ds.src) <= 3 {
		d.Adjective = dice.Lookup("adjective1", tables.Adjective1, dice.D6(ds.src))
	} else {
		d.Adjective = dice.Lookup("adjective2", tables.Adjective2, dice.D6(ds.src))
	}
	if dice.D6(ds.src) <= 3 {
		d.Noun = dice.Lookup("noun1", tables.Noun1, dice.D6(ds.src))
	} else {
		d.Noun = dice.Lookup("noun2", tables.Noun2, dice.D6(ds.src))
	}

	d.Builder = dice.Lookup("builder", tables.Builder, dice.D6(ds.src))
	d.Purpose = dice.Lookup("purpose", tables.Purpose, dice.D6(ds.src))
	d.Destruction = dice.Lookup("destruction", tables.Destruction, dice.D6(ds.src))

	sizeExpr := dice.Lookup("size", tables.Size, dice.D6(ds.src))
	notation, err := dice.ParseNotation(sizeExpr)
	if err != nil {
		return nil, err
	}
	d.TotalRoom = notation.Roll(ds.src)
	d.SpecialRoomCount = dice.Lookup("special_rooms_count", tables.SpecialRoomsCount, dice.D6(ds.src))

	placed := 0
	d.Rooms = make([]*models.Room, 0, d.TotalRoom)
	for i := 0; i < d.TotalRoom; i++ {
		room, err := ds.generateRoom(i, tier)
		if err != nil {
			return nil, err
		}
		// 特殊房间预算没用完时，2/6 概率把这间标成特殊
		if room.Contents.Discovery != nil && room.Contents.Discovery.Category == "Special Room" {
			room.Special = true
			placed++
		} else if placed < d.SpecialRoomCount && !room.Corridor && dice.D6(ds.src) <= 2 {
			room.Special = true
			placed++
		}
		d.Rooms = append(d.Rooms, room)
	}

	// 入口房一定已探索
	if len(d.Rooms) > 0 {
		d.Rooms[0].Explored = true
	}
	return d, nil
}

// generateRoom 生成单个房间。d6 1-2 是走廊，3-6 是房间，
// 走廊用更空旷的内容表。
func (ds *DungeonService) generateRoom(index, tier int) (*models.Room, error) {
	room := &models.Room{Index: index}

	contentTable := tables.Room
	if index > 0 && dice.D6(ds.src) <= 2 {
		room.Corridor = true
		contentTable = tables.Corridor
	}
	if !room.Corridor && index > 0 {
		room.Door = dice.Lookup("door", tables.Door, dice.D6(ds.src))
	}

	// 陈设：天然与人造各一半概率
	if dice.D6(ds.src) <= 3 {
		room.Dressing = dice.Lookup("dressing_natural", tables.DressingNatural, dice.D6(ds.src))
	} else {
		room.Dressing = dice.Lookup("dressing_man_made", tables.DressingManMade, dice.D6(ds.src))
	}

	category := dice.Lookup("room_contents", contentTable, dice.D6(ds.src))
	switch category {
	case "Empty":
		room.Contents = models.RoomContents{Kind: models.ContentsEmpty}
		room.Cleared = true
	case "Spoor":
		room.Contents = models.RoomContents{
			Kind:  models.ContentsSpoor,
			Spoor: dice.Lookup("spoor", tables.Spoor, dice.D6(ds.src)),
		}
		room.Cleared = true
	case "Discovery":
		discovery := ds.rollDiscovery(room, tier)
		room.Contents = models.RoomContents{Kind: models.ContentsDiscovery, Discovery: discovery}
		// 发现之后 2/6 概率同时伴随危险
		if dice.D6(ds.src) <= 2 {
			danger, err := ds.rollDanger(room, tier)
			if err != nil {
				return nil, err
			}
			room.Contents.Kind = models.ContentsDiscoveryDanger
			room.Contents.Danger = danger
		}
	case "Danger":
		danger, err := ds.rollDanger(room, tier)
		if err != nil {
			return nil, err
		}
		room.Contents = models.RoomContents{Kind: models.ContentsDanger, Danger: danger}
	}
	return room, nil
}

// rollDiscovery 投发现类内容，顺带把宝藏实体化进房间
func (ds *DungeonService) rollDiscovery(room *models.Room, tier int) *models.Discovery {
	category := dice.Lookup("discovery", tables.Discovery, dice.D6(ds.src))
	discovery := &models.Discovery{Category: category}

	switch category {
	case "Special Room":
		if dice.D6(ds.src) <= 3 {
			discovery.Detail = dice.Lookup("special_room1", tables.SpecialRoom1, dice.D6(ds.src))
		} else {
			discovery.Detail = dice.Lookup("special_room2", tables.SpecialRoom2, dice.D6(ds.src))
		}
	case "Feature":
		discovery.Detail = dice.Lookup("feature", tables.Feature, dice.D6(ds.src))
	case "Item":
		discovery.Detail = dice.Lookup("found_item", tables.FoundItem, dice.D6(ds.src))
		if discovery.Detail == "Weapon" {
			room.Treasure = append(room.Treasure, ds.items.GenerateWeapon(tier))
		} else {
			room.Treasure = append(room.Treasure, models.Item{
				Name: discovery.Detail, Type: models.ItemMisc, Value: 1,
			})
		}
	case "Treasure A":
		discovery.Detail = dice.Lookup("treasure_a", tables.TreasureA, dice.D6(ds.src))
		ds.attachTreasure(room, discovery.Detail, tier)
	case "Treasure B":
		discovery.Detail = dice.Lookup("treasure_b", tables.TreasureB, dice.D6(ds.src))
		ds.attachTreasure(room, discovery.Detail, tier)
	}
	return discovery
}

// attachTreasure 把宝藏表原文解析成道具与钱放进房间。
// 钱折算成等值的银币道具，拾取时再入账。
func (ds *DungeonService) attachTreasure(room *models.Room, text string, tier int) {
	result := ds.items.ResolveTreasure(text, tier)
	room.Treasure = append(room.Treasure, result.Items...)
	if total := result.Silver + result.Gold*10; total > 0 {
		room.Treasure = append(room.Treasure, models.Item{
			Name: text, Type: models.ItemMisc, Value: total,
			EffectType: "currency",
		})
	}
}

// rollDanger 投危险类内容，怪物类会把实例挂到房间
func (ds *DungeonService) rollDanger(room *models.Room, tier int) (*models.Danger, error) {
	category := dice.Lookup("danger", tables.Danger, dice.D6(ds.src))
	danger := &models.Danger{Category: category}

	switch category {
	case "Hazard":
		danger.Detail = dice.Lookup("hazard", tables.Hazard, dice.D6(ds.src))
	case "Trap":
		danger.Detail = dice.Lookup("trap", tables.Trap, dice.D6(ds.src))
		spec := trapSpecs[danger.Detail]
		danger.Trap = &spec
	case "Encounter":
		// 遭遇按一阶怪物处理
		monsters, err := ds.monsters.SpawnRandom(1)
		if err != nil {
			return nil, err
		}
		room.Monsters = monsters
	case "Monster (T1)":
		monsters, err := ds.monsters.SpawnRandom(1)
		if err != nil {
			return nil, err
		}
		room.Monsters = monsters
	case "Monster (T2)":
		monsters, err := ds.monsters.SpawnRandom(2)
		if err != nil {
			return nil, err
		}
		room.Monsters = monsters
	}
	return danger, nil
}

// TrapSaveResult 踩陷阱的豁免结果
type TrapSaveResult struct {
	Trap    string `json:"trap"`
	Roll    int    `json:"roll"`
	Success bool   `json:"success"`
	Damage  int    `json:"damage"`
}

// ResolveTrap 角色触发陷阱：按陷阱规格做豁免，失败吃伤害
func (ds *DungeonService) ResolveTrap(engine *RuleEngine, c *models.Character, trap *models.Trap) TrapSaveResult {
	roll, success := engine.SavingThrow(c, trap.Save, false, false)
	result := TrapSaveResult{Trap: trap.Name, Roll: roll, Success: success}
	if !success {
		result.Damage = engine.RollDamage(trap.Damage)
		c.TakeDamage(result.Damage)
	}
	return result
}
