package services

import (
	"strings"
	"testing"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
)

func newDungeonService(src dice.Source) *DungeonService {
	cfg := testGameConfig()
	return NewDungeonService(src, NewMonsterService(src, cfg), NewItemService(src))
}

func TestGenerateDungeonInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		ds := newDungeonService(dice.NewRoller(seed))
		d, err := ds.Generate(1)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		// 最小规模 1d6+1，最大 3d6+3
		if d.TotalRoom < 2 || d.TotalRoom > 21 {
			t.Fatalf("seed %d: room count %d out of range", seed, d.TotalRoom)
		}
		if len(d.Rooms) != d.TotalRoom {
			t.Fatalf("seed %d: rooms slice mismatch %d vs %d", seed, len(d.Rooms), d.TotalRoom)
		}
		if !strings.Contains(d.Name(), " of ") {
			t.Fatalf("seed %d: name grammar wrong: %q", seed, d.Name())
		}
		if d.Builder == "" || d.Purpose == "" || d.Destruction == "" {
			t.Fatalf("seed %d: history flavor missing: %+v", seed, d)
		}
		if d.SpecialRoomCount < 1 || d.SpecialRoomCount > 3 {
			t.Fatalf("seed %d: special room budget %d out of range", seed, d.SpecialRoomCount)
		}
		if !d.Rooms[0].Explored {
			t.Fatalf("seed %d: entrance must start explored", seed)
		}
		if d.Current != 0 || d.Completed {
			t.Fatalf("seed %d: fresh dungeon position wrong", seed)
		}

		// 线性序列：下标连续
		for i, room := range d.Rooms {
			if room.Index != i {
				t.Fatalf("seed %d: room index %d at position %d", seed, room.Index, i)
			}
		}
	}
}

func TestGenerateRoomContentsConsistency(t *testing.T) {
	for seed := int64(100); seed < 140; seed++ {
		ds := newDungeonService(dice.NewRoller(seed))
		d, err := ds.Generate(2)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, room := range d.Rooms {
			c := room.Contents
			switch c.Kind {
			case models.ContentsEmpty:
				if c.Spoor != "" || c.Discovery != nil || c.Danger != nil {
					t.Fatalf("empty room carries payload: %+v", c)
				}
			case models.ContentsSpoor:
				if c.Spoor == "" {
					t.Fatal("spoor room missing spoor text")
				}
			case models.ContentsDiscovery:
				if c.Discovery == nil || c.Danger != nil {
					t.Fatalf("discovery variant wrong: %+v", c)
				}
			case models.ContentsDanger:
				if c.Danger == nil || c.Discovery != nil {
					t.Fatalf("danger variant wrong: %+v", c)
				}
			case models.ContentsDiscoveryDanger:
				if c.Discovery == nil || c.Danger == nil {
					t.Fatalf("combined variant needs both: %+v", c)
				}
			default:
				t.Fatalf("unknown contents kind %q", c.Kind)
			}

			for _, m := range room.Monsters {
				if m.HPMax < 1 || !m.Alive {
					t.Fatalf("spawned monster invalid: %+v", m)
				}
			}
			if room.Contents.Danger != nil && room.Contents.Danger.Category == "Trap" {
				if room.Contents.Danger.Trap == nil {
					t.Fatal("trap danger must carry a trap spec")
				}
			}
		}
	}
}

func TestResolveTrapFailureDealsDamage(t *testing.T) {
	src := dice.NewSequence(15, 4)
	ds := newDungeonService(src)
	engine := NewRuleEngine(src)

	c := &models.Character{Name: "Scout", Dexterity: 10, HPMax: 10, HPCurrent: 10}
	trap := &models.Trap{Name: "Pit", Save: models.AttrDexterity, Damage: "1d6"}

	result := ds.ResolveTrap(engine, c, trap)
	if result.Success || result.Damage != 4 {
		t.Fatalf("failed save should deal 4: %+v", result)
	}
	if c.HPCurrent != 6 {
		t.Fatalf("character should be at 6 HP, got %d", c.HPCurrent)
	}
}

func TestResolveTrapSuccessAvoidsDamage(t *testing.T) {
	src := dice.NewSequence(3)
	ds := newDungeonService(src)
	engine := NewRuleEngine(src)

	c := &models.Character{Name: "Scout", Dexterity: 12, HPMax: 10, HPCurrent: 10}
	trap := &models.Trap{Name: "Dart", Save: models.AttrDexterity, Damage: "1d4"}

	result := ds.ResolveTrap(engine, c, trap)
	if !result.Success || result.Damage != 0 || c.HPCurrent != 10 {
		t.Fatalf("successful save should avoid damage: %+v hp=%d", result, c.HPCurrent)
	}
}
