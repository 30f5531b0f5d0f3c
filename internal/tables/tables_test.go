package tables

import (
	"testing"

	"github.com/aiwuxian/project-delve/internal/dice"
)

func TestAllD6TablesComplete(t *testing.T) {
	d6Tables := map[string]map[int]string{
		"theme": Theme, "dungeon_type": DungeonType,
		"adjective1": Adjective1, "adjective2": Adjective2,
		"noun1": Noun1, "noun2": Noun2, "size": Size,
		"room": Room, "corridor": Corridor, "spoor": Spoor, "door": Door,
		"discovery": Discovery, "special_room1": SpecialRoom1,
		"special_room2": SpecialRoom2, "feature": Feature,
		"found_item": FoundItem, "treasure_a": TreasureA, "treasure_b": TreasureB,
		"danger": Danger, "hazard": Hazard, "trap": Trap,
		"dressing_natural": DressingNatural, "dressing_man_made": DressingManMade,
		"builder": Builder, "purpose": Purpose, "destruction": Destruction,
		"race": Race, "character_type": CharacterType, "financial": Financial,
		"traits1": Traits1, "traits2": Traits2,
	}
	for name, table := range d6Tables {
		for roll := 1; roll <= 6; roll++ {
			if _, ok := table[roll]; !ok {
				t.Errorf("table %s missing entry for roll %d", name, roll)
			}
		}
		if len(table) != 6 {
			t.Errorf("table %s has %d entries, want 6", name, len(table))
		}
	}
}

func TestDenizenTablesComplete(t *testing.T) {
	denizens := map[string]map[int]MonsterEntry{
		"t1_12": DenizenTier1Range12, "t1_34": DenizenTier1Range34,
		"t1_56": DenizenTier1Range56, "t2_12": DenizenTier2Range12,
		"t2_35": DenizenTier2Range35,
	}
	for name, table := range denizens {
		for roll := 2; roll <= 12; roll++ {
			entry, ok := table[roll]
			if !ok {
				t.Errorf("denizen table %s missing entry for 2d6=%d", name, roll)
				continue
			}
			if entry.Name == "" || entry.HD == "" || entry.AC == 0 {
				t.Errorf("denizen table %s entry %d incomplete: %+v", name, roll, entry)
			}
		}
	}
}

func TestRollDenizenSelectsByDepth(t *testing.T) {
	// d6=1 选前段表，2d6=2+2=4 应得 Giant Rat
	seq := dice.NewSequence(1, 2, 2)
	entry := RollDenizen(seq, 1)
	if entry.Name != "Giant Rat" {
		t.Fatalf("expected Giant Rat, got %s", entry.Name)
	}

	// d6=6 选深处表，2d6=6+6=12 应得 Hell Hound
	seq = dice.NewSequence(6, 6, 6)
	entry = RollDenizen(seq, 1)
	if entry.Name != "Hell Hound" {
		t.Fatalf("expected Hell Hound, got %s", entry.Name)
	}

	// 二阶深处 2d6=8 应得 Death Knight
	seq = dice.NewSequence(3, 4, 4)
	entry = RollDenizen(seq, 2)
	if entry.Name != "Death Knight" {
		t.Fatalf("expected Death Knight, got %s", entry.Name)
	}
}

func TestRollCorpseLoot(t *testing.T) {
	// 表一条目三是 Lint
	seq := dice.NewSequence(1, 3)
	if got := RollCorpseLoot(seq); got != "Lint" {
		t.Fatalf("expected Lint, got %q", got)
	}
	// 表三条目六是 Scroll
	seq = dice.NewSequence(3, 6)
	if got := RollCorpseLoot(seq); got != "Scroll" {
		t.Fatalf("expected Scroll, got %q", got)
	}
}

func TestRollSpecialSkill(t *testing.T) {
	seq := dice.NewSequence(5)
	if got := RollSpecialSkill(seq); got != "Arcanism" {
		t.Fatalf("expected Arcanism, got %q", got)
	}
}
