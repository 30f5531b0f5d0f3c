package services

import (
	"testing"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
)

func testGameConfig() models.GameConfig {
	return models.DefaultGameConfig()
}

func TestCreateCustomValidatesRange(t *testing.T) {
	cs := NewCharacterService(dice.NewRoller(1), testGameConfig())

	if _, err := cs.CreateCustom("Bad", 2, 10, 10, 10); err == nil {
		t.Fatal("attribute below 3 should be rejected")
	}
	if _, err := cs.CreateCustom("Bad", 10, 19, 10, 10); err == nil {
		t.Fatal("attribute above 18 should be rejected")
	}
	if _, err := cs.CreateCustom("Ok", 3, 18, 10, 10); err != nil {
		t.Fatalf("boundary attributes should pass: %v", err)
	}
}

func TestCreateCustomStartingState(t *testing.T) {
	// HP 骰 d6=4，起始银币 3d6=2+3+4=9
	seq := dice.NewSequence(4, 2, 3, 4)
	cs := NewCharacterService(seq, testGameConfig())

	c, err := cs.CreateCustom("Fyx", 10, 10, 14, 10)
	if err != nil {
		t.Fatal(err)
	}
	// WIL 14 给 +1 HP：4+1+1 = 6
	if c.HPMax != 6 || c.HPCurrent != 6 {
		t.Fatalf("expected 6 HP, got %d/%d", c.HPCurrent, c.HPMax)
	}
	if c.TotalSilver() != 9 {
		t.Fatalf("expected 9 starting silver, got %d", c.TotalSilver())
	}
	// 外袍加三份干粮
	rations := 0
	for _, item := range c.Inventory {
		if item.Name == "Rations" {
			rations++
		}
	}
	if rations != 3 || c.FindItem("Cloak") == nil {
		t.Fatalf("starting gear wrong: %v", c.Inventory)
	}
	if c.Level != 1 || c.MaxSlots != 10 {
		t.Fatalf("level/slots wrong: %d %d", c.Level, c.MaxSlots)
	}
}

func TestCreateRandomAttributesInRange(t *testing.T) {
	cs := NewCharacterService(dice.NewRoller(42), testGameConfig())
	for i := 0; i < 50; i++ {
		c := cs.CreateRandom("Wanderer")
		for _, v := range []int{c.Strength, c.Dexterity, c.Willpower, c.Toughness} {
			if v < 3 || v > 18 {
				t.Fatalf("attribute %d out of range", v)
			}
		}
		if c.Race == "" || c.Class == "" || c.SpecialSkill == "" || len(c.Traits) != 2 {
			t.Fatalf("random character incomplete: %+v", c)
		}
	}
}

func TestLevelUpImprovesAttributesOnHighRoll(t *testing.T) {
	// HP +d6=3；四项属性各 3d6：
	// STR 投 6+6+6=18 > 10 提升；DEX 投 1+1+1=3 不提升；
	// WIL 投 4+4+4=12 > 11 提升；TOU 投 2+2+2=6 不提升
	seq := dice.NewSequence(3, 6, 6, 6, 1, 1, 1, 4, 4, 4, 2, 2, 2)
	cs := NewCharacterService(seq, testGameConfig())

	c := &models.Character{Strength: 10, Dexterity: 10, Willpower: 11, Toughness: 10, Level: 1, HPMax: 6, HPCurrent: 6}
	cs.LevelUp(c)

	if c.Level != 2 {
		t.Fatalf("level should be 2, got %d", c.Level)
	}
	if c.HPMax != 9 || c.HPCurrent != 9 {
		t.Fatalf("HP should rise by 3, got %d/%d", c.HPCurrent, c.HPMax)
	}
	if c.Strength != 11 || c.Dexterity != 10 || c.Willpower != 12 || c.Toughness != 10 {
		t.Fatalf("attribute improvements wrong: %d/%d/%d/%d",
			c.Strength, c.Dexterity, c.Willpower, c.Toughness)
	}
}

func TestGainXPLevelsAtThreshold(t *testing.T) {
	cs := NewCharacterService(dice.NewRoller(7), testGameConfig())
	c := &models.Character{Strength: 10, Dexterity: 10, Willpower: 10, Toughness: 10, Level: 1, HPMax: 6, HPCurrent: 6}

	if gained := cs.GainXP(c, 19); gained != nil {
		t.Fatal("19 XP should not level up a level 1 character")
	}
	if gained := cs.GainXP(c, 1); len(gained) != 1 || c.Level != 2 {
		t.Fatalf("20 XP total should reach level 2, got %v level %d", gained, c.Level)
	}
	if c.XP != 20 {
		t.Fatalf("XP accumulates across levels, got %d", c.XP)
	}

	// 累计制：3 级门槛是总量 40，而不是升级后再攒 40
	if gained := cs.GainXP(c, 20); len(gained) != 1 || c.Level != 3 {
		t.Fatalf("40 XP total should reach level 3, got %v level %d", gained, c.Level)
	}
	if c.XP != 40 {
		t.Fatalf("XP should stay cumulative, got %d", c.XP)
	}
}

func TestRestOvernight(t *testing.T) {
	seq := dice.NewSequence(4)
	cs := NewCharacterService(seq, testGameConfig())

	c := &models.Character{HPMax: 10, HPCurrent: 3, Fatigued: true, Dying: true, DeathTimer: 12}
	healed := cs.RestOvernight(c)
	if healed != 4 {
		t.Fatalf("expected 4 HP healed, got %d", healed)
	}
	if c.Fatigued || c.Dying || c.DeathTimer != 0 {
		t.Fatalf("rest should clear fatigue and dying: %+v", c)
	}
}

func TestCastScrollSuccess(t *testing.T) {
	// WIL 12，投 8 成功
	seq := dice.NewSequence(8)
	cs := NewCharacterService(seq, testGameConfig())

	c := &models.Character{Willpower: 12, HPMax: 6, HPCurrent: 6, MaxSlots: 10}
	c.Inventory = []models.Item{{Name: "Fireball Scroll", Type: models.ItemScroll}}

	result, err := cs.CastScroll(c, "Fireball Scroll")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || !c.Fatigued {
		t.Fatalf("successful cast should fatigue caster: %+v", result)
	}
	if c.FindItem("Fireball Scroll") != nil {
		t.Fatal("scroll must be consumed on success")
	}
}

func TestCastScrollFailure(t *testing.T) {
	// WIL 12，投 19 失败，反噬 d6=5
	seq := dice.NewSequence(19, 5)
	cs := NewCharacterService(seq, testGameConfig())

	c := &models.Character{Willpower: 12, HPMax: 10, HPCurrent: 10, MaxSlots: 10}
	c.Inventory = []models.Item{{Name: "Sleep Scroll", Type: models.ItemScroll}}

	result, err := cs.CastScroll(c, "Sleep Scroll")
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.DamageTaken != 5 {
		t.Fatalf("failed cast should deal 5 backlash, got %+v", result)
	}
	if c.HPCurrent != 5 || c.Fatigued {
		t.Fatalf("backlash wrong: hp=%d fatigued=%v", c.HPCurrent, c.Fatigued)
	}
	if c.FindItem("Sleep Scroll") != nil {
		t.Fatal("scroll must be consumed on failure too")
	}
}

func TestCastScrollRequiresScroll(t *testing.T) {
	cs := NewCharacterService(dice.NewRoller(1), testGameConfig())
	c := &models.Character{Willpower: 12, MaxSlots: 10}
	c.Inventory = []models.Item{{Name: "Torch", Type: models.ItemMisc}}

	if _, err := cs.CastScroll(c, "Fireball Scroll"); err == nil {
		t.Fatal("missing scroll should error")
	}
	if _, err := cs.CastScroll(c, "Torch"); err == nil {
		t.Fatal("non-scroll item should error")
	}
}
