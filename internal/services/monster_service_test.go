package services

import (
	"testing"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
	"github.com/aiwuxian/project-delve/internal/tables"
)

func TestRollHPFormats(t *testing.T) {
	cfg := testGameConfig()

	// "2+2" = 2d8+2，投 3 和 4 得 9
	ms := NewMonsterService(dice.NewSequence(3, 4), cfg)
	hp, err := ms.RollHP("2+2")
	if err != nil || hp != 9 {
		t.Fatalf("2+2 with rolls 3,4 should be 9, got %d err=%v", hp, err)
	}

	// "1-1" = 1d8-1，投 1 钳位到 1
	ms = NewMonsterService(dice.NewSequence(1), cfg)
	hp, err = ms.RollHP("1-1")
	if err != nil || hp != 1 {
		t.Fatalf("1-1 with roll 1 should floor at 1, got %d err=%v", hp, err)
	}

	// "1/2" 投 1d4
	ms = NewMonsterService(dice.NewSequence(3), cfg)
	hp, err = ms.RollHP("1/2")
	if err != nil || hp != 3 {
		t.Fatalf("1/2 should roll 1d4, got %d err=%v", hp, err)
	}

	// "1d2HP" 直接投 1d2
	ms = NewMonsterService(dice.NewSequence(2), cfg)
	hp, err = ms.RollHP("1d2HP")
	if err != nil || hp != 2 {
		t.Fatalf("1d2HP should roll 1d2, got %d err=%v", hp, err)
	}

	// "2d6" 裸骰子表达式，投 3 和 4 得 7
	ms = NewMonsterService(dice.NewSequence(3, 4), cfg)
	hp, err = ms.RollHP("2d6")
	if err != nil || hp != 7 {
		t.Fatalf("2d6 with rolls 3,4 should be 7, got %d err=%v", hp, err)
	}

	// "1d8+1" 带修正的裸表达式
	ms = NewMonsterService(dice.NewSequence(5), cfg)
	hp, err = ms.RollHP("1d8+1")
	if err != nil || hp != 6 {
		t.Fatalf("1d8+1 with roll 5 should be 6, got %d err=%v", hp, err)
	}

	// "7-9" = 7d8-9
	ms = NewMonsterService(dice.NewSequence(8, 8, 8, 8, 8, 8, 8), cfg)
	hp, err = ms.RollHP("7-9")
	if err != nil || hp != 47 {
		t.Fatalf("7-9 with all 8s should be 47, got %d err=%v", hp, err)
	}
}

func TestRollHPRejectsGarbage(t *testing.T) {
	ms := NewMonsterService(dice.NewRoller(1), testGameConfig())
	for _, hd := range []string{"", "abc", "d+", "x2"} {
		if _, err := ms.RollHP(hd); err == nil {
			t.Fatalf("RollHP(%q) should error, never default", hd)
		}
	}
}

func TestXPFromHD(t *testing.T) {
	cases := map[string]int{
		"1/2":   10,
		"1":     50,
		"1-1":   50,
		"2+2":   100,
		"3":     200,
		"4":     450,
		"6+4":   1100,
		"7-9":   1800,
		"10":    3900,
		"12":    5900,
		"1d2HP": 10,
	}
	for hd, want := range cases {
		if got := XPFromHD(hd); got != want {
			t.Fatalf("XPFromHD(%q) = %d, want %d", hd, got, want)
		}
	}
}

func TestFromTableEntry(t *testing.T) {
	entry := tables.MonsterEntry{Name: "Spider", HD: "2+2", AC: 13, Attack: "Bite, Poison, Web"}
	ms := NewMonsterService(dice.NewSequence(4, 4), testGameConfig())

	m, err := ms.FromTableEntry(entry, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.HPMax != 10 || m.HPCurrent != 10 {
		t.Fatalf("spider HP should be 10, got %d", m.HPMax)
	}
	if !m.Alive || m.AC != 13 || m.XPValue != 100 {
		t.Fatalf("spider stats wrong: %+v", m)
	}
	if !m.HasAbility(models.AbilityPoison) || !m.HasAbility(models.AbilityWeb) {
		t.Fatalf("spider abilities wrong: %v", m.Abilities)
	}
}

func TestNumberAppearingSoloBalance(t *testing.T) {
	cfg := testGameConfig() // solo_balance 默认开启
	ms := NewMonsterService(dice.NewRoller(3), cfg)

	for i := 0; i < 100; i++ {
		if n := ms.NumberAppearing(1); n < 1 || n > 2 {
			t.Fatalf("solo tier 1 should spawn 1-2, got %d", n)
		}
	}
	if n := ms.NumberAppearing(2); n != 1 {
		t.Fatalf("solo tier 2 should always spawn 1, got %d", n)
	}
}

func TestSpawnGroupNumbersNames(t *testing.T) {
	entry := tables.MonsterEntry{Name: "Kobold", HD: "1/2", AC: 13, Attack: "Weapon"}
	ms := NewMonsterService(dice.NewSequence(2, 3, 1), testGameConfig())

	group, err := ms.SpawnGroup(entry, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(group) != 3 {
		t.Fatalf("expected 3 kobolds, got %d", len(group))
	}
	if group[0].Name != "Kobold #1" || group[2].Name != "Kobold #3" {
		t.Fatalf("names should be numbered: %s, %s", group[0].Name, group[2].Name)
	}
	if group[0].ID == group[1].ID {
		t.Fatal("each monster needs a unique ID")
	}
}
