package services

import (
	"testing"

	"github.com/aiwuxian/project-delve/internal/dice"
	"github.com/aiwuxian/project-delve/internal/models"
)

func TestSavingThrowRollUnder(t *testing.T) {
	c := &models.Character{Willpower: 12}

	engine := NewRuleEngine(dice.NewSequence(12))
	if _, success := engine.SavingThrow(c, models.AttrWillpower, false, false); !success {
		t.Fatal("roll equal to attribute should succeed")
	}

	engine = NewRuleEngine(dice.NewSequence(13))
	if _, success := engine.SavingThrow(c, models.AttrWillpower, false, false); success {
		t.Fatal("roll above attribute should fail")
	}
}

func TestSavingThrowFatigueForcesDisadvantage(t *testing.T) {
	c := &models.Character{Willpower: 10, Fatigued: true}

	// 劣势取两骰较大值：8 和 15 应取 15，失败
	engine := NewRuleEngine(dice.NewSequence(8, 15))
	roll, success := engine.SavingThrow(c, models.AttrWillpower, false, false)
	if roll != 15 || success {
		t.Fatalf("fatigued save should take worse roll, got %d success=%v", roll, success)
	}
}

func TestSavingThrowAdvantage(t *testing.T) {
	c := &models.Character{Toughness: 10}

	// 优势取两骰较小值：18 和 6 应取 6，成功
	engine := NewRuleEngine(dice.NewSequence(18, 6))
	roll, success := engine.SavingThrow(c, models.AttrToughness, true, false)
	if roll != 6 || !success {
		t.Fatalf("advantage should take better roll, got %d success=%v", roll, success)
	}
}

func TestDeathSave(t *testing.T) {
	c := &models.Character{Willpower: 10, HPMax: 6}

	engine := NewRuleEngine(dice.NewSequence(7))
	roll, success := engine.DeathSave(c, 60)
	if !success || roll != 7 {
		t.Fatalf("death save should succeed on 7 vs WIL 10")
	}
	if c.HPCurrent != 1 || c.Dying {
		t.Fatalf("successful death save should leave 1 HP, got hp=%d dying=%v", c.HPCurrent, c.Dying)
	}

	engine = NewRuleEngine(dice.NewSequence(18))
	_, success = engine.DeathSave(c, 60)
	if success {
		t.Fatal("death save should fail on 18 vs WIL 10")
	}
	if !c.Dying || c.DeathTimer != 60 {
		t.Fatalf("failed death save should start countdown, dying=%v timer=%d", c.Dying, c.DeathTimer)
	}
}

func TestAttackRollNaturals(t *testing.T) {
	engine := NewRuleEngine(dice.NewSequence(20))
	_, hit, critical, _ := engine.AttackRoll(0, 30, false)
	if !hit || !critical {
		t.Fatal("natural 20 must auto-hit even against impossible AC")
	}

	engine = NewRuleEngine(dice.NewSequence(1))
	_, hit, _, fumble := engine.AttackRoll(100, 5, false)
	if hit || !fumble {
		t.Fatal("natural 1 must auto-miss regardless of bonus")
	}
}

func TestRollDamage(t *testing.T) {
	engine := NewRuleEngine(dice.NewSequence(3, 4))
	if dmg := engine.RollDamage("2d6"); dmg != 7 {
		t.Fatalf("2d6 with rolls 3,4 should deal 7, got %d", dmg)
	}

	// 非法表达式按 1d6 兜底
	engine = NewRuleEngine(dice.NewSequence(5))
	if dmg := engine.RollDamage("garbage"); dmg != 5 {
		t.Fatalf("invalid notation should fall back to 1d6, got %d", dmg)
	}
}
