package models

import "testing"

func TestStepBonus(t *testing.T) {
	cases := map[int]int{3: 0, 10: 0, 13: 0, 14: 1, 18: 1}
	for value, want := range cases {
		if got := StepBonus(value); got != want {
			t.Fatalf("StepBonus(%d) = %d, want %d", value, got, want)
		}
	}
}

func newTestCharacter() *Character {
	return &Character{
		Name:      "Test",
		Strength:  10,
		Dexterity: 10,
		Willpower: 10,
		Toughness: 14,
		Level:     1,
		HPMax:     6,
		HPCurrent: 6,
		MaxSlots:  10,
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	c := newTestCharacter()
	dealt, atZero := c.TakeDamage(10)
	if dealt != 10 || !atZero {
		t.Fatalf("expected 10 damage and at-zero, got %d %v", dealt, atZero)
	}
	if c.HPCurrent != 0 {
		t.Fatalf("HP should floor at 0, got %d", c.HPCurrent)
	}
	if c.Dead {
		t.Fatal("zero HP must not set Dead directly")
	}
}

func TestHealCapsAtMax(t *testing.T) {
	c := newTestCharacter()
	c.HPCurrent = 2
	healed := c.Heal(100)
	if healed != 4 {
		t.Fatalf("expected 4 healed, got %d", healed)
	}
	if c.HPCurrent != c.HPMax {
		t.Fatalf("HP should cap at max, got %d", c.HPCurrent)
	}
}

func TestACFromToughnessAndEquipment(t *testing.T) {
	c := newTestCharacter()
	if c.AC() != 11 {
		t.Fatalf("base AC with TOU 14 should be 11, got %d", c.AC())
	}
	armor := &Item{Name: "Chain Mail", Type: ItemArmor, Slot: SlotArmor, ACBonus: 2}
	shield := &Item{Name: "Worn Shield", Type: ItemShield, Slot: SlotShield, ACBonus: 1}
	c.Equipment.Armor = armor
	c.Equipment.Shield = shield
	if c.AC() != 14 {
		t.Fatalf("AC with armor+shield should be 14, got %d", c.AC())
	}
}

func TestInventorySlotBoundary(t *testing.T) {
	c := newTestCharacter()
	for i := 0; i < 9; i++ {
		if err := c.AddToInventory(Item{Name: "Torch", Type: ItemMisc}); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	// 剩 1 格，笨重道具占 2 格，应被拒绝
	bulky := Item{Name: "Great Sword", Type: ItemWeapon, Bulky: true}
	if err := c.AddToInventory(bulky); err == nil {
		t.Fatal("bulky item should not fit in 1 remaining slot")
	}
	if err := c.AddToInventory(Item{Name: "Key", Type: ItemMisc}); err != nil {
		t.Fatalf("1-slot item should fit: %v", err)
	}
	if c.SlotsUsed() != 10 {
		t.Fatalf("slots used should be 10, got %d", c.SlotsUsed())
	}
	if err := c.AddToInventory(Item{Name: "Twine", Type: ItemMisc}); err == nil {
		t.Fatal("full inventory should reject further items")
	}
}

func TestCurrencyAutoConvert(t *testing.T) {
	c := newTestCharacter()
	c.AddCurrency(27, 0)
	if c.Gold != 2 || c.Silver != 7 {
		t.Fatalf("27 silver should convert to 2g7s, got %dg%ds", c.Gold, c.Silver)
	}
	if c.TotalSilver() != 27 {
		t.Fatalf("total should stay 27, got %d", c.TotalSilver())
	}
	if c.SpendCurrency(0, 3) {
		t.Fatal("spending 3 gold with 2g7s should fail")
	}
	if !c.SpendCurrency(5, 2) {
		t.Fatal("spending 2g5s with 2g7s should succeed")
	}
	if c.TotalSilver() != 2 {
		t.Fatalf("expected 2 silver left, got %d", c.TotalSilver())
	}
}

func TestEquipSwapsToInventory(t *testing.T) {
	c := newTestCharacter()
	sword := Item{Name: "Short Sword", Type: ItemWeapon, Slot: SlotWeapon, DamageDie: "1d6"}
	axe := Item{Name: "Axe", Type: ItemWeapon, Slot: SlotWeapon, DamageDie: "1d6"}
	if err := c.AddToInventory(sword); err != nil {
		t.Fatal(err)
	}
	if err := c.AddToInventory(axe); err != nil {
		t.Fatal(err)
	}
	if err := c.Equip(sword); err != nil {
		t.Fatal(err)
	}
	if err := c.Equip(axe); err != nil {
		t.Fatal(err)
	}
	if c.Equipment.Weapon == nil || c.Equipment.Weapon.Name != "Axe" {
		t.Fatal("axe should be equipped")
	}
	if c.FindItem("Short Sword") == nil {
		t.Fatal("swapped-out sword should return to inventory")
	}
}

func TestSacrificeEquipment(t *testing.T) {
	c := newTestCharacter()
	shield := Item{Name: "Worn Shield", Type: ItemShield, Slot: SlotShield, ACBonus: 1}
	c.Equipment.Shield = &shield
	name, ok := c.SacrificeEquipment(SlotShield)
	if !ok || name != "Worn Shield" {
		t.Fatalf("sacrifice failed: %q %v", name, ok)
	}
	if c.Equipment.Shield != nil {
		t.Fatal("sacrificed shield should be destroyed")
	}
	if _, ok := c.SacrificeEquipment(SlotShield); ok {
		t.Fatal("empty slot cannot be sacrificed")
	}
	if _, ok := c.SacrificeEquipment(SlotWeapon); ok {
		t.Fatal("weapons cannot be sacrificed")
	}
}

func TestStatusEffectReapplyResets(t *testing.T) {
	c := newTestCharacter()
	c.AddStatusEffect(StatusEffect{Name: EffectPoisoned, Duration: 6, DamagePerTurn: 1})
	c.TickStatusEffects()
	c.TickStatusEffects()
	c.AddStatusEffect(StatusEffect{Name: EffectPoisoned, Duration: 6, DamagePerTurn: 1})
	if len(c.StatusEffects) != 1 {
		t.Fatalf("poison should not stack, got %d effects", len(c.StatusEffects))
	}
	if c.StatusEffects[0].Duration != 6 {
		t.Fatalf("reapply should reset duration to 6, got %d", c.StatusEffects[0].Duration)
	}
}

func TestStatusEffectTickExpiry(t *testing.T) {
	c := newTestCharacter()
	c.AddStatusEffect(StatusEffect{Name: EffectPoisoned, Duration: 2, DamagePerTurn: 1})
	c.AddStatusEffect(StatusEffect{Name: EffectDiseased, Duration: -1})
	if expired := c.TickStatusEffects(); len(expired) != 0 {
		t.Fatalf("nothing should expire yet, got %v", expired)
	}
	expired := c.TickStatusEffects()
	if len(expired) != 1 || expired[0].Name != EffectPoisoned {
		t.Fatalf("poison should expire, got %v", expired)
	}
	if !c.HasStatusEffect(EffectDiseased) {
		t.Fatal("permanent disease must survive ticks")
	}
}

func TestMonsterTakeDamageKills(t *testing.T) {
	m := &Monster{Name: "Kobold", HPMax: 3, HPCurrent: 3, Alive: true}
	m.TakeDamage(5)
	if m.Alive || m.HPCurrent != 0 {
		t.Fatalf("monster should be dead at 0 HP, alive=%v hp=%d", m.Alive, m.HPCurrent)
	}
	if m.Heal(2) != 0 {
		t.Fatal("dead monster cannot heal")
	}
}

func TestParseAbilities(t *testing.T) {
	abilities := ParseAbilities("Bite, Poison, Web", "")
	want := map[Ability]bool{AbilityPoison: true, AbilityWeb: true}
	if len(abilities) != 2 {
		t.Fatalf("expected 2 abilities, got %v", abilities)
	}
	for _, a := range abilities {
		if !want[a] {
			t.Fatalf("unexpected ability %s", a)
		}
	}

	vampire := ParseAbilities("Bite, Imn. Wpn, Regen.", "")
	m := &Monster{Abilities: vampire}
	if !m.HasAbility(AbilityImmuneWeapon) || !m.HasAbility(AbilityRegeneration) {
		t.Fatalf("vampire abilities wrong: %v", vampire)
	}
}

func TestMonsterAttackBonus(t *testing.T) {
	cases := map[string]int{
		"Wpn(+1)":  1,
		"Sword(+3)": 3,
		"Claw(+2)":  2,
		"Bite":      0,
		"Wpn":       0,
	}
	for attack, want := range cases {
		m := &Monster{Attack: attack}
		if got := m.AttackBonus(); got != want {
			t.Fatalf("AttackBonus(%q) = %d, want %d", attack, got, want)
		}
	}
}

func TestMonsterDamageNotation(t *testing.T) {
	cases := map[string]string{
		"Bite 1d4":      "1d4",
		"Claw 2d6":      "2d6",
		"Wpn":           "1d6",
		"Tail Sting":    "1d6",
		"Bite, Poison":  "1d6",
	}
	for attack, want := range cases {
		m := &Monster{Attack: attack}
		if got := m.DamageNotation(); got != want {
			t.Fatalf("DamageNotation(%q) = %q, want %q", attack, got, want)
		}
	}
}

func TestDungeonAdvance(t *testing.T) {
	d := &Dungeon{
		Theme: "Haunted", Type: "Crypt", Adjective: "Forgotten", Noun: "Gods",
		TotalRoom: 3,
		Rooms: []*Room{
			{Index: 0, Contents: RoomContents{Kind: ContentsEmpty}},
			{Index: 1, Contents: RoomContents{Kind: ContentsEmpty}},
			{Index: 2, Contents: RoomContents{Kind: ContentsEmpty}},
		},
	}
	if d.Name() != "Haunted Crypt of Forgotten Gods" {
		t.Fatalf("dungeon name wrong: %q", d.Name())
	}
	if !d.Advance() || d.Current != 1 {
		t.Fatalf("first advance failed, current=%d", d.Current)
	}
	if !d.Advance() || d.Current != 2 {
		t.Fatalf("second advance failed, current=%d", d.Current)
	}
	if d.Advance() {
		t.Fatal("advance past last room should fail")
	}
	if !d.Completed {
		t.Fatal("dungeon should be completed at last room")
	}
}
