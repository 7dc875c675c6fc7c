package deck

import (
	"testing"

	"github.com/cardforge/pitch/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	shoe := NewShoe(randutil.New(1))

	if shoe.Remaining() != ShoeSize {
		t.Fatalf("expected %d cards, got %d", ShoeSize, shoe.Remaining())
	}

	seen := make(map[string]bool)
	perSuit := make(map[Suit]int)
	wilds := 0
	for !shoe.IsEmpty() {
		card, ok := shoe.Deal()
		if !ok {
			t.Fatal("Deal returned empty on a non-empty shoe")
		}
		if seen[card.ID] {
			t.Fatalf("duplicate card dealt: %s", card.ID)
		}
		seen[card.ID] = true
		if card.IsWild() {
			wilds++
		} else {
			perSuit[card.Suit]++
		}
	}

	if wilds != 1 {
		t.Errorf("expected exactly 1 wild card, got %d", wilds)
	}
	for _, suit := range AllSuits() {
		if perSuit[suit] != 13 {
			t.Errorf("expected 13 %s, got %d", suit, perSuit[suit])
		}
	}
}

func TestShoeDealFromEmpty(t *testing.T) {
	shoe := NewShoe(randutil.New(2))
	shoe.DealMany(ShoeSize)

	if !shoe.IsEmpty() {
		t.Fatal("shoe should be empty")
	}
	if _, ok := shoe.Deal(); ok {
		t.Error("Deal from empty shoe should report empty, not succeed")
	}
	if got := shoe.DealMany(5); len(got) != 0 {
		t.Errorf("DealMany from empty shoe returned %d cards", len(got))
	}
}

func TestShoeDealManyBestEffort(t *testing.T) {
	shoe := NewShoe(randutil.New(3))
	shoe.DealMany(50)

	got := shoe.DealMany(10)
	if len(got) != 3 {
		t.Errorf("expected 3 remaining cards, got %d", len(got))
	}
}

func TestShoeFullDealLeaves29(t *testing.T) {
	shoe := NewShoe(randutil.New(4))
	for seat := 0; seat < 4; seat++ {
		if cards := shoe.DealMany(6); len(cards) != 6 {
			t.Fatalf("seat %d dealt %d cards", seat, len(cards))
		}
	}
	if shoe.Remaining() != 29 {
		t.Errorf("expected 29 cards after dealing 6x4, got %d", shoe.Remaining())
	}
}

func TestShoeResetRestoresFullShoe(t *testing.T) {
	shoe := NewShoe(randutil.New(5))
	shoe.DealMany(40)

	shoe.Reset()
	if shoe.Remaining() != ShoeSize {
		t.Errorf("reset shoe has %d cards, want %d", shoe.Remaining(), ShoeSize)
	}
}

func TestShoeShuffleIsSeeded(t *testing.T) {
	a := NewShoe(randutil.New(42))
	b := NewShoe(randutil.New(42))

	for !a.IsEmpty() {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatal("same seed should produce the same shuffle")
		}
	}
}
