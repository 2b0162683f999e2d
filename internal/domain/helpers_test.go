package domain

import (
	"reflect"
	"testing"
)

func TestRemoveCards(t *testing.T) {
	tests := []struct {
		name        string
		hand        []Card
		remove      []Card
		want        []Card
		wantRemoved int
	}{
		{name: "removes present cards", hand: cards("H3", "S4", "D5"), remove: cards("S4"), want: cards("H3", "D5"), wantRemoved: 1},
		{name: "ignores absent cards", hand: cards("H3", "S4"), remove: cards("C9", "H3"), want: cards("S4"), wantRemoved: 1},
		{name: "removes one copy per request", hand: cards("H3", "H3"), remove: cards("H3"), want: cards("H3"), wantRemoved: 1},
		{name: "empty removal keeps hand", hand: cards("H3"), remove: nil, want: cards("H3"), wantRemoved: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := RemoveCards(tt.hand, tt.remove)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RemoveCards() = %v, want %v", got, tt.want)
			}
			if removed != tt.wantRemoved {
				t.Fatalf("removed = %d, want %d", removed, tt.wantRemoved)
			}
		})
	}
}

func TestParseCards(t *testing.T) {
	got := ParseCards(" 红桃3 黑桃4,方块10，梅花A\tS2 ")
	want := cards("红桃3", "黑桃4", "方块10", "梅花A", "S2")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseCards() = %v, want %v", got, want)
	}
	if got := ParseCards("   "); len(got) != 0 {
		t.Fatalf("ParseCards(blank) = %v, want empty", got)
	}
}

func TestDuplicates(t *testing.T) {
	got := Duplicates(cards("H3", "S4", "H3", "H3", "S4", "D5"))
	want := cards("H3", "S4")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Duplicates() = %v, want %v", got, want)
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck(CaptureSuits)
	if len(deck) != 52 {
		t.Fatalf("deck size = %d, want 52", len(deck))
	}
	if dups := Duplicates(deck); len(dups) != 0 {
		t.Fatalf("deck has duplicates: %v", dups)
	}
	for _, c := range deck {
		if !c.Playable() {
			t.Fatalf("deck card %s has no rank value", c)
		}
	}
	if RankCount(DefaultDecks) != 8 {
		t.Fatalf("RankCount(2) = %d, want 8", RankCount(DefaultDecks))
	}
}

func TestSortHandIsStable(t *testing.T) {
	hand := cards("S2", "H4", "D3", "S4", "HA", "C3")
	SortHand(hand)
	want := cards("D3", "C3", "H4", "S4", "HA", "S2")
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("SortHand() = %v, want %v", hand, want)
	}
}
