package game

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func cardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	return ids
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := BuildDeck(DefaultTemplates())
	original := make([]Card, len(deck))
	copy(original, deck)

	shuffled := Shuffle(deck, testRand())

	for i := range deck {
		if deck[i].ID != original[i].ID {
			t.Fatalf("input slice mutated at index %d", i)
		}
	}
	if len(shuffled) != len(deck) {
		t.Fatalf("expected %d cards after shuffle, got %d", len(deck), len(shuffled))
	}

	before := cardIDs(deck)
	after := cardIDs(shuffled)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("shuffle changed the card multiset at %d", i)
		}
	}
}

func TestDrawOneTakesTopOfDrawPile(t *testing.T) {
	s := CreateGameState("g1")
	s.rng = testRand()
	s.DrawPile = BuildDeck(DefaultTemplates())
	top := s.DrawPile[len(s.DrawPile)-1]

	card, err := drawOne(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ID != top.ID {
		t.Fatalf("expected top card %s, got %s", top.ID, card.ID)
	}
	if len(s.DrawPile) != DeckSize()-1 {
		t.Fatalf("expected %d cards left, got %d", DeckSize()-1, len(s.DrawPile))
	}
}

func TestDrawOneReshufflesDiscard(t *testing.T) {
	s := CreateGameState("g1")
	s.rng = testRand()
	s.DiscardPile = BuildDeck(DefaultTemplates())[:6]
	formerTop := s.DiscardPile[len(s.DiscardPile)-1]

	card, err := drawOne(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Five reshuffled cards minus the one just drawn.
	if len(s.DrawPile) != 4 {
		t.Fatalf("expected 4 cards in the new draw pile, got %d", len(s.DrawPile))
	}
	if len(s.DiscardPile) != 1 || s.DiscardPile[0].ID != formerTop.ID {
		t.Fatalf("expected discard pile to hold only the former top card")
	}
	if card.ID == formerTop.ID {
		t.Fatalf("the set-aside top card must not be drawn")
	}
}

func TestDrawOneFailsWhenNoCardsExist(t *testing.T) {
	s := CreateGameState("g1")
	s.rng = testRand()

	if _, err := drawOne(s); err != ErrOutOfCards {
		t.Fatalf("expected ErrOutOfCards, got %v", err)
	}

	// A lone discard top cannot be drawn either: it stays set aside.
	s.DiscardPile = BuildDeck(DefaultTemplates())[:1]
	if _, err := drawOne(s); err != ErrOutOfCards {
		t.Fatalf("expected ErrOutOfCards with single discard card, got %v", err)
	}
}
