package game

import "math/rand/v2"

// Shuffle returns an unbiased uniform permutation of cards. The input slice is
// left untouched.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// drawOne removes and returns the top card of the draw pile. When the draw
// pile is exhausted, the discard pile minus its top card is shuffled into a
// fresh draw pile and the former top card remains as the whole discard pile.
//
// ErrOutOfCards means the deck-closure invariant was violated: both piles are
// empty and there is nothing left to draw.
func drawOne(s *GameState) (Card, error) {
	if len(s.DrawPile) == 0 {
		if len(s.DiscardPile) == 0 {
			return Card{}, ErrOutOfCards
		}
		top := s.DiscardPile[len(s.DiscardPile)-1]
		s.DrawPile = Shuffle(s.DiscardPile[:len(s.DiscardPile)-1], s.rng)
		s.DiscardPile = []Card{top}
		if len(s.DrawPile) == 0 {
			// Only the set-aside top card exists; nothing to draw from.
			return Card{}, ErrOutOfCards
		}
	}

	card := s.DrawPile[len(s.DrawPile)-1]
	s.DrawPile = s.DrawPile[:len(s.DrawPile)-1]
	return card, nil
}
