package game

// LegalityResult is the outcome of checking a candidate card against the
// current state.
type LegalityResult struct {
	Legal  bool
	Reason string
}

func legal() LegalityResult {
	return LegalityResult{Legal: true}
}

func illegal(reason string) LegalityResult {
	return LegalityResult{Legal: false, Reason: reason}
}

// isAnytimeKind reports whether a kind is playable regardless of position once
// the start phase is over.
func isAnytimeKind(k CardKind) bool {
	switch k {
	case KindBloodTime, KindEndOfPeriod, KindOutOfBounds, KindPenalty, KindStalling:
		return true
	}
	return false
}

// CheckCardLegality decides whether card may be played right now. Checks run
// in priority order: phase gate, anytime kinds, positional match, the
// conditional COUNTER window, then rejection.
func CheckCardLegality(s *GameState, card Card) LegalityResult {
	// Until the opening neutral exchange resolves, only neutral-phase cards go.
	if s.Phase == PhaseFindStartNeutral {
		if card.Kind == KindNeutral || card.Kind == KindAttemptTakedown {
			return legal()
		}
		return illegal("must play a neutral-phase card to start (or draw)")
	}

	if isAnytimeKind(card.Kind) {
		return legal()
	}

	switch s.CurrentPosition {
	case PositionNeutral:
		if card.Kind == KindNeutral || card.Kind == KindAttemptTakedown {
			return legal()
		}
	case PositionTop:
		if card.Kind == KindTop {
			return legal()
		}
	case PositionBottom:
		if card.Kind == KindBottom || card.Kind == KindTripod || card.Kind == KindSitOut {
			return legal()
		}
	}

	// A counter defends a takedown: only valid in the one-turn window after
	// being taken down to bottom.
	if card.Kind == KindCounter {
		if s.CanCounterTakedown && s.CurrentPosition == PositionBottom {
			return legal()
		}
		return illegal("counter window closed: a counter can only defend a takedown")
	}

	return illegal("card not playable in the " + s.CurrentPosition.String() + " position")
}
