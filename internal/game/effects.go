package game

// applyCardEffects mutates position, phase, scores, and the counter window for
// a card that already passed legality and moved from hand to discard. Win
// detection happens before this is called; PIN and BONUS therefore have no
// effect here.
//
// The switch is exhaustive over CardKind so a new kind cannot resolve
// silently.
func applyCardEffects(s *GameState, card Card) {
	before := s.CurrentPosition
	openedCounterWindow := false

	switch card.Kind {
	case KindNeutral:
		if isTakedownVariant(card) {
			// Takedown: attacker puts the next player on bottom and exposes
			// themselves to a counter.
			s.CurrentPosition = PositionBottom
			s.CanCounterTakedown = true
			openedCounterWindow = true
		} else {
			s.CurrentPosition = PositionNeutral
		}
		leaveStartPhase(s)

	case KindAttemptTakedown:
		s.CurrentPosition = PositionNeutral
		leaveStartPhase(s)

	case KindCounter:
		// The counter defeats the takedown and resets to neutral.
		s.CurrentPosition = PositionNeutral

	case KindTop:
		if !card.Meta.DoesNotChangePosition {
			s.CurrentPosition = PositionTop
		}

	case KindBottom:
		if !card.Meta.DoesNotChangePosition {
			s.CurrentPosition = PositionBottom
		}

	case KindTripod, KindSitOut:
		// Playable from bottom without forcing a transition.

	case KindBloodTime:
		// The opponent's upcoming turn is skipped.
		endTurn(s)

	case KindOutOfBounds:
		if s.PreviousPosition != nil {
			s.CurrentPosition = *s.PreviousPosition
		} else {
			s.CurrentPosition = PositionNeutral
		}

	case KindPenalty:
		next := nextPlayer(s)
		next.PenaltyPoints++
		// The penalized player also loses their turn.
		endTurn(s)

	case KindStalling:
		next := nextPlayer(s)
		if next.Score > 0 {
			next.Score--
		}

	case KindEndOfPeriod:
		// Reserved for a period-end player choice; no modeled effect yet.

	case KindBonus, KindPin:
		// No positional effect.
	}

	// Any counter play or position change outside a fresh takedown closes the
	// counter window.
	if !openedCounterWindow && (card.Kind == KindCounter || s.CurrentPosition != before) {
		s.CanCounterTakedown = false
	}
}

// leaveStartPhase advances FIND_START_NEUTRAL to PLAY on the first resolved
// neutral-phase play.
func leaveStartPhase(s *GameState) {
	if s.Phase == PhaseFindStartNeutral {
		s.Phase = PhasePlay
	}
}
