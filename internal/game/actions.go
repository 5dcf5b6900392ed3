package game

import "math/rand/v2"

// HandSize is the number of cards dealt to each player at the start of a game.
const HandSize = 5

// CreateGameState returns an empty game in the lobby phase. The caller
// allocates the id; players are appended while the game stays in the lobby.
func CreateGameState(id string) *GameState {
	return &GameState{
		ID:              id,
		Players:         []*Player{},
		DrawPile:        []Card{},
		DiscardPile:     []Card{},
		CurrentPosition: PositionNeutral,
		Phase:           PhaseLobby,
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// AddPlayer registers a new seat. Only valid while the game is in the lobby;
// seat order is fixed once the game starts.
func AddPlayer(s *GameState, playerID, name string) error {
	if s.Phase != PhaseLobby {
		return ErrGameAlreadyStarted
	}
	s.Players = append(s.Players, &Player{
		ID:   playerID,
		Name: name,
		Hand: []Card{},
	})
	return nil
}

// IsPlayerInGame reports whether playerID holds a seat in the game.
func IsPlayerInGame(s *GameState, playerID string) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// Start builds and shuffles a fresh deck, deals HandSize cards to every
// registered player, resets scores, and enters the FIND_START_NEUTRAL phase.
// Guarding against restarts mid-game is the caller's job; the engine only
// requires at least one registered player and enough cards to deal.
func Start(s *GameState) error {
	s.DrawPile = Shuffle(BuildDeck(DefaultTemplates()), s.rng)
	s.DiscardPile = []Card{}
	s.CurrentTurnIndex = 0
	s.CurrentPosition = PositionNeutral
	s.PreviousPosition = nil
	s.CanCounterTakedown = false
	s.Phase = PhaseFindStartNeutral

	for _, p := range s.Players {
		p.Hand = []Card{}
		for i := 0; i < HandSize; i++ {
			card, err := drawOne(s)
			if err != nil {
				return err
			}
			p.Hand = append(p.Hand, card)
		}
		p.Score = 0
		p.PenaltyPoints = 0
	}
	return nil
}

// ApplyAction validates and applies one player intent. On any returned error
// the state is left exactly as it was; on success the state reflects the
// action's full effect, including turn advancement.
func ApplyAction(s *GameState, action Action) error {
	if s.Phase == PhaseLobby {
		return errGameNotStarted
	}
	if s.Phase == PhaseEnded {
		return errGameAlreadyEnded
	}

	current := s.Players[s.CurrentTurnIndex]
	if current.ID != action.PlayerID {
		return errNotYourTurn
	}

	switch action.Type {
	case ActionDraw:
		card, err := drawOne(s)
		if err != nil {
			return err
		}
		current.Hand = append(current.Hand, card)
		endTurn(s)
		return nil

	case ActionPlayCard:
		return playCard(s, current, action.CardID)
	}

	return ruleErr(CodeIllegalPlay, "unknown action type")
}

func playCard(s *GameState, current *Player, cardID string) error {
	idx := -1
	for i, c := range current.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errCardNotInHand
	}

	card := current.Hand[idx]
	if result := CheckCardLegality(s, card); !result.Legal {
		return ruleErr(CodeIllegalPlay, result.Reason)
	}

	// Legality passed; from here on the action cannot fail.
	current.Hand = append(current.Hand[:idx], current.Hand[idx+1:]...)
	s.DiscardPile = append(s.DiscardPile, card)

	// Win detection runs before generic effects: a pin or an emptied hand
	// ends the game on the spot, with no effect resolution or turn advance.
	if card.Kind == KindPin || len(current.Hand) == 0 {
		s.Phase = PhaseEnded
		return nil
	}

	applyCardEffects(s, card)
	endTurn(s)
	return nil
}

// endTurn is the single point of turn rotation. Skip and double-advance
// effects call it repeatedly, so PreviousPosition reflects the position at the
// end of the most recently completed single-turn unit.
func endTurn(s *GameState) {
	prev := s.CurrentPosition
	s.PreviousPosition = &prev
	s.CurrentTurnIndex = (s.CurrentTurnIndex + 1) % len(s.Players)
}

// nextPlayer returns the player who acts after the current one.
func nextPlayer(s *GameState) *Player {
	return s.Players[(s.CurrentTurnIndex+1)%len(s.Players)]
}
