package server

import "github.com/pinfall/pinfall-server/internal/game"

// CardView is a card as rendered to a client.
type CardView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
	Image string `json:"image,omitempty"`
}

// PlayerView is one seat as rendered to a client. Only the viewer's own hand
// is included; opponents expose a hand count.
type PlayerView struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	HandCount     int        `json:"hand_count"`
	Hand          []CardView `json:"hand,omitempty"`
	Score         int        `json:"score"`
	PenaltyPoints int        `json:"penalty_points"`
}

// GameView is the authoritative state as rendered to one viewer.
type GameView struct {
	GameID             string       `json:"game_id"`
	Phase              string       `json:"phase"`
	CurrentPosition    string       `json:"current_position"`
	PreviousPosition   string       `json:"previous_position,omitempty"`
	CurrentPlayerID    string       `json:"current_player_id,omitempty"`
	CanCounterTakedown bool         `json:"can_counter_takedown"`
	DrawPileCount      int          `json:"draw_pile_count"`
	DiscardPileCount   int          `json:"discard_pile_count"`
	DiscardTop         *CardView    `json:"discard_top,omitempty"`
	Players            []PlayerView `json:"players"`
}

func cardView(c game.Card) CardView {
	return CardView{
		ID:    c.ID,
		Name:  c.Name,
		Kind:  c.Kind.String(),
		Color: c.Color,
		Image: c.Image,
	}
}

// BuildView renders the state for one viewer, hiding every other hand.
func BuildView(s *game.GameState, viewerID string) GameView {
	view := GameView{
		GameID:             s.ID,
		Phase:              s.Phase.String(),
		CurrentPosition:    s.CurrentPosition.String(),
		CanCounterTakedown: s.CanCounterTakedown,
		DrawPileCount:      len(s.DrawPile),
		DiscardPileCount:   len(s.DiscardPile),
	}
	if s.PreviousPosition != nil {
		view.PreviousPosition = s.PreviousPosition.String()
	}
	if len(s.Players) > 0 && s.CurrentTurnIndex < len(s.Players) {
		view.CurrentPlayerID = s.Players[s.CurrentTurnIndex].ID
	}
	if n := len(s.DiscardPile); n > 0 {
		top := cardView(s.DiscardPile[n-1])
		view.DiscardTop = &top
	}

	for _, p := range s.Players {
		pv := PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			HandCount:     len(p.Hand),
			Score:         p.Score,
			PenaltyPoints: p.PenaltyPoints,
		}
		if p.ID == viewerID {
			pv.Hand = make([]CardView, 0, len(p.Hand))
			for _, c := range p.Hand {
				pv.Hand = append(pv.Hand, cardView(c))
			}
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
