package game

import (
	"fmt"
	"math/rand/v2"
)

// Position represents the structural advantage state of the match,
// analogous to a wrestling stance.
type Position int

const (
	PositionNeutral Position = iota
	PositionTop
	PositionBottom
)

var positionNames = map[Position]string{
	PositionNeutral: "NEUTRAL",
	PositionTop:     "TOP",
	PositionBottom:  "BOTTOM",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("POSITION_%d", int(p))
}

// Phase represents the coarse lifecycle stage of a game.
// Transitions only move forward: LOBBY -> FIND_START_NEUTRAL -> PLAY -> ENDED.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseFindStartNeutral
	PhasePlay
	PhaseEnded
)

var phaseNames = map[Phase]string{
	PhaseLobby:            "LOBBY",
	PhaseFindStartNeutral: "FIND_START_NEUTRAL",
	PhasePlay:             "PLAY",
	PhaseEnded:            "ENDED",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// CardKind is the closed enumeration of card effect families. Every kind has a
// fixed legality class and a fixed effect; two cards of the same kind are
// interchangeable except for their metadata.
type CardKind int

const (
	KindNeutral CardKind = iota
	KindTop
	KindBottom
	KindCounter
	KindBonus
	KindBloodTime
	KindStalling
	KindOutOfBounds
	KindPenalty
	KindEndOfPeriod
	KindAttemptTakedown
	KindPin
	KindTripod
	KindSitOut
)

var cardKindNames = map[CardKind]string{
	KindNeutral:         "NEUTRAL",
	KindTop:             "TOP",
	KindBottom:          "BOTTOM",
	KindCounter:         "COUNTER",
	KindBonus:           "BONUS",
	KindBloodTime:       "BLOODTIME",
	KindStalling:        "STALLING",
	KindOutOfBounds:     "OUT_OF_BOUNDS",
	KindPenalty:         "PENALTY",
	KindEndOfPeriod:     "END_OF_PERIOD",
	KindAttemptTakedown: "ATTEMPT_TAKEDOWN",
	KindPin:             "PIN",
	KindTripod:          "TRIPOD",
	KindSitOut:          "SITOUT",
}

func (k CardKind) String() string {
	if name, ok := cardKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// CardMeta carries per-template behavior flags.
type CardMeta struct {
	// DoesNotChangePosition keeps the current position when the card resolves.
	DoesNotChangePosition bool `json:"does_not_change_position,omitempty"`
	// EndsGame marks pin finishers: playing the card wins the match outright.
	EndsGame bool `json:"ends_game,omitempty"`
}

// Card is one physical card instance. Immutable once created; the ID is unique
// per instance so that two copies of the same template remain distinct in
// hand and pile membership.
type Card struct {
	ID         string   `json:"id"`
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Kind       CardKind `json:"kind"`
	Color      string   `json:"color"`
	Image      string   `json:"image,omitempty"`
	Meta       CardMeta `json:"meta"`
}

// Player is one seat in a game. Players are appended while the game is in the
// lobby and never removed mid-game.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Hand          []Card `json:"hand"`
	Score         int    `json:"score"`
	PenaltyPoints int    `json:"penalty_points"`
}

// GameState is the aggregate root for one match. The deck (draw pile, discard
// pile, and all hands) is a closed multiset fixed at Start and unchanged until
// the next Start. Pile order: top of pile = end of slice.
//
// The engine performs no locking; callers must serialize actions per game.
type GameState struct {
	ID                 string    `json:"id"`
	Players            []*Player `json:"players"`
	DrawPile           []Card    `json:"draw_pile"`
	DiscardPile        []Card    `json:"discard_pile"`
	CurrentTurnIndex   int       `json:"current_turn_index"`
	CurrentPosition    Position  `json:"current_position"`
	PreviousPosition   *Position `json:"previous_position,omitempty"`
	Phase              Phase     `json:"phase"`
	CanCounterTakedown bool      `json:"can_counter_takedown"`

	rng *rand.Rand
}

// ActionType discriminates the externally triggered actions.
type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlayCard
)

var actionTypeNames = map[ActionType]string{
	ActionDraw:     "DRAW",
	ActionPlayCard: "PLAY_CARD",
}

func (t ActionType) String() string {
	if name, ok := actionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(t))
}

// Action is an intent submitted by a connected player.
type Action struct {
	Type     ActionType `json:"type"`
	PlayerID string     `json:"player_id"`
	CardID   string     `json:"card_id,omitempty"`
}
