package game

import "errors"

// RuleCode classifies expected rule rejections.
type RuleCode int

const (
	CodeGameNotStarted RuleCode = iota
	CodeGameAlreadyEnded
	CodeNotYourTurn
	CodeCardNotInHand
	CodeIllegalPlay
)

var ruleCodeNames = map[RuleCode]string{
	CodeGameNotStarted:   "GAME_NOT_STARTED",
	CodeGameAlreadyEnded: "GAME_ALREADY_ENDED",
	CodeNotYourTurn:      "NOT_YOUR_TURN",
	CodeCardNotInHand:    "CARD_NOT_IN_HAND",
	CodeIllegalPlay:      "ILLEGAL_PLAY",
}

func (c RuleCode) String() string {
	if name, ok := ruleCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// RuleError is an expected rule rejection with a human-readable reason.
// Every RuleError leaves the game state completely unmodified.
type RuleError struct {
	Code   RuleCode
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

func ruleErr(code RuleCode, reason string) *RuleError {
	return &RuleError{Code: code, Reason: reason}
}

var (
	errGameNotStarted   = ruleErr(CodeGameNotStarted, "game not started")
	errGameAlreadyEnded = ruleErr(CodeGameAlreadyEnded, "game already ended")
	errNotYourTurn      = ruleErr(CodeNotYourTurn, "not your turn")
	errCardNotInHand    = ruleErr(CodeCardNotInHand, "card not in your hand")
)

// ErrGameAlreadyStarted rejects lobby-only operations (joining a seat) once
// the game has left the lobby.
var ErrGameAlreadyStarted = errors.New("game already started")

// ErrOutOfCards signals a deck-accounting invariant violation: a draw was
// attempted with both piles empty. This cannot happen with a correctly closed
// deck and is a programming-bug-level failure, not a rule rejection.
var ErrOutOfCards = errors.New("no cards available in draw or discard pile")
