package server

import "encoding/json"

// Inbound and outbound message types mirror the original socket event names.
const (
	MsgGameCreate = "game:create"
	MsgGameJoin   = "game:join"
	MsgGameStart  = "game:start"
	MsgPlayCard   = "turn:playCard"
	MsgDraw       = "turn:draw"

	MsgGameCreated = "game:created"
	MsgGameJoined  = "game:joined"
	MsgGameState   = "game:state"
	MsgGameOver    = "game:over"
	MsgGameError   = "game:error"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinPayload seats a player in a lobby-phase game.
type JoinPayload struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
}

// StartPayload starts a game the client has joined.
type StartPayload struct {
	GameID string `json:"game_id"`
}

// PlayCardPayload plays a card from the client's hand.
type PlayCardPayload struct {
	CardID string `json:"card_id"`
}

// CreatedPayload answers game:create.
type CreatedPayload struct {
	GameID string `json:"game_id"`
}

// JoinedPayload answers game:join with the ids the client needs for
// subsequent requests.
type JoinedPayload struct {
	GameID    string `json:"game_id"`
	PlayerID  string `json:"player_id"`
	SessionID string `json:"session_id"`
}

// OverPayload announces the end of a match.
type OverPayload struct {
	GameID     string `json:"game_id"`
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
}

// ErrorPayload carries a rejection reason back to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

func encode(msgType string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	out, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		return nil
	}
	return out
}
