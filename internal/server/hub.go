package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pinfall/pinfall-server/internal/game"
	"github.com/pinfall/pinfall-server/internal/repository"
	"github.com/pinfall/pinfall-server/internal/room"
	"github.com/pinfall/pinfall-server/internal/session"
)

// Hub owns the set of connected clients and routes their messages to the
// room manager. Registration and broadcast run on the hub goroutine.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	rooms    *room.Manager
	sessions *session.Manager
	matches  *repository.MatchRepository // nil when the archive is disabled
	logger   *zap.Logger
}

// NewHub creates a hub. matches may be nil to disable the match archive.
func NewHub(rooms *room.Manager, sessions *session.Manager, matches *repository.MatchRepository, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      rooms,
		sessions:   sessions,
		matches:    matches,
		logger:     logger,
	}
}

// Run processes client registration until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	h.logger.Debug("client registered")
}

// removeClient drops a client from the hub. The send channel is closed via
// closeSend, never directly: a broadcast may still hold this client in an
// older snapshot.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	sessionID, playerID := client.sessionID, client.playerID
	h.mu.Unlock()

	if !ok {
		return
	}
	client.closeSend()
	if sessionID != "" {
		h.sessions.RemoveSession(sessionID)
	}
	h.logger.Debug("client unregistered", zap.String("player_id", playerID))
}

func (h *Hub) handleMessage(client *Client, msg Message) {
	switch msg.Type {
	case MsgGameCreate:
		gameID := h.rooms.CreateGame()
		client.enqueue(encode(MsgGameCreated, CreatedPayload{GameID: gameID}))

	case MsgGameJoin:
		var payload JoinPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			client.sendError("malformed game:join payload")
			return
		}
		h.handleJoin(client, payload)

	case MsgGameStart:
		var payload StartPayload
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				client.sendError("malformed game:start payload")
				return
			}
		}
		gameID := payload.GameID
		if gameID == "" {
			gameID = client.gameID
		}
		if err := h.rooms.Start(gameID); err != nil {
			client.sendError(err.Error())
			return
		}
		h.broadcastGame(gameID)

	case MsgPlayCard:
		var payload PlayCardPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			client.sendError("malformed turn:playCard payload")
			return
		}
		h.handleAction(client, game.Action{
			Type:     game.ActionPlayCard,
			PlayerID: client.playerID,
			CardID:   payload.CardID,
		})

	case MsgDraw:
		h.handleAction(client, game.Action{
			Type:     game.ActionDraw,
			PlayerID: client.playerID,
		})

	default:
		client.sendError("unknown message type " + msg.Type)
	}
}

func (h *Hub) handleJoin(client *Client, payload JoinPayload) {
	playerID, err := h.rooms.Join(payload.GameID, payload.PlayerName)
	if err != nil {
		client.sendError(err.Error())
		return
	}

	sess, err := h.sessions.CreateSession(playerID, payload.PlayerName, payload.GameID)
	if err != nil {
		client.sendError(err.Error())
		return
	}

	h.mu.Lock()
	client.playerID = playerID
	client.gameID = payload.GameID
	client.sessionID = sess.ID
	h.mu.Unlock()

	client.enqueue(encode(MsgGameJoined, JoinedPayload{
		GameID:    payload.GameID,
		PlayerID:  playerID,
		SessionID: sess.ID,
	}))
	h.broadcastGame(payload.GameID)
}

func (h *Hub) handleAction(client *Client, action game.Action) {
	if client.gameID == "" || client.playerID == "" {
		client.sendError("join a game first")
		return
	}
	h.sessions.Touch(client.sessionID)

	outcome, err := h.rooms.Apply(client.gameID, action)
	if err != nil {
		client.sendError(err.Error())
		return
	}

	h.broadcastGame(client.gameID)

	if outcome.Ended {
		h.finishGame(client.gameID, outcome)
	}
}

func (h *Hub) finishGame(gameID string, outcome room.ApplyOutcome) {
	h.logger.Info("game over",
		zap.String("game_id", gameID),
		zap.String("winner_id", outcome.WinnerID),
		zap.String("winner_name", outcome.WinnerName),
	)

	over := encode(MsgGameOver, OverPayload{
		GameID:     gameID,
		WinnerID:   outcome.WinnerID,
		WinnerName: outcome.WinnerName,
	})
	for _, client := range h.gameClients(gameID) {
		client.enqueue(over)
	}

	if h.matches == nil {
		return
	}
	rec := repository.MatchRecord{
		GameID:      gameID,
		WinnerID:    outcome.WinnerID,
		WinnerName:  outcome.WinnerName,
		PlayerCount: outcome.PlayerCount,
		FinishedAt:  time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.matches.SaveResult(ctx, rec); err != nil {
			h.logger.Warn("failed to archive match result",
				zap.String("game_id", gameID),
				zap.Error(err),
			)
		}
	}()
}

// gameClients snapshots the clients attached to one game.
func (h *Hub) gameClients(gameID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var clients []*Client
	for client := range h.clients {
		if client.gameID == gameID {
			clients = append(clients, client)
		}
	}
	return clients
}

// broadcastGame sends each connected participant their own redacted view.
func (h *Hub) broadcastGame(gameID string) {
	clients := h.gameClients(gameID)
	views := make(map[*Client][]byte, len(clients))
	err := h.rooms.WithGame(gameID, func(s *game.GameState) error {
		for _, client := range clients {
			views[client] = encode(MsgGameState, BuildView(s, client.playerID))
		}
		return nil
	})
	if err != nil {
		h.logger.Warn("broadcast skipped", zap.String("game_id", gameID), zap.Error(err))
		return
	}

	for client, data := range views {
		client.enqueue(data)
	}
}
