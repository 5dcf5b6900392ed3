package room

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinfall/pinfall-server/internal/game"
)

// Seat limits for one game.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game is full")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrNotInGame        = errors.New("player not in this game")
)

// Room holds one game and the lock that serializes actions against it. The
// engine does no internal locking, so every touch of the state goes through
// the room mutex.
type Room struct {
	mu    sync.Mutex
	state *game.GameState
}

// Manager is the registry of live games and the lobby bookkeeper: it creates
// games, seats players, starts matches, and dispatches engine actions.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	logger *zap.Logger
}

// NewManager creates an empty game registry.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		logger: logger,
	}
}

// CreateGame allocates a fresh game in the lobby phase and returns its id.
func (m *Manager) CreateGame() string {
	gameID := uuid.NewString()

	m.mu.Lock()
	m.rooms[gameID] = &Room{state: game.CreateGameState(gameID)}
	m.mu.Unlock()

	m.logger.Info("game created", zap.String("game_id", gameID))
	return gameID
}

// Remove drops a game from the registry.
func (m *Manager) Remove(gameID string) {
	m.mu.Lock()
	delete(m.rooms, gameID)
	m.mu.Unlock()
}

// Count returns the number of live games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *Manager) room(gameID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[gameID]
	return r, ok
}

// WithGame runs fn with the game state under the room lock. fn must not
// retain the state beyond the call.
func (m *Manager) WithGame(gameID string, fn func(*game.GameState) error) error {
	r, ok := m.room(gameID)
	if !ok {
		return ErrGameNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.state)
}

// Join seats a new player in a lobby-phase game and returns the player id.
func (m *Manager) Join(gameID, playerName string) (string, error) {
	playerID := uuid.NewString()

	err := m.WithGame(gameID, func(s *game.GameState) error {
		if len(s.Players) >= MaxPlayers {
			return ErrGameFull
		}
		return game.AddPlayer(s, playerID, playerName)
	})
	if err != nil {
		return "", err
	}

	m.logger.Info("player joined",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("player_name", playerName),
	)
	return playerID, nil
}

// Start deals a lobby-phase game with enough seated players. Restarting a
// running game is rejected here; the engine itself does not guard it.
func (m *Manager) Start(gameID string) error {
	err := m.WithGame(gameID, func(s *game.GameState) error {
		if s.Phase != game.PhaseLobby {
			return game.ErrGameAlreadyStarted
		}
		if len(s.Players) < MinPlayers {
			return ErrNotEnoughPlayers
		}
		return game.Start(s)
	})
	if err != nil {
		return err
	}

	m.logger.Info("game started", zap.String("game_id", gameID))
	return nil
}

// ApplyOutcome reports what an applied action did to the game, captured
// atomically under the room lock.
type ApplyOutcome struct {
	Ended       bool
	WinnerID    string
	WinnerName  string
	PlayerCount int
}

// Apply dispatches one engine action. Actions against the same game are
// serialized by the room lock.
func (m *Manager) Apply(gameID string, action game.Action) (ApplyOutcome, error) {
	var outcome ApplyOutcome

	err := m.WithGame(gameID, func(s *game.GameState) error {
		if !game.IsPlayerInGame(s, action.PlayerID) {
			return ErrNotInGame
		}
		if err := game.ApplyAction(s, action); err != nil {
			return err
		}
		if s.Phase == game.PhaseEnded {
			outcome.Ended = true
			outcome.PlayerCount = len(s.Players)
			// The winning play is always the acting player's own.
			for _, p := range s.Players {
				if p.ID == action.PlayerID {
					outcome.WinnerID = p.ID
					outcome.WinnerName = p.Name
				}
			}
		}
		return nil
	})
	return outcome, err
}
