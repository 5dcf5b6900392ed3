package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrTooManySessions rejects new sessions once the configured limit is hit.
var ErrTooManySessions = errors.New("session limit reached")

// Session ties one connected client to a player seat in a game.
type Session struct {
	ID         string
	PlayerID   string
	PlayerName string
	GameID     string
	CreatedAt  time.Time
	LastSeen   time.Time
}

// Manager is the registry of live sessions. Sessions expire after the lease
// period unless touched.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	leasePeriod time.Duration
	maxSessions int
	logger      *zap.Logger
}

// NewManager creates a session manager. maxSessions <= 0 means unlimited.
func NewManager(leasePeriod time.Duration, maxSessions int, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		leasePeriod: leasePeriod,
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// CreateSession registers a new session for a player seat and returns a copy
// of the record.
func (m *Manager) CreateSession(playerID, playerName, gameID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return Session{}, ErrTooManySessions
	}

	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		GameID:     gameID,
		CreatedAt:  now,
		LastSeen:   now,
	}
	m.sessions[sess.ID] = sess

	m.logger.Debug("session created",
		zap.String("session_id", sess.ID),
		zap.String("player_id", playerID),
		zap.String("game_id", gameID),
	)
	return *sess, nil
}

// GetSession looks up a session by id. The returned value is a copy; the
// manager keeps the mutable record to itself so Touch and expiry never race
// with callers.
func (m *Manager) GetSession(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Touch renews a session's lease.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.LastSeen = time.Now()
	}
}

// RemoveSession drops a session.
func (m *Manager) RemoveSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpiredSessions drops sessions whose lease ran out. Blocks until the
// context is canceled; run it in its own goroutine.
func (m *Manager) CleanupExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(m.leasePeriod / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.expireStale()
		}
	}
}

func (m *Manager) expireStale() {
	cutoff := time.Now().Add(-m.leasePeriod)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("session expired",
				zap.String("session_id", id),
				zap.String("player_id", sess.PlayerID),
			)
		}
	}
}

// CloseAll drops every session, used during shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sessions)
	m.sessions = make(map[string]*Session)
	m.logger.Info("all sessions closed", zap.Int("count", n))
}
