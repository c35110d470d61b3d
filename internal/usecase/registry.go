package usecase

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/stratego-backend/internal/apperror"
	"github.com/rocketscienceinc/stratego-backend/internal/entity"
)

// SessionRegistry owns every running session, keyed by a random 128-bit id.
// The lock covers only the map itself; per-session state is guarded by the
// session's own mutex.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*entity.GameSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*entity.GameSession),
	}
}

// Create allocates a fresh session for the two players and inserts it
// atomically.
func (that *SessionRegistry) Create(player1ID, player2ID string) *entity.GameSession {
	session := entity.NewGameSession(uuid.NewString(), player1ID, player2ID)

	that.mu.Lock()
	that.sessions[session.ID] = session
	that.mu.Unlock()

	return session
}

func (that *SessionRegistry) Get(id string) (*entity.GameSession, error) {
	that.mu.RLock()
	session, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

// FindByPlayer returns the session the given player participates in.
func (that *SessionRegistry) FindByPlayer(playerID string) (*entity.GameSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, session := range that.sessions {
		if session.Player1ID == playerID || session.Player2ID == playerID {
			return session, nil
		}
	}

	return nil, apperror.ErrSessionNotFound
}

func (that *SessionRegistry) Remove(id string) {
	that.mu.Lock()
	delete(that.sessions, id)
	that.mu.Unlock()
}
