package entity

import "sync"

// GameSession binds two player identities to one game. The embedded mutex
// serializes every state-touching operation for the session; unrelated
// sessions never contend on it.
type GameSession struct {
	ID        string
	Player1ID string
	Player2ID string
	Game      *Game

	mu sync.Mutex
}

func NewGameSession(id, player1ID, player2ID string) *GameSession {
	return &GameSession{
		ID:        id,
		Player1ID: player1ID,
		Player2ID: player2ID,
		Game:      NewGame(),
	}
}

func (that *GameSession) Lock() {
	that.mu.Lock()
}

func (that *GameSession) Unlock() {
	that.mu.Unlock()
}

// Role maps a player identity to its side marker, or "" for strangers.
func (that *GameSession) Role(playerID string) string {
	switch playerID {
	case that.Player1ID:
		return Player1
	case that.Player2ID:
		return Player2
	default:
		return ""
	}
}

// OpponentID returns the other participant's identity.
func (that *GameSession) OpponentID(playerID string) string {
	if playerID == that.Player1ID {
		return that.Player2ID
	}
	return that.Player1ID
}

// PlayerID maps a side marker back to the participant identity.
func (that *GameSession) PlayerID(role string) string {
	if role == Player1 {
		return that.Player1ID
	}
	return that.Player2ID
}
