package entity

// Player is the persisted record binding a connected identity to its
// current session, if any.
type Player struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	Role      string `json:"role,omitempty"`
}

// InSession reports whether the player is bound to a running game.
func (that *Player) InSession() bool {
	return that.SessionID != ""
}
