package entity

// CellSnapshot is the wire form of one board square. Enemy pieces are
// redacted while the game is running: the owner stays visible, the rank is
// replaced with the hidden flag.
type CellSnapshot struct {
	Terrain string `json:"terrain"`
	Rank    string `json:"rank,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// GameSnapshot is the full board state pushed to clients after every
// accepted mutation.
type GameSnapshot struct {
	SessionID string           `json:"session_id"`
	Board     [][]CellSnapshot `json:"board"`
	Phase     string           `json:"phase"`
	Turn      string           `json:"turn,omitempty"`
	Winner    string           `json:"winner,omitempty"`
}

// SnapshotFor serializes the board as seen by viewerID. Own pieces carry
// their rank; enemy ranks are hidden until the session has ended. An
// unknown viewer sees every rank redacted.
func (that *GameSession) SnapshotFor(viewerID string) *GameSnapshot {
	viewerRole := that.Role(viewerID)

	board := make([][]CellSnapshot, BoardSize)
	for row := 0; row < BoardSize; row++ {
		board[row] = make([]CellSnapshot, BoardSize)
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			cell := CellSnapshot{Terrain: that.Game.Board.TerrainAt(pos)}

			if piece := that.Game.Board.OccupantAt(pos); piece != nil {
				cell.Owner = piece.Owner
				if piece.Owner == viewerRole || that.Game.IsEnded() {
					cell.Rank = piece.Rank.String()
				} else {
					cell.Hidden = true
				}
			}

			board[row][col] = cell
		}
	}

	return &GameSnapshot{
		SessionID: that.ID,
		Board:     board,
		Phase:     that.Game.Phase,
		Turn:      that.Game.Turn,
		Winner:    that.Game.Winner,
	}
}
