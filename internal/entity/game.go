package entity

const (
	PhaseSetup = "setup"
	PhasePlay  = "play"
	PhaseEnded = "ended"
)

// Game is the authoritative state of one match: the board, both rosters,
// whose turn it is and the lifecycle phase. The rules engine is the only
// writer.
type Game struct {
	Board         *Board
	Player1Pieces []*Piece
	Player2Pieces []*Piece
	Turn          string
	Phase         string
	Winner        string
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		Player1Pieces: NewRoster(Player1),
		Player2Pieces: NewRoster(Player2),
		Phase:         PhaseSetup,
	}
}

// Roster returns the piece list owned by the given side.
func (that *Game) Roster(player string) []*Piece {
	if player == Player1 {
		return that.Player1Pieces
	}
	return that.Player2Pieces
}

func (that *Game) IsEnded() bool {
	return that.Phase == PhaseEnded
}
