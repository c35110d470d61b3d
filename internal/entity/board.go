package entity

const (
	TerrainLand = "land"
	TerrainLake = "lake"
)

// Cell is one square of the board. A lake cell never holds an occupant.
type Cell struct {
	Terrain  string
	Occupant *Piece
}

// Board is the 10x10 grid. All mutation goes through the rules engine;
// positions are assumed pre-validated there, so indexing with a bad
// position panics instead of failing softly.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

// NewBoard builds an empty board with the two fixed 2x2 lakes at
// rows 4-5, columns 2-3 and 6-7.
func NewBoard() *Board {
	board := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			terrain := TerrainLand
			if isLake(row, col) {
				terrain = TerrainLake
			}
			board.cells[row][col].Terrain = terrain
		}
	}

	return board
}

func isLake(row, col int) bool {
	if row != 4 && row != 5 {
		return false
	}
	return (col == 2 || col == 3) || (col == 6 || col == 7)
}

func (that *Board) TerrainAt(pos Position) string {
	return that.cells[pos.Row][pos.Col].Terrain
}

func (that *Board) OccupantAt(pos Position) *Piece {
	return that.cells[pos.Row][pos.Col].Occupant
}

func (that *Board) Place(piece *Piece, pos Position) {
	that.cells[pos.Row][pos.Col].Occupant = piece
}

func (that *Board) Clear(pos Position) {
	that.cells[pos.Row][pos.Col].Occupant = nil
}

// MoveOccupant relocates whatever sits at from onto to, leaving from empty.
func (that *Board) MoveOccupant(from, to Position) {
	that.cells[to.Row][to.Col].Occupant = that.cells[from.Row][from.Col].Occupant
	that.cells[from.Row][from.Col].Occupant = nil
}

// InSetupZone reports whether pos lies in the given player's placement
// territory: rows 6-9 for player1, rows 0-3 for player2.
func InSetupZone(player string, pos Position) bool {
	if player == Player1 {
		return pos.Row >= 6
	}
	return pos.Row <= 3
}
