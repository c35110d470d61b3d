package entity

// BoardSize is the side length of the square board.
const BoardSize = 10

// Position is a board coordinate. Coordinates built through NewPosition are
// clamped to the board, so a Position coming out of the entity layer is
// always addressable.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{
		Row: clamp(row),
		Col: clamp(col),
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= BoardSize {
		return BoardSize - 1
	}
	return v
}
