package stratego

import (
	"github.com/rocketscienceinc/stratego-backend/internal/entity"
)

// ResultCode is the outcome of a move attempt. The numeric values are part
// of the wire contract with clients.
type ResultCode int

const (
	ResultIllegal       ResultCode = 0
	ResultMove          ResultCode = 1
	ResultSameTeam      ResultCode = 4
	ResultNotYourTurn   ResultCode = 5
	ResultAttackerWins  ResultCode = 10
	ResultMutualLoss    ResultCode = 20
	ResultAttackerLoses ResultCode = 30
	ResultFlagCaptured  ResultCode = 50

	// ResultSessionNotFound is produced above the engine, by the
	// coordinator, when the session id resolves to nothing.
	ResultSessionNotFound ResultCode = -1
)

// Accepted reports whether the code mutated the game and consumed a turn.
func (that ResultCode) Accepted() bool {
	switch that {
	case ResultMove, ResultAttackerWins, ResultMutualLoss, ResultAttackerLoses, ResultFlagCaptured:
		return true
	default:
		return false
	}
}

// MoveStatus qualifies a LegalMoves answer.
type MoveStatus int

const (
	MovesOK       MoveStatus = 1
	MovesImmobile MoveStatus = 20
	MovesNoPiece  MoveStatus = 30
)

// PlacePiece puts the pieceIndex-th piece of the player's roster on pos
// during setup. It succeeds only if the cell is land, lies inside the
// player's own setup zone, is unoccupied, and the piece has not been placed
// yet. Failures leave the game untouched. Once both rosters are complete
// the game flips to the play phase with player1 to move.
func PlacePiece(game *entity.Game, player string, pieceIndex int, pos entity.Position) bool {
	if game.Phase != entity.PhaseSetup {
		return false
	}

	roster := game.Roster(player)
	if pieceIndex < 0 || pieceIndex >= len(roster) {
		return false
	}

	piece := roster[pieceIndex]
	if piece.Placed {
		return false
	}

	if game.Board.TerrainAt(pos) != entity.TerrainLand {
		return false
	}

	if !entity.InSetupZone(player, pos) {
		return false
	}

	if game.Board.OccupantAt(pos) != nil {
		return false
	}

	piece.Placed = true
	piece.Position = pos
	game.Board.Place(piece, pos)

	if AllPiecesPlaced(game) {
		game.Phase = entity.PhasePlay
		game.Turn = entity.Player1
	}

	return true
}

// AllPiecesPlaced reports whether both rosters are fully on the board.
func AllPiecesPlaced(game *entity.Game) bool {
	for _, roster := range [][]*entity.Piece{game.Player1Pieces, game.Player2Pieces} {
		for _, piece := range roster {
			if !piece.Placed {
				return false
			}
		}
	}

	return true
}

var directions = [4][2]int{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}

// LegalMoves enumerates every destination the piece at pos may move to.
// Non-runners step exactly one orthogonal cell; a scout extends each
// direction through empty land, stopping at the first occupied cell, which
// is itself a legal target only when held by the enemy.
func LegalMoves(game *entity.Game, pos entity.Position) ([]entity.Position, MoveStatus) {
	piece := game.Board.OccupantAt(pos)
	if piece == nil {
		return nil, MovesNoPiece
	}

	if !piece.Rank.CanMove() {
		return nil, MovesImmobile
	}

	maxRun := 1
	if piece.Rank.CanRun() {
		maxRun = entity.BoardSize - 1
	}

	var moves []entity.Position
	for _, dir := range directions {
		for step := 1; step <= maxRun; step++ {
			row := pos.Row + dir[0]*step
			col := pos.Col + dir[1]*step
			if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
				break
			}

			next := entity.Position{Row: row, Col: col}
			if game.Board.TerrainAt(next) != entity.TerrainLand {
				break
			}

			occupant := game.Board.OccupantAt(next)
			if occupant != nil && occupant.Owner == piece.Owner {
				break
			}

			moves = append(moves, next)

			if occupant != nil {
				break
			}
		}
	}

	return moves, MovesOK
}

// Move executes one turn: it validates the destination against LegalMoves
// and the mover against the current turn, then relocates or resolves
// combat. Accepted results flip the turn; rejected results leave the game
// untouched.
func Move(game *entity.Game, from, to entity.Position) ResultCode {
	if game.Phase != entity.PhasePlay {
		return ResultIllegal
	}

	attacker := game.Board.OccupantAt(from)
	if attacker == nil {
		return ResultIllegal
	}

	if attacker.Owner != game.Turn {
		return ResultNotYourTurn
	}

	moves, status := LegalMoves(game, from)
	if status != MovesOK || !contains(moves, to) {
		// A friendly destination is never in the legal set, report it
		// with its own code so clients can tell the cases apart.
		if defender := game.Board.OccupantAt(to); defender != nil && defender.Owner == attacker.Owner {
			return ResultSameTeam
		}
		return ResultIllegal
	}

	defender := game.Board.OccupantAt(to)

	var code ResultCode
	if defender == nil {
		relocate(game, attacker, from, to)
		code = ResultMove
	} else {
		code = resolveCombat(game, attacker, defender, from, to)
	}

	game.Turn = entity.Opponent(game.Turn)

	if code == ResultFlagCaptured {
		game.Phase = entity.PhaseEnded
		game.Winner = attacker.Owner
	}

	return code
}

// resolveCombat applies the attack precedence: flag capture, bombs against
// miners, the spy against the marshal, equal ranks, then the numeric
// ladder, where the greater (weaker) rank value loses.
func resolveCombat(game *entity.Game, attacker, defender *entity.Piece, from, to entity.Position) ResultCode {
	switch {
	case defender.Rank == entity.RankFlag:
		capture(game, defender)
		relocate(game, attacker, from, to)
		return ResultFlagCaptured

	case defender.Rank == entity.RankBomb && attacker.Rank == entity.RankMiner:
		capture(game, defender)
		relocate(game, attacker, from, to)
		return ResultAttackerWins

	case defender.Rank == entity.RankBomb:
		capture(game, attacker)
		return ResultAttackerLoses

	case defender.Rank == entity.RankMarshal && attacker.Rank == entity.RankSpy:
		capture(game, defender)
		relocate(game, attacker, from, to)
		return ResultAttackerWins

	case defender.Rank == attacker.Rank:
		capture(game, defender)
		capture(game, attacker)
		return ResultMutualLoss

	case defender.Rank > attacker.Rank:
		capture(game, defender)
		relocate(game, attacker, from, to)
		return ResultAttackerWins

	default:
		capture(game, attacker)
		return ResultAttackerLoses
	}
}

func relocate(game *entity.Game, piece *entity.Piece, from, to entity.Position) {
	game.Board.MoveOccupant(from, to)
	piece.Position = to
}

// capture takes a piece off the board. It stays addressable in its roster
// but is inert from here on.
func capture(game *entity.Game, piece *entity.Piece) {
	game.Board.Clear(piece.Position)
	piece.Placed = false
	piece.Position = entity.Position{}
}

func contains(moves []entity.Position, pos entity.Position) bool {
	for _, move := range moves {
		if move == pos {
			return true
		}
	}
	return false
}
