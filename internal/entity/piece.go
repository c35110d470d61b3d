package entity

const (
	Player1 = "player1"
	Player2 = "player2"
)

// Rank uses the classic Stratego numbering: a lower value is a stronger
// piece. Bomb and Flag sit outside the ladder and never move.
type Rank int

const (
	RankMarshal    Rank = 1
	RankGeneral    Rank = 2
	RankColonel    Rank = 3
	RankMajor      Rank = 4
	RankCaptain    Rank = 5
	RankLieutenant Rank = 6
	RankSergeant   Rank = 7
	RankMiner      Rank = 8
	RankScout      Rank = 9
	RankSpy        Rank = 10
	RankBomb       Rank = 11
	RankFlag       Rank = 12
)

var rankNames = map[Rank]string{
	RankMarshal:    "marshal",
	RankGeneral:    "general",
	RankColonel:    "colonel",
	RankMajor:      "major",
	RankCaptain:    "captain",
	RankLieutenant: "lieutenant",
	RankSergeant:   "sergeant",
	RankMiner:      "miner",
	RankScout:      "scout",
	RankSpy:        "spy",
	RankBomb:       "bomb",
	RankFlag:       "flag",
}

// RankAllotment is the fixed number of pieces of each rank per side,
// 40 pieces in total.
var RankAllotment = map[Rank]int{
	RankMarshal:    1,
	RankGeneral:    1,
	RankColonel:    2,
	RankMajor:      3,
	RankCaptain:    4,
	RankLieutenant: 4,
	RankSergeant:   4,
	RankMiner:      5,
	RankScout:      8,
	RankSpy:        1,
	RankBomb:       6,
	RankFlag:       1,
}

func (that Rank) String() string {
	return rankNames[that]
}

// CanMove reports whether the rank is mobile at all.
func (that Rank) CanMove() bool {
	return that != RankBomb && that != RankFlag
}

// CanRun reports whether the rank may travel more than one cell per move.
func (that Rank) CanRun() bool {
	return that == RankScout
}

// Piece is one of the 40 tokens a player brings to the board. A captured
// piece stays in the roster for inspection but is marked unplaced and its
// position is cleared.
type Piece struct {
	Rank     Rank     `json:"rank"`
	Owner    string   `json:"owner"`
	Placed   bool     `json:"placed"`
	Position Position `json:"position"`
}

// NewRoster builds the full allotment for one player. The slice order is
// stable because clients address pieces by index during setup.
func NewRoster(owner string) []*Piece {
	ranks := []Rank{RankMarshal, RankGeneral, RankSpy, RankFlag}
	add := func(rank Rank, count int) {
		for i := 0; i < count; i++ {
			ranks = append(ranks, rank)
		}
	}
	add(RankColonel, RankAllotment[RankColonel])
	add(RankMajor, RankAllotment[RankMajor])
	add(RankCaptain, RankAllotment[RankCaptain])
	add(RankLieutenant, RankAllotment[RankLieutenant])
	add(RankSergeant, RankAllotment[RankSergeant])
	add(RankMiner, RankAllotment[RankMiner])
	add(RankScout, RankAllotment[RankScout])
	add(RankBomb, RankAllotment[RankBomb])

	roster := make([]*Piece, 0, len(ranks))
	for _, rank := range ranks {
		roster = append(roster, &Piece{Rank: rank, Owner: owner})
	}

	return roster
}

// Opponent returns the other side's marker.
func Opponent(player string) string {
	if player == Player1 {
		return Player2
	}
	return Player1
}
