package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameSession_SnapshotFor(t *testing.T) {
	session := NewGameSession("abc", "alice", "bob")
	session.Game.Phase = PhasePlay
	session.Game.Turn = Player1

	own := session.Game.Player1Pieces[0]
	own.Placed = true
	own.Position = Position{Row: 9, Col: 0}
	session.Game.Board.Place(own, own.Position)

	enemy := session.Game.Player2Pieces[0]
	enemy.Placed = true
	enemy.Position = Position{Row: 0, Col: 0}
	session.Game.Board.Place(enemy, enemy.Position)

	t.Run("Own ranks visible, enemy ranks hidden", func(t *testing.T) {
		// When: player1 asks for the board
		snapshot := session.SnapshotFor("alice")

		// Then: the own piece shows its rank, the enemy piece only its owner
		require.Len(t, snapshot.Board, BoardSize)
		ownCell := snapshot.Board[9][0]
		assert.Equal(t, own.Rank.String(), ownCell.Rank)
		assert.Equal(t, Player1, ownCell.Owner)
		assert.False(t, ownCell.Hidden)

		enemyCell := snapshot.Board[0][0]
		assert.Empty(t, enemyCell.Rank)
		assert.Equal(t, Player2, enemyCell.Owner)
		assert.True(t, enemyCell.Hidden)

		assert.Equal(t, "abc", snapshot.SessionID)
		assert.Equal(t, PhasePlay, snapshot.Phase)
		assert.Equal(t, Player1, snapshot.Turn)
	})

	t.Run("Stranger sees no ranks at all", func(t *testing.T) {
		snapshot := session.SnapshotFor("mallory")

		assert.True(t, snapshot.Board[9][0].Hidden)
		assert.True(t, snapshot.Board[0][0].Hidden)
	})

	t.Run("Everything visible once the game ended", func(t *testing.T) {
		session.Game.Phase = PhaseEnded
		defer func() { session.Game.Phase = PhasePlay }()

		snapshot := session.SnapshotFor("bob")

		assert.Equal(t, own.Rank.String(), snapshot.Board[9][0].Rank)
		assert.Equal(t, enemy.Rank.String(), snapshot.Board[0][0].Rank)
	})
}
