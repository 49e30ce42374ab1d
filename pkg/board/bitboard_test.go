package board_test

import (
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/stretchr/testify/assert"
)

func sq(s string) board.Square {
	v, err := board.ParseSquareStr(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBitboardPopCount(t *testing.T) {
	assert.Equal(t, 0, board.EmptyBitboard.PopCount())
	assert.Equal(t, 1, board.BitMask(board.G4).PopCount())
	assert.Equal(t, 2, (board.BitMask(board.G3) | board.BitMask(board.G4)).PopCount())
}

func TestBitboardString(t *testing.T) {
	assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/--------", board.EmptyBitboard.String())
	assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/X-------", board.BitMask(board.A1).String())
	assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/-------X", board.BitMask(board.H1).String())
	assert.Equal(t, "X-------/--------/--------/--------/--------/--------/--------/--------", board.BitMask(board.A8).String())
}

func TestKingAttackboard(t *testing.T) {
	corner := board.KingAttackboard(board.A1)
	assert.Equal(t, 3, corner.PopCount())
	assert.True(t, corner.IsSet(sq("a2")))
	assert.True(t, corner.IsSet(sq("b2")))
	assert.True(t, corner.IsSet(sq("b1")))
	assert.False(t, corner.IsSet(board.A1))

	center := board.KingAttackboard(board.E4)
	assert.Equal(t, 8, center.PopCount())
	for _, s := range []string{"d3", "d4", "d5", "e3", "e5", "f3", "f4", "f5"} {
		assert.True(t, center.IsSet(sq(s)), s)
	}
}

func TestKnightAttackboard(t *testing.T) {
	corner := board.KnightAttackboard(board.A1)
	assert.Equal(t, 2, corner.PopCount())
	assert.True(t, corner.IsSet(sq("b3")))
	assert.True(t, corner.IsSet(sq("c2")))

	center := board.KnightAttackboard(board.E4)
	assert.Equal(t, 8, center.PopCount())
	for _, s := range []string{"d2", "f2", "c3", "g3", "c5", "g5", "d6", "f6"} {
		assert.True(t, center.IsSet(sq(s)), s)
	}
}

func TestRookAttacks(t *testing.T) {
	att := board.RookAttacks(board.A1, board.EmptyBitboard)
	assert.Equal(t, 14, att.PopCount())
	assert.True(t, att.IsSet(board.A8))
	assert.True(t, att.IsSet(board.H1))

	occ := board.BitMask(sq("a4")) | board.BitMask(sq("d1"))
	att = board.RookAttacks(board.A1, occ)
	assert.True(t, att.IsSet(sq("a2")))
	assert.True(t, att.IsSet(sq("a3")))
	assert.True(t, att.IsSet(sq("a4")))
	assert.False(t, att.IsSet(sq("a5")))
	assert.True(t, att.IsSet(sq("b1")))
	assert.True(t, att.IsSet(sq("c1")))
	assert.True(t, att.IsSet(sq("d1")))
	assert.False(t, att.IsSet(sq("e1")))
}

func TestBishopAttacks(t *testing.T) {
	att := board.BishopAttacks(board.A1, board.EmptyBitboard)
	assert.Equal(t, 7, att.PopCount())
	assert.True(t, att.IsSet(board.H8))

	occ := board.BitMask(sq("d4"))
	att = board.BishopAttacks(board.A1, occ)
	assert.True(t, att.IsSet(sq("b2")))
	assert.True(t, att.IsSet(sq("c3")))
	assert.True(t, att.IsSet(sq("d4")))
	assert.False(t, att.IsSet(sq("e5")))
}

func TestQueenAttacks(t *testing.T) {
	att := board.QueenAttacks(board.D4, board.EmptyBitboard)
	rook := board.RookAttacks(board.D4, board.EmptyBitboard)
	bishop := board.BishopAttacks(board.D4, board.EmptyBitboard)
	assert.Equal(t, rook|bishop, att)
}

func TestSquares(t *testing.T) {
	bb := board.BitMask(board.A1) | board.BitMask(board.H8) | board.BitMask(board.D4)
	got := bb.Squares()
	assert.ElementsMatch(t, []board.Square{board.A1, board.D4, board.H8}, got)
}
