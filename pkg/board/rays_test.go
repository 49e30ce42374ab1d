package board_test

import (
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBetweenOnRank(t *testing.T) {
	between := board.Between(sq("a1"), sq("e1"))
	assert.Equal(t, 3, between.PopCount())
	assert.True(t, between.IsSet(sq("b1")))
	assert.True(t, between.IsSet(sq("c1")))
	assert.True(t, between.IsSet(sq("d1")))
}

func TestBetweenOnDiagonal(t *testing.T) {
	between := board.Between(sq("a1"), sq("d4"))
	assert.Equal(t, 2, between.PopCount())
	assert.True(t, between.IsSet(sq("b2")))
	assert.True(t, between.IsSet(sq("c3")))
}

// TestBetweenUnalignedSquaresIsEmpty guards against the corner-square bug:
// firing a rook ray from each of two non-aligned squares at the other as
// sole blocker, then ANDing the two attack sets, always leaves the two
// squares (file_b,rank_a) and (file_a,rank_b) in common even though neither
// lies between a and b. Between must special-case alignment rather than
// relying on that intersection alone.
func TestBetweenUnalignedSquaresIsEmpty(t *testing.T) {
	assert.Equal(t, board.EmptyBitboard, board.Between(sq("e1"), sq("f3")))
	assert.Equal(t, board.EmptyBitboard, board.Between(sq("a1"), sq("b3")))
	assert.Equal(t, board.EmptyBitboard, board.Between(sq("d4"), sq("h5")))
}

func TestBetweenSameSquareIsEmpty(t *testing.T) {
	assert.Equal(t, board.EmptyBitboard, board.Between(sq("e4"), sq("e4")))
}

func TestAlignedUnalignedTriple(t *testing.T) {
	assert.False(t, board.Aligned(sq("e1"), sq("f3"), sq("a1")))
	assert.True(t, board.Aligned(sq("a1"), sq("e1"), sq("c1")))
}
