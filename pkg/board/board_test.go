package board_test

import (
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, zt *board.ZobristTable, s string) *board.Board {
	t.Helper()
	b, err := fen.DecodeBoard(zt, s)
	require.NoError(t, err)
	return b
}

func TestNewBoardStartingPosition(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := mustDecode(t, zt, fen.Initial)

	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, 8, b.Pieces(board.White, board.Pawn).PopCount())
	assert.Equal(t, 8, b.Pieces(board.Black, board.Pawn).PopCount())
	assert.False(t, b.IsChecked(board.White))
	assert.False(t, b.IsChecked(board.Black))
	assert.Equal(t, fen.Initial, fen.Encode(b))
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := mustDecode(t, zt, fen.Initial)

	before := fen.Encode(b)
	beforeHash := b.Hash()

	m := board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4}
	u := b.MakeMove(m)

	assert.NotEqual(t, before, fen.Encode(b))
	sq, ok := b.EnPassant()
	assert.True(t, ok)
	assert.Equal(t, board.E3, sq)

	b.UnmakeMove(u)
	assert.Equal(t, before, fen.Encode(b))
	assert.Equal(t, beforeHash, b.Hash())
}

func TestMakeMoveIncrementalHashMatchesFromScratch(t *testing.T) {
	zt := board.NewZobristTable(1)
	b := mustDecode(t, zt, fen.Initial)

	moves := []board.Move{
		{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4},
		{Type: board.Jump, Piece: board.Pawn, From: board.D7, To: board.D5},
		{Type: board.Capture, Piece: board.Pawn, From: board.E4, To: board.D5, Capture: board.Pawn},
	}
	for _, m := range moves {
		b.MakeMove(m)
	}

	assert.Equal(t, zt.HashBoard(b), b.Hash())
}

func TestCastlingRightsLostOnKingMove(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := board.NewBoard(zt, []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.A1, Color: board.White, Piece: board.Rook},
		{Square: board.H1, Color: board.White, Piece: board.Rook},
	}, board.White, board.FullCastlingRights, board.ZeroSquare, 0, 1)
	require.NoError(t, err)

	u := b.MakeMove(board.Move{Type: board.Normal, Piece: board.King, From: board.E1, To: board.E2})
	assert.False(t, b.Castling().IsAllowed(board.WhiteKingSideCastle))
	assert.False(t, b.Castling().IsAllowed(board.WhiteQueenSideCastle))

	b.UnmakeMove(u)
	assert.True(t, b.Castling().IsAllowed(board.WhiteKingSideCastle))
	assert.True(t, b.Castling().IsAllowed(board.WhiteQueenSideCastle))
}

func TestEnPassantCapture(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, err := board.NewBoard(zt, []board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.E5, Color: board.White, Piece: board.Pawn},
		{Square: board.D5, Color: board.Black, Piece: board.Pawn},
	}, board.White, 0, board.D6, 0, 1)
	require.NoError(t, err)

	m := board.Move{Type: board.EnPassant, Piece: board.Pawn, From: board.E5, To: board.D6, Capture: board.Pawn}
	u := b.MakeMove(m)

	_, _, onD5 := b.Square(board.D5)
	assert.False(t, onD5)
	_, _, onD6 := b.Square(board.D6)
	assert.True(t, onD6)

	b.UnmakeMove(u)
	_, p, onD5 := b.Square(board.D5)
	assert.True(t, onD5)
	assert.Equal(t, board.Pawn, p)
}
