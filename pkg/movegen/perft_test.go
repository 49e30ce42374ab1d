package movegen_test

import (
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/board/fen"
	"github.com/dkrantz/grendel/pkg/movegen"
	"github.com/stretchr/testify/require"
)

func perftBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	zt := board.NewZobristTable(1)
	b, err := fen.DecodeBoard(zt, s)
	require.NoError(t, err)
	return b
}

func TestPerftStartPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft depth 5 is slow under -short")
	}

	b := perftBoard(t, fen.Initial)
	expected := []int64{20, 400, 8902, 197281, 4865609}

	for i, want := range expected {
		depth := i + 1
		if depth > 4 && testing.Short() {
			continue
		}
		got := movegen.Perft(b, depth)
		require.Equal(t, want, got, "perft(%d)", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	b := perftBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	expected := []int64{48, 2039, 97862, 4085603}

	for i, want := range expected {
		depth := i + 1
		if depth > 3 && testing.Short() {
			continue
		}
		got := movegen.Perft(b, depth)
		require.Equal(t, want, got, "perft(%d)", depth)
	}
}
