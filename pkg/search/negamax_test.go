package search_test

import (
	"context"
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/board/fen"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	zt := board.NewZobristTable(1)
	b, err := fen.DecodeBoard(zt, s)
	require.NoError(t, err)
	return b
}

func TestNegamaxFindsMateInTwo(t *testing.T) {
	b := searchBoard(t, "7k/8/8/8/8/8/5QK1/8 w - - 0 1")

	n := search.Negamax{Eval: eval.PST{}}
	sctx := &search.Context{
		Alpha: -board.Infinite,
		Beta:  board.Infinite,
		TT:    search.NewTranspositionTable(context.Background(), search.DefaultTableSize),
		Rep:   search.NewRepetitionTable(b.Hash()),
	}

	_, _, score, pv, err := n.Search(context.Background(), sctx, b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.True(t, score.IsMateScore())
	assert.True(t, score > 0)
}

func TestNegamaxMatchesMinimaxOnShallowDepth(t *testing.T) {
	b := searchBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	nm := search.Negamax{Eval: eval.Material{}}
	sctx := &search.Context{
		Alpha: -board.Infinite,
		Beta:  board.Infinite,
		TT:    search.NoTranspositionTable{},
		Rep:   search.NewRepetitionTable(b.Hash()),
	}
	_, _, negaScore, _, err := nm.Search(context.Background(), sctx, b, 2)
	require.NoError(t, err)

	mm := search.Minimax{Eval: eval.Material{}}
	_, mmScore, _ := mm.Search(context.Background(), b, 2)

	assert.Equal(t, mmScore, negaScore)
}

func TestNegamaxTreatsRepeatedHashInSearchTreeAsDraw(t *testing.T) {
	// A single non-capturing king move and its mirror-image reverse: after
	// the first ply, the resulting hash already sits in the repetition
	// table (simulating that this exact position was already reached once
	// earlier in the game), so the child node at ply=1 must score it 0.
	b := searchBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	u := b.MakeMove(board.Move{Type: board.Normal, Piece: board.King, From: board.E1, To: board.D1})
	afterMove := b.Hash()
	b.UnmakeMove(u)

	rep := search.NewRepetitionTable(b.Hash(), afterMove)

	n := search.Negamax{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: -board.Infinite, Beta: board.Infinite, TT: search.NoTranspositionTable{}, Rep: rep}
	_, _, score, pv, err := n.Search(context.Background(), sctx, b, 1)
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.Equal(t, board.Score(0), score)
}
