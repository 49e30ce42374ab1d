package engine_test

import (
	"context"
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/board/fen"
	"github.com/dkrantz/grendel/pkg/engine"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMoveAndTakeBackRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", eval.Material{})

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", eval.Material{})

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestEngineAnalyzeFindsMateInTwo(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", eval.PST{}, engine.WithOptions(engine.Options{Depth: 4}))
	require.NoError(t, e.Reset(ctx, "7k/8/8/8/8/8/5QK1/8 w - - 0 1"))

	out, err := e.Analyze(ctx, search.Options{})
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.True(t, last.Score.IsMateScore())
	assert.NotEmpty(t, last.Moves)
}

func TestEngineAnalyzeThreadsPlayedHistoryIntoRepetitionTable(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", eval.Material{}, engine.WithOptions(engine.Options{Depth: 1}))

	// Shuffle both kings out and back, so the current root's hash already
	// sits in the engine's played-move history, not merely in whatever the
	// search tree explores on its own. This exercises the production path
	// (Engine.Analyze -> search.Options.History -> Iterative ->
	// NewRepetitionTable), not a hand-seeded Context as in the pkg/search
	// unit test: without threading that history through, a shuffle back
	// into the game's own start position would go undetected as a draw.
	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	require.NoError(t, e.Move(ctx, "e1d1"))
	require.NoError(t, e.Move(ctx, "e8d8"))
	require.NoError(t, e.Move(ctx, "d1e1"))
	require.NoError(t, e.Move(ctx, "d8e8"))

	out, err := e.Analyze(ctx, search.Options{})
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.Equal(t, board.Score(0), last.Score)
	assert.NotEmpty(t, last.Moves)
}

func TestEngineHaltWithNoActiveSearchErrors(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", eval.Material{})

	_, err := e.Halt(ctx)
	assert.Error(t, err)
}
