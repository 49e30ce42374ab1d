// Package search implements iterative-deepening negamax search over the
// move generator in pkg/movegen: alpha-beta pruning, a transposition table,
// quiescence search, mate-distance pruning, reverse futility pruning,
// late-move reductions, check extensions and aspiration windows.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkrantz/grendel/pkg/board"
)

// ErrHalted is returned by Search when the search was stopped via ctx.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found at some completed depth.
type PV struct {
	Depth, SelDepth int
	Moves           []board.Move
	Score           board.Score
	Nodes           uint64
	Time            time.Duration
	Hash            float64 // TT utilization [0;1]
}

func (p PV) String() string {
	pv := board.FormatMoves(p.Moves, func(m board.Move) string { return m.String() })
	return fmt.Sprintf("depth=%v seldepth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.SelDepth, p.Score, p.Nodes, p.Time, int(100*p.Hash), pv)
}

// Options hold dynamic search options. The caller may change these on a
// particular search.
type Options struct {
	// DepthLimit, if non-zero, limits the search to the given ply depth.
	DepthLimit int
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl *TimeControl
	// History holds the Zobrist hashes of every position reached so far in
	// the played game, oldest first, including the position being searched.
	// It seeds the search's repetition table so a twofold repetition against
	// moves already played -- not just cycles within the search tree -- is
	// detected. Nil means no played history (e.g. an isolated position
	// analyzed outside a game); the root's own hash still seeds the table.
	History []board.ZobristHash
}

// Launcher is a Search generator: it drives a Search implementation through
// iterative deepening and exposes the resulting PVs as they complete.
type Launcher interface {
	// Launch starts a new search from the given position. b is expected to
	// be exclusively owned by the search (fork it first if needed); the
	// returned channel yields one PV per completed depth and is closed
	// when the search is exhausted.
	Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV)
}

// Handle manages a running search. The caller is expected to spin off
// searches against forked boards and close/abandon them when no longer
// needed.
type Handle interface {
	// Halt stops the search, if running, and returns the last completed PV.
	// Idempotent.
	Halt() PV
}
