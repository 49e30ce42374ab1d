package search

import (
	"context"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/movegen"
)

// Minimax implements naive fixed-depth negamax with no pruning, ordering or
// quiescence. It exists purely as a slow, obviously-correct oracle to
// validate Negamax's score against on small test positions. Its leaves use
// the static evaluation, while Negamax runs a quiescence search at depth 0,
// so the two scores differ where captures are pending at the horizon.
type Minimax struct {
	Eval eval.Evaluator
}

func (m Minimax) Search(ctx context.Context, b *board.Board, depth int) (uint64, board.Score, []board.Move) {
	run := &runMinimax{eval: m.Eval, b: b}
	score, pv := run.search(ctx, depth, 0)
	return run.nodes, score, pv
}

type runMinimax struct {
	eval  eval.Evaluator
	b     *board.Board
	nodes uint64
}

// search returns the score relative to the side to move.
func (r *runMinimax) search(ctx context.Context, depth, ply int) (board.Score, []board.Move) {
	r.nodes++

	if depth == 0 {
		return r.eval.Evaluate(ctx, r.b), nil
	}

	inCheck := r.b.IsChecked(r.b.Turn())
	moves := movegen.Generate(r.b)
	if len(moves) == 0 {
		if inCheck {
			return -board.Checkmate + board.Score(ply), nil
		}
		return 0, nil
	}

	best := -board.Infinite
	var pv []board.Move
	for _, move := range moves {
		u := r.b.MakeMove(move)
		score, rem := r.search(ctx, depth-1, ply+1)
		score = -score
		r.b.UnmakeMove(u)

		if score > best {
			best = score
			pv = append([]board.Move{move}, rem...)
		}
	}
	return best, pv
}
