package search

import (
	"context"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/movegen"
)

// Context carries the per-episode state a root search call needs beyond the
// board and depth: the alpha-beta window (set by the caller so iterative
// deepening can supply an aspiration window), the transposition table, and
// the repetition table used for twofold-repetition detection.
type Context struct {
	Alpha, Beta board.Score
	TT          TranspositionTable
	Rep         *RepetitionTable
}

// Search runs a fixed-depth search from the root of b and returns the node
// count, score, and principal variation. Cancellation and deadlines are
// both carried by ctx: Search returns ErrHalted as soon as ctx.Err() is
// non-nil at a suspension point.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (nodes uint64, selDepth int, score board.Score, pv []board.Move, err error)
}

// Negamax implements iterative-deepening-ready negamax with alpha-beta
// pruning, transposition table probing, reverse futility pruning, late-move
// reductions, check extensions, mate-distance pruning and a quiescence
// leaf search.
type Negamax struct {
	Eval eval.Evaluator
}

func (n Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, int, board.Score, []board.Move, error) {
	r := &run{eval: n.Eval, tt: sctx.TT, rep: sctx.Rep, b: b}

	score, pv := r.negamax(ctx, depth, 0, sctx.Alpha, sctx.Beta)
	if ctx.Err() != nil {
		return r.nodes, r.selDepth, 0, nil, ErrHalted
	}
	return r.nodes, r.selDepth, score, pv, nil
}

// run carries the mutable state of a single Search call: the board being
// explored in place (make/unmake, never copied), the node counter, and the
// shared TT/repetition table for the whole episode.
type run struct {
	eval eval.Evaluator
	tt   TranspositionTable
	rep  *RepetitionTable
	b    *board.Board

	nodes    uint64
	selDepth int
}

// negamax searches the subtree rooted at the current board to the given
// depth and returns the score (relative to the side to move) and the
// principal variation from this node down.
func (r *run) negamax(ctx context.Context, depth, ply int, alpha, beta board.Score) (board.Score, []board.Move) {
	r.nodes++
	if ply > r.selDepth {
		r.selDepth = ply
	}

	hash := r.b.Hash()
	if ply > 0 && r.rep.Repeated(hash) {
		return 0, nil
	}
	if ctx.Err() != nil {
		return 0, nil
	}

	// Mate-distance pruning: no line through this node can deliver (or
	// suffer) a mate faster than the current ply, so tighten the window
	// to what's actually reachable.
	if m := -board.Checkmate + board.Score(ply); alpha < m {
		alpha = m
	}
	if m := board.Checkmate - board.Score(ply); beta > m {
		beta = m
	}
	if alpha >= beta {
		return alpha, nil
	}

	var hashMove board.Move
	if bound, d, score, move, ok := r.tt.Read(hash); ok {
		hashMove = move
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	if depth <= 0 {
		return r.quiescence(ctx, alpha, beta), nil
	}

	inCheck := r.b.IsChecked(r.b.Turn())
	moves := movegen.Generate(r.b)
	if len(moves) == 0 {
		if inCheck {
			return -board.Checkmate + board.Score(ply), nil
		}
		return 0, nil
	}

	if !inCheck && depth <= 8 {
		static := r.eval.Evaluate(ctx, r.b)
		if static >= beta+board.Score(120*depth) {
			return beta, nil
		}
	}

	originalAlpha := alpha
	value := -board.Infinite
	var pv []board.Move
	var best board.Move

	list := board.NewMoveList(moves, orderMoves(hashMove))
	for i := 0; ; i++ {
		m, ok := list.Next()
		if !ok {
			break
		}

		u := r.b.MakeMove(m)
		r.rep.Push(r.b.Hash())

		ext := 0
		if r.b.IsChecked(r.b.Turn()) {
			ext = 1
		}

		reduction := 0
		if depth > 2 && ext == 0 && m.IsQuiet() && i > 3 {
			reduction = 1
			if i > 6 {
				reduction = depth / 3
			}
		}

		searchDepth := depth - 1 + ext - reduction
		if searchDepth < 0 {
			searchDepth = 0
		}
		score, rem := r.negamax(ctx, searchDepth, ply+1, -beta, -alpha)
		score = -score

		if reduction > 0 && score > alpha {
			// The reduced search failed high: it may have only looked
			// shallow enough to miss a real improvement, so verify at
			// full depth before trusting it.
			score, rem = r.negamax(ctx, depth-1+ext, ply+1, -beta, -alpha)
			score = -score
		}

		r.rep.Pop()
		r.b.UnmakeMove(u)

		if ctx.Err() != nil {
			return 0, nil
		}

		if score > value {
			value = score
			best = m
			pv = append([]board.Move{m}, rem...)
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	bound := ExactBound
	switch {
	case value <= originalAlpha:
		bound = UpperBound
	case value >= beta:
		bound = LowerBound
	}
	r.tt.Write(hash, bound, ply, depth, value, best)

	return value, pv
}
