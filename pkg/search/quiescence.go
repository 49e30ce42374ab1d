package search

import (
	"context"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/movegen"
)

// quiescence resolves tactical noise at the horizon: it stands pat at the
// static evaluation, then only ever explores captures, so the search never
// calls a position quiet while a profitable capture sits on the board. Delta
// pruning skips captures that cannot plausibly recover enough material to
// reach alpha even with a 200cp safety margin for inaccuracy.
func (r *run) quiescence(ctx context.Context, alpha, beta board.Score) board.Score {
	r.nodes++

	stand := r.eval.Evaluate(ctx, r.b)
	if stand >= beta {
		return stand
	}
	if stand > alpha {
		alpha = stand
	}

	captures := movegen.GenerateCaptures(r.b)
	if len(captures) == 0 {
		return alpha
	}

	board.SortByPriority(captures, mvvlva)
	for _, m := range captures {
		if ctx.Err() != nil {
			return alpha
		}
		if stand+eval.NominalValueGain(m)+200 < alpha {
			continue // delta prune: even the best case can't reach alpha
		}

		u := r.b.MakeMove(m)
		if !isSafeCapture(r.b, r.b.Turn().Opponent(), landedPiece(m), m.To) {
			r.b.UnmakeMove(u)
			continue // SEE-lite prune: the recapture wins back more than we took
		}

		score := -r.quiescence(ctx, -beta, -alpha)
		r.b.UnmakeMove(u)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// landedPiece returns the piece actually occupying a move's destination
// square once it's played, accounting for promotion.
func landedPiece(m board.Move) board.Piece {
	if m.Promotion != board.NoPiece {
		return m.Promotion
	}
	return m.Piece
}

// isSafeCapture is a lightweight static-exchange check: it skips the full
// swap algorithm and just asks whether the cheapest enemy attacker of the
// destination square outvalues our piece, given our side still defends it.
// Undefended captures onto an attacked square are unsafe outright.
func isSafeCapture(b *board.Board, us board.Color, piece board.Piece, sq board.Square) bool {
	attackers := eval.SortByNominalValue(eval.FindCapture(b, us.Opponent(), sq))
	if len(attackers) == 0 {
		return true
	}
	defenders := eval.FindCapture(b, us, sq)
	if len(defenders) == 0 {
		return false
	}
	return eval.NominalValue(attackers[0].Piece) >= eval.NominalValue(piece)
}
