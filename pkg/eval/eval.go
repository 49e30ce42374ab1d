// Package eval contains static position evaluation: material, piece-square
// tables, and a deterministic noise hook for engine-vs-engine test games.
package eval

import (
	"context"

	"github.com/dkrantz/grendel/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, relative to the
	// side to move (positive favors the side to move).
	Evaluate(ctx context.Context, b *board.Board) board.Score
}

// NominalValue is the absolute centipawn value of a piece, used for move
// ordering (MVV-LVA) rather than the tapered PST evaluation itself. The
// King's value is arbitrary and large: it must never be captured, but move
// ordering needs a well-defined "victim value" if it ever examines one.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Bishop, board.Knight:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing a move, used by
// quiescence delta pruning and capture ordering.
func NominalValueGain(m board.Move) board.Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

// Material is a plain material-only evaluator, useful as a baseline/test
// double against the fuller PST evaluator.
type Material struct{}

func (Material) Evaluate(_ context.Context, b *board.Board) board.Score {
	turn := b.Turn()

	var score board.Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		score += board.Score(b.Pieces(turn, p).PopCount()-b.Pieces(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return score
}
