package movegen

import "github.com/dkrantz/grendel/pkg/board"

// genPawnMoves handles pushes (single and double, respecting blockers),
// captures (via file masks, so no wraparound), and promotions (generated on
// the last rank only). En passant is handled separately in enpassant.go,
// since it always needs a make/unmake revalidation rather than the
// allowed-target/pin restriction used here.
func genPawnMoves(b *board.Board, us board.Color, p pins, allowed board.Bitboard) []board.Move {
	var moves []board.Move

	occ := b.Occupied()
	enemy := b.ColorOccupied(us.Opponent())
	promRank := board.PawnPromotionRank(us)
	homeRank := board.PawnHomeRank(us)

	for _, from := range b.Pieces(us, board.Pawn).Squares() {
		restrict := p.restrict(from, allowed)

		if push1, ok := pawnForward(us, from); ok && !occ.IsSet(push1) {
			if restrict.IsSet(push1) {
				emitPawnMove(&moves, from, push1, promRank, board.NoPiece)
			}
			if homeRank.IsSet(from) {
				if push2, ok2 := pawnForward(us, push1); ok2 && !occ.IsSet(push2) && restrict.IsSet(push2) {
					moves = append(moves, board.Move{Type: board.Jump, Piece: board.Pawn, From: from, To: push2})
				}
			}
		}

		captures := board.PawnCaptureboard(us, board.BitMask(from)) & enemy & restrict
		for _, to := range captures.Squares() {
			_, captured, _ := b.Square(to)
			emitPawnMove(&moves, from, to, promRank, captured)
		}
	}
	return moves
}

// emitPawnMove appends either a plain push/capture or all four promotion
// variants, depending on whether to lands on the promotion rank. captured
// is board.NoPiece for a push.
func emitPawnMove(moves *[]board.Move, from, to board.Square, promRank board.Bitboard, captured board.Piece) {
	isCapture := captured != board.NoPiece

	if !promRank.IsSet(to) {
		if isCapture {
			*moves = append(*moves, board.Move{Type: board.Capture, Piece: board.Pawn, From: from, To: to, Capture: captured})
		} else {
			*moves = append(*moves, board.Move{Type: board.Push, Piece: board.Pawn, From: from, To: to})
		}
		return
	}

	for _, promo := range promotionPieces {
		if isCapture {
			*moves = append(*moves, board.Move{Type: board.CapturePromotion, Piece: board.Pawn, From: from, To: to, Capture: captured, Promotion: promo})
		} else {
			*moves = append(*moves, board.Move{Type: board.Promotion, Piece: board.Pawn, From: from, To: to, Promotion: promo})
		}
	}
}

// pawnForward returns the square one rank ahead of sq for color us, or false
// if sq is already on the back rank relative to that color (which cannot
// happen for a real pawn, but keeps this total).
func pawnForward(us board.Color, sq board.Square) (board.Square, bool) {
	r := sq.Rank()
	if us == board.White {
		if r == board.Rank8 {
			return 0, false
		}
		return board.NewSquare(sq.File(), r+1), true
	}
	if r == board.Rank1 {
		return 0, false
	}
	return board.NewSquare(sq.File(), r-1), true
}
