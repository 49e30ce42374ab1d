package movegen

import "github.com/dkrantz/grendel/pkg/board"

// genEnPassant generates (and revalidates) en passant captures. Unlike every
// other move kind, legality here cannot be decided from the pin/check masks
// alone: removing both the capturing and captured pawns from the same rank
// can unmask a horizontal slider that neither pawn's individual pin status
// would have flagged. So each candidate is played and unplayed against the
// real board and kept only if the king survives.
func genEnPassant(b *board.Board, us board.Color) []board.Move {
	target, ok := b.EnPassant()
	if !ok {
		return nil
	}

	them := us.Opponent()
	attackers := board.PawnCaptureboard(them, board.BitMask(target)) & b.Pieces(us, board.Pawn)

	var moves []board.Move
	for _, from := range attackers.Squares() {
		m := board.Move{Type: board.EnPassant, Piece: board.Pawn, From: from, To: target, Capture: board.Pawn}

		u := b.MakeMove(m)
		legal := !b.IsChecked(us)
		b.UnmakeMove(u)

		if legal {
			moves = append(moves, m)
		}
	}
	return moves
}
