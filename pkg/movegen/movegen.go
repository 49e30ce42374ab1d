package movegen

import "github.com/dkrantz/grendel/pkg/board"

// promotionPieces enumerates the four pieces a pawn may promote to, in the
// order moves are emitted (queen first, since it's almost always strongest
// and move ordering benefits from trying it first).
var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

// Generate returns every strictly legal move for the side to move.
func Generate(b *board.Board) []board.Move {
	return generate(b, false)
}

// GenerateCaptures returns every strictly legal capturing move for the side
// to move; quiescence search uses this to avoid exploring quiet lines.
func GenerateCaptures(b *board.Board) []board.Move {
	return generate(b, true)
}

// generate implements the algorithm: count the king's attackers, reduce to
// king-only moves on double check, otherwise compute the allowed-target mask
// from the single checker (if any), X-ray pins, and generate every piece's
// moves restricted accordingly. Output is unordered; captures-only filters
// at the end rather than threading a flag through each generator.
func generate(b *board.Board, capturesOnly bool) []board.Move {
	us := b.Turn()
	them := us.Opponent()
	king := b.Pieces(us, board.King).LastPopSquare()

	checkers := b.Attackers(them, king)
	if checkers.PopCount() >= 2 {
		return filterCaptures(genKingMoves(b, us, them, king), capturesOnly)
	}

	moves := genKingMoves(b, us, them, king)

	var allowed board.Bitboard
	if checkers.IsEmpty() {
		allowed = board.FullBitboard
		moves = append(moves, genCastling(b, us, them, king)...)
	} else {
		checker, _ := checkers.PopLSB()
		allowed = board.BitMask(checker) | board.Between(checker, king)
	}

	p := findPins(b, us)
	moves = append(moves, genPieceMoves(b, us, p, allowed)...)
	moves = append(moves, genPawnMoves(b, us, p, allowed)...)
	moves = append(moves, genEnPassant(b, us)...)

	return filterCaptures(moves, capturesOnly)
}

func filterCaptures(moves []board.Move, capturesOnly bool) []board.Move {
	if !capturesOnly {
		return moves
	}
	ret := moves[:0]
	for _, m := range moves {
		if m.IsCapture() {
			ret = append(ret, m)
		}
	}
	return ret
}

// squareAttacked mirrors board.Board.IsAttacked but takes an explicit
// occupancy, so a king's own square can be masked out while testing whether
// its destination is safe (a slider's attack continues through the square
// the king just vacated).
func squareAttacked(b *board.Board, by board.Color, sq board.Square, occ board.Bitboard) bool {
	if bishops := b.Pieces(by, board.Bishop) | b.Pieces(by, board.Queen); bishops != 0 && board.BishopAttacks(sq, occ)&bishops != 0 {
		return true
	}
	if rooks := b.Pieces(by, board.Rook) | b.Pieces(by, board.Queen); rooks != 0 && board.RookAttacks(sq, occ)&rooks != 0 {
		return true
	}
	if knights := b.Pieces(by, board.Knight); knights != 0 && board.KnightAttackboard(sq)&knights != 0 {
		return true
	}
	if kings := b.Pieces(by, board.King); kings != 0 && board.KingAttackboard(sq)&kings != 0 {
		return true
	}
	return board.PawnCaptureboard(by.Opponent(), board.BitMask(sq))&b.Pieces(by, board.Pawn) != 0
}

func genKingMoves(b *board.Board, us, them board.Color, king board.Square) []board.Move {
	var moves []board.Move

	own := b.ColorOccupied(us)
	occWithoutKing := b.Occupied() &^ board.BitMask(king)

	for _, to := range (board.KingAttackboard(king) &^ own).Squares() {
		if squareAttacked(b, them, to, occWithoutKing) {
			continue
		}
		if _, captured, ok := b.Square(to); ok {
			moves = append(moves, board.Move{Type: board.Capture, Piece: board.King, From: king, To: to, Capture: captured})
		} else {
			moves = append(moves, board.Move{Type: board.Normal, Piece: board.King, From: king, To: to})
		}
	}
	return moves
}

// genCastling assumes the side to move is not currently in check (checked by
// the caller, since castling out of check is always illegal).
func genCastling(b *board.Board, us, them board.Color, king board.Square) []board.Move {
	var moves []board.Move

	occ := b.Occupied()
	rank := board.Rank1
	if us == board.Black {
		rank = board.Rank8
	}

	kingSide, queenSide := board.WhiteKingSideCastle, board.WhiteQueenSideCastle
	if us == board.Black {
		kingSide, queenSide = board.BlackKingSideCastle, board.BlackQueenSideCastle
	}

	if b.Castling().IsAllowed(kingSide) {
		rook := board.NewSquare(board.FileH, rank)
		f := board.NewSquare(board.FileF, rank)
		g := board.NewSquare(board.FileG, rank)
		if occ&board.Between(king, rook) == 0 && !squareAttacked(b, them, f, occ) && !squareAttacked(b, them, g, occ) {
			moves = append(moves, board.Move{Type: board.KingSideCastle, Piece: board.King, From: king, To: g})
		}
	}
	if b.Castling().IsAllowed(queenSide) {
		rook := board.NewSquare(board.FileA, rank)
		d := board.NewSquare(board.FileD, rank)
		c := board.NewSquare(board.FileC, rank)
		if occ&board.Between(king, rook) == 0 && !squareAttacked(b, them, d, occ) && !squareAttacked(b, them, c, occ) {
			moves = append(moves, board.Move{Type: board.QueenSideCastle, Piece: board.King, From: king, To: c})
		}
	}
	return moves
}

// genPieceMoves handles every non-pawn, non-king piece: pseudo-moves via
// bitboard attack masks (magic lookups for sliders), restricted to the
// allowed-target mask and, if the piece is pinned, to its pin ray.
func genPieceMoves(b *board.Board, us board.Color, p pins, allowed board.Bitboard) []board.Move {
	var moves []board.Move
	own := b.ColorOccupied(us)
	occ := b.Occupied()

	for _, piece := range [3]board.Piece{board.Knight, board.Bishop, board.Rook} {
		genSliderOrLeaper(b, us, piece, p, allowed, own, occ, &moves)
	}
	genSliderOrLeaper(b, us, board.Queen, p, allowed, own, occ, &moves)
	return moves
}

func genSliderOrLeaper(b *board.Board, us board.Color, piece board.Piece, p pins, allowed, own, occ board.Bitboard, moves *[]board.Move) {
	for _, from := range b.Pieces(us, piece).Squares() {
		restrict := p.restrict(from, allowed)
		targets := board.Attackboard(occ, from, piece) &^ own & restrict
		for _, to := range targets.Squares() {
			if _, captured, ok := b.Square(to); ok {
				*moves = append(*moves, board.Move{Type: board.Capture, Piece: piece, From: from, To: to, Capture: captured})
			} else {
				*moves = append(*moves, board.Move{Type: board.Normal, Piece: piece, From: from, To: to})
			}
		}
	}
}
