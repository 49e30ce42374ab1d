// Package movegen generates strictly legal chess moves from a board.Board:
// attacker counting and check evasion, X-ray pin detection, and the special
// cases (castling, promotion, en passant) that the rest of the board package
// leaves to the generator.
package movegen

import "github.com/dkrantz/grendel/pkg/board"

// pins is the result of an X-ray pass from the king of the side to move: the
// bitboard of pieces pinned to it, and, for each pinned square, the ray
// (pinner square plus every square strictly between it and the king) that
// piece's moves are confined to.
type pins struct {
	pinned board.Bitboard
	ray    map[board.Square]board.Bitboard
}

// findPins X-rays the king through its own pieces to opposing sliders: an
// opposing rook/queen (or bishop/queen, on the diagonal pass) that would
// attack the king on an otherwise empty board pins the single friendly piece
// actually standing between them.
func findPins(b *board.Board, us board.Color) pins {
	them := us.Opponent()
	king := b.Pieces(us, board.King).LastPopSquare()
	occ := b.Occupied()
	own := b.ColorOccupied(us)

	ret := pins{ray: make(map[board.Square]board.Bitboard)}

	orthogonal := board.RookAttacks(king, board.EmptyBitboard) & (b.Pieces(them, board.Rook) | b.Pieces(them, board.Queen))
	ret.scan(king, orthogonal, occ, own)

	diagonal := board.BishopAttacks(king, board.EmptyBitboard) & (b.Pieces(them, board.Bishop) | b.Pieces(them, board.Queen))
	ret.scan(king, diagonal, occ, own)

	return ret
}

func (p *pins) scan(king board.Square, snipers board.Bitboard, occ, own board.Bitboard) {
	for _, sniper := range snipers.Squares() {
		between := board.Between(sniper, king)
		blockers := between & occ
		if blockers.PopCount() != 1 || blockers&own == 0 {
			continue
		}
		sq, _ := blockers.PopLSB()
		p.pinned |= blockers
		p.ray[sq] = between | board.BitMask(sniper)
	}
}

// restrict returns the destination mask a piece on sq must obey: allowed
// narrowed to the pin ray if sq is pinned, or allowed unchanged otherwise. A
// pinned knight always ends up with an empty mask, since no knight move
// shares a rank/file/diagonal with its own square; a pinned pawn's push or
// capture destinations are likewise only ever non-empty for the one kind of
// move the pin permits, since the ray is a straight line.
func (p pins) restrict(sq board.Square, allowed board.Bitboard) board.Bitboard {
	if ray, ok := p.ray[sq]; ok {
		return allowed & ray
	}
	return allowed
}
