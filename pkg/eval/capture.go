package eval

import (
	"sort"

	"github.com/dkrantz/grendel/pkg/board"
)

// FindCapture returns every placement of the given side that attacks sq,
// i.e. the candidate recapturing pieces if an enemy piece landed there. Used
// by static-exchange-style ordering in quiescence search.
func FindCapture(b *board.Board, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement
	for _, at := range b.Attackers(side, sq).Squares() {
		_, piece, ok := b.Square(at)
		if !ok {
			continue
		}
		ret = append(ret, board.Placement{Square: at, Color: side, Piece: piece})
	}
	return ret
}

// SortByNominalValue sorts placements by ascending nominal piece value, so
// the cheapest attacker is considered first (least valuable attacker first).
func SortByNominalValue(pieces []board.Placement) []board.Placement {
	sort.SliceStable(pieces, func(i, j int) bool {
		return NominalValue(pieces[i].Piece) < NominalValue(pieces[j].Piece)
	})
	return pieces
}
