package search

import (
	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/eval"
)

// mvvlva orders moves by most-valuable-victim, least-valuable-attacker
// (descending): big captures first, quiet moves last.
func mvvlva(m board.Move) board.MovePriority {
	if gain := eval.NominalValueGain(m); gain > 0 {
		return board.MovePriority(10*gain - eval.NominalValue(m.Piece)/100)
	}
	return 0
}

// orderMoves returns the move priority function for a node: the stored
// hash move (if any) first, then MVV-LVA.
func orderMoves(hashMove board.Move) board.MovePriorityFn {
	return board.First(hashMove, mvvlva)
}
