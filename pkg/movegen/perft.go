package movegen

import "github.com/dkrantz/grendel/pkg/board"

// Perft counts the leaf nodes of the legal move tree to the given depth,
// the standard move-generator correctness oracle: its counts for well-known
// positions are published and any divergence points at a generator bug.
func Perft(b *board.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := Generate(b)
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		u := b.MakeMove(m)
		nodes += Perft(b, depth-1)
		b.UnmakeMove(u)
	}
	return nodes
}

// Divide returns the perft count broken down by the first move played,
// useful for bisecting a generator bug against a reference engine's output.
func Divide(b *board.Board, depth int) map[string]int64 {
	ret := make(map[string]int64)
	if depth < 1 {
		return ret
	}

	for _, m := range Generate(b) {
		u := b.MakeMove(m)
		ret[m.String()] = Perft(b, depth-1)
		b.UnmakeMove(u)
	}
	return ret
}
