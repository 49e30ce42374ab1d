package search

import "github.com/dkrantz/grendel/pkg/board"

// RepetitionTable is the ordered sequence of position hashes reached so far
// in the game plus the moves tentatively explored during search. It is
// pushed on every played or tentative move and popped symmetrically on
// undo, so a node can tell whether it is revisiting an earlier position.
type RepetitionTable struct {
	hashes []board.ZobristHash
}

// NewRepetitionTable returns a table seeded with the hashes of the game
// played so far, oldest first.
func NewRepetitionTable(played ...board.ZobristHash) *RepetitionTable {
	return &RepetitionTable{hashes: append([]board.ZobristHash{}, played...)}
}

// Push records a newly reached hash.
func (t *RepetitionTable) Push(hash board.ZobristHash) {
	t.hashes = append(t.hashes, hash)
}

// Pop removes the most recently pushed hash. Must be paired with every Push.
func (t *RepetitionTable) Pop() {
	t.hashes = t.hashes[:len(t.hashes)-1]
}

// Repeated reports whether hash occurs anywhere strictly before the most
// recent entry -- a twofold repetition within the table's history.
func (t *RepetitionTable) Repeated(hash board.ZobristHash) bool {
	if len(t.hashes) == 0 {
		return false
	}
	for _, h := range t.hashes[:len(t.hashes)-1] {
		if h == hash {
			return true
		}
	}
	return false
}
