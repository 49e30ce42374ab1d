package board

// UndoRecord carries the information MakeMove destroys that UnmakeMove needs
// to restore the exact prior position: the moved piece itself (From/To are
// enough to put it back), what (if anything) it captured, and the metadata
// MakeMove may have mutated (castling rights, en passant target, the
// no-progress clock, the hash). An explicit value is used instead of a
// closure over captured state so the caller controls its lifetime (e.g. a
// search stack of records) rather than the GC.
type UndoRecord struct {
	Move Move

	PriorCastling  Castling
	PriorEnPassant Square
	PriorNoProgress int
	PriorHash      ZobristHash
}
