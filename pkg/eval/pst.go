package eval

import (
	"context"

	"github.com/dkrantz/grendel/pkg/board"
)

// PST is a tapered material-plus-piece-square-table evaluator: the classic
// "simplified evaluation" shape used across the example pack (piece values,
// positional tables indexed by square, a midgame/endgame blend driven by
// remaining non-pawn material, and a passed-pawn bonus). All tables are
// written from White's point of view; Black looks up the vertically mirrored
// square.
type PST struct{}

// pieceValue is the PST's own material scale (distinct from NominalValue,
// which move ordering uses and which must stay a stable MVV-LVA ranking).
var pieceValue = [board.NumPieces]board.Score{
	board.Pawn:   100,
	board.Bishop: 330,
	board.Knight: 320,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// phaseWeight is how much each piece kind contributes to the game phase
// counter; a full set of minors/rooks/queens sums to maxPhase.
var phaseWeight = [board.NumPieces]int{
	board.Bishop: 1,
	board.Knight: 1,
	board.Rook:   2,
	board.Queen:  4,
}

const maxPhase = 2 * (4 + 2*2 + 2*1 + 2*1) // both sides: 1 queen, 2 rooks, 2 bishops, 2 knights

var pawnTable = [64]board.Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]board.Score{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]board.Score{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]board.Score{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]board.Score{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgameTable = [64]board.Score{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingEndgameTable = [64]board.Score{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var pieceTable = [board.NumPieces]*[64]board.Score{
	board.Pawn:   &pawnTable,
	board.Knight: &knightTable,
	board.Bishop: &bishopTable,
	board.Rook:   &rookTable,
	board.Queen:  &queenTable,
}

// passedPawnBonus is indexed by the pawn's rank counted from its own back
// rank (1 = still on the home rank).
var passedPawnBonus = [8]board.Score{0, 10, 20, 40, 70, 120, 200, 0}

// pstSquare mirrors sq vertically for Black, so every table above can be
// written once from White's perspective.
func pstSquare(c board.Color, sq board.Square) board.Square {
	if c == board.White {
		return sq
	}
	return sq ^ 56
}

func (PST) Evaluate(_ context.Context, b *board.Board) board.Score {
	var mg, eg board.Score
	phase := 0

	for c := board.White; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}

		for _, p := range board.AllPieces {
			bb := b.Pieces(c, p)
			phase += bb.PopCount() * phaseWeight[p]

			for _, sq := range bb.Squares() {
				psq := pstSquare(c, sq)

				mg += sign * pieceValue[p]
				eg += sign * pieceValue[p]

				if p == board.King {
					mg += sign * kingMidgameTable[psq]
					eg += sign * kingEndgameTable[psq]
					continue
				}
				v := pieceTable[p][psq]
				mg += sign * v
				eg += sign * v
			}
		}

		ppMg, ppEg := passedPawns(b, c)
		mg += sign * ppMg
		eg += sign * ppEg
	}

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mg*board.Score(phase) + eg*board.Score(maxPhase-phase)) / board.Score(maxPhase)

	if b.Turn() == board.Black {
		score = -score
	}
	return score
}

// passedPawns scores c's passed pawns: a pawn with no opposing pawn on its
// own or adjacent files ahead of it. Both mg/eg share the same table here;
// the split exists so a future tune can diverge them without changing callers.
func passedPawns(b *board.Board, c board.Color) (board.Score, board.Score) {
	pawns := b.Pieces(c, board.Pawn)
	enemy := b.Pieces(c.Opponent(), board.Pawn)

	var bonus board.Score
	for _, sq := range pawns.Squares() {
		if enemy&passedPawnMask(c, sq) != 0 {
			continue
		}
		advanced := int(sq.Rank())
		if c == board.Black {
			advanced = 7 - advanced
		}
		bonus += passedPawnBonus[advanced]
	}
	return bonus, bonus
}

// passedPawnMask returns the own-file-plus-adjacent-files mask ahead of sq,
// from c's perspective, used to test for blocking/contesting enemy pawns.
func passedPawnMask(c board.Color, sq board.Square) board.Bitboard {
	file := sq.File()
	mask := board.BitFile(file)
	if file > board.FileA {
		mask |= board.BitFile(file - 1)
	}
	if file < board.FileH {
		mask |= board.BitFile(file + 1)
	}

	if c == board.White {
		for r := board.ZeroRank; r <= sq.Rank(); r++ {
			mask &^= board.BitRank(r)
		}
	} else {
		for r := sq.Rank(); r < board.NumRanks; r++ {
			mask &^= board.BitRank(r)
		}
	}
	return mask
}
