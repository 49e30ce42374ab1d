// Package fen contains utilities for reading and writing board positions in
// Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dkrantz/grendel/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Fields is the parsed-but-not-yet-assembled content of a FEN record: piece
// placements plus the five metadata fields. Kept separate from board.Board
// construction so callers can validate or adjust fields (e.g. a UCI
// "position fen ... moves ..." command) before paying for the board build.
type Fields struct {
	Pieces     []board.Placement
	Turn       board.Color
	Castling   board.Castling
	EnPassant  board.Square
	NoProgress int
	FullMoves  int
}

// Decode parses a FEN record into its constituent fields.
//
// Example:
//   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (Fields, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return Fields{}, fmt.Errorf("invalid number of sections in FEN: '%v'", s)
	}

	// (1) Piece placement (from white's perspective). Each rank is described,
	// starting with rank 8 and ending with rank 1; within each rank, the
	// contents of each square are described from file a through file h.

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return Fields{}, fmt.Errorf("invalid number of ranks in FEN: '%v'", s)
	}

	var pieces []board.Placement
	for i, rankStr := range ranks {
		r := board.Rank(7 - i)
		f := board.ZeroFile
		for _, r2 := range []rune(rankStr) {
			switch {
			case unicode.IsDigit(r2):
				f += board.File(r2 - '0')

			case unicode.IsLetter(r2):
				color, piece, ok := parsePiece(r2)
				if !ok {
					return Fields{}, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r2, s)
				}
				if f >= board.NumFiles {
					return Fields{}, fmt.Errorf("too many squares in rank in FEN: '%v'", s)
				}
				pieces = append(pieces, board.Placement{Square: board.NewSquare(f, r), Color: color, Piece: piece})
				f++

			default:
				return Fields{}, fmt.Errorf("invalid character in FEN: '%v'", s)
			}
		}
		if f != board.NumFiles {
			return Fields{}, fmt.Errorf("invalid number of squares in rank in FEN: '%v'", s)
		}
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseColor(parts[1])
	if !ok {
		return Fields{}, fmt.Errorf("invalid active color in FEN: '%v'", s)
	}

	// (3) Castling availability. If neither side can castle, this is
	// "-". Otherwise, this has one or more letters: "K" (White can castle
	// kingside), "Q" (White can castle queenside), "k" (Black can castle
	// kingside), and/or "q" (Black can castle queenside).

	castling, ok := parseCastling(parts[2])
	if !ok {
		return Fields{}, fmt.Errorf("invalid castling in FEN: '%v'", s)
	}

	// (4) En passant target square in algebraic notation. If there's no en
	// passant target square, this is "-". If a pawn has just made a
	// 2-square move, this is the square "behind" the pawn.

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return Fields{}, fmt.Errorf("invalid en passant in FEN: '%v'", s)
		}
		ep = sq
	}

	// (5) Halfmove clock: the number of halfmoves since the last pawn
	// advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return Fields{}, fmt.Errorf("invalid halfmove in FEN: '%v'", s)
	}

	// (6) Fullmove number: starts at 1, incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return Fields{}, fmt.Errorf("invalid full moves in FEN: '%v'", s)
	}

	return Fields{Pieces: pieces, Turn: active, Castling: castling, EnPassant: ep, NoProgress: np, FullMoves: fm}, nil
}

// DecodeBoard parses a FEN record directly into a playable board, computing
// its initial Zobrist hash with zt.
func DecodeBoard(zt *board.ZobristTable, s string) (*board.Board, error) {
	f, err := Decode(s)
	if err != nil {
		return nil, err
	}
	return board.NewBoard(zt, f.Pieces, f.Turn, f.Castling, f.EnPassant, f.NoProgress, f.FullMoves)
}

// Encode renders b in FEN notation.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		r := board.Rank(7 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := b.Square(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}

			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < 7 {
			sb.WriteString("/")
		}
	}

	turn := printColor(b.Turn())
	castling := printCastling(b.Castling())

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, b.NoProgress(), b.FullMoves())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	if c == board.White {
		switch p {
		case board.Pawn:
			return 'P'
		case board.Bishop:
			return 'B'
		case board.Knight:
			return 'N'
		case board.Rook:
			return 'R'
		case board.Queen:
			return 'Q'
		case board.King:
			return 'K'
		default:
			return '?'
		}
	}

	switch p {
	case board.Pawn:
		return 'p'
	case board.Bishop:
		return 'b'
	case board.Knight:
		return 'n'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	case board.King:
		return 'k'
	default:
		return '?'
	}
}
