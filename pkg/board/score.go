package board

import "fmt"

// Score is a signed move or position score in centipawns; positive favors the side to move.
// Widened to 32 bits relative to a naive centipawn range because checkmate
// scores are encoded as Checkmate-ply and need headroom above the largest
// plausible material/positional evaluation without colliding with mate
// sentinels at high search depth.
type Score int32

const (
	MinScore Score = -30000
	MaxScore Score = 30000

	// Checkmate is the score assigned to a mate at ply 0; a mate found N
	// plies deeper scores Checkmate-N (for the winning side), so a shallower
	// mate always outscores a deeper one.
	Checkmate Score = 29000
	// Infinite bounds alpha-beta search windows; never returned as a final score.
	Infinite Score = 30000
)

// IsMateScore reports whether s encodes a forced mate rather than a material/positional score.
func (s Score) IsMateScore() bool {
	return s > Checkmate-1000 || s < -Checkmate+1000
}

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}
