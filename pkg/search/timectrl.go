package search

import (
	"fmt"
	"time"

	"github.com/dkrantz/grendel/pkg/board"
)

// TimeControl represents the remaining clock for each side, as reported by
// the UCI "go" command's wtime/btime/movestogo.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns a soft and hard budget for the side to move's next move:
// after the soft limit, no new iterative-deepening depth should be started;
// the hard limit is an absolute deadline even mid-search.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	// Assume 40 moves left if not told otherwise: B = remaining/80 soft, 3B hard.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}
