package eval

import (
	"context"
	"math/rand"

	"github.com/dkrantz/grendel/pkg/board"
)

// Random adds a small amount of centipawn noise to another evaluation, useful
// for generating varied engine-vs-engine test games without a real opening
// book. limit bounds the noise to [-limit/2, limit/2] centipawns; a
// non-positive limit disables it.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(_ context.Context, _ *board.Board) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}

// randomized wraps a base Evaluator and adds Random noise to its score,
// useful for varied engine-vs-engine test games between otherwise
// deterministic evaluators.
type randomized struct {
	base  Evaluator
	noise Random
}

// Randomize wraps base so that every evaluation is perturbed by up to
// limit/2 centipawns of noise. A non-positive limit returns base unchanged.
func Randomize(base Evaluator, limit int, seed int64) Evaluator {
	if limit <= 0 {
		return base
	}
	return randomized{base: base, noise: NewRandom(limit, seed)}
}

func (r randomized) Evaluate(ctx context.Context, b *board.Board) board.Score {
	return r.base.Evaluate(ctx, b) + r.noise.Evaluate(ctx, b)
}
