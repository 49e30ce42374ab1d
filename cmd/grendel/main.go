// grendel is a simple UCI chess engine: bitboard move generation with magic
// attack tables, iterative-deepening negamax search, and a tapered
// piece-square-table evaluator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dkrantz/grendel/pkg/engine"
	"github.com/dkrantz/grendel/pkg/engine/console"
	"github.com/dkrantz/grendel/pkg/engine/uci"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Int("depth", 0, "Search depth limit (zero for no limit, relying on time control)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero to disable)")
	noise = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: grendel [options]

GRENDEL is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "grendel", "dkrantz", eval.PST{}, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
