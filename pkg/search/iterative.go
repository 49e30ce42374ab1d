package search

import (
	"context"
	"sync"
	"time"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// DefaultTableSize is the transposition table size Iterative requests from
// its table factory for every episode: 64MB.
const DefaultTableSize = 64 << 20

// Iterative is a Launcher that drives Root through increasing depths,
// widening an aspiration window around each prior iteration's score and
// re-searching on fail-low/fail-high until the score lands strictly inside.
type Iterative struct {
	Root     Search
	NewTable TranspositionTableFactory
}

func NewIterative(root Search) Launcher {
	return &Iterative{Root: root, NewTable: NewTranspositionTable}
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV) {
	cctx, cancel := context.WithCancel(ctx)
	out := make(chan PV, 1)
	h := &handle{cancel: cancel, init: make(chan struct{})}

	newTable := i.NewTable
	if newTable == nil {
		newTable = NewTranspositionTable
	}

	go h.process(cctx, i.Root, newTable, b, opt, out)
	return h, out
}

type handle struct {
	cancel   context.CancelFunc
	init     chan struct{}
	initOnce sync.Once
	done     atomic.Bool

	mu sync.Mutex
	pv PV
}

func (h *handle) process(ctx context.Context, root Search, newTable TranspositionTableFactory, b *board.Board, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	tt := newTable(ctx, DefaultTableSize)
	hist := opt.History
	if len(hist) == 0 {
		hist = []board.ZobristHash{b.Hash()}
	}
	rep := NewRepetitionTable(hist...)

	if opt.TimeControl != nil {
		_, hard := opt.TimeControl.Limits(b.Turn())
		timer := time.AfterFunc(hard, h.cancel)
		defer timer.Stop()
	}

	var prev PV
	for depth := 1; ; depth++ {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()

		alpha, beta := -board.Infinite, board.Infinite
		delta := board.Score(25)
		if depth > 1 {
			alpha, beta = prev.Score-delta, prev.Score+delta
		}

		var nodes uint64
		var selDepth int
		var score board.Score
		var moves []board.Move
		var err error

		for {
			nodes, selDepth, score, moves, err = root.Search(ctx, &Context{Alpha: alpha, Beta: beta, TT: tt, Rep: rep}, b, depth)
			if err != nil || depth == 1 {
				break
			}
			if score <= alpha {
				delta += delta / 3
				alpha = prev.Score - delta
				continue
			}
			if score >= beta {
				delta += delta / 3
				beta = prev.Score + delta
				continue
			}
			break
		}
		if err != nil {
			if err == ErrHalted {
				return
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		pv := PV{
			Depth:    depth,
			SelDepth: selDepth,
			Nodes:    nodes,
			Score:    score,
			Moves:    moves,
			Time:     time.Since(start),
			Hash:     tt.Used(),
		}
		logw.Debugf(ctx, "Searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv
		h.markInitialized()
		prev = pv

		if opt.DepthLimit > 0 && depth >= opt.DepthLimit {
			return
		}
		if score.IsMateScore() {
			return
		}
		if opt.TimeControl != nil {
			soft, _ := opt.TimeControl.Limits(b.Turn())
			if time.Since(start) > soft {
				return
			}
		}
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		h.cancel()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) markInitialized() {
	h.initOnce.Do(func() { close(h.init) })
}
