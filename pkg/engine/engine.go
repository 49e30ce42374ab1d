package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/board/fen"
	"github.com/dkrantz/grendel/pkg/eval"
	"github.com/dkrantz/grendel/pkg/movegen"
	"github.com/dkrantz/grendel/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by
	// per-search options if provided.
	Depth int
	// Hash is the transposition table size in MB. If zero, the engine will not
	// use a transposition table.
	Hash uint
	// Noise adds some centipawn randomness to the leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation: it owns the
// current position and move history, and hands off exploration of forked
// boards to a search.Launcher.
type Engine struct {
	name, author string

	eval    eval.Evaluator
	launch  search.Launcher
	factory search.TranspositionTableFactory
	zt      *board.ZobristTable
	seed    int64
	opts    Options

	b       *board.Board
	undo    []board.UndoRecord
	history []board.ZobristHash // hash of every position reached so far, oldest first
	tt      search.TranspositionTable
	active  search.Handle
	mu      sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New creates an engine driving iterative-deepening search over ev. Noise,
// if configured via WithOptions, wraps ev before search ever sees it.
func New(ctx context.Context, name, author string, ev eval.Evaluator, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		eval:    ev,
		factory: search.NewTranspositionTable,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	if e.opts.Noise > 0 {
		e.eval = eval.Randomize(e.eval, int(e.opts.Noise), e.seed)
	}
	e.launch = search.NewIterative(search.Negamax{Eval: e.eval})

	if err := e.Reset(ctx, fen.Initial); err != nil {
		logw.Errorf(ctx, "Failed to reset to initial position: %v", err)
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMB
}

// Board returns a forked copy of the current position.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB", position, e.opts.Depth, e.opts.Hash)

	_, _ = e.haltSearchIfActive(ctx)

	b, err := fen.DecodeBoard(e.zt, position)
	if err != nil {
		return err
	}
	e.b = b
	e.undo = nil
	e.history = []board.ZobristHash{b.Hash()}

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move plays the given move, usually an opponent move, on the engine's
// position. The move must match a currently legal move exactly.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	for _, m := range movegen.Generate(e.b) {
		if !candidate.Equals(m) {
			continue
		}

		u := e.b.MakeMove(m)
		e.undo = append(e.undo, u)
		e.history = append(e.history, e.b.Hash())

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if len(e.undo) == 0 {
		return fmt.Errorf("no move to take back")
	}

	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.b.UnmakeMove(last)
	e.history = e.history[:len(e.history)-1]

	logw.Infof(ctx, "Takeback: %v", e.b)
	return nil
}

// Analyze starts a search of the current position. opt.DepthLimit, if zero,
// is filled in from the engine's default depth option.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opt.DepthLimit == 0 {
		opt.DepthLimit = e.opts.Depth
	}
	if len(opt.History) == 0 {
		opt.History = append([]board.ZobristHash{}, e.history...)
	}

	logw.Infof(ctx, "Analyze %v, opt=%+v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	launch := e.launch
	if it, ok := launch.(*search.Iterative); ok && e.tt != nil {
		tt := e.tt
		launch = &search.Iterative{Root: it.Root, NewTable: func(context.Context, uint64) search.TranspositionTable { return tt }}
	}
	handle, out := launch.Launch(ctx, e.b.Fork(), opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
