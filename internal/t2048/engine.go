package t2048

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Default game parameters.
const (
	DefaultTarget       = 2048
	DefaultNewTileValue = 2
)

// IDFunc returns a fresh tile identity, distinct from every live identity.
type IDFunc func() string

// Engine owns the game state and is the only writer of it.
//
// A move commits two frames: the pre-combine board immediately, and the
// placement result once the animation delay elapses. Starting a new move,
// resetting or replacing the board while a commit is pending supersedes it.
type Engine struct {
	// moveMu serialises the mutating operations; mu guards the fields below it
	// and is the only lock taken by timer callbacks.
	moveMu sync.Mutex
	mu     sync.Mutex

	board    Board
	gameOver bool
	gameWon  bool
	score    int
	moves    int
	phase    Phase
	merged   []Cell
	pending  *pendingCommit

	size         int
	target       int
	newTileValue int
	delay        time.Duration
	sched        Scheduler
	rng          *rand.Rand
	newID        IDFunc
	logger       *log.Logger
	onCommit     func(Snapshot)
}

// pendingCommit is the delayed post-combine commit of the latest move.
type pendingCommit struct {
	timer Timer
	board Board
}

// Option configures an Engine.
type Option func(*Engine)

// WithSize sets the board dimension.
func WithSize(n int) Option {
	return func(e *Engine) { e.size = n }
}

// WithTarget sets the tile value that wins the game.
func WithTarget(v int) Option {
	return func(e *Engine) { e.target = v }
}

// WithNewTileValue sets the value of inserted tiles.
func WithNewTileValue(v int) Option {
	return func(e *Engine) { e.newTileValue = v }
}

// WithAnimationDuration sets the delay between the pre- and post-combine commits.
func WithAnimationDuration(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// WithScheduler replaces the wall clock used for the delayed commit.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRand sets the random source used for tile placement.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithIDFunc sets the tile identity generator.
func WithIDFunc(f IDFunc) Option {
	return func(e *Engine) { e.newID = f }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithCommitHook registers a callback invoked with a snapshot after every
// visible board commit. It runs outside the engine lock and may read the engine.
func WithCommitHook(f func(Snapshot)) Option {
	return func(e *Engine) { e.onCommit = f }
}

// New creates an engine holding an empty board. Call ResetGame to seed it.
func New(opts ...Option) *Engine {
	e := &Engine{
		size:         BoardSize,
		target:       DefaultTarget,
		newTileValue: DefaultNewTileValue,
		delay:        DefaultAnimationDuration,
		sched:        WallClock{},
		newID:        uuid.NewString,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.board = NewBoard(e.size)
	return e
}

// Move slides the board in dir using the default random placement.
// Returns false when the move would not change the board.
func (e *Engine) Move(dir Direction) bool {
	return e.MoveWith(dir, nil)
}

// MoveWith slides the board in dir and hands the post-combine board to
// placement; nil selects AddRandomTileAndCheckGameState. placement runs
// without the state lock held, so it may read the engine or call
// AddRandomTileAndCheckGameState, but must not start another move.
func (e *Engine) MoveWith(dir Direction, placement PlacementFunc) bool {
	e.moveMu.Lock()
	defer e.moveMu.Unlock()

	if placement == nil {
		placement = e.AddRandomTileAndCheckGameState
	}

	e.mu.Lock()
	var frames []Snapshot
	if e.flushPendingLocked() {
		frames = append(frames, e.snapshotLocked())
	}

	candidate := Slide(e.board, dir)
	if SameValues(candidate, e.board) {
		e.mu.Unlock()
		e.logger.Debug("move ignored", "direction", dir)
		e.emit(frames...)
		return false
	}

	gained := mergeScore(candidate)
	e.score += gained
	e.moves++
	e.board = PreCombine(candidate)
	e.phase = PhasePreCombine
	e.merged = mergedCells(candidate)
	frames = append(frames, e.snapshotLocked())
	e.logger.Debug("move", "direction", dir, "gained", gained, "score", e.score)
	e.mu.Unlock()
	e.emit(frames...)

	result := placement(PostCombine(candidate))

	e.mu.Lock()
	p := &pendingCommit{board: result}
	e.pending = p
	p.timer = e.sched.AfterFunc(e.delay, func() { e.commit(p) })
	e.mu.Unlock()
	return true
}

// commit installs a pending post-combine board unless it was superseded.
func (e *Engine) commit(p *pendingCommit) {
	e.mu.Lock()
	if e.pending != p {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.board = p.board
	e.phase = PhasePostCombine
	e.merged = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// flushPendingLocked commits a pending board right away.
// Returns true if there was one.
func (e *Engine) flushPendingLocked() bool {
	if e.pending == nil {
		return false
	}
	e.pending.timer.Stop()
	e.board = e.pending.board
	e.phase = PhasePostCombine
	e.merged = nil
	e.pending = nil
	return true
}

// dropPendingLocked cancels a pending commit without applying it.
func (e *Engine) dropPendingLocked() {
	if e.pending == nil {
		return
	}
	e.pending.timer.Stop()
	e.pending = nil
	e.merged = nil
}

// ResetGame clears both flags and the score, and seeds an empty board with
// two new tiles.
func (e *Engine) ResetGame() {
	e.moveMu.Lock()
	defer e.moveMu.Unlock()

	e.mu.Lock()
	e.dropPendingLocked()
	e.gameOver = false
	e.gameWon = false
	e.score = 0
	e.moves = 0
	board := NewBoard(e.size)
	board = e.placeLocked(e.placeLocked(board))
	e.board = board
	e.phase = PhaseIdle
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.logger.Debug("game reset", "size", e.size, "target", e.target)
	e.emit(snap)
}

// SetBoard replaces the board directly. The board must be square; it is not
// validated. Any pending commit is discarded.
func (e *Engine) SetBoard(b Board) {
	e.moveMu.Lock()
	defer e.moveMu.Unlock()

	e.mu.Lock()
	e.dropPendingLocked()
	e.board = b.Clone()
	e.phase = PhaseIdle
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// Board returns a copy of the visible board.
func (e *Engine) Board() Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Clone()
}

// GameOver reports whether no further move is possible.
func (e *Engine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// GameWon reports whether the target tile has been reached.
func (e *Engine) GameWon() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameWon
}

// Phase returns the commit phase of the last move.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// MergedCells returns the cells holding a merge result while the
// pre-combine frame is visible, and nil otherwise.
func (e *Engine) MergedCells() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePreCombine {
		return nil
	}
	return append([]Cell(nil), e.merged...)
}

// Score returns the sum of all tiles created by merges since the last reset.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.size
}

// Target returns the winning tile value.
func (e *Engine) Target() int {
	return e.target
}

// AnimationDuration returns the delay between the two commits of a move.
func (e *Engine) AnimationDuration() time.Duration {
	return e.delay
}

func (e *Engine) emit(frames ...Snapshot) {
	if e.onCommit == nil {
		return
	}
	for _, s := range frames {
		e.onCommit(s)
	}
}
