package t2048

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Board sizes offered as variants.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// Game drives an Engine from the platform tick loop. The engine runs on a
// ManualClock advanced by one tick interval per Step, so the delayed commit
// lands on a tick boundary.
type Game struct {
	size  int
	opts  core.GameOptions
	cfg   core.RuntimeConfig
	clock *ManualClock

	engine   *Engine
	tick     uint64
	paused   bool
	tooSmall bool
}

// NewGame creates a game for a size x size board. Zero target and new tile
// values select the defaults; a zero animation commits on the next tick.
func NewGame(size int, opts core.GameOptions) *Game {
	if opts.Target == 0 {
		opts.Target = DefaultTarget
	}
	if opts.NewTileValue == 0 {
		opts.NewTileValue = DefaultNewTileValue
	}
	return &Game{size: size, opts: opts}
}

func init() {
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		n := size
		g := NewGame(n, core.GameOptions{})
		registry.Register(registry.GameInfo{ID: g.ID(), Title: g.Title(), Size: n}, func(opts core.GameOptions) registry.Game {
			return NewGame(n, opts)
		})
	}
}

// VariantID returns the registry ID for a board size: "2048" for the
// classic 4x4 board, "2048-<n>x<n>" otherwise.
func VariantID(size int) string {
	if size == BoardSize {
		return "2048"
	}
	return fmt.Sprintf("2048-%dx%d", size, size)
}

// ParseVariantID is the inverse of VariantID.
func ParseVariantID(id string) (int, error) {
	if id == "2048" {
		return BoardSize, nil
	}
	dims, ok := strings.CutPrefix(id, "2048-")
	if !ok {
		return 0, fmt.Errorf("t2048: unknown variant %q", id)
	}
	w, h, ok := strings.Cut(dims, "x")
	if !ok || w != h {
		return 0, fmt.Errorf("t2048: unknown variant %q", id)
	}
	n, err := strconv.Atoi(w)
	if err != nil || n < MinBoardSize || n > MaxBoardSize {
		return 0, fmt.Errorf("t2048: unknown variant %q", id)
	}
	return n, nil
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return VariantID(g.size)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.size == BoardSize {
		return "2048"
	}
	return fmt.Sprintf("2048 (%dx%d)", g.size, g.size)
}

// Reset starts a new game seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.clock = NewManualClock()
	g.tick = 0
	g.paused = false

	opts := []Option{
		WithSize(g.size),
		WithTarget(g.opts.Target),
		WithNewTileValue(g.opts.NewTileValue),
		WithAnimationDuration(g.opts.Animation),
		WithScheduler(g.clock),
		WithRand(rand.New(rand.NewSource(cfg.Seed))),
	}
	if g.opts.Logger != nil {
		opts = append(opts, WithLogger(g.opts.Logger.With("variant", g.ID())))
	}
	g.engine = New(opts...)
	g.engine.ResetGame()

	g.checkScreenSize()
}

// Resize adapts to a new terminal size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	w, h := boardDimensions(g.size)
	g.tooSmall = g.cfg.ScreenW < w || g.cfg.ScreenH < h+hudHeight+1
}

// Step advances the clock by one tick and applies at most one move.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.clock.Advance(g.cfg.TickInterval())

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Finished games wait for the platform to restart them
	if g.engine.Snapshot().Finished() {
		return core.StepResult{State: g.State()}
	}

	moved := false
	if a, ok := in.FirstDirection(); ok {
		moved = g.engine.Move(directionFor(a))
	}
	return core.StepResult{State: g.State(), Moved: moved}
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	snap := g.engine.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		MaxTile:  snap.MaxTile,
		Moves:    snap.Moves,
		Won:      snap.GameWon,
		GameOver: snap.Finished(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Controls returns the key hints shown under the board.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
