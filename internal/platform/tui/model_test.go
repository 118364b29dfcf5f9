package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// fakeGame finishes as soon as it sees a move.
type fakeGame struct {
	resets  int
	steps   int
	lastIn  []core.Action
	state   core.GameState
	resized [2]int
}

func (g *fakeGame) ID() string    { return "2048-test" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = nil
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionPause} {
		if in.Has(a) {
			g.lastIn = append(g.lastIn, a)
		}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if _, ok := in.FirstDirection(); ok && !g.state.Paused {
		g.state = core.GameState{Score: 36, MaxTile: 16, Moves: 7, GameOver: true}
		return core.StepResult{State: g.state, Moved: true}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake board")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelInitResetsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.DefaultConfig(), "tui")

	if cmd := m.Init(); cmd == nil {
		t.Error("Init should start the tick loop")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelKeysReachGameOnTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.DefaultConfig(), "tui")
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if g.steps != 0 {
		t.Fatal("keys should wait for the next tick")
	}

	m = update(t, m, TickMsg{})
	if len(g.lastIn) != 1 || g.lastIn[0] != core.ActionLeft {
		t.Errorf("game saw %v, want [Left]", g.lastIn)
	}

	// Frame is cleared after each tick
	update(t, m, TickMsg{})
	if len(g.lastIn) != 0 {
		t.Errorf("second tick saw %v, want nothing", g.lastIn)
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openTestStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, core.DefaultConfig(), "ssh")
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	results, err := store.TopResults("2048-test", 10)
	if err != nil {
		t.Fatalf("TopResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, want 1", len(results))
	}
	r := results[0]
	if r.Score != 36 || r.MaxTile != 16 || r.Moves != 7 || r.Source != "ssh" {
		t.Errorf("saved result = %+v", r)
	}
}

func TestModelRestartOnlyWhenFinished(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.DefaultConfig(), "tui")
	m.Init()

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Fatalf("restart during play reset the game (%d resets)", g.resets)
	}

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("fake game should be over after a move")
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelBackWhenFinished(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.DefaultConfig(), "tui")
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsQuitting() || m.BackToMenu() {
		t.Fatal("back during play should be ignored")
	}

	m = update(t, m, runeKey('d'))
	m = update(t, m, TickMsg{})

	standalone := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !standalone.IsQuitting() {
		t.Error("back should quit a standalone game")
	}

	m.embedded = true
	embedded := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if embedded.IsQuitting() || !embedded.BackToMenu() {
		t.Error("back should return to the menu in a session")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, core.DefaultConfig(), "tui")
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResizeUsesResizer(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.DefaultConfig(), "tui")
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resized != [2]int{120, 40} {
		t.Errorf("resized = %v", g.resized)
	}
	if g.resets != 1 {
		t.Error("a resizable game should not be reset")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, core.DefaultConfig(), "tui")
	m.Init()

	if !strings.Contains(m.View(), "fake board") {
		t.Errorf("view = %q", m.View())
	}
}
