package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
	_ "github.com/vovakirdan/tui-2048/internal/t2048"
)

func TestMenuListsVariants(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveResult(storage.Result{Variant: "2048", Source: "tui", Score: 512, MaxTile: 64}); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig(), "2048")
	view := m.View()

	for _, want := range []string{"2048 (3x3)", "2048 (8x8)", "best 512"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q:\n%s", want, view)
		}
	}
}

func TestMenuSelectDefault(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), "2048-5x5")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should finish the menu")
	}
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.GameID != "2048-5x5" {
		t.Errorf("selected = %+v, want 2048-5x5", sel)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), "")

	// Up at the top stays put
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := next.(MenuModel).Selected()
	if sel == nil || sel.GameID != "2048-3x3" {
		t.Errorf("selected = %+v, want 2048-3x3", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	cfg := core.DefaultConfig()
	s := NewSessionModel(store, cfg, core.GameOptions{}, "2048", nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %d, want scoreboard", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %d, want menu", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatalf("screen = %d, want game", s.screen)
	}
	if !strings.Contains(s.View(), "Score: 0") {
		t.Errorf("game view:\n%s", s.View())
	}

	// Pause, then back to the menu
	step(runeKey('p'))
	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %d, want menu after back", s.screen)
	}

	next, cmd := s.Update(runeKey('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q in the menu should end the session")
	}
}
