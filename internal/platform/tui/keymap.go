package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

// defaultBindings covers arrows, WASD and vim keys for movement.
var defaultBindings = []struct {
	keys   []string
	action core.Action
}{
	{[]string{"up", "w", "k"}, core.ActionUp},
	{[]string{"down", "s", "j"}, core.ActionDown},
	{[]string{"left", "a", "h"}, core.ActionLeft},
	{[]string{"right", "d", "l"}, core.ActionRight},
	{[]string{"enter"}, core.ActionConfirm},
	{[]string{"esc", "b"}, core.ActionBack},
	{[]string{"p"}, core.ActionPause},
	{[]string{"r"}, core.ActionRestart},
	{[]string{"q", "ctrl+c"}, core.ActionQuit},
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action)}
	for _, b := range defaultBindings {
		for _, k := range b.keys {
			km.bindings[k] = b.action
		}
	}
	return km
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.bindings[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
