package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // Enter
	ActionBack    // Esc, b
	ActionRestart // r
	ActionQuit    // q, ctrl+c
	ActionPause   // p
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Directional reports whether the action slides the board.
func (a Action) Directional() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame collects the actions triggered during one tick, in arrival order.
// Duplicates are dropped.
type InputFrame struct {
	order []Action
	set   map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{set: make(map[Action]bool)}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.set == nil {
		f.set = make(map[Action]bool)
	}
	if f.set[a] {
		return
	}
	f.set[a] = true
	f.order = append(f.order, a)
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.set[a]
}

// FirstDirection returns the earliest directional action of the frame.
func (f InputFrame) FirstDirection() (Action, bool) {
	for _, a := range f.order {
		if a.Directional() {
			return a, true
		}
	}
	return ActionNone, false
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.order) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.order = f.order[:0]
	for k := range f.set {
		delete(f.set, k)
	}
}
