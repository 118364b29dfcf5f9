package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateWon      GameStateType = "won"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the visible engine state for renderers, persistence and
// determinism checks.
type Snapshot struct {
	Board    [][]int       `json:"board"`
	IDs      [][]string    `json:"ids"`
	Size     int           `json:"size"`
	Target   int           `json:"target"`
	Score    int           `json:"score"`
	Moves    int           `json:"moves"`
	MaxTile  int           `json:"max_tile"`
	GameOver bool          `json:"game_over"`
	GameWon  bool          `json:"game_won"`
	Phase    string        `json:"phase"`
	State    GameStateType `json:"state"`
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	state := StatePlaying
	switch {
	case e.gameWon:
		state = StateWon
	case e.gameOver:
		state = StateGameOver
	}

	ids := make([][]string, len(e.board))
	for y, row := range e.board {
		ids[y] = make([]string, len(row))
		for x, t := range row {
			ids[y][x] = t.ID
		}
	}

	return Snapshot{
		Board:    e.board.Values(),
		IDs:      ids,
		Size:     e.size,
		Target:   e.target,
		Score:    e.score,
		Moves:    e.moves,
		MaxTile:  MaxTile(e.board),
		GameOver: e.gameOver,
		GameWon:  e.gameWon,
		Phase:    e.phase.String(),
		State:    state,
	}
}

// Finished reports whether the snapshot is in a terminal state.
func (s Snapshot) Finished() bool {
	return s.GameOver || s.GameWon
}
