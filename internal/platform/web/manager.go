package web

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

var (
	// ErrNotFound is returned for an unknown game id.
	ErrNotFound = errors.New("web: game not found")

	// ErrInvalidSize is returned for a board size outside the supported range.
	ErrInvalidSize = errors.New("web: invalid board size")
)

// session is one game played over HTTP.
type session struct {
	id      string
	size    int
	engine  *t2048.Engine
	created time.Time
	saved   atomic.Bool // Result of the current game already stored
}

// Summary describes a live game in listings.
type Summary struct {
	ID      string              `json:"id"`
	Variant string              `json:"variant"`
	Score   int                 `json:"score"`
	MaxTile int                 `json:"max_tile"`
	State   t2048.GameStateType `json:"state"`
	Created time.Time           `json:"created"`
}

// Manager owns the games played over HTTP. Each game runs on its own engine;
// committed frames go to the hub and finished games to storage.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	hub    *Hub
	store  *storage.Store
	opts   core.GameOptions
	sched  t2048.Scheduler
	logger *log.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces the wall clock used for the animation delay.
func WithClock(s t2048.Scheduler) ManagerOption {
	return func(m *Manager) { m.sched = s }
}

// NewManager creates a manager. hub and store may be nil.
func NewManager(hub *Hub, store *storage.Store, opts core.GameOptions, mopts ...ManagerOption) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		sessions: make(map[string]*session),
		hub:      hub,
		store:    store,
		opts:     opts,
		sched:    t2048.WallClock{},
		logger:   logger,
	}
	for _, o := range mopts {
		o(m)
	}
	return m
}

// Create starts a new game. A zero size selects the classic board.
func (m *Manager) Create(size int) (string, t2048.Snapshot, error) {
	if size == 0 {
		size = t2048.BoardSize
	}
	if size < t2048.MinBoardSize || size > t2048.MaxBoardSize {
		return "", t2048.Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	s := &session{
		id:      uuid.NewString(),
		size:    size,
		created: time.Now(),
	}

	engineOpts := []t2048.Option{
		t2048.WithSize(size),
		t2048.WithAnimationDuration(m.opts.Animation),
		t2048.WithScheduler(m.sched),
		t2048.WithLogger(m.logger.With("game", s.id)),
		t2048.WithCommitHook(func(snap t2048.Snapshot) { m.onCommit(s, snap) }),
	}
	if m.opts.Target > 0 {
		engineOpts = append(engineOpts, t2048.WithTarget(m.opts.Target))
	}
	if m.opts.NewTileValue > 0 {
		engineOpts = append(engineOpts, t2048.WithNewTileValue(m.opts.NewTileValue))
	}
	s.engine = t2048.New(engineOpts...)
	s.engine.ResetGame()

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("game created", "game", s.id, "variant", t2048.VariantID(size))
	return s.id, s.engine.Snapshot(), nil
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Get returns the current snapshot of a game.
func (m *Manager) Get(id string) (t2048.Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return t2048.Snapshot{}, err
	}
	return s.engine.Snapshot(), nil
}

// Move applies one move. A finished game accepts no further moves and
// reports moved as false.
func (m *Manager) Move(id string, dir t2048.Direction) (bool, t2048.Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return false, t2048.Snapshot{}, err
	}

	if snap := s.engine.Snapshot(); snap.Finished() {
		return false, snap, nil
	}

	moved := s.engine.Move(dir)
	return moved, s.engine.Snapshot(), nil
}

// Reset starts the game over on the same board size.
func (m *Manager) Reset(id string) (t2048.Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return t2048.Snapshot{}, err
	}

	// ResetGame drops any pending commit, so no frame of the old game can
	// be saved after the flag is cleared.
	s.engine.ResetGame()
	s.saved.Store(false)
	return s.engine.Snapshot(), nil
}

// Delete removes a game and disconnects its watchers.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if m.hub != nil {
		m.hub.Broadcast(id, EventClosed, nil)
		m.hub.CloseGame(id)
	}
	m.logger.Info("game deleted", "game", id)
	return nil
}

// List summarises every live game, oldest first.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	sessions := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].created.Before(sessions[j].created)
	})

	out := make([]Summary, len(sessions))
	for i, s := range sessions {
		snap := s.engine.Snapshot()
		out[i] = Summary{
			ID:      s.id,
			Variant: t2048.VariantID(s.size),
			Score:   snap.Score,
			MaxTile: snap.MaxTile,
			State:   snap.State,
			Created: s.created,
		}
	}
	return out
}

// onCommit runs for every committed frame of a session.
func (m *Manager) onCommit(s *session, snap t2048.Snapshot) {
	if m.hub != nil {
		m.hub.Broadcast(s.id, EventFrame, snap)
	}

	if !snap.Finished() || !s.saved.CompareAndSwap(false, true) {
		return
	}

	m.logger.Info("game finished", "game", s.id, "score", snap.Score, "max_tile", snap.MaxTile, "won", snap.GameWon)
	if m.store == nil || snap.Score == 0 {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		Variant: t2048.VariantID(s.size),
		Source:  "web",
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
		Won:     snap.GameWon,
	})
	if err != nil {
		m.logger.Warn("cannot save result", "game", s.id, "error", err)
	}
}
