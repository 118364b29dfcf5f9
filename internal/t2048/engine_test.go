package t2048

import (
	"bytes"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// newTestEngine returns an engine on a manual clock with a fixed seed and
// sequential tile identities.
func newTestEngine(opts ...Option) (*Engine, *ManualClock) {
	clock := NewManualClock()
	n := 0
	base := []Option{
		WithScheduler(clock),
		WithRand(rand.New(rand.NewSource(42))),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("tile-%d", n)
		}),
	}
	return New(append(base, opts...)...), clock
}

func countValue(b Board, v int) int {
	n := 0
	for _, row := range b {
		for _, t := range row {
			if t.Value == v {
				n++
			}
		}
	}
	return n
}

func countTiles(b Board) int {
	return b.Size()*b.Size() - countValue(b, 0)
}

func TestMoveRightSlidesWithoutMerging(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{0, 0, 0, 2},
		{0, 0, 2, 0},
		{0, 2, 0, 0},
		{2, 0, 0, 0},
	}))

	if !e.MoveWith(DirRight, Identity) {
		t.Fatal("MoveWith should report an accepted move")
	}
	clock.Advance(DefaultAnimationDuration)

	expected := [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 2},
		{0, 0, 0, 2},
		{0, 0, 0, 2},
	}
	if got := e.Board().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("move right: got\n%v\nwant\n%v", got, expected)
	}
}

func TestMoveRightThreeEqualTiles(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{0, 0, 0, 2},
		{0, 2, 2, 2},
		{2, 2, 2, 0},
		{2, 2, 0, 2},
	}))

	e.MoveWith(DirRight, Identity)

	// Pre-combine frame: merged cells still show the old value
	if e.Phase() != PhasePreCombine {
		t.Errorf("phase = %s, want pre_combine", e.Phase())
	}
	preExpected := [][]int{
		{0, 0, 0, 2},
		{0, 0, 2, 2},
		{0, 0, 2, 2},
		{0, 0, 2, 2},
	}
	if got := e.Board().Values(); !reflect.DeepEqual(got, preExpected) {
		t.Errorf("pre-combine frame: got\n%v\nwant\n%v", got, preExpected)
	}

	clock.Advance(DefaultAnimationDuration)

	if e.Phase() != PhasePostCombine {
		t.Errorf("phase = %s, want post_combine", e.Phase())
	}
	expected := [][]int{
		{0, 0, 0, 2},
		{0, 0, 2, 4},
		{0, 0, 2, 4},
		{0, 0, 2, 4},
	}
	if got := e.Board().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("post-combine frame: got\n%v\nwant\n%v", got, expected)
	}
}

func TestMoveEachDirection(t *testing.T) {
	initial := [][]int{
		{2, 0, 2, 2},
		{2, 0, 0, 2},
		{2, 4, 0, 4},
		{4, 2, 0, 4},
	}
	tests := []struct {
		dir      Direction
		expected [][]int
	}{
		{DirUp, [][]int{{4, 4, 2, 4}, {2, 2, 0, 8}, {4, 0, 0, 0}, {0, 0, 0, 0}}},
		{DirDown, [][]int{{0, 0, 0, 0}, {2, 0, 0, 0}, {4, 4, 0, 4}, {4, 2, 2, 8}}},
		{DirLeft, [][]int{{4, 2, 0, 0}, {4, 0, 0, 0}, {2, 8, 0, 0}, {4, 2, 4, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			e, clock := newTestEngine()
			e.SetBoard(BoardFromValues(initial))
			e.MoveWith(tt.dir, Identity)
			clock.Advance(DefaultAnimationDuration)

			if got := e.Board().Values(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("move %s: got\n%v\nwant\n%v", tt.dir, got, tt.expected)
			}
		})
	}
}

func TestNoopMoveSkipsPlacement(t *testing.T) {
	e, clock := newTestEngine()
	initial := BoardFromValues([][]int{
		{0, 0, 0, 2},
		{0, 0, 2, 4},
		{0, 2, 4, 8},
		{2, 4, 8, 4},
	})
	e.SetBoard(initial)
	before := e.Snapshot()

	calls := 0
	moved := e.MoveWith(DirRight, func(b Board) Board {
		calls++
		return b
	})

	if moved {
		t.Error("MoveWith should report a no-op")
	}
	if calls != 0 {
		t.Errorf("placement called %d times on a no-op move", calls)
	}
	if clock.Pending() != 0 {
		t.Error("a no-op move should not schedule a commit")
	}
	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("no-op move changed state:\n%+v\n%+v", before, after)
	}
}

func TestNoopMoveIgnoresIdentities(t *testing.T) {
	e, _ := newTestEngine()
	e.SetBoard(Board{
		{{}, {}, {}, {Value: 2, ID: "keep"}},
		{{}, {}, {}, {}},
		{{}, {}, {}, {}},
		{{}, {}, {}, {Value: 4, ID: "also"}},
	})

	if e.MoveWith(DirRight, Identity) {
		t.Error("moving right-aligned tiles right should be a no-op")
	}
	if got := e.Board()[0][3].ID; got != "keep" {
		t.Errorf("tile identity changed to %q", got)
	}
}

func TestGameOverWhenFullAndNoMerges(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{8, 4, 2, 8},
		{0, 4, 2, 4},
		{8, 4, 2, 8},
		{2, 8, 4, 2},
	}))

	e.Move(DirLeft)
	clock.Advance(DefaultAnimationDuration)

	expected := [][]int{
		{8, 4, 2, 8},
		{4, 2, 4, 2},
		{8, 4, 2, 8},
		{2, 8, 4, 2},
	}
	if got := e.Board().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("board: got\n%v\nwant\n%v", got, expected)
	}
	if !e.GameOver() {
		t.Error("full board without merges should be game over")
	}
	if e.GameWon() {
		t.Error("game should not be won")
	}
}

func TestGameOverLogsPlacedBoard(t *testing.T) {
	var buf bytes.Buffer
	e, clock := newTestEngine(WithLogger(log.New(&buf)))
	e.SetBoard(BoardFromValues([][]int{
		{16, 16, 2, 4},
		{2, 4, 8, 16},
		{4, 8, 16, 2},
		{2, 16, 2, 4},
	}))

	e.Move(DirLeft)
	clock.Advance(DefaultAnimationDuration)

	if !e.GameOver() {
		t.Fatalf("expected game over, board:\n%v", e.Board().Values())
	}
	if out := buf.String(); !strings.Contains(out, "max_tile=32") {
		t.Errorf("game over log should report the merged 32, got %q", out)
	}
}

func TestNotGameOverWhenMergesRemain(t *testing.T) {
	tests := []struct {
		name     string
		initial  [][]int
		expected [][]int
	}{
		{
			name: "vertical merge",
			initial: [][]int{
				{8, 4, 2, 8},
				{0, 4, 2, 4},
				{8, 4, 2, 8},
				{2, 4, 2, 4},
			},
			expected: [][]int{
				{8, 4, 2, 8},
				{4, 2, 4, 2},
				{8, 4, 2, 8},
				{2, 4, 2, 4},
			},
		},
		{
			name: "horizontal merge",
			initial: [][]int{
				{8, 4, 2, 8},
				{0, 4, 16, 2},
				{8, 4, 2, 8},
				{2, 8, 4, 16},
			},
			expected: [][]int{
				{8, 4, 2, 8},
				{4, 16, 2, 2},
				{8, 4, 2, 8},
				{2, 8, 4, 16},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine()
			e.SetBoard(BoardFromValues(tt.initial))
			e.Move(DirLeft)
			clock.Advance(DefaultAnimationDuration)

			if got := e.Board().Values(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("board: got\n%v\nwant\n%v", got, tt.expected)
			}
			if e.GameOver() {
				t.Error("board with a possible merge should not be game over")
			}
		})
	}
}

func TestGameWonLatches(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{1024, 0, 1024, 2},
		{2, 0, 0, 2},
		{2, 4, 0, 4},
		{4, 2, 0, 4},
	}))

	e.Move(DirLeft)
	clock.Advance(DefaultAnimationDuration)

	board := e.Board()
	if !Contains(board, 2048) {
		t.Fatalf("board should contain 2048:\n%v", board.Values())
	}
	if !e.GameWon() {
		t.Error("reaching 2048 should win")
	}
	// No tile is inserted once the target is reached
	if n := countTiles(board); n != 8 {
		t.Errorf("tile count = %d, want 8 (no new tile)", n)
	}

	// Later moves keep sliding but never place tiles or evaluate loss
	e.Move(DirRight)
	clock.Advance(DefaultAnimationDuration)
	if n := countTiles(e.Board()); n > 8 {
		t.Errorf("tile count grew to %d after winning", n)
	}
	if !e.GameWon() || e.GameOver() {
		t.Errorf("flags after win: won=%v over=%v", e.GameWon(), e.GameOver())
	}
}

func TestResetGame(t *testing.T) {
	e, _ := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{2048, 4, 2, 8},
		{0, 4, 16, 2},
		{8, 4, 2, 8},
		{2, 8, 4, 16},
	}))
	e.Move(DirLeft) // latches gameWon

	for i := 0; i < 20; i++ {
		e.ResetGame()
		board := e.Board()

		if n := countValue(board, 2); n != 2 {
			t.Fatalf("reset #%d: %d twos, want 2\n%v", i, n, board.Values())
		}
		if n := countValue(board, 0); n != 14 {
			t.Fatalf("reset #%d: %d empty cells, want 14", i, n)
		}
		if e.GameOver() || e.GameWon() {
			t.Fatalf("reset #%d: flags not cleared", i)
		}
		if e.Score() != 0 {
			t.Fatalf("reset #%d: score = %d, want 0", i, e.Score())
		}
	}
}

func TestResetGameAssignsUniqueIDs(t *testing.T) {
	e := New(WithScheduler(NewManualClock()))
	e.ResetGame()

	seen := make(map[string]bool)
	for _, row := range e.Board() {
		for _, tile := range row {
			if tile.Empty() {
				continue
			}
			if tile.ID == "" {
				t.Error("new tile has no identity")
			}
			if seen[tile.ID] {
				t.Errorf("duplicate identity %q", tile.ID)
			}
			seen[tile.ID] = true
		}
	}
}

func TestResetGameDeterministicWithSeed(t *testing.T) {
	e1, _ := newTestEngine()
	e1.ResetGame()

	e2, _ := newTestEngine()
	e2.ResetGame()

	if !e1.Board().Equal(e2.Board()) {
		t.Errorf("same seed should produce same board:\n%v\nvs\n%v", e1.Board().Values(), e2.Board().Values())
	}
}

func TestNewMoveSupersedesPendingCommit(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))

	e.MoveWith(DirRight, Identity)
	// Second move inside the animation window starts from the committed
	// post-combine board, not the pre-combine frame
	e.MoveWith(DirLeft, Identity)

	if fired := clock.Advance(DefaultAnimationDuration); fired != 1 {
		t.Errorf("fired %d commits, want 1", fired)
	}

	expected := [][]int{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if got := e.Board().Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("board: got\n%v\nwant\n%v", got, expected)
	}
	if got := e.Snapshot().Score; got != 4 {
		t.Errorf("score = %d, want 4", got)
	}
}

func TestResetDiscardsPendingCommit(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))

	e.MoveWith(DirRight, Identity)
	e.ResetGame()
	reset := e.Board()

	clock.Advance(time.Second)

	if !e.Board().Equal(reset) {
		t.Errorf("stale commit overwrote reset board:\n%v", e.Board().Values())
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", e.Phase())
	}
}

func TestSetBoardDiscardsPendingCommit(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	e.MoveWith(DirRight, Identity)

	replacement := BoardFromValues([][]int{
		{0, 0, 0, 0},
		{0, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	e.SetBoard(replacement)
	clock.Advance(time.Second)

	if !e.Board().Equal(replacement) {
		t.Errorf("board: got\n%v\nwant\n%v", e.Board().Values(), replacement.Values())
	}
}

func TestCommitHookSeesBothFrames(t *testing.T) {
	var phases []string
	e, clock := newTestEngine(WithCommitHook(func(s Snapshot) {
		phases = append(phases, s.Phase)
	}))

	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	e.Move(DirRight)
	clock.Advance(DefaultAnimationDuration)

	expected := []string{"idle", "pre_combine", "post_combine"}
	if !reflect.DeepEqual(phases, expected) {
		t.Errorf("hook phases = %v, want %v", phases, expected)
	}
}

func TestScoreCountsMergedValues(t *testing.T) {
	e, clock := newTestEngine()
	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 4, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))

	e.MoveWith(DirRight, Identity)
	clock.Advance(DefaultAnimationDuration)

	snap := e.Snapshot()
	if snap.Score != 12 {
		t.Errorf("score = %d, want 12", snap.Score)
	}
	if snap.Moves != 1 {
		t.Errorf("moves = %d, want 1", snap.Moves)
	}
	if snap.MaxTile != 8 {
		t.Errorf("max tile = %d, want 8", snap.MaxTile)
	}
}

func TestCustomSizeAndTarget(t *testing.T) {
	e, clock := newTestEngine(WithSize(3), WithTarget(16))
	e.ResetGame()

	if n := countValue(e.Board(), 0); n != 7 {
		t.Fatalf("3x3 reset: %d empty cells, want 7", n)
	}

	e.SetBoard(BoardFromValues([][]int{
		{8, 8, 0},
		{0, 0, 0},
		{0, 0, 0},
	}))
	e.Move(DirLeft)
	clock.Advance(DefaultAnimationDuration)

	if !e.GameWon() {
		t.Error("reaching a custom target should win")
	}
}

func TestWallClockCommits(t *testing.T) {
	e := New(WithAnimationDuration(time.Millisecond), WithRand(rand.New(rand.NewSource(1))))
	e.SetBoard(BoardFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	e.MoveWith(DirRight, Identity)

	deadline := time.Now().Add(2 * time.Second)
	for e.Phase() != PhasePostCombine {
		if time.Now().After(deadline) {
			t.Fatal("post-combine commit never happened")
		}
		time.Sleep(time.Millisecond)
	}

	if got := e.Board()[0][3].Value; got != 4 {
		t.Errorf("merged cell = %d, want 4", got)
	}
}
