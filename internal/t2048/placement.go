package t2048

import (
	"math/rand"
)

// Cell addresses a board position.
type Cell struct {
	Row int
	Col int
}

// PlacementFunc receives the post-combine board of an accepted move and
// returns the board to commit once the animation finishes.
type PlacementFunc func(Board) Board

// Identity is a PlacementFunc that commits the post-combine board untouched.
func Identity(b Board) Board {
	return b
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for y, row := range b {
		for x, t := range row {
			if t.Empty() {
				cells = append(cells, Cell{Row: y, Col: x})
			}
		}
	}
	return cells
}

// Contains reports whether any tile holds value v.
func Contains(b Board, v int) bool {
	for _, row := range b {
		for _, t := range row {
			if t.Value == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for _, row := range b {
		for _, t := range row {
			if t.Value > maxVal {
				maxVal = t.Value
			}
		}
	}
	return maxVal
}

// NoMergesPossible reports whether the board is full and neither a
// horizontal nor a vertical combine would change it.
func NoMergesPossible(b Board) bool {
	if len(EmptyCells(b)) > 0 {
		return false
	}
	if !SameValues(CombineRight(b), b) {
		return false
	}
	rotated := Board(RotateRight([][]Tile(b), 1))
	vertical := RotateRight(CombineRight(rotated), 3)
	return SameValues(vertical, b)
}

// pickIndex returns a uniformly distributed index in [0, count).
func pickIndex(rng *rand.Rand, count int) int {
	if count <= 1 {
		return 0
	}
	return rng.Intn(count)
}

// AddRandomTileAndCheckGameState is the default placement strategy.
//
// If the board already holds the target tile the game is won and the board is
// returned unchanged; the flag stays latched until ResetGame. If the board has
// no empty cell the game is over. Otherwise a new tile is inserted into a
// uniformly chosen empty cell, and the game is over when that leaves no
// possible merge on either axis.
func (e *Engine) AddRandomTileAndCheckGameState(b Board) Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.placeLocked(b)
}

func (e *Engine) placeLocked(b Board) Board {
	if Contains(b, e.target) {
		if !e.gameWon {
			e.logger.Info("target reached", "target", e.target, "score", e.score)
		}
		e.gameWon = true
		return b
	}

	empty := EmptyCells(b)
	if len(empty) == 0 {
		e.markGameOverLocked(b)
		return b
	}

	cell := empty[pickIndex(e.rng, len(empty))]
	out := b.Clone()
	out[cell.Row][cell.Col] = Tile{Value: e.newTileValue, ID: e.newID()}

	if NoMergesPossible(out) {
		e.markGameOverLocked(out)
	}
	return out
}

// markGameOverLocked latches gameOver. b is the board placement just evaluated.
func (e *Engine) markGameOverLocked(b Board) {
	if !e.gameOver {
		e.logger.Info("no moves left", "score", e.score, "max_tile", MaxTile(b))
	}
	e.gameOver = true
}
