// Package t2048 implements the 2048 sliding-tile state engine.
//
// Every direction is resolved by one rightward merge primitive: the board is
// rotated so the requested direction points right, combined, and rotated back.
package t2048

// BoardSize is the default board dimension.
const BoardSize = 4

// Tile is a single board cell. Value 0 means empty.
type Tile struct {
	Value int    `json:"value"`
	ID    string `json:"id,omitempty"` // Stable identity for renderers; empty when absent
}

// Empty reports whether the tile holds no value.
func (t Tile) Empty() bool {
	return t.Value == 0
}

// Board is a square grid of tiles, always fully populated.
type Board [][]Tile

// NewBoard returns an all-empty size x size board.
func NewBoard(size int) Board {
	b := make(Board, size)
	for y := range b {
		b[y] = make([]Tile, size)
	}
	return b
}

// BoardFromValues builds a board from raw values with no identities.
// Handy for seeding and tests.
func BoardFromValues(values [][]int) Board {
	b := make(Board, len(values))
	for y, row := range values {
		b[y] = make([]Tile, len(row))
		for x, v := range row {
			b[y][x] = Tile{Value: v}
		}
	}
	return b
}

// Size returns the board dimension.
func (b Board) Size() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y, row := range b {
		out[y] = append([]Tile(nil), row...)
	}
	return out
}

// Values returns the tile values as a plain matrix.
func (b Board) Values() [][]int {
	out := make([][]int, len(b))
	for y, row := range b {
		out[y] = make([]int, len(row))
		for x, t := range row {
			out[y][x] = t.Value
		}
	}
	return out
}

// Equal reports value equality, ignoring tile identities.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for y := range b {
		if len(b[y]) != len(other[y]) {
			return false
		}
		for x := range b[y] {
			if b[y][x].Value != other[y][x].Value {
				return false
			}
		}
	}
	return true
}

// RotateRight rotates a square matrix 90 degrees clockwise k times.
// The input is never modified; k is taken mod 4 so negative counts rotate
// counter-clockwise.
func RotateRight[T any](m [][]T, k int) [][]T {
	k = ((k % 4) + 4) % 4
	out := cloneMatrix(m)
	for range k {
		out = rotateOnce(out)
	}
	return out
}

// rotateOnce performs a single clockwise rotation: new[col][n-1-row] = old[row][col].
func rotateOnce[T any](m [][]T) [][]T {
	n := len(m)
	out := make([][]T, n)
	for i := range out {
		out[i] = make([]T, n)
	}
	for row := range n {
		for col := range n {
			out[col][n-1-row] = m[row][col]
		}
	}
	return out
}

func cloneMatrix[T any](m [][]T) [][]T {
	out := make([][]T, len(m))
	for i, row := range m {
		out[i] = append([]T(nil), row...)
	}
	return out
}

// ShiftRight moves every empty cell of each row to the front and every
// non-empty cell to the back, keeping the non-empty cells in order.
// No merging happens here.
func ShiftRight(b Board) Board {
	out := make(Board, len(b))
	for y, row := range b {
		shifted := make([]Tile, 0, len(row))
		for _, t := range row {
			if t.Empty() {
				shifted = append(shifted, t)
			}
		}
		for _, t := range row {
			if !t.Empty() {
				shifted = append(shifted, t)
			}
		}
		out[y] = shifted
	}
	return out
}
