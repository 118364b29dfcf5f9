package t2048

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestRotateRightOnce(t *testing.T) {
	m := [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	expected := [][]int{
		{13, 9, 5, 1},
		{14, 10, 6, 2},
		{15, 11, 7, 3},
		{16, 12, 8, 4},
	}

	result := RotateRight(m, 1)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("RotateRight(m, 1): got\n%v\nwant\n%v", result, expected)
	}

	// Input must not be modified
	if m[0][0] != 1 || m[3][3] != 16 {
		t.Error("RotateRight modified its input")
	}
}

func TestRotateRightTwice(t *testing.T) {
	m := [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	expected := [][]int{
		{16, 15, 14, 13},
		{12, 11, 10, 9},
		{8, 7, 6, 5},
		{4, 3, 2, 1},
	}

	result := RotateRight(m, 2)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("RotateRight(m, 2): got\n%v\nwant\n%v", result, expected)
	}
}

func TestRotateRightFourTimesIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, size := range []int{1, 2, 3, 4, 5, 8} {
		for trial := 0; trial < 20; trial++ {
			b := randomBoard(rng, size)

			once := [][]Tile(b)
			for range 4 {
				once = RotateRight(once, 1)
			}
			if !Board(once).Equal(b) {
				t.Fatalf("size %d: four single rotations changed board\n%v\nwant\n%v",
					size, Board(once).Values(), b.Values())
			}

			if got := Board(RotateRight([][]Tile(b), 4)); !got.Equal(b) {
				t.Fatalf("size %d: RotateRight(b, 4) changed board", size)
			}
		}
	}
}

func TestRotateRightComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := [][]Tile(randomBoard(rng, 4))

	for a := 0; a < 6; a++ {
		for c := 0; c < 6; c++ {
			composed := RotateRight(RotateRight(b, a), c)
			direct := RotateRight(b, (a+c)%4)
			if !reflect.DeepEqual(composed, direct) {
				t.Errorf("rotate(rotate(m,%d),%d) != rotate(m,%d)", a, c, (a+c)%4)
			}
		}
	}
}

func TestRotateRightNegative(t *testing.T) {
	m := [][]int{
		{1, 2},
		{3, 4},
	}
	if !reflect.DeepEqual(RotateRight(m, -1), RotateRight(m, 3)) {
		t.Error("RotateRight(m, -1) should equal RotateRight(m, 3)")
	}
}

func TestShiftRight(t *testing.T) {
	b := Board{
		{{Value: 2, ID: "a"}, {}, {Value: 4, ID: "b"}, {}},
		{{}, {}, {}, {}},
		{{Value: 8, ID: "c"}, {Value: 8, ID: "d"}, {Value: 2, ID: "e"}, {Value: 4, ID: "f"}},
		{{}, {}, {}, {Value: 16, ID: "g"}},
	}

	result := ShiftRight(b)

	expected := [][]int{
		{0, 0, 2, 4},
		{0, 0, 0, 0},
		{8, 8, 2, 4},
		{0, 0, 0, 16},
	}
	if !reflect.DeepEqual(result.Values(), expected) {
		t.Errorf("ShiftRight: got\n%v\nwant\n%v", result.Values(), expected)
	}

	// Non-empty tiles keep their identities and order
	if result[0][2].ID != "a" || result[0][3].ID != "b" {
		t.Errorf("ShiftRight lost tile order: %+v", result[0])
	}
	if result[2][0].ID != "c" || result[2][1].ID != "d" {
		t.Errorf("ShiftRight should not merge: %+v", result[2])
	}

	// The input board is untouched
	if b[0][0].Value != 2 {
		t.Error("ShiftRight modified its input")
	}
}

func TestBoardEqualIgnoresIDs(t *testing.T) {
	a := Board{{{Value: 2, ID: "x"}, {}}, {{}, {Value: 4, ID: "y"}}}
	b := Board{{{Value: 2, ID: "other"}, {}}, {{}, {Value: 4}}}

	if !a.Equal(b) {
		t.Error("boards differing only in IDs should be equal")
	}

	b[1][1].Value = 8
	if a.Equal(b) {
		t.Error("boards with different values should not be equal")
	}
}

// randomBoard builds a board of powers of two with some empty cells.
func randomBoard(rng *rand.Rand, size int) Board {
	b := NewBoard(size)
	for y := range size {
		for x := range size {
			if rng.Intn(3) == 0 {
				continue
			}
			b[y][x] = Tile{Value: 1 << (1 + rng.Intn(6))}
		}
	}
	return b
}
