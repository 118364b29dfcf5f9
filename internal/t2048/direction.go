package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp    Direction = iota // Tiles slide toward row 0
	DirDown                   // Tiles slide toward the last row
	DirLeft                   // Tiles slide toward column 0
	DirRight                  // Tiles slide toward the last column
)

// ErrUnknownDirection is returned when a direction name cannot be parsed.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// rotation describes how a direction is mapped onto CombineRight.
// pre+post is always a multiple of 4 so the board ends up in its original orientation.
type rotation struct {
	pre  int
	post int
}

var rotations = map[Direction]rotation{
	DirRight: {pre: 0, post: 0},
	DirLeft:  {pre: 2, post: 2},
	DirUp:    {pre: 1, post: 3},
	DirDown:  {pre: 3, post: 1},
}

// Directions lists every direction in a stable order.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	_, ok := rotations[d]
	return ok
}

// ParseDirection converts a name such as "up" or "L" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Slide computes the combine result of moving b in direction dir without
// touching any engine state. An invalid direction leaves the board as is.
func Slide(b Board, dir Direction) [][]MergedTile {
	rot, ok := rotations[dir]
	if !ok {
		return unmerged(b)
	}
	rotated := Board(RotateRight([][]Tile(b), rot.pre))
	return RotateRight(CombineRight(rotated), rot.post)
}
