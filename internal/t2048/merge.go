package t2048

// MergedTile is the output of one combine step.
// OldValue is non-zero only for cells produced by a merge in this step.
type MergedTile struct {
	Value    int
	OldValue int
	ID       string
}

// Merged reports whether the cell was produced by a merge.
func (m MergedTile) Merged() bool {
	return m.OldValue != 0
}

// CombineRight shifts every row right and merges equal neighbours, scanning
// from the right edge so the pair nearest the edge wins a three-way tie.
// A tile merges at most once per call.
func CombineRight(b Board) [][]MergedTile {
	shifted := ShiftRight(b)
	out := make([][]MergedTile, len(shifted))
	for y, row := range shifted {
		out[y] = combineRow(row)
	}
	return out
}

// combineRow merges a single already-shifted row.
func combineRow(row []Tile) []MergedTile {
	n := len(row)
	// Filled from the right edge towards the left
	combined := make([]MergedTile, 0, n)

	var pending *Tile
	for i := n - 1; i >= 0; i-- {
		next := row[i]
		switch {
		case pending == nil:
			pending = &next
		case next.Value > 0 && next.Value == pending.Value:
			combined = append(combined, MergedTile{
				Value:    next.Value * 2,
				OldValue: next.Value,
				ID:       next.ID,
			})
			pending = nil
		default:
			combined = append(combined, MergedTile{Value: pending.Value, ID: pending.ID})
			pending = &next
		}
	}
	if pending != nil {
		combined = append(combined, MergedTile{Value: pending.Value, ID: pending.ID})
	}

	// Reverse into left-to-right order, left-padding with empties
	result := make([]MergedTile, n)
	for i, m := range combined {
		result[n-1-i] = m
	}
	return result
}

// PreCombine returns the "about to merge" frame: merged cells still show the
// value of the tiles that slid into them.
func PreCombine(m [][]MergedTile) Board {
	out := make(Board, len(m))
	for y, row := range m {
		out[y] = make([]Tile, len(row))
		for x, c := range row {
			v := c.Value
			if c.Merged() {
				v = c.OldValue
			}
			out[y][x] = Tile{Value: v, ID: c.ID}
		}
	}
	return out
}

// PostCombine returns the frame after merges resolve.
func PostCombine(m [][]MergedTile) Board {
	out := make(Board, len(m))
	for y, row := range m {
		out[y] = make([]Tile, len(row))
		for x, c := range row {
			out[y][x] = Tile{Value: c.Value, ID: c.ID}
		}
	}
	return out
}

// SameValues reports whether a combine result is value-equal to a board.
// Identities are ignored; any merged cell makes the two differ because a
// board never carries a pre-merge value.
func SameValues(m [][]MergedTile, b Board) bool {
	if len(m) != len(b) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(b[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x].Merged() || m[y][x].Value != b[y][x].Value {
				return false
			}
		}
	}
	return true
}

// unmerged lifts a board into combine output with no merges.
func unmerged(b Board) [][]MergedTile {
	out := make([][]MergedTile, len(b))
	for y, row := range b {
		out[y] = make([]MergedTile, len(row))
		for x, t := range row {
			out[y][x] = MergedTile{Value: t.Value, ID: t.ID}
		}
	}
	return out
}

// mergeScore sums the values created by merges.
func mergeScore(m [][]MergedTile) int {
	score := 0
	for _, row := range m {
		for _, c := range row {
			if c.Merged() {
				score += c.Value
			}
		}
	}
	return score
}

// mergedCells lists the positions of m that hold a merge result.
func mergedCells(m [][]MergedTile) []Cell {
	var cells []Cell
	for y, row := range m {
		for x, t := range row {
			if t.Merged() {
				cells = append(cells, Cell{Row: y, Col: x})
			}
		}
	}
	return cells
}
