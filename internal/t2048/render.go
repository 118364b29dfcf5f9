package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3
)

// boardDimensions returns the character size of the grid for an n x n board.
func boardDimensions(n int) (w, h int) {
	return n*cellWidth + 1, n*cellHeight + 1
}

// Render draws the HUD, the grid and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.engine.Snapshot()
	boardW, boardH := boardDimensions(g.size)
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, snap, boardX, boardW)
	g.renderBoard(dst, snap, boardX, boardY)
	g.renderOverlays(dst, snap, core.NewRect(boardX, boardY, boardW, boardH))

	hint := g.Controls()
	if boardY+boardH+1 < dst.Height() {
		dst.DrawTextColored((dst.Width()-len(hint))/2, boardY+boardH+1, hint, core.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", snap.Score))

	info := fmt.Sprintf("Max: %d", snap.MaxTile)
	dst.DrawText(max(boardX, boardX+boardW-len(info)), 1, info)

	goal := fmt.Sprintf("Target %d  Moves %d", snap.Target, snap.Moves)
	dst.DrawTextColored(boardX+(boardW-len(goal))/2, 2, goal, core.ColorGray)
}

// renderBoard draws the grid lines and tile values. Cells merged in the
// pre-combine frame are boxed in their colour.
func (g *Game) renderBoard(dst *core.Screen, snap Snapshot, boardX, boardY int) {
	n := g.size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColored(px, py, gridCorner(x, y, n), core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	merged := make(map[Cell]bool)
	for _, c := range g.engine.MergedCells() {
		merged[c] = true
	}

	for y := range n {
		for x := range n {
			val := snap.Board[y][x]
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			if val == 0 {
				dst.SetColored(cellX+(cellWidth-1)/2, cellY, '·', core.ColorGray)
				continue
			}

			text := strconv.Itoa(val)
			if merged[Cell{Row: y, Col: x}] {
				text = "[" + text + "]"
			}
			pad := max(0, (cellWidth-1-len(text))/2)
			dst.DrawTextColored(cellX+pad, cellY, text, core.TileColor(val))
		}
	}
}

func gridCorner(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot, board core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, core.ColorBrightCyan, "PAUSED", "Press P to resume")
	case snap.GameWon:
		drawOverlay(dst, board, core.ColorBrightMagenta,
			"YOU WIN!", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	case snap.GameOver:
		drawOverlay(dst, board, core.ColorBrightRed,
			"GAME OVER", fmt.Sprintf("Max tile: %d", snap.MaxTile), "Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, c core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := area.Centered(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, c)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColored(cx-len(line)/2, box.Y+1+i, line, c)
	}
}
