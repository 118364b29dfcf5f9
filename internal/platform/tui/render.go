package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core colours to ANSI 256 foregrounds.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorGray:          fg("245"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightWhite:   fg("15").Bold(true),
	core.ColorYellow:        fg("3"),
	core.ColorBrightYellow:  fg("11").Bold(true),
	core.ColorOrange:        fg("208"),
	core.ColorRed:           fg("1"),
	core.ColorBrightRed:     fg("9").Bold(true),
	core.ColorMagenta:       fg("5"),
	core.ColorBrightMagenta: fg("13").Bold(true),
	core.ColorGreen:         fg("2"),
	core.ColorBrightGreen:   fg("10"),
	core.ColorCyan:          fg("6"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBlue:          fg("4"),
	core.ColorBrightBlue:    fg("12").Bold(true),
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen converts a Screen to a styled string. Runs of cells sharing a
// colour are rendered together to keep escape sequences down.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
