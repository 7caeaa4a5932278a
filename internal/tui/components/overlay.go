package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// PlaceOverlay draws fg over bg with its top-left corner at column x, row y.
// Cells of bg outside fg are kept, including their styling.
func PlaceOverlay(x, y int, fg, bg string) string {
	x, y = max(0, x), max(0, y)
	bgLines := strings.Split(bg, "\n")

	for i, fl := range strings.Split(fg, "\n") {
		row := y + i
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}

		bl := bgLines[row]
		bw := ansi.StringWidth(bl)
		if bw < x {
			bl += Pad(x - bw)
			bw = x
		}

		var sb strings.Builder
		sb.WriteString(ansi.Truncate(bl, x, ""))
		sb.WriteString(resetStyle)
		sb.WriteString(fl)
		sb.WriteString(resetStyle)
		if end := x + ansi.StringWidth(fl); bw > end {
			sb.WriteString(ansi.TruncateLeft(bl, end, ""))
		}
		bgLines[row] = sb.String()
	}

	return strings.Join(bgLines, "\n")
}

// Center returns the position that centers a w×h box in a width×height area.
func Center(w, h, width, height int) (x, y int) {
	return max(0, (width-w)/2), max(0, (height-h)/2)
}
