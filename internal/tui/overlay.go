package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites an overlay string on top of a base string at the given
// character position (x, y). Both are treated as line-based grids. Parts of
// the overlay left of column 0, above row 0 or past width are clipped.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		overlayLine := padRight(line, overlayWidth)
		col := x
		if col < 0 {
			overlayLine = ansi.TruncateLeft(overlayLine, -col, "")
			col = 0
		}
		if width > 0 && col >= width {
			continue
		}

		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, col, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < col {
			left += strings.Repeat(" ", col-leftWidth)
		}

		pos := col + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			rightWidth := ansi.StringWidth(right)
			gap := width - pos - rightWidth
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		out := left + overlayLine + right
		if width > 0 {
			out = ansi.Truncate(out, width, "")
		}
		baseLines[row] = out
	}
	return strings.Join(baseLines, "\n")
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending "…" if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
