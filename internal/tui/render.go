package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/yamatools/internal/widget"
)

func (a *App) renderBoard(width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := make([]string, height)
	lines[0] = titleStyle.Render("yamatools") + boardStyle.Render(fmt.Sprintf("  %d menu entries", a.host.Registry.Len()))
	if height > 1 {
		lines[1] = boardStyle.Render("drag the button to move it, right-click to lock, click a locked button for tools")
	}
	if height > 2 && a.board.clicks > 0 {
		lines[2] = boardClickStyle.Render(fmt.Sprintf("board: %d presses, last %s", a.board.clicks, a.board.last))
	}
	for i := range lines {
		lines[i] = padRight(truncate(lines[i], width), width)
	}
	return strings.Join(lines, "\n")
}

func drawWidget(base string, v widget.View, width, height int) string {
	if !v.Visible {
		return base
	}
	if v.Menu != nil {
		for _, row := range v.Menu.Rows {
			base = overlayAt(base, renderRow(row), row.Rect.X, row.Rect.Y, width, height)
		}
	}
	return overlayAt(base, renderAnchor(v), v.Anchor.X, v.Anchor.Y, width, height)
}

func renderAnchor(v widget.View) string {
	r := v.Anchor
	if r.W < 3 || r.H < 3 {
		label := v.Icon
		if v.Locked {
			label += widget.LockGlyph
		}
		return lipgloss.NewStyle().Width(r.W).Height(r.H).Foreground(colorAccent).Render(truncate(label, r.W))
	}
	style := anchorStyle
	if v.Locked {
		style = anchorLockedStyle
	}
	box := style.Width(r.W - 2).Height(r.H - 2).Render(v.Icon)
	if v.Locked {
		glyph := lockStyle.Render(widget.LockGlyph)
		x := r.W - 1 - ansi.StringWidth(widget.LockGlyph)
		box = overlayAt(box, glyph, x, r.H-1, r.W, r.H)
	}
	return box
}

func renderRow(row widget.RowView) string {
	return rowStyle.Width(row.Rect.W).Height(row.Rect.H).Render(truncate(row.Text(), row.Rect.W-2))
}

// drawToasts stacks active toasts in the top right corner.
func (a *App) drawToasts(base string, width, height int) string {
	for i, t := range a.toasts.Active() {
		if i >= height {
			break
		}
		box := toastStyle.Render(truncate(t.Text, width-2))
		x := width - ansi.StringWidth(box)
		if x < 0 {
			x = 0
		}
		base = overlayAt(base, box, x, i, width, height)
	}
	return base
}

func (a *App) renderFooter() string {
	var left string
	switch a.modal {
	case modalQuery:
		left = "pick: " + a.query + "█"
		if i, ok := a.host.Registry.Closest(a.query); ok {
			e := a.host.Registry.Entries()[i]
			left += "  → " + strings.TrimSpace(widget.RowView{Icon: e.Icon, Label: e.Label}.Text())
		}
		left = queryStyle.Render(left)
	case modalConfirmReset:
		left = statusErrStyle.Render("reset saved button state? y/n")
	default:
		// full help is flattened so the footer stays one line
		bindings := a.keys.ShortHelp()
		if a.help.ShowAll {
			bindings = nil
			for _, col := range a.keys.FullHelp() {
				bindings = append(bindings, col...)
			}
		}
		left = a.help.ShortHelpView(bindings)
		if a.status != "" {
			status := a.status
			if !a.statusOK {
				status = statusErrStyle.Render(status)
			}
			left = status + "  " + left
		}
	}
	return footerStyle.Render(padRight(truncate(left, a.width), a.width))
}
