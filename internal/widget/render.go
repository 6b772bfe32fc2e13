package widget

import "github.com/charmbracelet/x/ansi"

// DefaultIcon is the anchor glyph (a d20).
const DefaultIcon = "⬢"

// LockGlyph marks a locked anchor in its bottom-right corner.
const LockGlyph = "🔒"

// State is the part of the widget the projection depends on.
type State struct {
	Position Position
	Locked   bool
	MenuOpen bool
	Icon     string
}

// View is the visual tree for one state. The zero View draws nothing.
type View struct {
	Visible bool
	Anchor  Rect
	Icon    string
	Locked  bool
	Menu    *MenuView
}

// MenuView is the open menu. Rows[i] is registration entry i; row 0 sits
// directly above the anchor and later rows stack upward.
type MenuView struct {
	Frame Rect
	Rows  []RowView
}

type RowView struct {
	Rect  Rect
	Icon  string
	Label string
}

// Text is the single-line content of a row.
func (r RowView) Text() string {
	if r.Label == "" {
		return r.Icon
	}
	return r.Icon + " " + r.Label
}

// Render projects a state onto cells. It has no side effects.
func Render(s State, rows []MenuEntry, l Layout) View {
	l = l.normalized()
	x, y := s.Position.cell()
	v := View{
		Visible: true,
		Anchor:  Rect{X: x, Y: y, W: l.AnchorWidth, H: l.AnchorHeight},
		Icon:    s.Icon,
		Locked:  s.Locked,
	}
	if v.Icon == "" {
		v.Icon = DefaultIcon
	}
	if !s.MenuOpen || !s.Locked {
		return v
	}

	width := l.AnchorWidth
	menu := &MenuView{Rows: make([]RowView, len(rows))}
	for i, e := range rows {
		row := RowView{Icon: e.Icon, Label: e.Label}
		// one cell of padding either side
		if w := ansi.StringWidth(row.Text()) + 2; w > width {
			width = w
		}
		menu.Rows[i] = row
	}
	height := len(rows) * l.RowHeight
	// Rows stack upward from the anchor unless that would cross the top
	// edge, in which case they stack downward from its bottom.
	below := y-height < 0
	for i := range menu.Rows {
		rowY := y - (i+1)*l.RowHeight
		if below {
			rowY = y + l.AnchorHeight + i*l.RowHeight
		}
		menu.Rows[i].Rect = Rect{X: x, Y: rowY, W: width, H: l.RowHeight}
	}
	menu.Frame = Rect{X: x, Y: y - height, W: width, H: height}
	if below {
		menu.Frame.Y = y + l.AnchorHeight
	}
	v.Menu = menu
	return v
}

// HitTest resolves the cell (x, y) to the element drawn there.
func (v View) HitTest(x, y int) Target {
	if !v.Visible {
		return Document
	}
	if v.Anchor.Contains(x, y) {
		return Anchor
	}
	if v.Menu != nil {
		for i, r := range v.Menu.Rows {
			if r.Rect.Contains(x, y) {
				return MenuRow(i)
			}
		}
		if v.Menu.Frame.Contains(x, y) {
			return Target{Kind: TargetMenu}
		}
	}
	return Document
}
