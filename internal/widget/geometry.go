package widget

import "math"

// Position is the anchor's top-left corner in screen cells.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultPosition is used when nothing valid has been stored.
var DefaultPosition = Position{X: 20, Y: 20}

func (p Position) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// cell rounds the position onto the character grid.
func (p Position) cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Rect is a cell rectangle. W and H may be zero.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Layout holds the cell sizes used by the render projection.
type Layout struct {
	AnchorWidth  int
	AnchorHeight int
	RowHeight    int
}

// DefaultLayout is a 6x3 bordered anchor with single-line menu rows.
func DefaultLayout() Layout {
	return Layout{AnchorWidth: 6, AnchorHeight: 3, RowHeight: 1}
}

func (l Layout) normalized() Layout {
	if l.AnchorWidth < 1 {
		l.AnchorWidth = 1
	}
	if l.AnchorHeight < 1 {
		l.AnchorHeight = 1
	}
	if l.RowHeight < 1 {
		l.RowHeight = 1
	}
	return l
}
