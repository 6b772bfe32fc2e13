// Package widget implements the floating, draggable, lockable button and its
// pop-up menu as a pointer-driven state machine.
//
// The widget never draws and never persists by itself. Every transition
// returns a Result carrying the writes the host should hand to the settings
// store, and View projects the current state onto screen cells.
package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

// Settings keys, namespaced under the module identifier.
const (
	Namespace   = "yamatools"
	KeyPosition = "buttonPosition"
	KeyLocked   = "buttonLocked"
)

// ErrSurfaceUnavailable is returned by Create when there is nothing to draw
// on yet.
var ErrSurfaceUnavailable = errors.New("widget: surface unavailable")

// Surface is the area the widget is drawn on.
type Surface interface {
	Size() (width, height int)
}

// Loader reads persisted values. ok is false when nothing is stored.
type Loader interface {
	Get(ctx context.Context, namespace, key string) (value any, ok bool, err error)
}

// Notifier shows a short informational message to the user.
type Notifier interface {
	Info(msg string)
}

type Options struct {
	Layout   Layout
	Icon     string
	Store    Loader
	Notifier Notifier
	Logger   *log.Logger
}

type dragPhase int

const (
	phaseIdle dragPhase = iota
	phasePressed
	phaseDragging
)

// gesture follows one primary press until its release.
type gesture struct {
	active bool
	target Target
	x, y   int
	moved  bool
}

// Widget is the button controller. It is not safe for concurrent use; all
// calls are expected on the host's event loop.
type Widget struct {
	reg    *Registry
	opts   Options
	log    *log.Logger
	layout Layout

	created bool
	pos     Position
	locked  bool

	phase      dragPhase
	offX, offY float64
	start      Position
	g          gesture
	menuOpen   bool
	// suppressReopen is set when a document press closes the menu. The next
	// anchor click evaluation consumes it; the end of any other gesture, or
	// the next press, clears it.
	suppressReopen bool

	rows        []MenuEntry
	rowsVersion uint64

	pending []Write
	depth   int
}

// New returns an unconstructed widget reading entries from reg.
func New(reg *Registry, opts Options) *Widget {
	if reg == nil {
		reg = NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Widget{
		reg:    reg,
		opts:   opts,
		log:    logger,
		layout: opts.Layout.normalized(),
		pos:    DefaultPosition,
	}
}

// Create loads persisted state and arms the widget. Calling it on a
// constructed widget does nothing.
func (w *Widget) Create(ctx context.Context, surface Surface) error {
	if w.created {
		return nil
	}
	if surface == nil {
		return ErrSurfaceUnavailable
	}
	if width, height := surface.Size(); width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrSurfaceUnavailable, width, height)
	}
	w.pos, w.locked = DefaultPosition, false
	w.load(ctx)
	w.resetInteraction()
	w.created = true
	w.log.Printf("draggable button created at (%.0f, %.0f), locked=%t", w.pos.X, w.pos.Y, w.locked)
	return nil
}

func (w *Widget) load(ctx context.Context) {
	if w.opts.Store == nil {
		return
	}
	if v, ok, err := w.opts.Store.Get(ctx, Namespace, KeyPosition); err != nil {
		w.log.Printf("load %s: %v", KeyPosition, err)
	} else if ok {
		if p, valid := decodePosition(v); valid {
			w.pos = p
		}
	}
	if v, ok, err := w.opts.Store.Get(ctx, Namespace, KeyLocked); err != nil {
		w.log.Printf("load %s: %v", KeyLocked, err)
	} else if ok {
		if b, valid := decodeLocked(v); valid {
			w.locked = b
		}
	}
}

// Destroy drops the widget from the surface. It is safe to call at any time
// and more than once.
func (w *Widget) Destroy() {
	if !w.created {
		return
	}
	w.created = false
	w.resetInteraction()
	w.rows = nil
	w.pending = nil
	w.log.Printf("draggable button destroyed")
}

// Reset restores default position and lock without persisting, for use
// after the stored values were wiped.
func (w *Widget) Reset() {
	w.pos, w.locked = DefaultPosition, false
	w.resetInteraction()
}

func (w *Widget) resetInteraction() {
	w.phase = phaseIdle
	w.g = gesture{}
	w.menuOpen = false
	w.suppressReopen = false
}

func (w *Widget) Created() bool      { return w.created }
func (w *Widget) Position() Position { return w.pos }
func (w *Widget) Locked() bool       { return w.locked }
func (w *Widget) MenuOpen() bool     { return w.menuOpen }
func (w *Widget) Dragging() bool     { return w.phase == phaseDragging }

func (w *Widget) State() State {
	return State{Position: w.pos, Locked: w.locked, MenuOpen: w.menuOpen, Icon: w.opts.Icon}
}

// View projects the current state. An unconstructed widget has an empty view.
func (w *Widget) View() View {
	if !w.created {
		return View{}
	}
	w.syncMenu()
	return Render(w.State(), w.rows, w.layout)
}

// Handle feeds one pointer event through the state machine.
func (w *Widget) Handle(ev Event) Result {
	if !w.created {
		return Result{}
	}
	return w.run(func() Result {
		w.syncMenu()
		switch ev.Action {
		case Press:
			return w.press(ev)
		case Move:
			return w.move(ev)
		case Release:
			return w.release(ev)
		}
		return Result{}
	})
}

// ToggleLock is the secondary activation without a pointer.
func (w *Widget) ToggleLock() Result {
	if !w.created {
		return Result{}
	}
	return w.run(func() Result {
		w.toggleLock()
		return Result{Consumed: true}
	})
}

// MoveTo places the anchor at p and persists it.
func (w *Widget) MoveTo(p Position) Result {
	if !w.created || !p.finite() {
		return Result{}
	}
	return w.run(func() Result {
		w.pos = p
		w.queue(KeyPosition, p)
		return Result{Consumed: true}
	})
}

// SelectClosest selects the open menu's entry best matching query.
func (w *Widget) SelectClosest(query string) (Result, bool) {
	if !w.created || !w.menuOpen {
		return Result{}, false
	}
	found := false
	res := w.run(func() Result {
		w.syncMenu()
		i, ok := closest(w.rows, query)
		if !ok {
			return Result{}
		}
		found = true
		return w.selectRow(i)
	})
	return res, found
}

// run collects writes queued by fn, including those queued by menu callbacks
// that re-enter the widget.
func (w *Widget) run(fn func() Result) Result {
	w.depth++
	res := fn()
	w.depth--
	if w.depth == 0 && len(w.pending) > 0 {
		res.Writes = append(res.Writes, w.pending...)
		w.pending = nil
	}
	return res
}

func (w *Widget) queue(key string, value any) {
	w.pending = append(w.pending, Write{Key: key, Value: value})
}

func (w *Widget) press(ev Event) Result {
	w.suppressReopen = false
	if w.g.active {
		w.log.Printf("%s before release, ending previous gesture", ev.Action)
		w.endDrag()
		w.g = gesture{}
	}

	switch ev.Button {
	case ButtonSecondary:
		if ev.Target.Kind != TargetAnchor {
			return Result{}
		}
		w.toggleLock()
		return Result{Consumed: true, PreventDefault: true}
	case ButtonPrimary:
	default:
		return Result{}
	}

	w.g = gesture{active: true, target: ev.Target, x: ev.X, y: ev.Y}
	switch ev.Target.Kind {
	case TargetAnchor:
		// Locked presses are left to the click evaluation at release and
		// never arm the drag.
		if !w.locked {
			w.phase = phasePressed
			w.start = w.pos
			w.offX = float64(ev.X) - w.pos.X
			w.offY = float64(ev.Y) - w.pos.Y
		}
		return Result{Consumed: true, PreventDefault: true}
	case TargetMenu, TargetMenuRow:
		if w.menuOpen {
			return Result{Consumed: true}
		}
	}

	if w.menuOpen {
		w.closeMenu()
		w.suppressReopen = true
		w.log.Printf("document press outside, menu hidden")
	}
	return Result{}
}

func (w *Widget) move(ev Event) Result {
	if !w.g.active {
		return Result{}
	}
	onPressCell := ev.X == w.g.x && ev.Y == w.g.y
	if !onPressCell {
		w.g.moved = true
	}
	if w.phase == phaseIdle {
		return Result{}
	}
	if !w.g.moved {
		return Result{Consumed: true}
	}
	w.phase = phaseDragging
	if onPressCell {
		// offset arithmetic is not exact for fractional positions
		w.pos = w.start
	} else {
		w.pos = Position{X: float64(ev.X) - w.offX, Y: float64(ev.Y) - w.offY}
	}
	return Result{Consumed: true}
}

func (w *Widget) release(ev Event) Result {
	g := w.g
	w.g = gesture{}
	if !g.active {
		return Result{}
	}

	wasDragging := w.phase == phaseDragging
	w.endDrag()
	if wasDragging && g.moved {
		w.suppressReopen = false
		w.log.Printf("button drag ended at (%.0f, %.0f)", w.pos.X, w.pos.Y)
		return Result{Consumed: true}
	}

	click := !g.moved && ev.Target == g.target
	if ev.Target.Kind == TargetAnchor {
		return w.anchorClick(click)
	}
	w.suppressReopen = false

	switch g.target.Kind {
	case TargetMenuRow:
		if click && w.menuOpen {
			return w.selectRow(g.target.Row)
		}
		return Result{Consumed: true}
	case TargetMenu:
		return Result{Consumed: true}
	}
	return Result{}
}

// endDrag returns to idle, persisting the position if the anchor moved.
func (w *Widget) endDrag() {
	if w.phase == phaseDragging && w.pos != w.start {
		w.queue(KeyPosition, w.pos)
	}
	w.phase = phaseIdle
}

func (w *Widget) anchorClick(click bool) Result {
	res := Result{Consumed: true}
	if w.suppressReopen {
		w.suppressReopen = false
		w.log.Printf("anchor click after outside close ignored")
		return res
	}
	if !click || !w.locked {
		return res
	}
	if w.menuOpen {
		w.closeMenu()
		w.log.Printf("button click while locked, menu hidden")
	} else {
		w.openMenu()
		w.log.Printf("button click while locked, menu shown")
	}
	return res
}

func (w *Widget) toggleLock() {
	w.locked = !w.locked
	w.queue(KeyLocked, w.locked)
	if !w.locked && w.menuOpen {
		w.closeMenu()
	}
	state := "unlocked"
	if w.locked {
		state = "locked"
	}
	w.log.Printf("button %s", state)
	if w.opts.Notifier != nil {
		w.opts.Notifier.Info(fmt.Sprintf("Button is now %s.", state))
	}
}

func (w *Widget) openMenu() {
	w.rows, w.rowsVersion = w.reg.snapshot()
	w.menuOpen = true
}

func (w *Widget) closeMenu() {
	w.menuOpen = false
}

// syncMenu rebuilds an open menu when entries were registered since it was
// last built.
func (w *Widget) syncMenu() {
	if w.menuOpen && w.reg.Version() != w.rowsVersion {
		w.rows, w.rowsVersion = w.reg.snapshot()
		w.log.Printf("menu rebuilt with %d entries", len(w.rows))
	}
}

func (w *Widget) selectRow(i int) Result {
	res := Result{Consumed: true}
	if i < 0 || i >= len(w.rows) {
		return res
	}
	entry := w.rows[i]
	w.closeMenu()
	w.invoke(i, entry)
	return res
}

func (w *Widget) invoke(i int, e MenuEntry) {
	if e.OnClick == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.log.Printf("menu entry %d (%s) failed: %v", i, e.Label, r)
		}
	}()
	e.OnClick()
}
