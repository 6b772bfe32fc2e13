package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSurface struct{ w, h int }

func (s fakeSurface) Size() (int, int) { return s.w, s.h }

type memLoader map[string]any

func (m memLoader) Get(_ context.Context, namespace, key string) (any, bool, error) {
	v, ok := m[namespace+"."+key]
	return v, ok, nil
}

type failingLoader struct{}

func (failingLoader) Get(context.Context, string, string) (any, bool, error) {
	return nil, false, errors.New("store offline")
}

type notes []string

func (n *notes) Info(msg string) { *n = append(*n, msg) }

func newWidget(t *testing.T, reg *Registry, store Loader) *Widget {
	t.Helper()
	w := New(reg, Options{Layout: DefaultLayout(), Store: store})
	require.NoError(t, w.Create(context.Background(), fakeSurface{80, 40}))
	return w
}

func press(x, y int, target Target) Event {
	return Event{Action: Press, Button: ButtonPrimary, X: x, Y: y, Target: target}
}

func moveTo(x, y int, target Target) Event {
	return Event{Action: Move, X: x, Y: y, Target: target}
}

func release(x, y int, target Target) Event {
	return Event{Action: Release, X: x, Y: y, Target: target}
}

// click presses and releases on the same cell.
func click(w *Widget, x, y int, target Target) Result {
	res := w.Handle(press(x, y, target))
	r2 := w.Handle(release(x, y, target))
	res.Writes = append(res.Writes, r2.Writes...)
	return res
}

func lockedWithMenu(t *testing.T, reg *Registry) *Widget {
	t.Helper()
	w := newWidget(t, reg, memLoader{"yamatools.buttonLocked": true})
	require.True(t, w.Locked())
	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
	return w
}

func TestCreateDefaults(t *testing.T) {
	w := newWidget(t, nil, nil)
	require.Equal(t, DefaultPosition, w.Position())
	require.False(t, w.Locked())
	require.False(t, w.MenuOpen())
}

func TestCreateLoadsStoredState(t *testing.T) {
	w := newWidget(t, nil, memLoader{
		"yamatools.buttonPosition": map[string]any{"x": 5.0, "y": 7.0},
		"yamatools.buttonLocked":   true,
	})
	require.Equal(t, Position{X: 5, Y: 7}, w.Position())
	require.True(t, w.Locked())
}

func TestCreateIgnoresMalformedValues(t *testing.T) {
	w := newWidget(t, nil, memLoader{
		"yamatools.buttonPosition": "top-left",
		"yamatools.buttonLocked":   "yes",
	})
	require.Equal(t, Position{X: 20, Y: 20}, w.Position())
	require.False(t, w.Locked())
}

func TestCreateSurvivesStoreErrors(t *testing.T) {
	w := newWidget(t, nil, failingLoader{})
	require.Equal(t, DefaultPosition, w.Position())
}

func TestCreateWithoutSurface(t *testing.T) {
	w := New(nil, Options{})
	err := w.Create(context.Background(), fakeSurface{})
	require.ErrorIs(t, err, ErrSurfaceUnavailable)
	require.False(t, w.Created())
	require.ErrorIs(t, w.Create(context.Background(), nil), ErrSurfaceUnavailable)
}

func TestCreateTwiceIsNoop(t *testing.T) {
	w := newWidget(t, nil, nil)
	w.MoveTo(Position{X: 3, Y: 4})
	require.NoError(t, w.Create(context.Background(), fakeSurface{80, 40}))
	require.Equal(t, Position{X: 3, Y: 4}, w.Position())
}

func TestDestroyIsIdempotent(t *testing.T) {
	w := New(nil, Options{})
	w.Destroy()

	w = newWidget(t, nil, nil)
	w.Destroy()
	w.Destroy()
	require.False(t, w.Created())
	require.Equal(t, View{}, w.View())
	require.Equal(t, Result{}, w.Handle(press(21, 21, Anchor)))
}

func TestClickWithoutMovementDoesNotPersist(t *testing.T) {
	w := newWidget(t, nil, nil)
	res := click(w, 22, 21, Anchor)
	require.Empty(t, res.Writes)
	require.Equal(t, DefaultPosition, w.Position())
	require.False(t, w.MenuOpen())
}

func TestDragMovesAndPersistsOnce(t *testing.T) {
	w := newWidget(t, nil, nil)

	res := w.Handle(press(22, 21, Anchor))
	require.True(t, res.Consumed)
	require.True(t, res.PreventDefault)

	for _, p := range [][2]int{{24, 22}, {27, 24}, {30, 25}} {
		res = w.Handle(moveTo(p[0], p[1], Document))
		require.Empty(t, res.Writes)
		require.True(t, w.Dragging())
	}
	require.Equal(t, Position{X: 28, Y: 24}, w.Position())
	require.Equal(t, Rect{X: 28, Y: 24, W: 6, H: 3}, w.View().Anchor)

	res = w.Handle(release(30, 25, Document))
	require.Equal(t, []Write{{Key: KeyPosition, Value: Position{X: 28, Y: 24}}}, res.Writes)
	require.False(t, w.Dragging())

	// nothing left to flush
	require.Empty(t, click(w, 0, 0, Document).Writes)
}

func TestDragBackToStartDoesNotPersist(t *testing.T) {
	w := newWidget(t, nil, nil)
	w.Handle(press(22, 21, Anchor))
	w.Handle(moveTo(25, 21, Document))
	w.Handle(moveTo(22, 21, Anchor))
	res := w.Handle(release(22, 21, Anchor))
	require.Empty(t, res.Writes)
	require.Equal(t, DefaultPosition, w.Position())
}

func TestMoveOnPressCellIsNotADrag(t *testing.T) {
	for i := 0; i < 1000; i++ {
		stored := Position{X: float64(i)/7 + 0.1, Y: float64(i)/7 + 0.1}
		w := newWidget(t, nil, memLoader{"yamatools.buttonPosition": stored})
		x, y := stored.cell()

		w.Handle(press(x, y, Anchor))
		res := w.Handle(moveTo(x, y, Anchor))
		require.False(t, w.Dragging())
		res.Writes = append(res.Writes, w.Handle(release(x, y, Anchor)).Writes...)

		require.Empty(t, res.Writes, "stored position %v", stored)
		require.Equal(t, stored, w.Position())
	}
}

func TestFractionalDragBackToStartDoesNotPersist(t *testing.T) {
	stored := Position{X: 20.0/7 + 0.1, Y: 40.0/7 + 0.1}
	w := newWidget(t, nil, memLoader{"yamatools.buttonPosition": stored})
	x, y := stored.cell()

	w.Handle(press(x, y, Anchor))
	w.Handle(moveTo(x+4, y+1, Document))
	require.True(t, w.Dragging())
	w.Handle(moveTo(x, y, Anchor))
	res := w.Handle(release(x, y, Anchor))
	require.Empty(t, res.Writes)
	require.Equal(t, stored, w.Position())
}

func TestPressOutsideOrNonPrimaryNeverDrags(t *testing.T) {
	w := newWidget(t, nil, nil)

	w.Handle(press(2, 2, Document))
	w.Handle(moveTo(9, 9, Document))
	require.False(t, w.Dragging())
	w.Handle(release(9, 9, Document))

	w.Handle(Event{Action: Press, Button: ButtonMiddle, X: 21, Y: 21, Target: Anchor})
	w.Handle(moveTo(30, 30, Document))
	require.False(t, w.Dragging())
	require.Equal(t, DefaultPosition, w.Position())
}

func TestToggleLockTwice(t *testing.T) {
	var n notes
	w := New(nil, Options{Notifier: &n})
	require.NoError(t, w.Create(context.Background(), fakeSurface{80, 40}))

	secondary := Event{Action: Press, Button: ButtonSecondary, X: 21, Y: 21, Target: Anchor}
	first := w.Handle(secondary)
	require.True(t, first.PreventDefault)
	require.True(t, w.Locked())
	second := w.Handle(secondary)
	require.False(t, w.Locked())

	require.Equal(t, []Write{{Key: KeyLocked, Value: true}}, first.Writes)
	require.Equal(t, []Write{{Key: KeyLocked, Value: false}}, second.Writes)
	require.Equal(t, notes{"Button is now locked.", "Button is now unlocked."}, n)
}

func TestSecondaryOutsideAnchorIgnored(t *testing.T) {
	w := newWidget(t, nil, nil)
	res := w.Handle(Event{Action: Press, Button: ButtonSecondary, X: 1, Y: 1, Target: Document})
	require.Equal(t, Result{}, res)
	require.False(t, w.Locked())
}

func TestLockedClickTogglesMenu(t *testing.T) {
	w := newWidget(t, nil, memLoader{"yamatools.buttonLocked": true})
	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
	click(w, 21, 21, Anchor)
	require.False(t, w.MenuOpen())
}

func TestLockedDragNeverMoves(t *testing.T) {
	w := newWidget(t, nil, memLoader{"yamatools.buttonLocked": true})
	w.Handle(press(21, 21, Anchor))
	w.Handle(moveTo(40, 30, Document))
	res := w.Handle(release(40, 30, Document))
	require.Empty(t, res.Writes)
	require.False(t, w.Dragging())
	require.Equal(t, DefaultPosition, w.Position())
	require.False(t, w.MenuOpen())
}

func TestOutsideClickClosesMenuOnce(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register(MenuEntry{Icon: "A", Label: "alpha", OnClick: func() { calls++ }})
	w := lockedWithMenu(t, reg)

	res := w.Handle(press(2, 2, Document))
	require.False(t, res.Consumed)
	require.False(t, w.MenuOpen())
	w.Handle(release(2, 2, Document))
	require.False(t, w.MenuOpen())
	require.Zero(t, calls)
}

func TestOutsideCloseNotReopenedByGestureTail(t *testing.T) {
	w := lockedWithMenu(t, nil)

	w.Handle(press(2, 2, Document))
	require.False(t, w.MenuOpen())
	// same gesture ends on the anchor without a reported move
	res := w.Handle(release(21, 21, Anchor))
	require.True(t, res.Consumed)
	require.False(t, w.MenuOpen())

	// the next real click is not suppressed
	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
}

func TestSuppressionClearedWhenAnchorClickNeverComes(t *testing.T) {
	w := lockedWithMenu(t, nil)
	w.Handle(press(2, 2, Document))
	w.Handle(release(2, 2, Document))

	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
}

func TestSuppressionClearedByNextPress(t *testing.T) {
	w := lockedWithMenu(t, nil)
	w.Handle(press(2, 2, Document))
	// release lost; the next gesture starts on the anchor
	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
}

func TestAnchorPressWhileOpenDoesNotDismissFirst(t *testing.T) {
	w := lockedWithMenu(t, nil)
	res := w.Handle(press(21, 21, Anchor))
	require.True(t, res.Consumed)
	require.True(t, w.MenuOpen(), "anchor press must not go through outside dismissal")
	w.Handle(release(21, 21, Anchor))
	require.False(t, w.MenuOpen())
}

func TestMenuRowsInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, l := range []string{"one", "two", "three"} {
		reg.Register(MenuEntry{Icon: "*", Label: l})
	}
	w := lockedWithMenu(t, reg)

	v := w.View()
	require.NotNil(t, v.Menu)
	require.Len(t, v.Menu.Rows, 3)
	for i, l := range []string{"one", "two", "three"} {
		require.Equal(t, l, v.Menu.Rows[i].Label)
	}

	reg.Register(MenuEntry{Icon: "*", Label: "four"})
	v = w.View()
	require.True(t, w.MenuOpen())
	require.Len(t, v.Menu.Rows, 4)
	require.Equal(t, "four", v.Menu.Rows[3].Label)
}

func TestSelectRowClosesAndInvokesOnce(t *testing.T) {
	calls := []string{}
	reg := NewRegistry()
	reg.Register(MenuEntry{Icon: "1", Label: "first", OnClick: func() { calls = append(calls, "first") }})
	reg.Register(MenuEntry{Icon: "2", Label: "second", OnClick: func() { calls = append(calls, "second") }})
	w := lockedWithMenu(t, reg)

	row := w.View().Menu.Rows[1].Rect
	res := w.Handle(press(row.X, row.Y, MenuRow(1)))
	require.True(t, res.Consumed)
	require.True(t, w.MenuOpen())
	res = w.Handle(release(row.X, row.Y, MenuRow(1)))
	require.True(t, res.Consumed)
	require.False(t, w.MenuOpen())
	require.Equal(t, []string{"second"}, calls)
}

func TestPanickingEntryIsIsolated(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register(MenuEntry{Icon: "!", Label: "broken", OnClick: func() { panic("boom") }})
	reg.Register(MenuEntry{Icon: "+", Label: "fine", OnClick: func() { calls++ }})
	w := lockedWithMenu(t, reg)

	require.NotPanics(t, func() { click(w, 21, 19, MenuRow(0)) })
	require.False(t, w.MenuOpen())

	click(w, 21, 21, Anchor)
	require.True(t, w.MenuOpen())
	click(w, 21, 18, MenuRow(1))
	require.Equal(t, 1, calls)
}

func TestMenuEntryCanReenterWidget(t *testing.T) {
	reg := NewRegistry()
	var w *Widget
	reg.Register(MenuEntry{Icon: "+", Label: "home", OnClick: func() {
		w.MoveTo(Position{X: 1, Y: 2})
	}})
	w = lockedWithMenu(t, reg)

	res := click(w, 21, 19, MenuRow(0))
	require.Equal(t, []Write{{Key: KeyPosition, Value: Position{X: 1, Y: 2}}}, res.Writes)
	require.Equal(t, Position{X: 1, Y: 2}, w.Position())
}

func TestUnlockClosesMenu(t *testing.T) {
	w := lockedWithMenu(t, nil)
	w.ToggleLock()
	require.False(t, w.Locked())
	require.False(t, w.MenuOpen())
	require.Nil(t, w.View().Menu)
}

func TestUnlockedClickNeverOpensMenu(t *testing.T) {
	w := newWidget(t, nil, nil)
	click(w, 21, 21, Anchor)
	require.False(t, w.MenuOpen())
}

func TestSelectClosest(t *testing.T) {
	picked := ""
	reg := NewRegistry()
	reg.Register(MenuEntry{Icon: "d", Label: "Roll d20", OnClick: func() { picked = "d20" }})
	reg.Register(MenuEntry{Icon: "c", Label: "Flip coin", OnClick: func() { picked = "coin" }})

	w := newWidget(t, reg, nil)
	_, ok := w.SelectClosest("flip")
	require.False(t, ok, "menu closed")

	w.ToggleLock()
	click(w, 21, 21, Anchor)
	_, ok = w.SelectClosest("flip")
	require.True(t, ok)
	require.Equal(t, "coin", picked)
	require.False(t, w.MenuOpen())
}

func TestRegistryClosest(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Closest("x")
	require.False(t, ok)

	reg.Register(MenuEntry{Label: "Roll d20"})
	reg.Register(MenuEntry{Label: "Roll 2d6"})
	reg.Register(MenuEntry{Icon: "@"})

	i, ok := reg.Closest("roll 2d")
	require.True(t, ok)
	require.Equal(t, 1, i)
	i, _ = reg.Closest("rol d2O")
	require.Equal(t, 0, i)
	i, _ = reg.Closest("@")
	require.Equal(t, 2, i)
}

func TestRegistrySubscribe(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	cancel := reg.Subscribe(func() { calls++ })
	reg.Register(MenuEntry{Label: "a"})
	cancel()
	reg.Register(MenuEntry{Label: "b"})
	require.Equal(t, 1, calls)
	require.Equal(t, 2, reg.Len())
	require.Equal(t, uint64(2), reg.Version())
}
