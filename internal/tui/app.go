package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/yamatools/internal/config"
	"github.com/jask/yamatools/internal/lifecycle"
	"github.com/jask/yamatools/internal/notify"
	"github.com/jask/yamatools/internal/service"
	"github.com/jask/yamatools/internal/widget"
)

// App is the game board the button floats over.
type App struct {
	ctx    context.Context
	cfg    config.Config
	host   *lifecycle.Context
	toasts *notify.Toasts
	maint  *service.MaintenanceService

	width  int
	height int
	keys   keyMap
	help   help.Model

	modal    modalState
	query    string
	status   string
	statusOK bool
	retried  bool
	board    board
}

type modalState string

const (
	modalNone         modalState = ""
	modalQuery        modalState = "query"
	modalConfirmReset modalState = "confirmReset"
)

// board records the default handling of presses the button did not take.
type board struct {
	clicks int
	last   string
}

func (b *board) record(ev widget.Event) {
	b.clicks++
	switch ev.Button {
	case widget.ButtonSecondary:
		b.last = fmt.Sprintf("context menu at %d,%d", ev.X, ev.Y)
	default:
		b.last = fmt.Sprintf("selected cell %d,%d", ev.X, ev.Y)
	}
}

type constructMsg struct{ retry bool }
type persistedMsg struct{ err error }
type resetDoneMsg struct{ err error }
type registryChangedMsg struct{}
type tickMsg time.Time

// RegistryChanged tells a running program that menu entries were added.
func RegistryChanged() tea.Msg { return registryChangedMsg{} }

func New(ctx context.Context, cfg config.Config, host *lifecycle.Context, toasts *notify.Toasts, maint *service.MaintenanceService) *App {
	if toasts == nil {
		toasts = notify.NewToasts(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	}
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		host:   host,
		toasts: toasts,
		maint:  maint,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Size reports the board area, which is everything above the footer.
func (a *App) Size() (int, int) {
	if a.height <= 1 {
		return a.width, 0
	}
	return a.width, a.height - 1
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return constructMsg{} }, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case constructMsg:
		return a, a.construct(m.retry)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case tea.KeyMsg:
		return a.handleKey(m)
	case persistedMsg:
		if m.err != nil {
			a.setStatus("save failed: "+m.err.Error(), false)
		}
	case resetDoneMsg:
		if m.err != nil {
			a.setStatus("reset failed: "+m.err.Error(), false)
			return a, nil
		}
		if w := a.host.Widget(); w != nil {
			w.Reset()
		}
		a.toasts.Info("Button position and lock reset.")
	case registryChangedMsg:
		// redraw picks up the new entries
	case tickMsg:
		return a, tick()
	}
	return a, nil
}

// construct builds the widget, retrying once if the board has no size yet.
func (a *App) construct(retry bool) tea.Cmd {
	err := a.host.Construct(a.ctx, a)
	if err == nil {
		return nil
	}
	if errors.Is(err, widget.ErrSurfaceUnavailable) && !retry && !a.retried {
		a.retried = true
		delay := time.Duration(a.cfg.UI.RetryDelayMS) * time.Millisecond
		return tea.Tick(delay, func(time.Time) tea.Msg { return constructMsg{retry: true} })
	}
	a.setStatus("button unavailable: "+err.Error(), false)
	return nil
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	var view widget.View
	if w := a.host.Widget(); w != nil {
		view = w.View()
	}
	ev, ok := toEvent(m, view)
	if !ok {
		return nil
	}
	res := a.host.Dispatch(ev)
	if ev.Action == widget.Press && !res.Consumed && !res.PreventDefault {
		a.board.record(ev)
	}
	return a.persistCmd(res.Writes)
}

// toEvent translates a terminal mouse report. Wheel reports are dropped.
func toEvent(m tea.MouseMsg, v widget.View) (widget.Event, bool) {
	ev := widget.Event{X: m.X, Y: m.Y, Target: v.HitTest(m.X, m.Y)}
	switch m.Action {
	case tea.MouseActionPress:
		ev.Action = widget.Press
	case tea.MouseActionRelease:
		ev.Action = widget.Release
	case tea.MouseActionMotion:
		ev.Action = widget.Move
	default:
		return ev, false
	}
	switch m.Button {
	case tea.MouseButtonLeft:
		ev.Button = widget.ButtonPrimary
	case tea.MouseButtonRight:
		ev.Button = widget.ButtonSecondary
	case tea.MouseButtonMiddle:
		ev.Button = widget.ButtonMiddle
	case tea.MouseButtonNone:
	default:
		return ev, false
	}
	return ev, true
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalQuery:
		return a.handleQueryKey(m)
	case modalConfirmReset:
		a.modal = modalNone
		if m.String() == "y" {
			return a, a.resetCmd()
		}
		a.setStatus("reset cancelled", true)
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Lock):
		return a, a.persistCmd(a.host.ToggleLock().Writes)
	case key.Matches(m, a.keys.Recenter):
		return a, a.persistCmd(a.host.Recenter().Writes)
	case key.Matches(m, a.keys.Search):
		if w := a.host.Widget(); w != nil && w.MenuOpen() {
			a.modal = modalQuery
			a.query = ""
		} else {
			a.setStatus("open the menu first", false)
		}
	case key.Matches(m, a.keys.Reset):
		if a.maint == nil {
			a.setStatus("nothing to reset without a store", false)
			return a, nil
		}
		a.modal = modalConfirmReset
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleQueryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.modal, a.query = modalNone, ""
	case tea.KeyEnter:
		q := strings.TrimSpace(a.query)
		a.modal, a.query = modalNone, ""
		w := a.host.Widget()
		if w == nil {
			return a, nil
		}
		res, ok := w.SelectClosest(q)
		if !ok {
			a.setStatus(fmt.Sprintf("no menu entry matches %q", q), false)
		}
		return a, a.persistCmd(res.Writes)
	case tea.KeyBackspace:
		if r := []rune(a.query); len(r) > 0 {
			a.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.query += " "
	case tea.KeyRunes:
		a.query += string(m.Runes)
	}
	return a, nil
}

// persistCmd queues writes now, so they keep event order, and reports the
// outcome once the worker has stored them.
func (a *App) persistCmd(writes []widget.Write) tea.Cmd {
	if len(writes) == 0 {
		return nil
	}
	done := a.host.Queue(a.ctx, writes)
	return func() tea.Msg {
		return persistedMsg{err: <-done}
	}
}

// resetCmd runs behind any saves still queued.
func (a *App) resetCmd() tea.Cmd {
	done := a.host.Do(a.ctx, func(ctx context.Context) error {
		return a.maint.Reset(ctx, widget.Namespace)
	})
	return func() tea.Msg {
		return resetDoneMsg{err: <-done}
	}
}

func (a *App) setStatus(s string, ok bool) {
	a.status, a.statusOK = s, ok
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	width, height := a.Size()
	out := a.renderBoard(width, height)
	if w := a.host.Widget(); w != nil {
		out = drawWidget(out, w.View(), width, height)
	}
	out = a.drawToasts(out, width, height)
	if height == 0 {
		return a.renderFooter()
	}
	return out + "\n" + a.renderFooter()
}
