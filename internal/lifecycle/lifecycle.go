// Package lifecycle owns the process-wide widget context: the menu registry,
// the collaborators the widget talks to and the single widget instance.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jask/yamatools/internal/settings"
	"github.com/jask/yamatools/internal/widget"
)

type Options struct {
	Store      settings.Store
	Notifier   widget.Notifier
	Logger     *log.Logger
	Layout     widget.Layout
	Icon       string
	GameMaster bool
}

// Context is created once per process by the host and handed to whatever
// builds or talks to the widget.
type Context struct {
	Registry *widget.Registry

	opts    Options
	log     *log.Logger
	w       *widget.Widget
	surface widget.Surface

	// saves run one at a time, in the order they were queued
	saves   chan saveJob
	mu      sync.Mutex
	running bool
	closed  bool
	drained chan struct{}
}

type saveJob struct {
	ctx  context.Context
	run  func(ctx context.Context) error
	done chan error
}

// ErrClosed is reported for writes queued after Close.
var ErrClosed = errors.New("lifecycle: persistence closed")

func New(opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Context{
		Registry: widget.NewRegistry(),
		opts:     opts,
		log:      logger,
		saves:    make(chan saveJob, 64),
		drained:  make(chan struct{}),
	}
}

// Definitions are the settings the widget persists.
func Definitions() []settings.Definition {
	return []settings.Definition{
		{Namespace: widget.Namespace, Key: widget.KeyPosition, Scope: settings.ScopeUser, Default: widget.DefaultPosition},
		{Namespace: widget.Namespace, Key: widget.KeyLocked, Scope: settings.ScopeUser, Default: false},
	}
}

// Initialize registers the persisted settings. Without a store it only logs.
func (c *Context) Initialize(ctx context.Context) error {
	c.log.Printf("initializing module")
	if c.opts.Store == nil {
		return nil
	}
	for _, def := range Definitions() {
		if err := c.opts.Store.Register(ctx, def); err != nil {
			return fmt.Errorf("register %s.%s: %w", def.Namespace, def.Key, err)
		}
	}
	return nil
}

// Construct builds the widget on surface. While a widget exists it does
// nothing. Players other than the game master never get a widget.
func (c *Context) Construct(ctx context.Context, surface widget.Surface) error {
	if c.w != nil && c.w.Created() {
		return nil
	}
	if !c.opts.GameMaster {
		c.log.Printf("not creating button for non-GM user")
		return nil
	}
	var store widget.Loader
	if c.opts.Store != nil {
		store = c.opts.Store
	}
	w := widget.New(c.Registry, widget.Options{
		Layout:   c.opts.Layout,
		Icon:     c.opts.Icon,
		Store:    store,
		Notifier: c.opts.Notifier,
		Logger:   c.log,
	})
	if err := w.Create(ctx, surface); err != nil {
		c.log.Printf("construction aborted: %v", err)
		return fmt.Errorf("construct widget: %w", err)
	}
	c.w, c.surface = w, surface
	return nil
}

// Destroy tears the widget down. Safe before Construct and when repeated.
func (c *Context) Destroy() {
	if c.w == nil {
		return
	}
	c.w.Destroy()
	c.w, c.surface = nil, nil
}

// Widget returns the live widget, or nil.
func (c *Context) Widget() *widget.Widget {
	return c.w
}

// RegisterMenuButton adds a menu entry. It may be called before the widget
// exists and while its menu is open.
func (c *Context) RegisterMenuButton(e widget.MenuEntry) {
	c.Registry.Register(e)
}

// Dispatch routes a pointer event to the widget, if there is one.
func (c *Context) Dispatch(ev widget.Event) widget.Result {
	if c.w == nil {
		return widget.Result{}
	}
	return c.w.Handle(ev)
}

// ToggleLock is the keyboard form of the secondary activation.
func (c *Context) ToggleLock() widget.Result {
	if c.w == nil {
		return widget.Result{}
	}
	return c.w.ToggleLock()
}

// Recenter moves the anchor to the middle of the surface.
func (c *Context) Recenter() widget.Result {
	if c.w == nil || c.surface == nil {
		return widget.Result{}
	}
	width, height := c.surface.Size()
	l := c.opts.Layout
	if l == (widget.Layout{}) {
		l = widget.DefaultLayout()
	}
	return c.w.MoveTo(widget.Position{
		X: float64((width - l.AnchorWidth) / 2),
		Y: float64((height - l.AnchorHeight) / 2),
	})
}

// Queue hands writes to the persistence worker and returns at once. Batches
// reach the store in the order Queue was called; the channel yields the
// batch's outcome. Failures never undo the in-memory state.
func (c *Context) Queue(ctx context.Context, writes []widget.Write) <-chan error {
	if c.opts.Store == nil || len(writes) == 0 {
		done := make(chan error, 1)
		done <- nil
		return done
	}
	return c.Do(ctx, func(ctx context.Context) error { return c.save(ctx, writes) })
}

// Do runs fn on the persistence worker, after everything queued before it.
func (c *Context) Do(ctx context.Context, fn func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		done <- ErrClosed
		return done
	}
	if !c.running {
		c.running = true
		go c.saveLoop()
	}
	c.saves <- saveJob{ctx: ctx, run: fn, done: done}
	return done
}

// Persist queues writes and waits for them.
func (c *Context) Persist(ctx context.Context, writes []widget.Write) error {
	return <-c.Queue(ctx, writes)
}

// Close stops the worker after it has saved everything already queued.
func (c *Context) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.saves)
	running := c.running
	c.mu.Unlock()
	if running {
		<-c.drained
	}
}

func (c *Context) saveLoop() {
	defer close(c.drained)
	for job := range c.saves {
		job.done <- job.run(job.ctx)
	}
}

func (c *Context) save(ctx context.Context, writes []widget.Write) error {
	var errs []error
	for _, wr := range writes {
		if err := c.opts.Store.Set(ctx, widget.Namespace, wr.Key, wr.Value); err != nil {
			c.log.Printf("save %s: %v", wr.Key, err)
			errs = append(errs, fmt.Errorf("save %s: %w", wr.Key, err))
		}
	}
	return errors.Join(errs...)
}
