package widget

import (
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// MenuEntry is one contributed menu row. Label is optional.
type MenuEntry struct {
	Icon    string
	Label   string
	OnClick func()
}

// Registry is the append-only list of menu entries. It outlives any widget
// built from it and may be written from other goroutines.
type Registry struct {
	mu       sync.Mutex
	entries  []MenuEntry
	version  uint64
	watchers map[int]func()
	nextID   int
}

func NewRegistry() *Registry {
	return &Registry{watchers: map[int]func(){}}
}

// Register appends e. Watchers are called after the entry is visible.
func (r *Registry) Register(e MenuEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.version++
	watchers := make([]func(), 0, len(r.watchers))
	for _, fn := range r.watchers {
		watchers = append(watchers, fn)
	}
	r.mu.Unlock()

	for _, fn := range watchers {
		fn()
	}
}

// Entries returns a copy of the entries in registration order.
func (r *Registry) Entries() []MenuEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MenuEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) snapshot() ([]MenuEntry, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MenuEntry, len(r.entries))
	copy(out, r.entries)
	return out, r.version
}

// Version increases on every registration.
func (r *Registry) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Subscribe calls fn after every registration until the returned cancel
// func is called.
func (r *Registry) Subscribe(fn func()) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.watchers[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

// closest returns the index of the entry whose label best matches query.
// A label starting with the query always wins; otherwise the smallest edit
// distance does, ties going to the earlier entry.
func closest(entries []MenuEntry, query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(entries) == 0 {
		return 0, false
	}
	best, bestScore := -1, 0
	for i, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.Label))
		if name == "" {
			name = e.Icon
		}
		score := levenshtein.ComputeDistance(q, name)
		if strings.HasPrefix(name, q) {
			score = 0
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

// Closest is the registry-wide form of the label lookup.
func (r *Registry) Closest(query string) (int, bool) {
	return closest(r.Entries(), query)
}
