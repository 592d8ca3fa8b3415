package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	opts "github.com/goliatone/go-muxopts"
)

var (
	// ErrDuplicateSession is returned when a session name is already in use.
	ErrDuplicateSession = errors.New("state: duplicate session")
	// ErrDuplicateWindow is returned when a window index is already in use.
	ErrDuplicateWindow = errors.New("state: duplicate window")
)

type window struct {
	index int
	name  string
}

type session struct {
	name    string
	windows []window
	current int
}

func (s *session) find(target string) (window, bool) {
	if target == "" {
		for _, w := range s.windows {
			if w.index == s.current {
				return w, true
			}
		}
		return window{}, false
	}
	if index, err := strconv.Atoi(target); err == nil {
		for _, w := range s.windows {
			if w.index == index {
				return w, true
			}
		}
	}
	for _, w := range s.windows {
		if w.name == target {
			return w, true
		}
	}
	return window{}, false
}

// Host models the sessions and windows of a running server and resolves
// targets to registries held in a Store. It is safe for concurrent use.
type Host struct {
	store Store

	mu       sync.RWMutex
	sessions map[string]*session
	order    []string
	current  string
}

// NewHost constructs a Host backed by store. A nil store is replaced by an
// empty MemoryStore.
func NewHost(store Store) *Host {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Host{
		store:    store,
		sessions: map[string]*session{},
	}
}

// Store returns the backing store.
func (h *Host) Store() Store {
	return h.store
}

// AddSession registers a session. The first session added becomes current.
func (h *Host) AddSession(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("state: invalid session name %q", name)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.sessions[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, name)
	}
	h.sessions[name] = &session{name: name, current: -1}
	h.order = append(h.order, name)
	if h.current == "" {
		h.current = name
	}
	return nil
}

// AddWindow registers window index of sessionName. The first window of a
// session becomes its current window.
func (h *Host) AddWindow(sessionName string, index int, name string) error {
	if index < 0 {
		return fmt.Errorf("state: invalid window index %d", index)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[sessionName]
	if !ok {
		return fmt.Errorf("%w: session %s", opts.ErrTargetNotFound, sessionName)
	}
	for _, w := range s.windows {
		if w.index == index {
			return fmt.Errorf("%w: %s:%d", ErrDuplicateWindow, sessionName, index)
		}
	}
	s.windows = append(s.windows, window{index: index, name: name})
	sort.Slice(s.windows, func(i, j int) bool { return s.windows[i].index < s.windows[j].index })
	if s.current < 0 {
		s.current = index
	}
	return nil
}

// SetCurrent makes sessionName the current session and windowIndex its
// current window.
func (h *Host) SetCurrent(sessionName string, windowIndex int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[sessionName]
	if !ok {
		return fmt.Errorf("%w: session %s", opts.ErrTargetNotFound, sessionName)
	}
	if _, ok := s.find(strconv.Itoa(windowIndex)); !ok {
		return fmt.Errorf("%w: window %s:%d", opts.ErrTargetNotFound, sessionName, windowIndex)
	}
	h.current = sessionName
	s.current = windowIndex
	return nil
}

// Sessions returns the session names in the order they were added.
func (h *Host) Sessions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// FindSession implements opts.TargetFinder using a background context.
func (h *Host) FindSession(name string) (opts.Target, error) {
	return h.Finder(context.Background()).FindSession(name)
}

// FindWindow implements opts.TargetFinder using a background context.
func (h *Host) FindWindow(name string) (opts.Target, error) {
	return h.Finder(context.Background()).FindWindow(name)
}

// Finder returns a TargetFinder whose store calls use ctx.
func (h *Host) Finder(ctx context.Context) opts.TargetFinder {
	return hostFinder{host: h, ctx: ctx}
}

// Environment assembles an opts.Environment whose globals are loaded from the
// store and whose targets resolve through h.
func (h *Host) Environment(ctx context.Context, tables opts.Tables) (opts.Environment, error) {
	server, err := h.load(ctx, ServerRef())
	if err != nil {
		return opts.Environment{}, err
	}
	sessionDefaults, err := h.load(ctx, DefaultsRef(opts.ScopeSession))
	if err != nil {
		return opts.Environment{}, err
	}
	windowDefaults, err := h.load(ctx, DefaultsRef(opts.ScopeWindow))
	if err != nil {
		return opts.Environment{}, err
	}
	return opts.Environment{
		Globals: opts.Globals{
			Server:  server,
			Session: sessionDefaults,
			Window:  windowDefaults,
		},
		Tables:  tables,
		Targets: h.Finder(ctx),
	}, nil
}

func (h *Host) load(ctx context.Context, ref Ref) (*opts.Registry, error) {
	reg, ok, err := h.store.Load(ctx, ref)
	if err != nil {
		id, _ := ref.Identifier()
		return nil, fmt.Errorf("state: load %s: %w", id, err)
	}
	if !ok || reg == nil {
		return opts.NewRegistry(), nil
	}
	return reg, nil
}

func (h *Host) lookupSession(name string) (*session, error) {
	if name == "" {
		name = h.current
		if name == "" {
			return nil, fmt.Errorf("%w: no current session", opts.ErrTargetNotFound)
		}
	}
	s, ok := h.sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", opts.ErrTargetNotFound, name)
	}
	return s, nil
}

type hostFinder struct {
	host *Host
	ctx  context.Context
}

func (f hostFinder) FindSession(name string) (opts.Target, error) {
	f.host.mu.RLock()
	s, err := f.host.lookupSession(name)
	f.host.mu.RUnlock()
	if err != nil {
		return opts.Target{}, err
	}
	reg, err := f.host.load(f.ctx, SessionRef(s.name))
	if err != nil {
		return opts.Target{}, err
	}
	return opts.Target{Name: s.name, Options: reg}, nil
}

// FindWindow accepts "" (current window of the current session),
// "session:window", "session:" (current window of session) and "window"
// (window of the current session). Windows match by index, then by name.
func (f hostFinder) FindWindow(target string) (opts.Target, error) {
	sessionName, windowName, found := strings.Cut(target, ":")
	if !found {
		sessionName, windowName = "", target
	}

	f.host.mu.RLock()
	s, err := f.host.lookupSession(sessionName)
	var (
		w  window
		ok bool
	)
	if err == nil {
		w, ok = s.find(windowName)
	}
	f.host.mu.RUnlock()
	if err != nil {
		return opts.Target{}, err
	}
	if !ok {
		if windowName == "" {
			return opts.Target{}, fmt.Errorf("%w: session %s has no windows", opts.ErrTargetNotFound, s.name)
		}
		return opts.Target{}, fmt.Errorf("%w: window %s", opts.ErrTargetNotFound, target)
	}

	ref := WindowRef(s.name, w.index)
	reg, err := f.host.load(f.ctx, ref)
	if err != nil {
		return opts.Target{}, err
	}
	return opts.Target{Name: ref.Target, Options: reg}, nil
}
