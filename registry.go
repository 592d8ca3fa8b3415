package opts

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"sync"
)

// Registry is an ordered mapping from option name to Entry. Enumeration is
// lexical by name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	names   []string
}

// NewRegistry constructs a registry holding entries.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		r.Set(entry.Name, entry.Value)
	}
	return r
}

// Set stores value under name, replacing any previous entry.
func (r *Registry) Set(name string, value Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	if _, exists := r.entries[name]; !exists {
		idx := sort.SearchStrings(r.names, name)
		r.names = slices.Insert(r.names, idx, name)
	}
	r.entries[name] = Entry{Name: name, Value: value}
}

// Get returns the entry stored under name. Lookup is exact.
func (r *Registry) Get(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	return entry, ok
}

// Len returns the number of stored entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Entries returns a snapshot of all entries ordered by name.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.entries[name])
	}
	return out
}

// All iterates a snapshot of the entries in name order.
func (r *Registry) All() iter.Seq[Entry] {
	entries := r.Entries()
	return func(yield func(Entry) bool) {
		for _, entry := range entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// UserDefined returns the user-defined entries ordered by name.
func (r *Registry) UserDefined() []Entry {
	var out []Entry
	for entry := range r.All() {
		if entry.UserDefined() {
			out = append(out, entry)
		}
	}
	return out
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return NewRegistry(r.Entries()...)
}

// ErrUndeclaredOption indicates a declared entry has no spec in the table
// associated with its registry.
var ErrUndeclaredOption = errors.New("opts: option not declared in table")

// ValidateRegistry checks that every declared entry in reg names a spec in
// table. User-defined entries are not checked.
func ValidateRegistry(reg *Registry, table Table) error {
	var errs []error
	for entry := range reg.All() {
		if entry.UserDefined() {
			continue
		}
		if _, ok := table.Lookup(entry.Name); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUndeclaredOption, entry.Name))
		}
	}
	return errors.Join(errs...)
}

// DefaultRegistry returns a registry holding the declared default of every
// spec in table.
func DefaultRegistry(table Table) *Registry {
	reg := NewRegistry()
	for _, spec := range table {
		reg.Set(spec.Name, spec.Default)
	}
	return reg
}
