package state

import (
	"context"
	"errors"
	"fmt"

	opts "github.com/goliatone/go-muxopts"
)

// ErrInvalidRef is returned when a Ref cannot be turned into a storage key.
var ErrInvalidRef = errors.New("state: invalid ref")

// Ref identifies one stored registry.
type Ref struct {
	Kind   opts.ScopeKind
	Global bool
	// Target names the session ("main") or window ("main:1") for concrete
	// refs. It is ignored for server and global refs.
	Target string
}

// ServerRef addresses the server options registry.
func ServerRef() Ref { return Ref{Kind: opts.ScopeServer} }

// DefaultsRef addresses the global defaults registry for kind.
func DefaultsRef(kind opts.ScopeKind) Ref { return Ref{Kind: kind, Global: true} }

// SessionRef addresses the registry of one session.
func SessionRef(name string) Ref { return Ref{Kind: opts.ScopeSession, Target: name} }

// WindowRef addresses the registry of one window of session.
func WindowRef(session string, index int) Ref {
	return Ref{Kind: opts.ScopeWindow, Target: fmt.Sprintf("%s:%d", session, index)}
}

// Identifier returns the storage key for r.
func (r Ref) Identifier() (string, error) {
	switch {
	case r.Kind == opts.ScopeServer:
		return "server", nil
	case r.Kind != opts.ScopeSession && r.Kind != opts.ScopeWindow:
		return "", fmt.Errorf("%w: unsupported scope kind %d", ErrInvalidRef, int(r.Kind))
	case r.Global:
		return r.Kind.String() + "-defaults", nil
	case r.Target == "":
		return "", fmt.Errorf("%w: %s ref requires a target", ErrInvalidRef, r.Kind)
	default:
		return r.Kind.String() + "/" + r.Target, nil
	}
}

// Store loads and saves one registry for a single Ref. Load reports ok=false
// when nothing was saved under ref.
type Store interface {
	Load(ctx context.Context, ref Ref) (reg *opts.Registry, ok bool, err error)
	Save(ctx context.Context, ref Ref, reg *opts.Registry) error
}
