package opts

import (
	"errors"
	"fmt"
	"strings"
)

// ScopeKind identifies which family of options a request addresses.
type ScopeKind int

const (
	// ScopeSession addresses per-session options. It is the zero value so
	// requests without an explicit kind resolve to session scope.
	ScopeSession ScopeKind = iota
	// ScopeServer addresses the process-wide server options.
	ScopeServer
	// ScopeWindow addresses per-window options.
	ScopeWindow
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeServer:
		return "server"
	case ScopeWindow:
		return "window"
	default:
		return "session"
	}
}

// ParseScopeKind converts a string representation into a ScopeKind. The
// second return value is false for unrecognised values.
func ParseScopeKind(value string) (ScopeKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "server", "s":
		return ScopeServer, true
	case "session", "":
		return ScopeSession, true
	case "window", "w":
		return ScopeWindow, true
	default:
		return ScopeSession, false
	}
}

// Scope describes a resolved scope for logging, filter bindings and activity
// metadata.
type Scope struct {
	Name     string
	Label    string
	Global   bool
	Target   string
	Metadata map[string]any
}

func (s Scope) isZero() bool {
	return s.Name == "" && s.Label == "" && !s.Global && s.Target == "" && len(s.Metadata) == 0
}

// Identifier returns a stable slug naming the registry a scope points at
// (e.g. "session/main", "window-defaults", "server").
func (s Scope) Identifier() string {
	switch {
	case s.Name == ScopeServer.String():
		return "server"
	case s.Global:
		return s.Name + "-defaults"
	case s.Target == "":
		return s.Name + "/current"
	default:
		return s.Name + "/" + s.Target
	}
}

// Target is a session or window located by a TargetFinder.
type Target struct {
	Name    string
	Options *Registry
}

// TargetFinder locates sessions and windows by name. An empty name refers to
// the current session or window. Implementations return an error wrapping
// ErrTargetNotFound when nothing matches; any other error is reported as an
// internal failure.
type TargetFinder interface {
	FindSession(name string) (Target, error)
	FindWindow(name string) (Target, error)
}

// Globals holds the process-wide registries: server options and the session
// and window defaults.
type Globals struct {
	Server  *Registry
	Session *Registry
	Window  *Registry
}

// Environment bundles the collaborators a request resolves against.
type Environment struct {
	Globals Globals
	Tables  Tables
	Targets TargetFinder
}

// ScopeRequest is the scope part of a show request.
type ScopeRequest struct {
	Kind   ScopeKind
	Global bool
	Target string
}

// ScopeSelection is the registry and table chosen for one request.
type ScopeSelection struct {
	Kind     ScopeKind
	Global   bool
	Target   string
	Registry *Registry
	Table    Table
}

// Scope returns the descriptor of the selection.
func (s ScopeSelection) Scope() Scope {
	scope := Scope{
		Name:   s.Kind.String(),
		Label:  scopeLabel(s.Kind, s.Global),
		Global: s.Global,
		Target: s.Target,
	}
	return scope
}

func scopeLabel(kind ScopeKind, global bool) string {
	switch {
	case kind == ScopeServer:
		return "Server"
	case global && kind == ScopeWindow:
		return "Global Window Defaults"
	case global:
		return "Global Session Defaults"
	case kind == ScopeWindow:
		return "Window"
	default:
		return "Session"
	}
}

// ResolveScope selects the registry and table addressed by req. Server scope
// ignores Global and Target; Global ignores Target.
func ResolveScope(req ScopeRequest, env Environment) (ScopeSelection, error) {
	switch req.Kind {
	case ScopeServer:
		return ScopeSelection{
			Kind:     ScopeServer,
			Registry: orEmpty(env.Globals.Server),
			Table:    env.Tables.Server,
		}, nil
	case ScopeWindow:
		sel := ScopeSelection{Kind: ScopeWindow, Global: req.Global, Table: env.Tables.Window}
		if req.Global {
			sel.Registry = orEmpty(env.Globals.Window)
			return sel, nil
		}
		target, err := findTarget(env.Targets, ScopeWindow, req.Target)
		if err != nil {
			return ScopeSelection{}, err
		}
		sel.Target = target.Name
		sel.Registry = orEmpty(target.Options)
		return sel, nil
	default:
		sel := ScopeSelection{Kind: ScopeSession, Global: req.Global, Table: env.Tables.Session}
		if req.Global {
			sel.Registry = orEmpty(env.Globals.Session)
			return sel, nil
		}
		target, err := findTarget(env.Targets, ScopeSession, req.Target)
		if err != nil {
			return ScopeSelection{}, err
		}
		sel.Target = target.Name
		sel.Registry = orEmpty(target.Options)
		return sel, nil
	}
}

func findTarget(finder TargetFinder, kind ScopeKind, name string) (Target, error) {
	if finder == nil {
		return Target{}, &ShowError{Kind: ErrTargetNotFound, Scope: kind, Name: name,
			Err: fmt.Errorf("opts: no target finder configured")}
	}
	var (
		target Target
		err    error
	)
	if kind == ScopeWindow {
		target, err = finder.FindWindow(name)
	} else {
		target, err = finder.FindSession(name)
	}
	if err != nil {
		if !errors.Is(err, ErrTargetNotFound) {
			return Target{}, &ShowError{Scope: kind, Name: name, Err: err}
		}
		return Target{}, &ShowError{Kind: ErrTargetNotFound, Scope: kind, Name: name, Err: err}
	}
	return target, nil
}

func orEmpty(reg *Registry) *Registry {
	if reg == nil {
		return NewRegistry()
	}
	return reg
}
