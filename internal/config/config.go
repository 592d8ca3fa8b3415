// Package config loads muxopts configuration files and builds the state the
// engine resolves against.
package config

import (
	"context"
	"fmt"
	"sort"

	opts "github.com/goliatone/go-muxopts"
	"github.com/goliatone/go-muxopts/internal/hydrate"
	"github.com/goliatone/go-muxopts/pkg/state"
)

// EnvConfigPath names the environment variable holding the default config
// file path.
const EnvConfigPath = "MUXOPTS_CONFIG"

// Document is the merged configuration: global option values plus the
// session and window topology with per-target overrides.
type Document struct {
	Server          map[string]any             `yaml:"server" toml:"server"`
	SessionDefaults map[string]any             `yaml:"session-defaults" toml:"session-defaults"`
	WindowDefaults  map[string]any             `yaml:"window-defaults" toml:"window-defaults"`
	Sessions        map[string]SessionDocument `yaml:"sessions" toml:"sessions"`
	Current         CurrentDocument            `yaml:"current" toml:"current"`
}

// SessionDocument describes one session.
type SessionDocument struct {
	Options map[string]any   `yaml:"options" toml:"options"`
	Windows []WindowDocument `yaml:"windows" toml:"windows"`
}

// WindowDocument describes one window of a session.
type WindowDocument struct {
	Index   int            `yaml:"index" toml:"index"`
	Name    string         `yaml:"name" toml:"name"`
	Options map[string]any `yaml:"options" toml:"options"`
}

// CurrentDocument selects the current session and window. A nil Window keeps
// the session's first window.
type CurrentDocument struct {
	Session string `yaml:"session" toml:"session"`
	Window  *int   `yaml:"window" toml:"window"`
}

// Default returns the document used when no configuration file is given: a
// single session "main" with one window.
func Default() Document {
	return Document{
		Sessions: map[string]SessionDocument{
			"main": {Windows: []WindowDocument{{Index: 0, Name: "shell"}}},
		},
	}
}

// Build stores the registries described by doc in store and returns a Host
// exposing the topology. Global registries start from the table defaults.
// Sessions are added in name order, so without an explicit current session
// the lexically first one is current.
func Build(ctx context.Context, doc Document, tables opts.Tables, store state.Store) (*state.Host, error) {
	host := state.NewHost(store)
	store = host.Store()

	globals := []struct {
		ref     state.Ref
		table   opts.Table
		payload map[string]any
	}{
		{state.ServerRef(), tables.Server, doc.Server},
		{state.DefaultsRef(opts.ScopeSession), tables.Session, doc.SessionDefaults},
		{state.DefaultsRef(opts.ScopeWindow), tables.Window, doc.WindowDefaults},
	}
	for _, global := range globals {
		id, _ := global.ref.Identifier()
		reg, err := hydrate.NewDecoder(global.table,
			hydrate.WithPostHook(withTableDefaults(global.table)),
		).Decode(hydrate.Context{Scope: id}, global.payload)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := store.Save(ctx, global.ref, reg); err != nil {
			return nil, fmt.Errorf("config: save %s: %w", id, err)
		}
	}

	names := make([]string, 0, len(doc.Sessions))
	for name := range doc.Sessions {
		names = append(names, name)
	}
	sort.Strings(names)

	sessionDecoder := hydrate.NewDecoder(tables.Session)
	windowDecoder := hydrate.NewDecoder(tables.Window)
	for _, name := range names {
		session := doc.Sessions[name]
		if err := host.AddSession(name); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := decodeAndSave(ctx, store, sessionDecoder, state.SessionRef(name), session.Options); err != nil {
			return nil, err
		}
		for _, window := range session.Windows {
			if err := host.AddWindow(name, window.Index, window.Name); err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			ref := state.WindowRef(name, window.Index)
			if err := decodeAndSave(ctx, store, windowDecoder, ref, window.Options); err != nil {
				return nil, err
			}
		}
	}

	if doc.Current.Session != "" {
		if err := setCurrent(host, doc); err != nil {
			return nil, err
		}
	}
	return host, nil
}

func setCurrent(host *state.Host, doc Document) error {
	session, ok := doc.Sessions[doc.Current.Session]
	if !ok {
		return fmt.Errorf("config: current session %q is not declared", doc.Current.Session)
	}
	index := -1
	switch {
	case doc.Current.Window != nil:
		index = *doc.Current.Window
	case len(session.Windows) > 0:
		index = session.Windows[0].Index
		for _, window := range session.Windows {
			index = min(index, window.Index)
		}
	default:
		return fmt.Errorf("config: current session %q has no windows", doc.Current.Session)
	}
	if err := host.SetCurrent(doc.Current.Session, index); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func decodeAndSave(ctx context.Context, store state.Store, decoder *hydrate.Decoder, ref state.Ref, payload map[string]any) error {
	id, err := ref.Identifier()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	reg, err := decoder.Decode(hydrate.Context{Scope: id}, payload)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := store.Save(ctx, ref, reg); err != nil {
		return fmt.Errorf("config: save %s: %w", id, err)
	}
	return nil
}

// withTableDefaults fills every option the document leaves unset with its
// declared default, so global registries list every option.
func withTableDefaults(table opts.Table) hydrate.PostHook {
	return func(_ hydrate.Context, reg *opts.Registry) error {
		for entry := range opts.DefaultRegistry(table).All() {
			if _, ok := reg.Get(entry.Name); !ok {
				reg.Set(entry.Name, entry.Value)
			}
		}
		return nil
	}
}
