package opts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func loadFixture[T any](t *testing.T, name string) T {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("unable to resolve caller for fixture %q", name)
	}
	path := filepath.Join(filepath.Dir(file), "testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %q: %v", path, err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("failed to unmarshal fixture %q: %v", path, err)
	}
	return out
}

// fakeFinder resolves targets from fixed maps. Empty names resolve to the
// configured current session or window.
type fakeFinder struct {
	sessions       map[string]*Registry
	windows        map[string]*Registry
	currentSession string
	currentWindow  string
}

func (f fakeFinder) FindSession(name string) (Target, error) {
	if name == "" {
		name = f.currentSession
		if name == "" {
			return Target{}, ErrTargetNotFound
		}
	}
	reg, ok := f.sessions[name]
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
	}
	return Target{Name: name, Options: reg}, nil
}

func (f fakeFinder) FindWindow(name string) (Target, error) {
	if name == "" {
		name = f.currentWindow
		if name == "" {
			return Target{}, ErrTargetNotFound
		}
	}
	reg, ok := f.windows[name]
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
	}
	return Target{Name: name, Options: reg}, nil
}

// testEnvironment mirrors a small running server: global registries seeded
// from table defaults plus one session and one window holding overrides.
func testEnvironment() Environment {
	tables := DefaultTables()

	globalSession := DefaultRegistry(tables.Session)
	globalSession.Set("status-bg", NumberValue(colourBlue))
	globalSession.Set("@theme", StringValue("dark"))

	main := NewRegistry(
		Entry{Name: "status", Value: FlagValue(false)},
		Entry{Name: "@project", Value: StringValue("muxopts")},
	)
	editor := NewRegistry(Entry{Name: "mode-keys", Value: NumberValue(1)})

	return Environment{
		Globals: Globals{
			Server:  DefaultRegistry(tables.Server),
			Session: globalSession,
			Window:  DefaultRegistry(tables.Window),
		},
		Tables: tables,
		Targets: fakeFinder{
			sessions:       map[string]*Registry{"main": main, "work": NewRegistry()},
			windows:        map[string]*Registry{"main:0": editor},
			currentSession: "main",
			currentWindow:  "main:0",
		},
	}
}

type capturingEvaluator struct {
	contexts []RuleContext
	result   any
}

func (c *capturingEvaluator) Evaluate(ctx RuleContext, _ string) (any, error) {
	c.contexts = append(c.contexts, ctx)
	return c.result, nil
}

func (c *capturingEvaluator) Compile(string, ...CompileOption) (CompiledRule, error) {
	return capturedRule{c}, nil
}

type capturedRule struct {
	evaluator *capturingEvaluator
}

func (r capturedRule) Evaluate(ctx RuleContext) (any, error) {
	return r.evaluator.Evaluate(ctx, "")
}
