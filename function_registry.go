package opts

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Function is a helper callable from filter expressions.
type Function func(args ...any) (any, error)

type namedFunction struct {
	name string
	fn   Function
}

// FunctionRegistry stores filter helpers. Lookups are case insensitive; the
// name given at registration is the one bound into each engine.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]namedFunction
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]namedFunction)}
}

// Register stores fn under name. Names must be identifiers and are unique
// regardless of case.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("opts: function %q is nil", name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("opts: function name %q is not an identifier", name)
	}
	key := strings.ToLower(name)
	if reservedFunctionName(key) {
		return fmt.Errorf("opts: function name %q is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]namedFunction)
	}
	if existing, ok := r.functions[key]; ok {
		return fmt.Errorf("opts: function %q already registered as %q", name, existing.name)
	}
	r.functions[key] = namedFunction{name: name, fn: fn}
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]namedFunction, len(r.functions))}
	for key, entry := range r.functions {
		clone.functions[key] = entry
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("opts: function registry is nil")
	}
	r.mu.RLock()
	entry, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("opts: function %q not registered", name)
	}
	return entry.fn(args...)
}

// Names returns the registered names, as given to Register, sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for _, entry := range r.functions {
		names = append(names, entry.name)
	}
	slices.Sort(names)
	return names
}

// WithFunctionRegistry configures the Engine to use registry for filter functions.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *engineConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for filter expressions. Invalid
// or duplicate names are ignored.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *engineConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// StandardFunctions returns a registry with the string helpers commonly
// needed when filtering option listings:
//
//	hasPrefix(s, prefix)  hasSuffix(s, suffix)  contains(s, sub)
//	oneOf(s, candidates...)
func StandardFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("hasPrefix", stringPredicate("hasPrefix", strings.HasPrefix))
	_ = registry.Register("hasSuffix", stringPredicate("hasSuffix", strings.HasSuffix))
	_ = registry.Register("contains", stringPredicate("contains", strings.Contains))
	_ = registry.Register("oneOf", func(args ...any) (any, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("oneOf: expected at least 1 argument")
		}
		subject := fmt.Sprint(args[0])
		for _, candidate := range flattenArgs(args[1:]) {
			if fmt.Sprint(candidate) == subject {
				return true, nil
			}
		}
		return false, nil
	})
	return registry
}

func stringPredicate(name string, predicate func(string, string) bool) Function {
	return func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		return predicate(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	}
}

// flattenArgs expands list arguments so oneOf(x, "a", "b") and
// oneOf(x, ["a", "b"]) behave the same.
func flattenArgs(args []any) []any {
	var out []any
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			out = append(out, list...)
			continue
		}
		out = append(out, arg)
	}
	return out
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// reservedFunctionName rejects names that would shadow filter variables or
// the "call" dispatcher.
func reservedFunctionName(key string) bool {
	switch key {
	case "call", "now", "args", "metadata", "scope",
		filterVarName, filterVarKind, filterVarValue, filterVarRaw, filterVarUser:
		return true
	}
	return false
}
