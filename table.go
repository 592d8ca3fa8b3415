package opts

import "strings"

// Table is the static list of declared options for one scope kind. Order is
// significant: enumeration of declared options follows table order.
type Table []OptionSpec

// MatchStatus is the outcome of resolving a name against a Table.
type MatchStatus int

const (
	// MatchUnknown means no spec equals or starts with the name.
	MatchUnknown MatchStatus = iota
	// MatchExact means the name resolved to a single spec, either by exact
	// equality or as an unambiguous prefix.
	MatchExact
	// MatchAmbiguous means the name is a prefix of two or more specs and
	// equals none of them.
	MatchAmbiguous
)

func (s MatchStatus) String() string {
	switch s {
	case MatchExact:
		return "exact"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Match holds the resolution of a name against a table.
type Match struct {
	Status     MatchStatus
	Spec       OptionSpec
	Candidates []string
}

// Match resolves name by exact equality first, then by unique prefix.
// Comparison is case sensitive.
func (t Table) Match(name string) Match {
	if name == "" {
		return Match{Status: MatchUnknown}
	}

	var (
		found      OptionSpec
		candidates []string
	)
	for _, spec := range t {
		if spec.Name == name {
			return Match{Status: MatchExact, Spec: spec, Candidates: []string{spec.Name}}
		}
		if strings.HasPrefix(spec.Name, name) {
			if len(candidates) == 0 {
				found = spec
			}
			candidates = append(candidates, spec.Name)
		}
	}

	switch len(candidates) {
	case 0:
		return Match{Status: MatchUnknown}
	case 1:
		return Match{Status: MatchExact, Spec: found, Candidates: candidates}
	default:
		return Match{Status: MatchAmbiguous, Candidates: candidates}
	}
}

// Lookup returns the spec whose name equals name exactly.
func (t Table) Lookup(name string) (OptionSpec, bool) {
	for _, spec := range t {
		if spec.Name == name {
			return spec, true
		}
	}
	return OptionSpec{}, false
}

// Names returns the option names in table order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, spec := range t {
		names = append(names, spec.Name)
	}
	return names
}

// Tables groups the declared option tables of every scope kind.
type Tables struct {
	Server  Table
	Session Table
	Window  Table
}

// For returns the table associated with kind.
func (t Tables) For(kind ScopeKind) Table {
	switch kind {
	case ScopeServer:
		return t.Server
	case ScopeWindow:
		return t.Window
	default:
		return t.Session
	}
}
