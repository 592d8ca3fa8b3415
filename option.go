package opts

import (
	"strconv"
	"strings"
)

// UserPrefix marks user-defined option names.
const UserPrefix = "@"

// OptionType identifies how a declared option stores and renders its value.
type OptionType int

const (
	TypeString OptionType = iota
	TypeNumber
	TypeKey
	TypeColour
	TypeFlag
	TypeChoice
)

func (t OptionType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeKey:
		return "key"
	case TypeColour:
		return "colour"
	case TypeFlag:
		return "flag"
	case TypeChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// ParseOptionType converts a type name into an OptionType. The second return
// value is false for unrecognised names.
func ParseOptionType(value string) (OptionType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "string":
		return TypeString, true
	case "number":
		return TypeNumber, true
	case "key":
		return TypeKey, true
	case "colour", "color":
		return TypeColour, true
	case "flag":
		return TypeFlag, true
	case "choice":
		return TypeChoice, true
	default:
		return TypeString, false
	}
}

// ValueKind tags the representation held by a Value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueFlag
)

// Value is the stored form of an option: a string, a number or a flag.
type Value struct {
	Kind ValueKind
	Str  string
	Num  int64
	Flag bool
}

// StringValue wraps s as a Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// NumberValue wraps n as a Value.
func NumberValue(n int64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// FlagValue wraps b as a Value.
func FlagValue(b bool) Value {
	return Value{Kind: ValueFlag, Flag: b}
}

// Text returns the natural textual form of v, ignoring any declared type.
func (v Value) Text() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatInt(v.Num, 10)
	case ValueFlag:
		return flagText(v.Flag)
	default:
		return v.Str
	}
}

// Native returns v as a plain Go value (string, int64 or bool).
func (v Value) Native() any {
	switch v.Kind {
	case ValueNumber:
		return v.Num
	case ValueFlag:
		return v.Flag
	default:
		return v.Str
	}
}

// OptionSpec describes one declared option.
type OptionSpec struct {
	Name    string
	Type    OptionType
	Choices []string
	Minimum int64
	Maximum int64
	Default Value
}

// HasRange reports whether numeric bounds were declared.
func (s OptionSpec) HasRange() bool {
	return s.Minimum != 0 || s.Maximum != 0
}

// Entry is a stored option. Entries named with a leading "@" are
// user-defined; all others are declared.
type Entry struct {
	Name  string
	Value Value
}

// UserDefined reports whether the entry is a user-defined option.
func (e Entry) UserDefined() bool {
	return IsUserOption(e.Name)
}

// IsUserOption reports whether name identifies a user-defined option.
func IsUserOption(name string) bool {
	return strings.HasPrefix(name, UserPrefix)
}
