package hydrate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	opts "github.com/goliatone/go-muxopts"
)

// ErrInvalidValue is returned when a document value cannot be converted to
// the type its option declares.
var ErrInvalidValue = errors.New("hydrate: invalid value")

// Context identifies the registry being decoded in error messages.
type Context struct {
	Scope string
}

// PreHook lets callers mutate or normalise the payload before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the decoded registry.
type PostHook func(Context, *opts.Registry) error

// DecoderOption configures a Decoder instance.
type DecoderOption func(*Decoder)

// Decoder converts decoded configuration maps into typed option registries.
type Decoder struct {
	table     opts.Table
	preHooks  []PreHook
	postHooks []PostHook
	lenient   bool
}

// WithPreHook applies hook prior to decoding.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook(hook PostHook) DecoderOption {
	return func(d *Decoder) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithSkipUnknown drops names the table does not declare instead of failing.
func WithSkipUnknown() DecoderOption {
	return func(d *Decoder) {
		d.lenient = true
	}
}

// NewDecoder constructs a Decoder validating declared names against table.
func NewDecoder(table opts.Table, options ...DecoderOption) *Decoder {
	d := &Decoder{table: table}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into a registry. Names starting with "@" are
// stored as user-defined strings; every other name must match a table entry
// exactly and its value must fit the declared type.
func (d *Decoder) Decode(ctx Context, payload map[string]any) (*opts.Registry, error) {
	current := make(map[string]any, len(payload))
	for key, value := range payload {
		current[key] = value
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre-hook for %s failed: %w", ctx.Scope, err)
		}
		if next != nil {
			current = next
		}
	}

	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := opts.NewRegistry()
	var errs []error
	for _, name := range names {
		raw := current[name]
		if opts.IsUserOption(name) {
			reg.Set(name, opts.StringValue(scalarText(raw)))
			continue
		}
		spec, ok := d.table.Lookup(name)
		if !ok {
			if !d.lenient {
				errs = append(errs, fmt.Errorf("%w: %s", opts.ErrUnknownOption, name))
			}
			continue
		}
		value, err := Convert(spec, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reg.Set(name, value)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("hydrate: decode %s: %w", ctx.Scope, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, reg); err != nil {
			return nil, fmt.Errorf("hydrate: post-hook for %s failed: %w", ctx.Scope, err)
		}
	}
	return reg, nil
}

// Convert turns a decoded document value into the Value stored for spec.
func Convert(spec opts.OptionSpec, raw any) (opts.Value, error) {
	invalid := func(reason string) (opts.Value, error) {
		return opts.Value{}, fmt.Errorf("%w: %s: %s", ErrInvalidValue, spec.Name, reason)
	}

	switch spec.Type {
	case opts.TypeString:
		if raw == nil {
			return invalid("missing value")
		}
		return opts.StringValue(scalarText(raw)), nil
	case opts.TypeNumber:
		n, ok := integer(raw)
		if !ok {
			return invalid(fmt.Sprintf("expected a number, got %v", raw))
		}
		if spec.HasRange() && (n < spec.Minimum || n > spec.Maximum) {
			return invalid(fmt.Sprintf("%d is outside %d..%d", n, spec.Minimum, spec.Maximum))
		}
		return opts.NumberValue(n), nil
	case opts.TypeFlag:
		switch typed := raw.(type) {
		case bool:
			return opts.FlagValue(typed), nil
		case string:
			switch strings.ToLower(typed) {
			case "on", "yes", "true", "1":
				return opts.FlagValue(true), nil
			case "off", "no", "false", "0":
				return opts.FlagValue(false), nil
			}
		}
		if n, ok := integer(raw); ok && (n == 0 || n == 1) {
			return opts.FlagValue(n == 1), nil
		}
		return invalid(fmt.Sprintf("expected on or off, got %v", raw))
	case opts.TypeChoice:
		if text, ok := raw.(string); ok {
			for index, choice := range spec.Choices {
				if choice == text {
					return opts.NumberValue(int64(index)), nil
				}
			}
		}
		if n, ok := integer(raw); ok && n >= 0 && n < int64(len(spec.Choices)) {
			return opts.NumberValue(n), nil
		}
		return invalid(fmt.Sprintf("expected one of %s, got %v", strings.Join(spec.Choices, ", "), raw))
	case opts.TypeKey:
		if text, ok := raw.(string); ok {
			if code, ok := opts.KeyCode(text); ok {
				return opts.NumberValue(code), nil
			}
		}
		return invalid(fmt.Sprintf("unknown key %v", raw))
	case opts.TypeColour:
		if text, ok := raw.(string); ok {
			if code, ok := opts.ColourCode(text); ok {
				return opts.NumberValue(code), nil
			}
		}
		if n, ok := integer(raw); ok && n >= 0 && n <= 255 {
			return opts.NumberValue(n | opts.Colour256), nil
		}
		return invalid(fmt.Sprintf("unknown colour %v", raw))
	default:
		return invalid("unsupported option type")
	}
}

func integer(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case int:
		return int64(typed), true
	case int8:
		return int64(typed), true
	case int16:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint:
		return int64(typed), typed <= math.MaxInt64
	case uint8:
		return int64(typed), true
	case uint16:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	case uint64:
		return int64(typed), typed <= math.MaxInt64
	case float64:
		if typed != math.Trunc(typed) || math.Abs(typed) > math.MaxInt64 {
			return 0, false
		}
		return int64(typed), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func scalarText(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "on"
		}
		return "off"
	default:
		return fmt.Sprint(typed)
	}
}
