package hydrate

import (
	"errors"
	"testing"

	opts "github.com/goliatone/go-muxopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = opts.Table{
	{Name: "base-index", Type: opts.TypeNumber, Minimum: 0, Maximum: 10},
	{Name: "bell-action", Type: opts.TypeChoice, Choices: []string{"none", "any", "current"}},
	{Name: "default-shell", Type: opts.TypeString},
	{Name: "prefix", Type: opts.TypeKey},
	{Name: "status", Type: opts.TypeFlag},
	{Name: "status-bg", Type: opts.TypeColour},
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name   string
		option string
		raw    any
		want   opts.Value
	}{
		{"number from int", "base-index", 3, opts.NumberValue(3)},
		{"number from int64", "base-index", int64(4), opts.NumberValue(4)},
		{"number from integral float", "base-index", 5.0, opts.NumberValue(5)},
		{"number from string", "base-index", " 6 ", opts.NumberValue(6)},
		{"choice by name", "bell-action", "current", opts.NumberValue(2)},
		{"choice by index", "bell-action", 1, opts.NumberValue(1)},
		{"string", "default-shell", "/bin/zsh", opts.StringValue("/bin/zsh")},
		{"string from number", "default-shell", 42, opts.StringValue("42")},
		{"key control", "prefix", "C-b", opts.NumberValue(2)},
		{"key name", "prefix", "Space", opts.NumberValue(0x20)},
		{"key none", "prefix", "None", opts.NumberValue(-1)},
		{"flag bool", "status", true, opts.FlagValue(true)},
		{"flag word", "status", "off", opts.FlagValue(false)},
		{"flag number", "status", 1, opts.FlagValue(true)},
		{"colour name", "status-bg", "green", opts.NumberValue(2)},
		{"colour bright", "status-bg", "brightred", opts.NumberValue(91)},
		{"colour default", "status-bg", "default", opts.NumberValue(8)},
		{"colour palette", "status-bg", "colour123", opts.NumberValue(123 | opts.Colour256)},
		{"colour palette number", "status-bg", 200, opts.NumberValue(200 | opts.Colour256)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, ok := testTable.Lookup(tc.option)
			require.True(t, ok)
			got, err := Convert(spec, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		option string
		raw    any
	}{
		{"base-index", 11},
		{"base-index", 1.5},
		{"base-index", "many"},
		{"bell-action", "loud"},
		{"bell-action", 3},
		{"prefix", "C-1"},
		{"prefix", 2},
		{"status", "maybe"},
		{"status", 2},
		{"status-bg", "colour256"},
		{"status-bg", "mauve"},
		{"default-shell", nil},
	}
	for _, tc := range cases {
		spec, _ := testTable.Lookup(tc.option)
		_, err := Convert(spec, tc.raw)
		assert.ErrorIs(t, err, ErrInvalidValue, "%s=%v", tc.option, tc.raw)
	}
}

func TestConvertRoundTripsThroughFormatter(t *testing.T) {
	spec, _ := testTable.Lookup("status-bg")
	for _, name := range []string{"black", "white", "default", "brightcyan", "colour0", "colour255"} {
		value, err := Convert(spec, name)
		require.NoError(t, err)
		assert.Equal(t, name, opts.FormatValue(spec, value, true))
	}

	spec, _ = testTable.Lookup("prefix")
	for _, name := range []string{"C-a", "C-z", "Tab", "Enter", "Escape", "BSpace", "x", "~", "None"} {
		value, err := Convert(spec, name)
		require.NoError(t, err)
		assert.Equal(t, name, opts.FormatValue(spec, value, true))
	}
}

func TestDecoderDecode(t *testing.T) {
	decoder := NewDecoder(testTable)

	reg, err := decoder.Decode(Context{Scope: "session/main"}, map[string]any{
		"status":     false,
		"base-index": 1,
		"@theme":     "dark",
		"@count":     3,
		"@enabled":   true,
	})
	require.NoError(t, err)

	var names []string
	for entry := range reg.All() {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"@count", "@enabled", "@theme", "base-index", "status"}, names)

	entry, _ := reg.Get("@count")
	assert.Equal(t, opts.StringValue("3"), entry.Value)
	entry, _ = reg.Get("@enabled")
	assert.Equal(t, opts.StringValue("on"), entry.Value)
}

func TestDecoderReportsAllErrors(t *testing.T) {
	decoder := NewDecoder(testTable)

	_, err := decoder.Decode(Context{Scope: "server"}, map[string]any{
		"stat":       true,
		"base-index": 99,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, opts.ErrUnknownOption)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "hydrate: decode server")
	assert.Contains(t, err.Error(), "stat")
}

func TestDecoderSkipUnknown(t *testing.T) {
	reg, err := NewDecoder(testTable, WithSkipUnknown()).Decode(Context{}, map[string]any{
		"stat":   true,
		"status": true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestDecoderHooks(t *testing.T) {
	var seen []string
	decoder := NewDecoder(testTable,
		WithPreHook(func(ctx Context, payload map[string]any) (map[string]any, error) {
			seen = append(seen, "pre:"+ctx.Scope)
			payload["status"] = "on"
			return payload, nil
		}),
		WithPostHook(func(ctx Context, reg *opts.Registry) error {
			seen = append(seen, "post:"+ctx.Scope)
			reg.Set("@decoded", opts.StringValue("yes"))
			return nil
		}),
	)

	input := map[string]any{"base-index": 2}
	reg, err := decoder.Decode(Context{Scope: "server"}, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"pre:server", "post:server"}, seen)
	assert.Equal(t, 3, reg.Len())
	assert.NotContains(t, input, "status")

	boom := errors.New("boom")
	_, err = NewDecoder(testTable, WithPostHook(func(Context, *opts.Registry) error { return boom })).
		Decode(Context{Scope: "server"}, nil)
	assert.ErrorIs(t, err, boom)
}
