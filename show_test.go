package opts

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func show(t *testing.T, engine *Engine, req ShowRequest) (*BufferSink, error) {
	t.Helper()
	sink := &BufferSink{}
	err := engine.Show(context.Background(), req, sink)
	return sink, err
}

func TestShowSingleOption(t *testing.T) {
	engine := New(testEnvironment())

	cases := []struct {
		name string
		req  ShowRequest
		want []string
	}{
		{"global default flag", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "status"}, []string{"status on"}},
		{"global override", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "status-bg"}, []string{"status-bg blue"}},
		{"verbose", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "status-left", Verbose: true}, []string{"[#S]"}},
		{"prefix resolves", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "status-left-l"}, []string{"status-left-length 10"}},
		{"key", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "prefix"}, []string{"prefix C-b"}},
		{"key none", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "prefix2"}, []string{"prefix2 None"}},
		{"choice", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "bell-action"}, []string{"bell-action any"}},
		{"server", ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}, Option: "escape-time"}, []string{"escape-time 500"}},
		{"current session", ShowRequest{Option: "status"}, []string{"status off"}},
		{"current window", ShowRequest{Scope: ScopeRequest{Kind: ScopeWindow}, Option: "mode-keys"}, []string{"mode-keys vi"}},
		{"user option", ShowRequest{Option: "@project"}, []string{`@project "muxopts"`}},
		{"user option verbose", ShowRequest{Option: "@project", Verbose: true}, []string{"muxopts"}},
		{"declared but unset", ShowRequest{Scope: ScopeRequest{Target: "work"}, Option: "status"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink, err := show(t, engine, tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sink.Lines)
			assert.Empty(t, sink.Errors)
		})
	}
}

func TestShowSingleOptionErrors(t *testing.T) {
	engine := New(testEnvironment())

	cases := []struct {
		name string
		req  ShowRequest
		kind error
		line string
	}{
		{"unknown", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "nosuch"}, ErrUnknownOption, "unknown option: nosuch"},
		{"ambiguous", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "status-l"}, ErrAmbiguousOption, "ambiguous option: status-l"},
		{"wrong table", ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}, Option: "status"}, ErrUnknownOption, "unknown option: status"},
		{"unset user option", ShowRequest{Scope: ScopeRequest{Global: true}, Option: "@project"}, ErrUnknownOption, "unknown option: @project"},
		{"user option is not prefix matched", ShowRequest{Option: "@proj"}, ErrUnknownOption, "unknown option: @proj"},
		{"missing target", ShowRequest{Scope: ScopeRequest{Target: "ghost"}, Option: "status"}, ErrTargetNotFound, "can't find session: ghost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink, err := show(t, engine, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
			assert.Empty(t, sink.Lines)
			assert.Equal(t, []string{tc.line}, sink.Errors)

			var showErr *ShowError
			require.True(t, errors.As(err, &showErr))
		})
	}
}

func TestShowAllOrdersUserOptionsFirst(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"@b", "width", "@a", "height"} {
		reg.Set(name, NumberValue(1))
	}
	env := Environment{
		Globals: Globals{Session: reg},
		Tables: Tables{Session: Table{
			{Name: "height", Type: TypeNumber},
			{Name: "width", Type: TypeNumber},
		}},
	}

	sink, err := show(t, New(env), ShowRequest{Scope: ScopeRequest{Global: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{`@a "1"`, `@b "1"`, "height 1", "width 1"}, sink.Lines)
}

func TestShowAllFollowsTableOrder(t *testing.T) {
	reg := NewRegistry(
		Entry{Name: "alpha", Value: NumberValue(1)},
		Entry{Name: "zeta", Value: NumberValue(2)},
	)
	env := Environment{
		Globals: Globals{Server: reg},
		Tables: Tables{Server: Table{
			{Name: "zeta", Type: TypeNumber},
			{Name: "alpha", Type: TypeNumber},
			{Name: "missing", Type: TypeNumber},
		}},
	}

	sink, err := show(t, New(env), ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}})
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta 2", "alpha 1"}, sink.Lines)
}

func TestShowAllScopes(t *testing.T) {
	engine := New(testEnvironment())

	sink, err := show(t, engine, ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"buffer-limit 20",
		"escape-time 500",
		"exit-unattached off",
		"quiet off",
		"set-clipboard on",
	}, sink.Lines)

	sink, err = show(t, engine, ShowRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{`@project "muxopts"`, "status off"}, sink.Lines)

	sink, err = show(t, engine, ShowRequest{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"muxopts", "off"}, sink.Lines)

	sink, err = show(t, engine, ShowRequest{Scope: ScopeRequest{Target: "work"}})
	require.NoError(t, err)
	assert.Empty(t, sink.Lines)
	assert.Empty(t, sink.Errors)

	sink, err = show(t, engine, ShowRequest{Scope: ScopeRequest{Global: true}})
	require.NoError(t, err)
	require.Len(t, sink.Lines, len(DefaultTables().Session)+1)
	assert.Equal(t, `@theme "dark"`, sink.Lines[0])
	assert.Equal(t, "word-separators \" -_@\"", sink.Lines[len(sink.Lines)-1])
}

func TestShowIsIdempotent(t *testing.T) {
	engine := New(testEnvironment())
	req := ShowRequest{Scope: ScopeRequest{Kind: ScopeWindow, Global: true}}

	first, err := show(t, engine, req)
	require.NoError(t, err)
	second, err := show(t, engine, req)
	require.NoError(t, err)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestShowUnknownScopeFailsBeforePrinting(t *testing.T) {
	engine := New(testEnvironment())
	sink, err := show(t, engine, ShowRequest{Scope: ScopeRequest{Kind: ScopeWindow, Target: "ghost:3"}})
	require.Error(t, err)
	assert.Empty(t, sink.Lines)
	assert.Equal(t, []string{"can't find window: ghost:3"}, sink.Errors)
}

func TestShowWriterSink(t *testing.T) {
	var out, errOut bytes.Buffer
	engine := New(testEnvironment())
	sink := WriterSink{Out: &out, Err: &errOut}

	require.NoError(t, engine.Show(context.Background(), ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}, Option: "quiet"}, sink))
	assert.Equal(t, "quiet off\n", out.String())

	require.Error(t, engine.Show(context.Background(), ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}, Option: "q2"}, sink))
	assert.Equal(t, "unknown option: q2\n", errOut.String())
}

func TestShowWithNilSink(t *testing.T) {
	engine := New(testEnvironment())
	err := engine.Show(context.Background(), ShowRequest{Option: "nosuch"}, nil)
	assert.ErrorIs(t, err, ErrUnknownOption)

	assert.NotPanics(t, func() {
		assert.NoError(t, engine.Show(context.Background(), ShowRequest{Option: "status"}, nil))
		assert.NoError(t, engine.Show(context.Background(), ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}}, nil))
	})
}

func TestShowFinderFailureIsNotReportedAsMissingTarget(t *testing.T) {
	env := testEnvironment()
	env.Targets = failingFinder{err: errors.New("state: load session/main: disk unavailable")}
	engine := New(env)

	sink, err := show(t, engine, ShowRequest{Option: "status"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTargetNotFound)
	assert.Empty(t, sink.Lines)
	assert.Equal(t, []string{"state: load session/main: disk unavailable"}, sink.Errors)
}

func TestEngineSharedAcrossGoroutines(t *testing.T) {
	engine := New(testEnvironment(), WithProgramCache(NewMemoryProgramCache()))
	require.NotNil(t, engine.cfg.evaluator)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink := &BufferSink{}
			err := engine.Show(context.Background(), ShowRequest{
				Scope:  ScopeRequest{Global: true},
				Filter: `kind == "colour" && value == "blue"`,
			}, sink)
			assert.NoError(t, err)
			assert.Equal(t, []string{"display-panes-colour blue", "status-bg blue"}, sink.Lines)
		}()
	}
	wg.Wait()
}

func TestShowFilter(t *testing.T) {
	engine := New(testEnvironment())

	sink, err := show(t, engine, ShowRequest{
		Scope:  ScopeRequest{Global: true},
		Filter: `kind == "colour" && value == "blue"`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"display-panes-colour blue", "status-bg blue"}, sink.Lines)

	sink, err = show(t, engine, ShowRequest{Filter: `user`})
	require.NoError(t, err)
	assert.Equal(t, []string{`@project "muxopts"`}, sink.Lines)

	sink, err = show(t, engine, ShowRequest{Option: "status", Filter: `false`})
	require.NoError(t, err)
	assert.Equal(t, []string{"status off"}, sink.Lines, "filters only apply to listings")
}

func TestShowFilterErrorPrintsNothing(t *testing.T) {
	engine := New(testEnvironment())

	for _, filter := range []string{`name ==`, `name`, `1 + raw`} {
		t.Run(filter, func(t *testing.T) {
			sink, err := show(t, engine, ShowRequest{Scope: ScopeRequest{Global: true}, Filter: filter})
			require.Error(t, err)

			var evalErr *EvaluationError
			require.True(t, errors.As(err, &evalErr))
			assert.Empty(t, sink.Lines)
			require.Len(t, sink.Errors, 1)
			assert.Contains(t, sink.Errors[0], "filter error: ")
		})
	}
}
