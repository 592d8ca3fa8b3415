package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv := append([]string{"muxopts", "--config", filepath.Join("testdata", "muxopts.yaml")}, args...)
	code := run(context.Background(), argv, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestShowOptionsSingle(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"global default", []string{"show-options", "-g", "status"}, "status on\n"},
		{"global override value only", []string{"show", "-g", "-v", "status-bg"}, "blue\n"},
		{"combined short flags", []string{"show", "-gv", "status-bg"}, "blue\n"},
		{"prefix match", []string{"show", "-g", "status-b"}, "status-bg blue\n"},
		{"current session", []string{"show", "status"}, "status off\n"},
		{"server", []string{"show", "-s", "escape-time"}, "escape-time 10\n"},
		{"quoted string", []string{"show", "-g", "default-shell"}, "default-shell \"/bin/sh\"\n"},
		{"user option", []string{"show", "-g", "@theme"}, "@theme \"dark\"\n"},
		{"window target", []string{"showw", "-t", "main:1", "mode-keys"}, "mode-keys vi\n"},
		{"window flag on show-options", []string{"show", "-w", "-t", "logs", "mode-keys"}, "mode-keys vi\n"},
		{"global window ignores target", []string{"showw", "-g", "-t", "nowhere", "aggressive-resize"}, "aggressive-resize on\n"},
		{"declared but unset", []string{"show", "-t", "work", "status"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, tc.args...)
			assert.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tc.want, res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestShowOptionsErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown option", []string{"show", "-g", "nosuch"}, "unknown option: nosuch\n"},
		{"ambiguous option", []string{"show", "-g", "status-l"}, "ambiguous option: status-l\n"},
		{"missing session", []string{"show", "-t", "ghost", "status"}, "can't find session: ghost\n"},
		{"missing window", []string{"showw", "-t", "main:9", "mode-keys"}, "can't find window: main:9\n"},
		{"unset user option", []string{"show", "@missing"}, "unknown option: @missing\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, tc.args...)
			assert.Equal(t, 1, res.code)
			assert.Empty(t, res.stdout)
			assert.Equal(t, tc.want, res.stderr)
		})
	}
}

func TestShowOptionsAll(t *testing.T) {
	res := runCLI(t, "show-options")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "@project \"muxopts\"\nstatus off\n", res.stdout)

	res = runCLI(t, "show", "-v")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "muxopts\noff\n", res.stdout)

	res = runCLI(t, "show", "-g")
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "@theme \"dark\"", lines[0])
	assert.Equal(t, "assume-paste-time 1", lines[1])
	assert.Contains(t, lines, "status-bg blue")
}

func TestShowOptionsFilterEngines(t *testing.T) {
	cases := map[string]string{
		"expr": `kind == "flag" && value == "on"`,
		"cel":  `kind == "flag" && value == "on"`,
		"js":   `kind === "flag" && value === "on"`,
	}
	for engine, filter := range cases {
		t.Run(engine, func(t *testing.T) {
			res := runCLI(t, "show", "-g", "--engine", engine, "--where", filter)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, "status on\n", res.stdout)
		})
	}

	res := runCLI(t, "show", "-s", "--where", `hasPrefix(name, "esc")`)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "escape-time 10\n", res.stdout)

	res = runCLI(t, "show", "-g", "--where", `user`)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "@theme \"dark\"\n", res.stdout)
}

func TestShowOptionsFilterErrors(t *testing.T) {
	res := runCLI(t, "show", "-g", "--where", `name +`)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.True(t, strings.HasPrefix(res.stderr, "filter error: "), res.stderr)

	res = runCLI(t, "show", "-g", "--where", `name`)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "filter must return a boolean")

	res = runCLI(t, "show", "-g", "--engine", "lua", "--where", `true`)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `unknown evaluator engine "lua"`)
}

func TestShowOptionsTrace(t *testing.T) {
	res := runCLI(t, "show", "-g", "--trace", "status-b")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "status-bg blue\n", res.stdout)

	var trace map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stderr), &trace))
	assert.Equal(t, "status-b", trace["query"])
	assert.Equal(t, "status-bg", trace["canonical"])
	assert.Equal(t, "exact", trace["status"])
	assert.Equal(t, true, trace["found"])
}

func TestShowOptionsTooManyArguments(t *testing.T) {
	res := runCLI(t, "show", "status", "status-bg")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "too many arguments")
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("MUXOPTS_CONFIG", filepath.Join("testdata", "muxopts.yaml"))
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"muxopts", "show", "-s", "escape-time"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "escape-time 10\n", stdout.String())
}

func TestDefaultConfiguration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"muxopts", "show", "-s", "escape-time"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "escape-time 500\n", stdout.String())
}

func TestDescribeOptions(t *testing.T) {
	res := runCLI(t, "describe-options", "-w")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "mode-keys")
	assert.Contains(t, res.stdout, "emacs|vi")

	res = runCLI(t, "describe-options", "-s", "--format", "descriptors")
	require.Equal(t, 0, res.code, res.stderr)
	var doc struct {
		Format   string `json:"format"`
		Scope    string `json:"scope"`
		Document []struct {
			Path string `json:"path"`
			Type string `json:"type"`
		} `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "descriptors", doc.Format)
	assert.Equal(t, "server", doc.Scope)
	require.NotEmpty(t, doc.Document)
	assert.Equal(t, "buffer-limit", doc.Document[0].Path)

	res = runCLI(t, "describe-options", "--format", "openapi")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "SessionOptions")

	res = runCLI(t, "describe-options", "--format", "xml")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown format")
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	res := runCLI(t, "--log-level", "debug", "show", "-g", "status")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "status on\n", res.stdout)
	assert.Contains(t, res.stderr, "configuration loaded")
}
