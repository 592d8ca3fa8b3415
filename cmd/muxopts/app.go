package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	opts "github.com/goliatone/go-muxopts"
	"github.com/goliatone/go-muxopts/internal/config"
	"github.com/goliatone/go-muxopts/internal/logging"
	"github.com/goliatone/go-muxopts/pkg/activity"
	"github.com/urfave/cli/v3"
)

// reportedError marks failures whose message the engine already wrote to the
// error sink.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// app carries the writers and the lazily built runtime shared by commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: slog.New(slog.DiscardHandler)}
	err := a.command().Run(ctx, args)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "muxopts: %v\n", err)
	}
	return 1
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "muxopts",
		Usage:     "Show terminal multiplexer options",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "config",
				Usage:   "Configuration file (YAML or TOML); repeat to layer files",
				Aliases: []string{"c"},
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   logging.DefaultLevel,
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text or json)",
				Value: "text",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			a.logger = logging.NewLogger(cmd.String("log-level"), cmd.String("log-format"), a.stderr)
			return ctx, nil
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			a.showOptionsCommand(),
			a.showWindowOptionsCommand(),
			a.describeOptionsCommand(),
		},
	}
}

// engine loads the configuration named by the root flags and returns an
// engine bound to it.
func (a *app) engine(ctx context.Context, cmd *cli.Command, extra ...opts.Option) (*opts.Engine, error) {
	paths := cmd.Root().StringSlice("config")
	doc, err := config.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}
	tables := opts.DefaultTables()
	host, err := config.Build(ctx, doc, tables, nil)
	if err != nil {
		return nil, err
	}
	env, err := host.Environment(ctx, tables)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("configuration loaded", "files", len(paths), "sessions", len(host.Sessions()))

	options := []opts.Option{
		opts.WithSlog(a.logger),
		opts.WithActivityHooks(activity.Hooks{activity.HookFunc(a.logActivity)}),
	}
	return opts.New(env, append(options, extra...)...), nil
}

func (a *app) logActivity(_ context.Context, event activity.Event) error {
	a.logger.Debug("activity",
		"verb", event.Verb,
		"object", event.ObjectID,
		"channel", event.Channel,
		"request_id", event.Metadata["request_id"],
	)
	return nil
}
