package main

import (
	"context"
	"fmt"

	opts "github.com/goliatone/go-muxopts"
	"github.com/urfave/cli/v3"
)

func (a *app) showFlags(window bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{Name: "global", Aliases: []string{"g"}, Usage: "Show global defaults"},
		&cli.BoolFlag{Name: "value", Aliases: []string{"v"}, Usage: "Print values only, unquoted"},
		&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target session or window"},
		&cli.StringFlag{Name: "where", Usage: "Only list options matching the filter expression"},
		&cli.StringFlag{Name: "engine", Value: "expr", Usage: "Filter engine (expr, cel, js)"},
		&cli.BoolFlag{Name: "trace", Usage: "Write the resolution trace of a single option as JSON to stderr"},
	}
	if window {
		return flags
	}
	return append(flags,
		&cli.BoolFlag{Name: "server", Aliases: []string{"s"}, Usage: "Show server options"},
		&cli.BoolFlag{Name: "window", Aliases: []string{"w"}, Usage: "Show window options"},
	)
}

func (a *app) showOptionsCommand() *cli.Command {
	return &cli.Command{
		Name:                   "show-options",
		Aliases:                []string{"show"},
		Usage:                  "Show session, window or server options",
		ArgsUsage:              "[option]",
		UseShortOptionHandling: true,
		Flags:                  a.showFlags(false),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind := opts.ScopeSession
			switch {
			case cmd.Bool("server"):
				kind = opts.ScopeServer
			case cmd.Bool("window"):
				kind = opts.ScopeWindow
			}
			return a.show(ctx, cmd, kind)
		},
	}
}

func (a *app) showWindowOptionsCommand() *cli.Command {
	return &cli.Command{
		Name:                   "show-window-options",
		Aliases:                []string{"showw"},
		Usage:                  "Show window options",
		ArgsUsage:              "[option]",
		UseShortOptionHandling: true,
		Flags:                  a.showFlags(true),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.show(ctx, cmd, opts.ScopeWindow)
		},
	}
}

func (a *app) show(ctx context.Context, cmd *cli.Command, kind opts.ScopeKind) error {
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("%s: too many arguments", cmd.Name)
	}

	evaluator, err := opts.NewEvaluator(cmd.String("engine"), opts.NewMemoryProgramCache(), opts.StandardFunctions())
	if err != nil {
		return err
	}
	engine, err := a.engine(ctx, cmd, opts.WithEvaluator(evaluator))
	if err != nil {
		return err
	}

	req := opts.ShowRequest{
		Scope: opts.ScopeRequest{
			Kind:   kind,
			Global: cmd.Bool("global"),
			Target: cmd.String("target"),
		},
		Option:  cmd.Args().First(),
		Verbose: cmd.Bool("value"),
		Filter:  cmd.String("where"),
	}

	showErr := engine.Show(ctx, req, opts.WriterSink{Out: a.stdout, Err: a.stderr})
	if cmd.Bool("trace") && req.Option != "" {
		if err := a.writeTrace(ctx, engine, req); err != nil {
			return err
		}
	}
	if showErr != nil {
		return reportedError{err: showErr}
	}
	return nil
}

func (a *app) writeTrace(ctx context.Context, engine *opts.Engine, req opts.ShowRequest) error {
	trace, _ := engine.Explain(ctx, req)
	payload, err := trace.ToJSON()
	if err != nil {
		return err
	}
	a.logger.Debug("resolution trace", "query", trace.Query, "status", trace.Status, "found", trace.Found)
	_, err = fmt.Fprintln(a.stderr, string(payload))
	return err
}
