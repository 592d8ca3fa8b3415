package opts

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-muxopts/pkg/activity"
	"github.com/google/uuid"
)

// ShowRequest describes one show-options invocation. An empty Option selects
// every option in the scope.
type ShowRequest struct {
	Scope   ScopeRequest
	Option  string
	Verbose bool
	// Filter is an expression evaluated per entry when listing a whole scope.
	// It is ignored when Option is set.
	Filter string
}

const (
	modeSingle = "single"
	modeAll    = "all"
)

func (r ShowRequest) mode() string {
	if r.Option != "" {
		return modeSingle
	}
	return modeAll
}

// Engine resolves and renders options against an Environment. Its
// configuration is fixed by New, so an Engine may be shared between
// goroutines.
type Engine struct {
	env     Environment
	cfg     engineConfig
	emitter *activity.Emitter
}

// New constructs an Engine bound to env.
func New(env Environment, opts ...Option) *Engine {
	cfg := applyOptions(opts)
	if cfg.evaluator == nil {
		cfg.evaluator = defaultEvaluator(cfg)
	}
	return &Engine{
		env:     env,
		cfg:     cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, cfg.emitterConfig()),
	}
}

// Environment returns the collaborators the engine resolves against.
func (e *Engine) Environment() Environment {
	return e.env
}

// Show runs req and writes its output to sink. On failure exactly one line is
// written to sink.Error and a *ShowError (or *EvaluationError for filter
// failures) is returned; nothing is printed before a failure. A nil sink
// discards output.
func (e *Engine) Show(ctx context.Context, req ShowRequest, sink Sink) error {
	start := time.Now()
	scope := requestScope(req.Scope)

	sel, err := ResolveScope(req.Scope, e.env)
	if err != nil {
		return e.finish(ctx, req, scope, 0, start, sink, err)
	}
	scope = sel.Scope()

	var lines []string
	if req.Option != "" {
		var res resolution
		res, err = resolveOne(sel, req.Option, req.Verbose)
		if err == nil && res.found {
			lines = []string{res.line}
		}
	} else {
		lines, err = e.collectAll(sel, req)
	}
	if err != nil {
		return e.finish(ctx, req, scope, 0, start, sink, err)
	}

	out := &countingSink{Sink: sink}
	for _, line := range lines {
		out.Print(line)
	}
	return e.finish(ctx, req, scope, out.lines, start, sink, nil)
}

// Explain resolves req without printing and reports how the option was
// found. Explain always resolves a single option; an empty Option yields a
// trace with MatchUnknown status.
func (e *Engine) Explain(_ context.Context, req ShowRequest) (Trace, error) {
	trace := Trace{
		Query:  req.Option,
		Scope:  req.Scope.Kind.String(),
		Global: req.Scope.Global,
		Target: req.Scope.Target,
		Status: MatchUnknown.String(),
	}
	sel, err := ResolveScope(req.Scope, e.env)
	if err != nil {
		trace.Error = err.Error()
		return trace, err
	}
	trace.Scope = sel.Kind.String()
	trace.Global = sel.Global
	trace.Target = sel.Target

	res, err := resolveOne(sel, req.Option, req.Verbose)
	trace.Status = res.status.String()
	trace.Canonical = res.canonical
	trace.Candidates = res.candidates
	trace.UserDefined = res.user
	trace.Found = res.found
	trace.Line = res.line
	if err != nil {
		trace.Error = err.Error()
		return trace, err
	}
	return trace, nil
}

type resolution struct {
	status     MatchStatus
	canonical  string
	candidates []string
	user       bool
	found      bool
	line       string
}

func resolveOne(sel ScopeSelection, name string, verbose bool) (resolution, error) {
	if name == "" {
		return resolution{status: MatchUnknown}, &ShowError{Kind: ErrUnknownOption, Scope: sel.Kind, Name: name}
	}

	if IsUserOption(name) {
		res := resolution{status: MatchExact, canonical: name, user: true}
		entry, ok := sel.Registry.Get(name)
		if !ok {
			res.status = MatchUnknown
			return res, &ShowError{Kind: ErrUnknownOption, Scope: sel.Kind, Name: name}
		}
		res.found = true
		res.line = FormatUserLine(entry.Name, entry.Value, verbose)
		return res, nil
	}

	match := sel.Table.Match(name)
	res := resolution{status: match.Status, candidates: match.Candidates}
	switch match.Status {
	case MatchUnknown:
		return res, &ShowError{Kind: ErrUnknownOption, Scope: sel.Kind, Name: name}
	case MatchAmbiguous:
		return res, &ShowError{Kind: ErrAmbiguousOption, Scope: sel.Kind, Name: name}
	}

	res.canonical = match.Spec.Name
	entry, ok := sel.Registry.Get(match.Spec.Name)
	if !ok {
		return res, nil
	}
	res.found = true
	res.line = FormatLine(match.Spec.Name, FormatValue(match.Spec, entry.Value, verbose), verbose)
	return res, nil
}

func (e *Engine) collectAll(sel ScopeSelection, req ShowRequest) ([]string, error) {
	filter, err := e.compileFilter(req.Filter)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, entry := range sel.Registry.UserDefined() {
		keep, err := filter.keep(sel, OptionSpec{}, entry)
		if err != nil {
			return nil, err
		}
		if keep {
			lines = append(lines, FormatUserLine(entry.Name, entry.Value, req.Verbose))
		}
	}

	for _, spec := range sel.Table {
		entry, ok := sel.Registry.Get(spec.Name)
		if !ok {
			continue
		}
		keep, err := filter.keep(sel, spec, entry)
		if err != nil {
			return nil, err
		}
		if keep {
			lines = append(lines, FormatLine(spec.Name, FormatValue(spec, entry.Value, req.Verbose), req.Verbose))
		}
	}
	return lines, nil
}

func (e *Engine) finish(ctx context.Context, req ShowRequest, scope Scope, lines int, start time.Time, sink Sink, err error) error {
	if err != nil && sink != nil {
		sink.Error(errorLine(err))
	}
	hookErr := e.emit(ctx, req, scope, lines, err)
	e.showLogger().LogShow(ShowLogEvent{
		Scope:    scope,
		Option:   req.Option,
		Mode:     req.mode(),
		Lines:    lines,
		Duration: time.Since(start),
		Err:      err,
		HookErr:  hookErr,
	})
	return err
}

func (e *Engine) emit(ctx context.Context, req ShowRequest, scope Scope, lines int, err error) error {
	if !e.emitter.Enabled() {
		return nil
	}
	input := activity.OptionsEventInput{
		ObjectID: scope.Identifier(),
		Option:   req.Option,
		Mode:     req.mode(),
		Verbose:  req.Verbose,
		Lines:    lines,
		Scope: activity.ScopeContext{
			Name:   scope.Name,
			Label:  scope.Label,
			Global: scope.Global,
			Target: scope.Target,
		},
		Metadata: map[string]any{"request_id": uuid.NewString()},
	}
	if err != nil {
		input.ErrorKind = kindLabel(err)
		return e.emitter.Emit(ctx, activity.BuildOptionsShowFailedEvent(input))
	}
	return e.emitter.Emit(ctx, activity.BuildOptionsShownEvent(input))
}

func (e *Engine) showLogger() ShowLogger {
	if e.cfg.showLogger != nil {
		return e.cfg.showLogger
	}
	return noopShowLogger{}
}

func (e *Engine) evaluatorLogger() EvaluatorLogger {
	if e.cfg.logger != nil {
		return e.cfg.logger
	}
	return noopEvaluatorLogger{}
}

// errorLine renders err for the error sink.
func errorLine(err error) string {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) && evalErr.Err != nil {
		return "filter error: " + evalErr.Err.Error()
	}
	return err.Error()
}

func requestScope(req ScopeRequest) Scope {
	if req.Kind == ScopeServer {
		return Scope{Name: ScopeServer.String(), Label: scopeLabel(ScopeServer, false)}
	}
	scope := Scope{
		Name:   req.Kind.String(),
		Label:  scopeLabel(req.Kind, req.Global),
		Global: req.Global,
	}
	if !req.Global {
		scope.Target = req.Target
	}
	return scope
}
