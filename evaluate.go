package opts

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("opts: evaluator not configured")

// Filter variables exposed to expressions. "type" is avoided because both expr
// and CEL reserve it as a builtin.
const (
	filterVarName  = "name"
	filterVarKind  = "kind"
	filterVarValue = "value"
	filterVarRaw   = "raw"
	filterVarUser  = "user"
)

// FilterSnapshot returns the variables a filter expression sees for entry.
func FilterSnapshot(spec OptionSpec, entry Entry) map[string]any {
	kind := spec.Type.String()
	value := entry.Value.Text()
	if entry.UserDefined() {
		kind = "user"
	} else {
		value = FormatValue(spec, entry.Value, true)
	}
	return map[string]any{
		filterVarName:  entry.Name,
		filterVarKind:  kind,
		filterVarValue: value,
		filterVarRaw:   entry.Value.Native(),
		filterVarUser:  entry.UserDefined(),
	}
}

// Evaluate runs expr against entry using the configured evaluator. It is the
// single-entry form of the filter applied when listing a scope.
func (e *Engine) Evaluate(sel ScopeSelection, spec OptionSpec, entry Entry, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := e.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx := RuleContext{
		Snapshot: FilterSnapshot(spec, entry),
		Scope:    sel.Scope(),
	}.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	evalErr = wrapEvaluationError(engine, expr, ctx.scopeLabel(), evalErr)
	e.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Scope:    ctx.scopeLabel(),
		Duration: time.Since(start),
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

type entryFilter struct {
	rule   CompiledRule
	engine string
	expr   string
	logger EvaluatorLogger
}

func (e *Engine) compileFilter(expr string) (*entryFilter, error) {
	if expr == "" {
		return nil, nil
	}
	evaluator, err := e.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	engine := evaluatorEngineName(evaluator)
	rule, err := evaluator.Compile(expr)
	if err != nil {
		return nil, wrapEvaluationError(engine, expr, "", err)
	}
	return &entryFilter{
		rule:   rule,
		engine: engine,
		expr:   expr,
		logger: e.evaluatorLogger(),
	}, nil
}

// keep reports whether entry passes the filter. A nil filter keeps everything.
func (f *entryFilter) keep(sel ScopeSelection, spec OptionSpec, entry Entry) (bool, error) {
	if f == nil {
		return true, nil
	}
	ctx := RuleContext{
		Snapshot: FilterSnapshot(spec, entry),
		Scope:    sel.Scope(),
	}.withDefaults()
	start := time.Now()
	value, err := f.rule.Evaluate(ctx)
	keep := false
	if err == nil {
		keep, err = asBool(value)
	}
	err = wrapEvaluationError(f.engine, f.expr, ctx.scopeLabel(), err)
	f.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   f.engine,
		Expr:     f.expr,
		Scope:    ctx.scopeLabel(),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return false, err
	}
	return keep, nil
}

func asBool(result any) (bool, error) {
	switch typed := result.(type) {
	case bool:
		return typed, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("filter must return a boolean, got %T", result)
	}
}

func (e *Engine) resolveEvaluator() (Evaluator, error) {
	if e.cfg.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return e.cfg.evaluator, nil
}

// defaultEvaluator builds the expr evaluator used when no WithEvaluator
// option is given.
func defaultEvaluator(cfg engineConfig) Evaluator {
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	return NewExprEvaluator(exprOpts...)
}

// NewEvaluator returns the evaluator registered under engine ("expr", "cel"
// or "js"), wired with cache and registry when provided.
func NewEvaluator(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch engine {
	case "", "expr":
		var opts []ExprEvaluatorOption
		if cache != nil {
			opts = append(opts, ExprWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, ExprWithFunctionRegistry(registry))
		}
		return NewExprEvaluator(opts...), nil
	case "cel":
		var opts []CELEvaluatorOption
		if cache != nil {
			opts = append(opts, CELWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, CELWithFunctionRegistry(registry))
		}
		return NewCELEvaluator(opts...), nil
	case "js":
		var opts []JSEvaluatorOption
		if cache != nil {
			opts = append(opts, JSWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, JSWithFunctionRegistry(registry))
		}
		return NewJSEvaluator(opts...), nil
	default:
		return nil, fmt.Errorf("opts: unknown evaluator engine %q", engine)
	}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*opts.exprEvaluator":
		return "expr"
	case "*opts.celEvaluator":
		return "cel"
	case "*opts.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
