package opts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTargetNotFound indicates the named session or window does not exist.
	ErrTargetNotFound = errors.New("opts: target not found")
	// ErrUnknownOption indicates a name that matches no declared spec, or a
	// user-defined name absent from the registry.
	ErrUnknownOption = errors.New("opts: unknown option")
	// ErrAmbiguousOption indicates a name that is a prefix of several specs.
	ErrAmbiguousOption = errors.New("opts: ambiguous option")
)

// ShowError is returned by the show engine for every failed request. Kind is
// one of the sentinel errors above; Err carries an optional cause.
type ShowError struct {
	Kind  error
	Scope ScopeKind
	Name  string
	Err   error
}

// Error returns the line reported to the error sink.
func (e *ShowError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case errors.Is(e.Kind, ErrTargetNotFound):
		if e.Name == "" {
			return fmt.Sprintf("no current %s", e.Scope)
		}
		return fmt.Sprintf("can't find %s: %s", e.Scope, e.Name)
	case errors.Is(e.Kind, ErrAmbiguousOption):
		return "ambiguous option: " + e.Name
	case errors.Is(e.Kind, ErrUnknownOption):
		return "unknown option: " + e.Name
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "show-options failed: " + e.Name
	}
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ShowError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// kindLabel names the error kind for logs and activity metadata.
func kindLabel(err error) string {
	switch {
	case errors.Is(err, ErrTargetNotFound):
		return "target_not_found"
	case errors.Is(err, ErrAmbiguousOption):
		return "ambiguous_option"
	case errors.Is(err, ErrUnknownOption):
		return "unknown_option"
	default:
		var evalErr *EvaluationError
		if errors.As(err, &evalErr) {
			return "filter_error"
		}
		return "internal"
	}
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Scope  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("opts: %s evaluator %s scope=%s: %v", e.Engine, describeExpression(e.Expr), e.Scope, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "opts:") {
		return err
	}
	return fmt.Errorf("opts: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, scope string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Scope == "" {
			evalErr.Scope = scope
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Scope:  scope,
		Err:    err,
	}
}
