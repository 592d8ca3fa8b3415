package opts

import (
	"context"
	"log/slog"
	"time"
)

// EvaluatorLogEvent describes a filter evaluation attempt for logging.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Scope    string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger to the Engine.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *engineConfig) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// ShowLogEvent describes one completed show request.
type ShowLogEvent struct {
	Scope    Scope
	Option   string
	Mode     string
	Lines    int
	Duration time.Duration
	Err      error
	// HookErr reports activity hook failures; they never fail the request.
	HookErr error
}

// ShowLogger records show events.
type ShowLogger interface {
	LogShow(ShowLogEvent)
}

// ShowLoggerFunc adapts a function to ShowLogger.
type ShowLoggerFunc func(ShowLogEvent)

// LogShow implements ShowLogger.
func (f ShowLoggerFunc) LogShow(event ShowLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopShowLogger struct{}

func (noopShowLogger) LogShow(ShowLogEvent) {}

// WithShowLogger attaches a show logger to the Engine.
func WithShowLogger(logger ShowLogger) Option {
	return func(cfg *engineConfig) {
		if logger == nil {
			cfg.showLogger = noopShowLogger{}
			return
		}
		cfg.showLogger = logger
	}
}

// SlogLogger adapts a *slog.Logger to both ShowLogger and EvaluatorLogger.
// Request failures are logged at info since the sink already reports them;
// only activity hook failures reach warn.
type SlogLogger struct {
	Logger *slog.Logger
}

// WithSlog wires logger as both the show and evaluator logger.
func WithSlog(logger *slog.Logger) Option {
	adapter := SlogLogger{Logger: logger}
	return func(cfg *engineConfig) {
		cfg.showLogger = adapter
		cfg.logger = adapter
	}
}

func (l SlogLogger) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// LogShow implements ShowLogger.
func (l SlogLogger) LogShow(event ShowLogEvent) {
	attrs := []slog.Attr{
		slog.String("scope", event.Scope.Identifier()),
		slog.String("mode", event.Mode),
		slog.Int("lines", event.Lines),
		slog.Duration("duration", event.Duration),
	}
	if event.Option != "" {
		attrs = append(attrs, slog.String("option", event.Option))
	}
	if event.HookErr != nil {
		l.logger().LogAttrs(context.Background(), slog.LevelWarn, "activity hook failed",
			slog.String("scope", event.Scope.Identifier()), slog.Any("error", event.HookErr))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("kind", kindLabel(event.Err)), slog.Any("error", event.Err))
		l.logger().LogAttrs(context.Background(), slog.LevelInfo, "show-options failed", attrs...)
		return
	}
	l.logger().LogAttrs(context.Background(), slog.LevelDebug, "show-options", attrs...)
}

// LogEvaluation implements EvaluatorLogger.
func (l SlogLogger) LogEvaluation(event EvaluatorLogEvent) {
	attrs := []slog.Attr{
		slog.String("engine", event.Engine),
		slog.String("expr", event.Expr),
		slog.String("scope", event.Scope),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
		l.logger().LogAttrs(context.Background(), slog.LevelInfo, "filter evaluation failed", attrs...)
		return
	}
	l.logger().LogAttrs(context.Background(), slog.LevelDebug, "filter evaluated", attrs...)
}
