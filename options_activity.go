package opts

import "github.com/goliatone/go-muxopts/pkg/activity"

// WithActivityHooks attaches activity hooks notified after every show
// request. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *engineConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the emitter configuration. Without it, hooks
// are enabled on activity.DefaultChannel.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *engineConfig) {
		cfg.activityConfig = &config
	}
}

func (cfg engineConfig) emitterConfig() activity.Config {
	if cfg.activityConfig != nil {
		return *cfg.activityConfig
	}
	return activity.Config{Enabled: true}
}

// ActivityHooks returns a cloned slice of the configured activity hooks.
func (e *Engine) ActivityHooks() activity.Hooks {
	if e == nil {
		return nil
	}
	return cloneActivityHooks(e.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
