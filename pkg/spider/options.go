package spider

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderfy/pkg/observability"
	"github.com/matzehuels/spiderfy/pkg/schedule"
)

// DefaultFormatDelay is how long format requests are collected before the
// statuses are recomputed.
const DefaultFormatDelay = 50 * time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithScheduler runs deferred format passes on s instead of the surface.
func WithScheduler(s schedule.Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithFormatDelay sets the debounce delay of format passes.
func WithFormatDelay(d time.Duration) Option {
	return func(e *Engine) { e.formatDelay = d }
}

// WithHooks reports state machine events to h. The default is a no-op.
func WithHooks(h observability.SpiderHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithRegistryHooks reports tracking events to h. The default is a no-op.
func WithRegistryHooks(h observability.RegistryHooks) Option {
	return func(e *Engine) { e.regHooks = h }
}
