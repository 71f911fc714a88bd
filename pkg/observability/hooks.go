// Package observability lets callers watch the spider engine without the
// engine depending on a metrics or tracing backend.
//
// An engine reports to two hook sets: [SpiderHooks] for transitions, clicks,
// and status passes, and [RegistryHooks] for marker tracking. Hooks are passed
// per engine (spider.WithHooks, spider.WithRegistryHooks), so two engines in
// one process never share counters; without them an engine uses the no-op
// implementations.
//
// [Tee] fans one event out to several hook sets, and [LogHooks] writes every
// event to a charmbracelet logger at debug level:
//
//	hooks := observability.Tee(promMetrics, observability.LogHooks{Logger: logger})
//	engine := spider.New(surface, spider.WithHooks(hooks))
package observability

import "time"

// SpiderHooks receives engine state machine events.
type SpiderHooks interface {
	// OnSpiderfy: count markers were fanned out in mode ("circle" or "spiral").
	OnSpiderfy(count int, mode string, took time.Duration)
	// OnUnspiderfy: count markers were folded back.
	OnUnspiderfy(count int, took time.Duration)
	// OnClick: a click passed through without fanning anything out.
	OnClick()
	// OnFormat: a status pass over count markers finished, err is non-nil when
	// the projection was not ready.
	OnFormat(count int, took time.Duration, err error)
}

// RegistryHooks receives marker tracking events. total is the number of
// tracked markers after the change.
type RegistryHooks interface {
	OnTrack(total int)
	OnUntrack(total int)
}

// NoopSpiderHooks ignores everything.
type NoopSpiderHooks struct{}

func (NoopSpiderHooks) OnSpiderfy(int, string, time.Duration) {}
func (NoopSpiderHooks) OnUnspiderfy(int, time.Duration)       {}
func (NoopSpiderHooks) OnClick()                              {}
func (NoopSpiderHooks) OnFormat(int, time.Duration, error)    {}

// NoopRegistryHooks ignores everything.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnTrack(int)   {}
func (NoopRegistryHooks) OnUntrack(int) {}
