package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// Hooks is a value that watches both the state machine and the registry.
type Hooks interface {
	SpiderHooks
	RegistryHooks
}

// Tee returns hooks that forward every event to each of hs in order. nil
// entries are skipped.
func Tee(hs ...Hooks) Hooks {
	out := make(tee, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type tee []Hooks

func (t tee) OnSpiderfy(count int, mode string, took time.Duration) {
	for _, h := range t {
		h.OnSpiderfy(count, mode, took)
	}
}

func (t tee) OnUnspiderfy(count int, took time.Duration) {
	for _, h := range t {
		h.OnUnspiderfy(count, took)
	}
}

func (t tee) OnClick() {
	for _, h := range t {
		h.OnClick()
	}
}

func (t tee) OnFormat(count int, took time.Duration, err error) {
	for _, h := range t {
		h.OnFormat(count, took, err)
	}
}

func (t tee) OnTrack(total int) {
	for _, h := range t {
		h.OnTrack(total)
	}
}

func (t tee) OnUntrack(total int) {
	for _, h := range t {
		h.OnUntrack(total)
	}
}

// LogHooks writes engine events to Logger at debug level. A nil Logger uses
// the charmbracelet default logger.
type LogHooks struct {
	Logger *log.Logger
}

func (l LogHooks) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

func (l LogHooks) OnSpiderfy(count int, mode string, took time.Duration) {
	l.logger().Debug("spiderfied", "markers", count, "mode", mode, "took", took)
}

func (l LogHooks) OnUnspiderfy(count int, took time.Duration) {
	l.logger().Debug("unspiderfied", "markers", count, "took", took)
}

func (l LogHooks) OnClick() {
	l.logger().Debug("click passed through")
}

func (l LogHooks) OnFormat(count int, took time.Duration, err error) {
	if err != nil {
		l.logger().Debug("status pass skipped", "markers", count, "err", err)
		return
	}
	l.logger().Debug("status pass", "markers", count, "took", took)
}

func (l LogHooks) OnTrack(total int) {
	l.logger().Debug("tracked", "total", total)
}

func (l LogHooks) OnUntrack(total int) {
	l.logger().Debug("untracked", "total", total)
}
