package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat keeps hundredths so format passes 50ms apart are told apart.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true, TimeFormat: logTimeFormat})
	l.SetLevel(level)
	return l
}

// progress times one command step. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, for
// example "Rendered plaza (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default() for commands run outside the
// root command, as tests do.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return log.Default()
}
