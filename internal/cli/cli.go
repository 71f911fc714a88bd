package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

const (
	appName     = "spiderfy"
	defaultAddr = "127.0.0.1:8080"
)

// Levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries what every command shares: the logger handed down through the
// command context.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// loadScene reads a scene file and builds it with the engine logging through
// the command's logger. Extra engine options are appended after the logger.
func loadScene(ctx context.Context, path string, opts ...spider.Option) (*scene.Scene, error) {
	logger := loggerFromContext(ctx)

	f, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %s: %d markers, %d steps", path, len(f.Markers), len(f.Script))

	opts = append([]spider.Option{spider.WithLogger(logger.WithPrefix("spider"))}, opts...)
	sc, err := scene.Build(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// runScene plays the scene's script and then clicks each id in order.
func runScene(sc *scene.Scene, ids []string) error {
	steps := make([]scene.Step, len(ids))
	for i, id := range ids {
		steps[i] = scene.Click(id)
	}
	return sc.Run(steps...)
}
