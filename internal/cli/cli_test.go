package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

const squareScene = "testdata/square.toml"

// quietContext returns a context carrying a logger that writes nowhere.
func quietContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, log.DebugLevel))
}

func TestLoadScene(t *testing.T) {
	sc, err := loadScene(quietContext(), squareScene)
	if err != nil {
		t.Fatalf("loadScene() error: %v", err)
	}
	defer sc.Close()

	if sc.Name != "square" {
		t.Errorf("Name = %q, want square", sc.Name)
	}
	if got := len(sc.Markers()); got != 4 {
		t.Errorf("markers = %d, want 4", got)
	}
	if sc.Engine.State() != spider.StateNormal {
		t.Errorf("State = %v, want normal", sc.Engine.State())
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", "testdata/nope.toml", errors.ErrCodeFileNotFound},
		{"invalid marker", "testdata/broken.toml", errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScene(quietContext(), tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("loadScene(%q) error = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestLoadSceneLogsWithSpiderPrefix(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	sc, err := loadScene(ctx, squareScene)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()
	if err := runScene(sc, []string{"cafe"}); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "spider") {
		t.Errorf("engine log lines should carry the spider prefix, got:\n%s", buf.String())
	}
}

func TestRunSceneClicks(t *testing.T) {
	sc, err := loadScene(quietContext(), squareScene)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()

	if err := runScene(sc, []string{"cafe"}); err != nil {
		t.Fatalf("runScene() error: %v", err)
	}
	if sc.Engine.State() != spider.StateSpiderfied {
		t.Errorf("State = %v, want spiderfied", sc.Engine.State())
	}
	if got := len(sc.Engine.Cluster()); got != 3 {
		t.Errorf("cluster size = %d, want 3", got)
	}

	if err := runScene(sc, []string{"ghost"}); !errors.Is(err, errors.ErrCodeUnknownMarker) {
		t.Errorf("clicking an unknown id: error = %v, want UNKNOWN_MARKER", err)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"render", "inspect", "layout", "play", "serve", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommandAttachesLogger(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"layout", "--count", "3"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(logs.String(), "Generated 3 feet") {
		t.Errorf("command should log through the CLI logger, got:\n%s", logs.String())
	}
}

func TestVersionTemplate(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "spiderfy version ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestExampleScenesPlay(t *testing.T) {
	paths, err := filepath.Glob("../../examples/scenes/*")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := loadScene(quietContext(), path)
			if err != nil {
				t.Fatalf("loadScene() error: %v", err)
			}
			defer sc.Close()
			if err := runScene(sc, nil); err != nil {
				t.Fatalf("runScene() error: %v", err)
			}
			if sc.Engine.State() != spider.StateSpiderfied {
				t.Errorf("State = %v, want spiderfied after the script", sc.Engine.State())
			}
		})
	}
}
