package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,dot-svg,png", []string{"svg", "dot-svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"graphviz", []string{"dot-svg"}, false},
		{"all", []string{"svg", "dot-svg", "json", "pdf", "png"}, false},
		{"unknown", []string{"gif"}, true},
		{"mixed", []string{"svg", "dot"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "scenes/plaza.toml", "scenes/plaza"},
		{"out/frame.svg", "plaza.toml", "out/frame"},
		{"out/frame.dot.svg", "plaza.toml", "out/frame"},
		{"out/frame.json", "plaza.toml", "out/frame"},
		{"out/frame", "plaza.toml", "out/frame"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRunRenderSVGToStdout(t *testing.T) {
	var out bytes.Buffer
	opts := &renderOpts{formats: []string{formatSVG}, labels: true}

	if err := runRender(quietContext(), squareScene, opts, &out); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("<svg")) {
		t.Fatalf("stdout should hold an SVG document, got %q", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("museum")) {
		t.Error("labels should include marker ids")
	}
}

func TestRunRenderJSONAfterClick(t *testing.T) {
	var out bytes.Buffer
	opts := &renderOpts{formats: []string{formatJSON}, clicks: []string{"kiosk"}, events: true}

	if err := runRender(quietContext(), squareScene, opts, &out); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	var got struct {
		State   string `json:"state"`
		Markers []struct {
			ID         string `json:"id"`
			Spiderfied bool   `json:"spiderfied"`
		} `json:"markers"`
		Legs   []json.RawMessage `json:"legs"`
		Events []struct {
			Channel string `json:"channel"`
		} `json:"events"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.State != "spiderfied" {
		t.Errorf("state = %q, want spiderfied", got.State)
	}
	if len(got.Legs) != 3 {
		t.Errorf("legs = %d, want 3", len(got.Legs))
	}
	spiderfied := map[string]bool{}
	for _, m := range got.Markers {
		spiderfied[m.ID] = m.Spiderfied
	}
	if spiderfied["museum"] || !spiderfied["cafe"] || !spiderfied["kiosk"] {
		t.Errorf("spiderfied markers = %v", spiderfied)
	}
	var sawSpiderfy bool
	for _, ev := range got.Events {
		if ev.Channel == "spiderfy" {
			sawSpiderfy = true
		}
	}
	if !sawSpiderfy {
		t.Error("events should include the spiderfy notification")
	}
}

func TestRunRenderMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	opts := &renderOpts{
		output:  filepath.Join(dir, "frame.svg"),
		formats: []string{formatSVG, formatJSON},
	}

	if err := runRender(quietContext(), squareScene, opts, nil); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	for _, name := range []string{"frame.svg", "frame.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestRunRenderSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	opts := &renderOpts{output: path, formats: []string{formatJSON}}

	if err := runRender(quietContext(), squareScene, opts, nil); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("output file should hold valid JSON")
	}
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", squareScene, "-f", "gif"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Execute() error = %v, want invalid format", err)
	}
}

func TestRunRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	opts := &renderOpts{output: path, formats: []string{formatPNG}, scale: 1, clicks: []string{"cafe"}}

	if err := runRender(quietContext(), squareScene, opts, nil); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output is not a PNG: % x", data[:min(8, len(data))])
	}
}
