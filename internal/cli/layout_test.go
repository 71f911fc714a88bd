package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/spiderfy/pkg/layout"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

func TestFootRowsCircle(t *testing.T) {
	p := spider.DefaultConfig().LayoutParams()
	rows, mode := footRows(3, p)

	if mode != layout.ModeCircle {
		t.Fatalf("mode = %v, want circle", mode)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	wantRadius := p.CircleFootSeparation * 5 / (2 * math.Pi)
	for i, r := range rows {
		if math.Abs(r.Radius-wantRadius) > 1e-9 {
			t.Errorf("row %d radius = %v, want %v", i, r.Radius, wantRadius)
		}
	}
	if math.Abs(rows[0].Angle-30) > 1e-9 {
		t.Errorf("first angle = %v, want 30", rows[0].Angle)
	}
	if math.Abs(rows[1].Angle-150) > 1e-9 {
		t.Errorf("second angle = %v, want 150", rows[1].Angle)
	}
	if rows[0].Z != spider.SpiderfiedZ(rows[0].Point.Y) {
		t.Errorf("z = %d", rows[0].Z)
	}
}

func TestFootRowsSpiralOutermostFirst(t *testing.T) {
	p := spider.DefaultConfig().LayoutParams()
	rows, mode := footRows(p.CircleSpiralSwitchover, p)

	if mode != layout.ModeSpiral {
		t.Fatalf("mode = %v, want spiral", mode)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Radius >= rows[i-1].Radius {
			t.Fatalf("radius should shrink: row %d = %v, row %d = %v", i-1, rows[i-1].Radius, i, rows[i].Radius)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"circle", []string{"layout", "-n", "4"}, "circle", false},
		{"spiral by count", []string{"layout", "-n", "12"}, "spiral", false},
		{"spiral by switchover", []string{"layout", "-n", "4", "--switchover", "3"}, "spiral", false},
		{"from scene", []string{"layout", "-n", "2", "--from", squareScene}, "circle", false},
		{"zero count", []string{"layout", "-n", "0"}, "", true},
		{"bad switchover", []string{"layout", "--switchover", "0"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(tt.args)

			err := root.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}
