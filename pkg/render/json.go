package render

import (
	"encoding/json"

	"github.com/matzehuels/spiderfy/pkg/scene"
)

// JSONOption configures RenderJSON.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	events []scene.Event
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithEvents includes a notification log in the output.
func WithEvents(evs []scene.Event) JSONOption {
	return func(r *jsonRenderer) { r.events = evs }
}

type jsonOutput struct {
	scene.Frame
	Events []scene.Event `json:"events,omitempty"`
}

// RenderJSON encodes fr.
func RenderJSON(fr scene.Frame, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Frame: fr, Events: r.events}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
