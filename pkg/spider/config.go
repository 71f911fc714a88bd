package spider

import (
	"math"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/layout"
)

// Base map types known to the default leg colours.
const (
	MapTypeRoadmap   = "roadmap"
	MapTypeSatellite = "satellite"
	MapTypeHybrid    = "hybrid"
	MapTypeTerrain   = "terrain"
)

const (
	defaultUsualLegColor       = "#444"
	defaultHighlightedLegColor = "#f00"
)

// Stacking bands. Hosts should keep ordinary marker z-indexes below
// MaxMarkerZIndex so spiderfied markers and legs always draw on top.
const (
	MaxMarkerZIndex = 1000000

	spiderfiedZIndex     = MaxMarkerZIndex + 20000
	highlightedLegZIndex = MaxMarkerZIndex + 10000
	usualLegZIndex       = MaxMarkerZIndex + 1
)

// LegColors maps base map types to leg colours.
type LegColors struct {
	Usual       map[string]string `toml:"usual" json:"usual"`
	Highlighted map[string]string `toml:"highlighted" json:"highlighted"`
}

// For returns the usual and highlighted colours for mapType, falling back to
// dark grey and red for types without an entry.
func (c LegColors) For(mapType string) (usual, highlighted string) {
	usual, ok := c.Usual[mapType]
	if !ok {
		usual = defaultUsualLegColor
	}
	highlighted, ok = c.Highlighted[mapType]
	if !ok {
		highlighted = defaultHighlightedLegColor
	}
	return usual, highlighted
}

// Config holds the engine's behaviour and geometry settings.
// Distances are in screen pixels and angles in radians.
type Config struct {
	// MarkersWontMove skips position-change subscriptions on tracked markers.
	MarkersWontMove bool `toml:"markers_wont_move" json:"markers_wont_move"`
	// MarkersWontHide skips visibility-change subscriptions on tracked markers.
	MarkersWontHide bool `toml:"markers_wont_hide" json:"markers_wont_hide"`
	// BasicFormatEvents limits format statuses to SPIDERFIED and UNSPIDERFIED.
	BasicFormatEvents bool `toml:"basic_format_events" json:"basic_format_events"`
	// KeepSpiderfied leaves the cluster open when one of its markers is clicked.
	KeepSpiderfied bool `toml:"keep_spiderfied" json:"keep_spiderfied"`
	// IgnoreMapClick leaves the cluster open on background clicks.
	IgnoreMapClick bool `toml:"ignore_map_click" json:"ignore_map_click"`

	NearbyDistance         float64 `toml:"nearby_distance" json:"nearby_distance"`
	CircleSpiralSwitchover int     `toml:"circle_spiral_switchover" json:"circle_spiral_switchover"`
	CircleFootSeparation   float64 `toml:"circle_foot_separation" json:"circle_foot_separation"`
	CircleStartAngle       float64 `toml:"circle_start_angle" json:"circle_start_angle"`
	SpiralFootSeparation   float64 `toml:"spiral_foot_separation" json:"spiral_foot_separation"`
	SpiralLengthStart      float64 `toml:"spiral_length_start" json:"spiral_length_start"`
	SpiralLengthFactor     float64 `toml:"spiral_length_factor" json:"spiral_length_factor"`
	LegWeight              float64 `toml:"leg_weight" json:"leg_weight"`

	LegColors LegColors `toml:"leg_colors" json:"leg_colors"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	p := layout.DefaultParams()
	return Config{
		NearbyDistance:         20,
		CircleSpiralSwitchover: p.CircleSpiralSwitchover,
		CircleFootSeparation:   p.CircleFootSeparation,
		CircleStartAngle:       p.CircleStartAngle,
		SpiralFootSeparation:   p.SpiralFootSeparation,
		SpiralLengthStart:      p.SpiralLengthStart,
		SpiralLengthFactor:     p.SpiralLengthFactor,
		LegWeight:              1.5,
		LegColors: LegColors{
			Usual: map[string]string{
				MapTypeHybrid:    "#fff",
				MapTypeSatellite: "#fff",
				MapTypeTerrain:   "#444",
				MapTypeRoadmap:   "#444",
			},
			Highlighted: map[string]string{
				MapTypeHybrid:    "#f00",
				MapTypeSatellite: "#f00",
				MapTypeTerrain:   "#f00",
				MapTypeRoadmap:   "#f00",
			},
		},
	}
}

// Validate reports the first setting that would produce degenerate geometry.
func (c Config) Validate() error {
	checks := []struct {
		field string
		v     float64
		check func(string, float64) error
	}{
		{"nearby_distance", c.NearbyDistance, errors.ValidateNonNegative},
		{"circle_foot_separation", c.CircleFootSeparation, errors.ValidateNonNegative},
		{"circle_start_angle", c.CircleStartAngle, errors.ValidateFinite},
		{"spiral_foot_separation", c.SpiralFootSeparation, errors.ValidatePositive},
		{"spiral_length_start", c.SpiralLengthStart, errors.ValidatePositive},
		{"spiral_length_factor", c.SpiralLengthFactor, errors.ValidatePositive},
		{"leg_weight", c.LegWeight, errors.ValidateNonNegative},
	}
	for _, ck := range checks {
		if err := ck.check(ck.field, ck.v); err != nil {
			return err
		}
	}
	if c.CircleSpiralSwitchover < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"circle_spiral_switchover must be at least 1, got %d", c.CircleSpiralSwitchover)
	}
	return nil
}

// LayoutParams returns the foot arrangement settings.
func (c Config) LayoutParams() layout.Params {
	return layout.Params{
		CircleSpiralSwitchover: c.CircleSpiralSwitchover,
		CircleFootSeparation:   c.CircleFootSeparation,
		CircleStartAngle:       c.CircleStartAngle,
		SpiralFootSeparation:   c.SpiralFootSeparation,
		SpiralLengthStart:      c.SpiralLengthStart,
		SpiralLengthFactor:     c.SpiralLengthFactor,
	}
}

// SpiderfiedZ returns the z-index given to a marker whose foot sits at
// screen row footY. Lower feet draw over higher ones.
func SpiderfiedZ(footY float64) int {
	return spiderfiedZIndex + int(math.Round(footY))
}
