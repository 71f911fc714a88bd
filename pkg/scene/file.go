package scene

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// Scene file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// File is the on-disk description of a scene.
type File struct {
	Name    string        `toml:"name" json:"name"`
	MapType string        `toml:"map_type" json:"map_type"`
	Zoom    int           `toml:"zoom" json:"zoom"`
	Width   float64       `toml:"width" json:"width"`
	Height  float64       `toml:"height" json:"height"`
	Center  spider.LatLng `toml:"center" json:"center"`

	// Suppressed starts the surface in a mode that cannot spiderfy.
	Suppressed bool `toml:"suppressed" json:"suppressed"`

	Spider  spider.Config `toml:"spider" json:"spider"`
	Markers []MarkerSpec  `toml:"markers" json:"markers"`
	Script  []Step        `toml:"script" json:"script"`
}

// MarkerSpec describes one marker of a scene file.
type MarkerSpec struct {
	ID     string  `toml:"id" json:"id"`
	Lat    float64 `toml:"lat" json:"lat"`
	Lng    float64 `toml:"lng" json:"lng"`
	Z      int     `toml:"z" json:"z"`
	Hidden bool    `toml:"hidden" json:"hidden"`
}

// Position returns the marker's coordinates.
func (s MarkerSpec) Position() spider.LatLng {
	return spider.LatLng{Lat: s.Lat, Lng: s.Lng}
}

// newFile returns a file with every default filled in, ready to decode onto.
func newFile() File {
	return File{
		MapType: spider.MapTypeRoadmap,
		Zoom:    16,
		Width:   800,
		Height:  600,
		Spider:  spider.DefaultConfig(),
	}
}

// Decode reads a scene in the given format from r. Keys missing from the
// input keep their defaults, including every engine setting.
//
// A TOML scene looks like:
//
//	name = "plaza"
//	zoom = 18
//	center = { lat = 48.8584, lng = 2.2945 }
//
//	[spider]
//	nearby_distance = 24
//
//	[[markers]]
//	id = "cafe"
//	lat = 48.8584
//	lng = 2.2945
//
//	[[script]]
//	action = "click"
//	target = "cafe"
//
// Decode does not close r.
func Decode(r io.Reader, format string) (File, error) {
	f := newFile()
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return File{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return File{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads the scene file at path, choosing the format from its extension.
func Load(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s not found", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer fh.Close()
	return Decode(fh, format)
}

// FormatOf maps a file extension to a scene format.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format of %s (want .toml or .json)", path)
}

// Validate checks the viewport, markers, script, and engine settings.
func (f File) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "viewport must be positive, got %vx%v", f.Width, f.Height)
	}
	if f.Zoom < 0 || f.Zoom > 22 {
		return errors.New(errors.ErrCodeInvalidScene, "zoom %d out of range [0, 22]", f.Zoom)
	}
	if err := errors.ValidateLatLng(f.Center.Lat, f.Center.Lng); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "center")
	}
	if err := f.Spider.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(f.Markers))
	for _, m := range f.Markers {
		if err := errors.ValidateMarkerID(m.ID); err != nil {
			return err
		}
		if seen[m.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate marker id %q", m.ID)
		}
		seen[m.ID] = true
		if err := errors.ValidateLatLng(m.Lat, m.Lng); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "marker %s", m.ID)
		}
	}
	for i, s := range f.Script {
		if err := s.validate(seen); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "script step %d", i+1)
		}
	}
	return nil
}
